package testsupport

import (
	"path/filepath"
	"testing"

	"draftline/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Credentials are set to placeholder values and pacing delays are zeroed so
// stage tests run without sleeping.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths = config.Paths{
		DataDir:      base,
		ScrapedDir:   filepath.Join(base, "scraped"),
		SnapshotDir:  filepath.Join(base, "drafts"),
		DashboardDir: filepath.Join(base, "dashboard"),
		VoiceProfile: filepath.Join(base, "voice_profile.yaml"),
		SamplePosts:  filepath.Join(base, "sample_posts.json"),
		LogDir:       filepath.Join(base, "logs"),
		RunLedger:    filepath.Join(base, "runs.db"),
	}
	cfgVal.LLM.APIKey = "test"
	cfgVal.Scrape.ApifyToken = "test"
	cfgVal.Images.APIKey = "test"
	cfgVal.Generation.DelaySeconds = 0
	cfgVal.Images.DelaySeconds = 0
	cfgVal.Scrape.PollIntervalSeconds = 0

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithLLMEndpoint points the drafting client at a test server.
func WithLLMEndpoint(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.LLM.BaseURL = url
	}
}

// WithApifyEndpoint points the actor client at a test server.
func WithApifyEndpoint(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scrape.ApifyBaseURL = url
	}
}

// WithImagesEndpoint enables the image stage against a test server.
func WithImagesEndpoint(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Images.Enabled = true
		b.cfg.Images.BaseURL = url
	}
}

// WithoutCredentials clears every service credential.
func WithoutCredentials() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.LLM.APIKey = ""
		b.cfg.Scrape.ApifyToken = ""
		b.cfg.Images.APIKey = ""
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return cfg.Paths.DataDir
}
