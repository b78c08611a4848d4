package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the directories the pipeline reads from and writes to.
type Paths struct {
	DataDir      string `toml:"data_dir"`
	ScrapedDir   string `toml:"scraped_dir"`
	SnapshotDir  string `toml:"snapshot_dir"`
	DashboardDir string `toml:"dashboard_dir"`
	VoiceProfile string `toml:"voice_profile"`
	SamplePosts  string `toml:"sample_posts"`
	LogDir       string `toml:"log_dir"`
	RunLedger    string `toml:"run_ledger"`
}

// LLM contains the chat completion connection settings used for drafting.
type LLM struct {
	APIKey         string  `toml:"api_key"`
	BaseURL        string  `toml:"base_url"`
	Model          string  `toml:"model"`
	Referer        string  `toml:"referer"`
	Title          string  `toml:"title"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	MaxTokens      int     `toml:"max_tokens"`
	Temperature    float64 `toml:"temperature"`
}

// Scrape contains settings for collecting recent posts from watched accounts.
type Scrape struct {
	Accounts            []string `toml:"accounts"`
	HoursBack           int      `toml:"hours_back"`
	MaxItems            int      `toml:"max_items"`
	ActorID             string   `toml:"actor_id"`
	Providers           []string `toml:"providers"`
	NitterInstances     []string `toml:"nitter_instances"`
	PollIntervalSeconds int      `toml:"poll_interval_seconds"`
	MaxWaitSeconds      int      `toml:"max_wait_seconds"`
	ApifyToken          string   `toml:"apify_token"`
	ApifyBaseURL        string   `toml:"apify_base_url"`
}

// Generation contains the draft generation and gating knobs.
type Generation struct {
	MaxPosts            int     `toml:"max_posts"`
	DelaySeconds        float64 `toml:"delay_seconds"`
	SimilarityThreshold float64 `toml:"similarity_threshold"`
	MinTextLength       int     `toml:"min_text_length"`
	MinTextWithoutURLs  int     `toml:"min_text_without_urls"`
	TargetLength        int     `toml:"target_length"`
	MaxExamples         int     `toml:"max_examples"`
	PersonaHandle       string  `toml:"persona_handle"`
	PersonaDescription  string  `toml:"persona_description"`
	PermalinkBase       string  `toml:"permalink_base"`
}

// Store contains the rolling draft store settings.
type Store struct {
	MaxDrafts int `toml:"max_drafts"`
}

// Voice contains settings for building the voice profile from the persona's own posts.
type Voice struct {
	Username     string   `toml:"username"`
	MaxPosts     int      `toml:"max_posts"`
	ExampleCount int      `toml:"example_count"`
	ActorID      string   `toml:"actor_id"`
	Providers    []string `toml:"providers"`
}

// Images contains settings for the optional image generation stage.
type Images struct {
	Enabled              bool    `toml:"enabled"`
	APIKey               string  `toml:"api_key"`
	BaseURL              string  `toml:"base_url"`
	Model                string  `toml:"model"`
	Size                 string  `toml:"size"`
	Quality              string  `toml:"quality"`
	DelaySeconds         float64 `toml:"delay_seconds"`
	TimeoutSeconds       int     `toml:"timeout_seconds"`
	CharacterDescription string  `toml:"character_description"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
	RunSummary     bool   `toml:"run_summary"`
	Errors         bool   `toml:"errors"`
}

// Metrics contains configuration for the Prometheus textfile export.
type Metrics struct {
	TextfilePath string `toml:"textfile_path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for draftline.
//
// Configuration sections by subsystem:
//   - Paths: data, snapshot, dashboard, and log locations
//   - LLM: chat completion endpoint used for drafting
//   - Scrape: watched accounts, look-back window, provider order
//   - Generation: batch cap, pacing, filter floors, similarity ceiling
//   - Store: rolling draft store ceiling
//   - Voice: persona account used to build the voice profile
//   - Images: optional image generation stage
//   - Notifications: ntfy push notification settings
//   - Metrics: Prometheus textfile export
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	LLM           LLM           `toml:"llm"`
	Scrape        Scrape        `toml:"scrape"`
	Generation    Generation    `toml:"generation"`
	Store         Store         `toml:"store"`
	Voice         Voice         `toml:"voice"`
	Images        Images        `toml:"images"`
	Notifications Notifications `toml:"notifications"`
	Metrics       Metrics       `toml:"metrics"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("draftline.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories every stage writes into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{
		c.Paths.DataDir,
		c.Paths.ScrapedDir,
		c.Paths.SnapshotDir,
		c.Paths.DashboardDir,
		c.ImagesDir(),
		c.Paths.LogDir,
	} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DraftStorePath returns the location of the rolling draft store.
func (c *Config) DraftStorePath() string {
	return filepath.Join(c.Paths.DashboardDir, "drafts.json")
}

// ImagesDir returns the directory generated images are written into.
func (c *Config) ImagesDir() string {
	return filepath.Join(c.Paths.DashboardDir, "images")
}

// ScrapedPath returns the intermediate scraped-posts file for the given day.
func (c *Config) ScrapedPath(day string) string {
	return filepath.Join(c.Paths.ScrapedDir, "scraped_"+day+".json")
}

// SnapshotPath returns the base dated snapshot path for the given day.
func (c *Config) SnapshotPath(day string) string {
	return filepath.Join(c.Paths.SnapshotDir, "pending_"+day+".json")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
