package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLLM()
	c.normalizeScrape()
	c.normalizeGeneration()
	c.normalizeVoice()
	c.normalizeImages()
	c.normalizeNotifications()
	c.Metrics.TextfilePath = strings.TrimSpace(c.Metrics.TextfilePath)
	if c.Metrics.TextfilePath != "" {
		expanded, err := expandPath(c.Metrics.TextfilePath)
		if err != nil {
			return fmt.Errorf("metrics.textfile_path: %w", err)
		}
		c.Metrics.TextfilePath = expanded
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}

	derived := []struct {
		key   string
		value *string
		child string
	}{
		{"paths.scraped_dir", &c.Paths.ScrapedDir, "scraped"},
		{"paths.snapshot_dir", &c.Paths.SnapshotDir, "drafts"},
		{"paths.dashboard_dir", &c.Paths.DashboardDir, "dashboard"},
		{"paths.voice_profile", &c.Paths.VoiceProfile, "voice_profile.yaml"},
		{"paths.sample_posts", &c.Paths.SamplePosts, "sample_posts.json"},
		{"paths.log_dir", &c.Paths.LogDir, "logs"},
		{"paths.run_ledger", &c.Paths.RunLedger, "runs.db"},
	}
	for _, entry := range derived {
		if strings.TrimSpace(*entry.value) == "" {
			*entry.value = filepath.Join(c.Paths.DataDir, entry.child)
		}
		if *entry.value, err = expandPath(*entry.value); err != nil {
			return fmt.Errorf("%s: %w", entry.key, err)
		}
	}
	return nil
}

func (c *Config) normalizeLLM() {
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	if c.LLM.APIKey == "" {
		c.LLM.APIKey = lookupEnv("OPENROUTER_API_KEY", "LLM_API_KEY")
	}
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Model == "" {
		c.LLM.Model = defaultLLMModel
	}
	c.LLM.Referer = strings.TrimSpace(c.LLM.Referer)
	if c.LLM.Referer == "" {
		c.LLM.Referer = defaultLLMReferer
	}
	c.LLM.Title = strings.TrimSpace(c.LLM.Title)
	if c.LLM.Title == "" {
		c.LLM.Title = defaultLLMTitle
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeoutSeconds
	}
	if c.LLM.MaxTokens <= 0 {
		c.LLM.MaxTokens = defaultLLMMaxTokens
	}
}

func (c *Config) normalizeScrape() {
	c.Scrape.Accounts = normalizeAccounts(c.Scrape.Accounts)
	c.Scrape.Providers = normalizeNames(c.Scrape.Providers)
	if len(c.Scrape.Providers) == 0 {
		c.Scrape.Providers = append([]string(nil), defaultScrapeProviders...)
	}
	c.Scrape.NitterInstances = normalizeInstances(c.Scrape.NitterInstances)
	if len(c.Scrape.NitterInstances) == 0 {
		c.Scrape.NitterInstances = append([]string(nil), defaultNitterInstances...)
	}
	c.Scrape.ActorID = strings.TrimSpace(c.Scrape.ActorID)
	if c.Scrape.ActorID == "" {
		c.Scrape.ActorID = defaultScrapeActorID
	}
	if c.Scrape.PollIntervalSeconds <= 0 {
		c.Scrape.PollIntervalSeconds = defaultScrapePollInterval
	}
	if c.Scrape.MaxWaitSeconds <= 0 {
		c.Scrape.MaxWaitSeconds = defaultScrapeMaxWait
	}
	c.Scrape.ApifyToken = strings.TrimSpace(c.Scrape.ApifyToken)
	if c.Scrape.ApifyToken == "" {
		c.Scrape.ApifyToken = lookupEnv("APIFY_API_KEY", "APIFY_TOKEN")
	}
	c.Scrape.ApifyBaseURL = strings.TrimRight(strings.TrimSpace(c.Scrape.ApifyBaseURL), "/")
	if c.Scrape.ApifyBaseURL == "" {
		c.Scrape.ApifyBaseURL = defaultApifyBaseURL
	}
}

func (c *Config) normalizeGeneration() {
	c.Generation.PersonaHandle = strings.TrimPrefix(strings.TrimSpace(c.Generation.PersonaHandle), "@")
	if c.Generation.PersonaHandle == "" {
		c.Generation.PersonaHandle = defaultPersonaHandle
	}
	c.Generation.PersonaDescription = strings.TrimSpace(c.Generation.PersonaDescription)
	if c.Generation.PersonaDescription == "" {
		c.Generation.PersonaDescription = defaultPersonaDescription
	}
	c.Generation.PermalinkBase = strings.TrimRight(strings.TrimSpace(c.Generation.PermalinkBase), "/")
	if c.Generation.PermalinkBase == "" {
		c.Generation.PermalinkBase = defaultPermalinkBase
	}
	if c.Generation.TargetLength <= 0 {
		c.Generation.TargetLength = defaultTargetLength
	}
	if c.Generation.MaxExamples <= 0 {
		c.Generation.MaxExamples = defaultMaxExamples
	}
}

func (c *Config) normalizeVoice() {
	c.Voice.Username = strings.TrimPrefix(strings.TrimSpace(c.Voice.Username), "@")
	if c.Voice.Username == "" {
		c.Voice.Username = c.Generation.PersonaHandle
	}
	c.Voice.ActorID = strings.TrimSpace(c.Voice.ActorID)
	if c.Voice.ActorID == "" {
		c.Voice.ActorID = defaultVoiceActorID
	}
	c.Voice.Providers = normalizeNames(c.Voice.Providers)
	if len(c.Voice.Providers) == 0 {
		c.Voice.Providers = append([]string(nil), defaultVoiceProviders...)
	}
	if c.Voice.MaxPosts <= 0 {
		c.Voice.MaxPosts = defaultVoiceMaxPosts
	}
	if c.Voice.ExampleCount <= 0 {
		c.Voice.ExampleCount = defaultVoiceExampleCount
	}
}

func (c *Config) normalizeImages() {
	c.Images.APIKey = strings.TrimSpace(c.Images.APIKey)
	if c.Images.APIKey == "" {
		c.Images.APIKey = lookupEnv("OPENAI_API_KEY")
	}
	c.Images.BaseURL = strings.TrimRight(strings.TrimSpace(c.Images.BaseURL), "/")
	if c.Images.BaseURL == "" {
		c.Images.BaseURL = defaultImagesBaseURL
	}
	c.Images.Model = strings.TrimSpace(c.Images.Model)
	if c.Images.Model == "" {
		c.Images.Model = defaultImagesModel
	}
	c.Images.Size = strings.ToLower(strings.TrimSpace(c.Images.Size))
	if c.Images.Size == "" {
		c.Images.Size = defaultImagesSize
	}
	c.Images.Quality = strings.ToLower(strings.TrimSpace(c.Images.Quality))
	if c.Images.Quality == "" {
		c.Images.Quality = defaultImagesQuality
	}
	if c.Images.TimeoutSeconds <= 0 {
		c.Images.TimeoutSeconds = defaultImagesTimeout
	}
	c.Images.CharacterDescription = strings.TrimSpace(c.Images.CharacterDescription)
	if c.Images.CharacterDescription == "" {
		c.Images.CharacterDescription = defaultCharacterDescription
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.NtfyTopic == "" {
		c.Notifications.NtfyTopic = lookupEnv("NTFY_TOPIC")
	}
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func lookupEnv(keys ...string) string {
	for _, key := range keys {
		if value, ok := os.LookupEnv(key); ok {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

func normalizeAccounts(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		handle := strings.TrimPrefix(strings.TrimSpace(value), "@")
		if handle == "" {
			continue
		}
		key := strings.ToLower(handle)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, handle)
	}
	return out
}

func normalizeNames(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		name := strings.ToLower(strings.TrimSpace(value))
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

func normalizeInstances(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		host := strings.TrimSpace(value)
		host = strings.TrimPrefix(host, "https://")
		host = strings.TrimPrefix(host, "http://")
		host = strings.TrimRight(host, "/")
		if host != "" {
			out = append(out, host)
		}
	}
	return out
}
