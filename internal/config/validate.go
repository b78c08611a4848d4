package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Validate ensures the configuration is usable. Credentials are not checked
// here; each stage verifies its own credentials before doing any work so that
// commands which never touch a service do not require its key.
func (c *Config) Validate() error {
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateScrape(); err != nil {
		return err
	}
	if err := c.validateGeneration(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.validateVoice(); err != nil {
		return err
	}
	if err := c.validateImages(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLLM() error {
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return errors.New("llm.temperature must be between 0 and 2")
	}
	return nil
}

func (c *Config) validateScrape() error {
	if len(c.Scrape.Accounts) == 0 {
		return errors.New("scrape.accounts must list at least one account")
	}
	if c.Scrape.HoursBack <= 0 {
		return errors.New("scrape.hours_back must be positive")
	}
	if c.Scrape.MaxItems <= 0 {
		return errors.New("scrape.max_items must be positive")
	}
	if c.Scrape.PollIntervalSeconds > c.Scrape.MaxWaitSeconds {
		return errors.New("scrape.poll_interval_seconds must not exceed scrape.max_wait_seconds")
	}
	return validateProviders("scrape.providers", c.Scrape.Providers)
}

func (c *Config) validateGeneration() error {
	if c.Generation.MaxPosts <= 0 {
		return errors.New("generation.max_posts must be positive")
	}
	if c.Generation.DelaySeconds < 0 {
		return errors.New("generation.delay_seconds must be >= 0")
	}
	if c.Generation.SimilarityThreshold < 0 || c.Generation.SimilarityThreshold > 1 {
		return errors.New("generation.similarity_threshold must be between 0 and 1")
	}
	if c.Generation.MinTextLength < 0 {
		return errors.New("generation.min_text_length must be >= 0")
	}
	if c.Generation.MinTextWithoutURLs < 0 {
		return errors.New("generation.min_text_without_urls must be >= 0")
	}
	return nil
}

func (c *Config) validateStore() error {
	if c.Store.MaxDrafts <= 0 {
		return errors.New("store.max_drafts must be positive")
	}
	return nil
}

func (c *Config) validateVoice() error {
	return validateProviders("voice.providers", c.Voice.Providers)
}

func (c *Config) validateImages() error {
	if c.Images.DelaySeconds < 0 {
		return errors.New("images.delay_seconds must be >= 0")
	}
	if _, ok := validImageSizes[c.Images.Size]; !ok {
		return fmt.Errorf("images.size: unsupported value %q", c.Images.Size)
	}
	if _, ok := validImageQualityLevels[c.Images.Quality]; !ok {
		return fmt.Errorf("images.quality: unsupported value %q", c.Images.Quality)
	}
	return nil
}

func validateProviders(key string, names []string) error {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := validProviderNames[name]; !ok {
			return fmt.Errorf("%s: unknown provider %q (valid: %s)", key, name, strings.Join(providerNames(), ", "))
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%s: provider %q listed twice", key, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

func providerNames() []string {
	names := make([]string, 0, len(validProviderNames))
	for name := range validProviderNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RequireLLM reports a missing drafting credential.
func (c *Config) RequireLLM() error {
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		return credentialError("llm.api_key", "OPENROUTER_API_KEY")
	}
	return nil
}

// RequireApify reports a missing scraping credential.
func (c *Config) RequireApify() error {
	if strings.TrimSpace(c.Scrape.ApifyToken) == "" {
		return credentialError("scrape.apify_token", "APIFY_API_KEY")
	}
	return nil
}

// RequireImages reports a missing image generation credential.
func (c *Config) RequireImages() error {
	if strings.TrimSpace(c.Images.APIKey) == "" {
		return credentialError("images.api_key", "OPENAI_API_KEY")
	}
	return nil
}

func credentialError(key, env string) error {
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = defaultConfigPath
	}
	return fmt.Errorf("%s is required. Set %s env var or edit %s (create with 'draftline config init')", key, env, defaultPath)
}
