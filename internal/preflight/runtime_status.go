package preflight

import (
	"fmt"
	"os"
	"strings"

	"draftline/internal/config"
	"draftline/internal/voice"
)

// CheckProviders reports which configured scrape providers can actually be
// used. It passes when at least one of them is usable.
func CheckProviders(cfg *config.Config) Result {
	const name = "Scrape providers"

	if cfg == nil || len(cfg.Scrape.Providers) == 0 {
		return Result{Name: name, Detail: "none configured"}
	}
	usable := 0
	parts := make([]string, 0, len(cfg.Scrape.Providers))
	for _, provider := range cfg.Scrape.Providers {
		state := "ready"
		switch provider {
		case "apify":
			if cfg.RequireApify() != nil {
				state = "no token"
			}
		case "nitter":
			if len(cfg.Scrape.NitterInstances) == 0 {
				state = "no instances"
			}
		case "sample":
			if _, err := os.Stat(cfg.Paths.SamplePosts); err != nil {
				state = "template pending"
			}
		}
		if state == "ready" {
			usable++
		}
		parts = append(parts, fmt.Sprintf("%s: %s", provider, state))
	}
	detail := strings.Join(parts, ", ")
	if len(cfg.Scrape.Accounts) == 0 && !usesProvider(cfg.Scrape.Providers, "sample") {
		return Result{Name: name, Detail: detail + " (no accounts configured)"}
	}
	return Result{Name: name, Passed: usable > 0, Detail: detail}
}

// CheckVoiceProfile reports whether a voice profile is available. A missing
// profile passes; drafts are then generated from the persona description
// alone.
func CheckVoiceProfile(path string) Result {
	const name = "Voice profile"

	profile, err := voice.Load(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if profile.Empty() {
		return Result{Name: name, Passed: true, Detail: "not built yet (run 'draftline analyze')"}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d examples, %d topics", len(profile.Examples), len(profile.Topics))}
}
