package preflight

import (
	"context"

	"draftline/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Options toggles the checks that reach the network.
type Options struct {
	PingLLM bool
}

// RunAll executes all applicable preflight checks for the given config.
// Credential checks only run for stages that are enabled.
func RunAll(ctx context.Context, cfg *config.Config, opts Options) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDirectoryAccess("Scraped directory", cfg.Paths.ScrapedDir),
		CheckDirectoryAccess("Snapshot directory", cfg.Paths.SnapshotDir),
		CheckDirectoryAccess("Dashboard directory", cfg.Paths.DashboardDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}

	results = append(results, CheckCredential("Drafting API key", cfg.RequireLLM()))
	if usesProvider(cfg.Scrape.Providers, "apify") || usesProvider(cfg.Voice.Providers, "apify") {
		results = append(results, CheckCredential("Apify token", cfg.RequireApify()))
	}
	if cfg.Images.Enabled {
		results = append(results, CheckCredential("Image API key", cfg.RequireImages()))
	}

	results = append(results, CheckProviders(cfg))
	results = append(results, CheckVoiceProfile(cfg.Paths.VoiceProfile))

	if opts.PingLLM {
		results = append(results, CheckLLM(ctx, "Drafting LLM", cfg.LLM))
	}
	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}

func usesProvider(names []string, want string) bool {
	for _, name := range names {
		if name == want {
			return true
		}
	}
	return false
}
