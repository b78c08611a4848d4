package scrape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"draftline/internal/config"
	"draftline/internal/fileutil"
	"draftline/internal/logging"
	"draftline/internal/metrics"
	"draftline/internal/post"
	"draftline/internal/services"
	"draftline/internal/services/apify"
	"draftline/internal/stage"
)

// BuildProviders resolves provider names into providers. Apify is skipped when
// no token is configured so the chain can still fall through to free sources.
func BuildProviders(cfg *config.Config, names []string, actorID string, input InputBuilder) []Provider {
	var providers []Provider
	for _, name := range names {
		switch name {
		case "apify":
			if cfg.RequireApify() != nil {
				continue
			}
			client := apify.NewClient(apify.Config{
				Token:        cfg.Scrape.ApifyToken,
				BaseURL:      cfg.Scrape.ApifyBaseURL,
				PollInterval: time.Duration(cfg.Scrape.PollIntervalSeconds) * time.Second,
				MaxWait:      time.Duration(cfg.Scrape.MaxWaitSeconds) * time.Second,
			})
			providers = append(providers, NewApifyProvider(client, actorID, input))
		case "nitter":
			if len(cfg.Scrape.NitterInstances) > 0 {
				providers = append(providers, NewNitterProvider(cfg.Scrape.NitterInstances, nil))
			}
		case "sample":
			providers = append(providers, NewSampleProvider(cfg.Paths.SamplePosts))
		}
	}
	return providers
}

// Stage collects recent posts from the watched accounts and writes the day's
// scraped file.
type Stage struct {
	cfg     *config.Config
	chain   *Chain
	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time
}

// NewStage builds the scrape stage over an explicit chain.
func NewStage(cfg *config.Config, chain *Chain, logger *slog.Logger, recorder *metrics.Recorder) *Stage {
	return &Stage{
		cfg:     cfg,
		chain:   chain,
		logger:  logging.NewComponentLogger(logger, "scrape"),
		metrics: recorder,
		now:     time.Now,
	}
}

// NewStageFromConfig wires the configured provider order.
func NewStageFromConfig(cfg *config.Config, logger *slog.Logger, recorder *metrics.Recorder) *Stage {
	providers := BuildProviders(cfg, cfg.Scrape.Providers, cfg.Scrape.ActorID, SearchInput)
	return NewStage(cfg, NewChain(logger, providers...), logger, recorder)
}

func (s *Stage) Name() string { return "scrape" }

// Run fetches, normalizes, and persists posts for day.
func (s *Stage) Run(ctx context.Context, day string) (stage.Summary, error) {
	if len(s.chain.providers) == 0 {
		return stage.Summary{}, services.Wrap(services.ErrConfiguration, "scrape", "build providers",
			"No usable scrape provider; set APIFY_API_KEY or configure nitter instances", nil)
	}
	logger := logging.WithContext(ctx, s.logger)
	now := s.now()
	cutoff := now.Add(-time.Duration(s.cfg.Scrape.HoursBack) * time.Hour)

	logger.Info("scrape started",
		logging.String(logging.FieldEventType, "scrape_start"),
		logging.Int("accounts", len(s.cfg.Scrape.Accounts)),
		logging.Int("hours_back", s.cfg.Scrape.HoursBack),
		logging.Any("providers", s.chain.Providers()),
	)

	records, provider, err := s.chain.Fetch(ctx, Request{
		Accounts: s.cfg.Scrape.Accounts,
		Since:    cutoff,
		MaxItems: s.cfg.Scrape.MaxItems,
	})
	switch {
	case errors.Is(err, ErrNoResults):
		logger.Info("no provider returned posts; writing an empty scrape file",
			logging.String(logging.FieldEventType, "scrape_empty"),
		)
		records, provider = nil, "none"
	case err != nil:
		return stage.Summary{}, services.Wrap(services.ErrExternalTool, "scrape", "fetch posts",
			"Every scrape provider failed", err)
	}

	posts, stats := post.NewNormalizer(s.now, s.logger).NormalizeAll(records, cutoff)
	path := s.cfg.ScrapedPath(day)
	if err := fileutil.WriteJSONAtomic(path, posts); err != nil {
		return stage.Summary{}, services.Wrap(services.ErrTransient, "scrape", "write scraped posts",
			fmt.Sprintf("Failed to write %s", path), err)
	}
	s.metrics.AddScraped(len(posts))

	attrs := []logging.Attr{
		logging.String(logging.FieldEventType, "scrape_complete"),
		logging.String("provider", provider),
		logging.Int("raw", stats.Input),
		logging.Int("kept", stats.Kept),
		logging.Int("dropped", stats.DroppedTotal()),
		logging.String("path", path),
	}
	for reason, count := range stats.Dropped {
		attrs = append(attrs, logging.Int("dropped_"+string(reason), count))
	}
	for account, count := range stats.PerAccount {
		attrs = append(attrs, logging.Int("account_"+account, count))
	}
	logger.Info("scrape complete", logging.Args(attrs...)...)

	return stage.Summary{
		Processed: stats.Input,
		Produced:  stats.Kept,
		Rejected:  stats.DroppedTotal(),
	}, nil
}

// LoadScraped reads a scraped file as raw records.
func LoadScraped(path string) ([]post.Record, error) {
	return readRecords(path)
}

func (s *Stage) HealthCheck(context.Context) stage.Health {
	if len(s.chain.providers) == 0 {
		return stage.Unhealthy(s.Name(), "no usable providers")
	}
	return stage.Healthy(s.Name())
}
