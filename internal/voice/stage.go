package voice

import (
	"context"
	"log/slog"
	"time"

	"draftline/internal/config"
	"draftline/internal/logging"
	"draftline/internal/post"
	"draftline/internal/scrape"
	"draftline/internal/services"
	"draftline/internal/stage"
)

// Fetcher returns raw posts for a request along with the source that served them.
type Fetcher interface {
	Fetch(ctx context.Context, req scrape.Request) ([]post.Record, string, error)
}

// Stage rebuilds the voice profile document from the persona's own posts.
type Stage struct {
	cfg     *config.Config
	fetcher Fetcher
	logger  *slog.Logger
	now     func() time.Time
}

// NewStage builds the analysis stage over an explicit fetcher.
func NewStage(cfg *config.Config, fetcher Fetcher, logger *slog.Logger) *Stage {
	return &Stage{
		cfg:     cfg,
		fetcher: fetcher,
		logger:  logging.NewComponentLogger(logger, "voice"),
		now:     time.Now,
	}
}

// NewStageFromConfig wires the configured voice provider order.
func NewStageFromConfig(cfg *config.Config, logger *slog.Logger) *Stage {
	providers := scrape.BuildProviders(cfg, cfg.Voice.Providers, cfg.Voice.ActorID, scrape.TimelineInput)
	return NewStage(cfg, scrape.NewChain(logger, providers...), logger)
}

func (s *Stage) Name() string { return "analyze" }

// Run fetches the persona's posts and rewrites the profile document. The day
// is only used for log context; the profile is not dated.
func (s *Stage) Run(ctx context.Context, day string) (stage.Summary, error) {
	logger := logging.WithContext(ctx, s.logger)
	username := s.cfg.Voice.Username
	if username == "" {
		return stage.Summary{}, services.Wrap(services.ErrConfiguration, "analyze", "resolve persona",
			"voice.username is required", nil)
	}

	records, provider, err := s.fetcher.Fetch(ctx, scrape.Request{
		Accounts: []string{username},
		MaxItems: s.cfg.Voice.MaxPosts,
	})
	if err != nil {
		return stage.Summary{}, services.Wrap(services.ErrExternalTool, "analyze", "fetch persona posts",
			"No provider returned posts for the persona; fill in the sample posts file", err)
	}

	posts, stats := post.NewNormalizer(s.now, s.logger).NormalizeAll(records, time.Time{})
	doc := Analyze(username, posts, s.cfg.Voice.ExampleCount, s.now())
	doc.Source = provider
	if err := doc.Save(s.cfg.Paths.VoiceProfile); err != nil {
		return stage.Summary{}, services.Wrap(services.ErrTransient, "analyze", "save profile",
			"Failed to write voice profile", err)
	}

	logger.Info("voice profile written",
		logging.String(logging.FieldEventType, "voice_profile_saved"),
		logging.String("provider", provider),
		logging.Int("posts", len(posts)),
		logging.Int("examples", len(doc.Examples)),
		logging.Int("topics", len(doc.Topics)),
		logging.Int("phrases", len(doc.CommonPhrases)),
		logging.String("path", s.cfg.Paths.VoiceProfile),
	)
	return stage.Summary{
		Processed: stats.Input,
		Produced:  len(doc.Examples),
		Rejected:  stats.DroppedTotal(),
	}, nil
}

func (s *Stage) HealthCheck(context.Context) stage.Health {
	if s.cfg.Voice.Username == "" {
		return stage.Unhealthy(s.Name(), "voice.username not set")
	}
	return stage.Healthy(s.Name())
}
