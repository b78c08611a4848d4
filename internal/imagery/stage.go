package imagery

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"draftline/internal/config"
	"draftline/internal/drafts"
	"draftline/internal/fileutil"
	"draftline/internal/logging"
	"draftline/internal/metrics"
	"draftline/internal/pacing"
	"draftline/internal/services"
	"draftline/internal/services/imagegen"
	"draftline/internal/stage"
	"draftline/internal/textutil"
)

// Renderer produces an image for a prompt.
type Renderer interface {
	Generate(ctx context.Context, prompt string) (imagegen.Image, error)
}

// Stage illustrates pending drafts that have no image yet.
type Stage struct {
	cfg      *config.Config
	renderer Renderer
	store    *drafts.Store
	logger   *slog.Logger
	metrics  *metrics.Recorder
	limiter  *rate.Limiter
}

// NewStage builds the image stage over an explicit renderer.
func NewStage(cfg *config.Config, renderer Renderer, logger *slog.Logger, recorder *metrics.Recorder) *Stage {
	return &Stage{
		cfg:      cfg,
		renderer: renderer,
		store:    drafts.NewStore(cfg.DraftStorePath(), cfg.Store.MaxDrafts, logger),
		logger:   logging.NewComponentLogger(logger, "images"),
		metrics:  recorder,
		limiter:  pacing.NewLimiter(cfg.Images.DelaySeconds),
	}
}

// NewStageFromConfig wires the configured image endpoint.
func NewStageFromConfig(cfg *config.Config, logger *slog.Logger, recorder *metrics.Recorder) *Stage {
	client := imagegen.NewClient(imagegen.Config{
		APIKey:         cfg.Images.APIKey,
		BaseURL:        cfg.Images.BaseURL,
		Model:          cfg.Images.Model,
		Size:           cfg.Images.Size,
		Quality:        cfg.Images.Quality,
		TimeoutSeconds: cfg.Images.TimeoutSeconds,
	})
	return NewStage(cfg, client, logger, recorder)
}

func (s *Stage) Name() string { return "images" }

// Run illustrates pending drafts created on day (UTC date of created_at). An
// empty day selects every pending draft without an image.
func (s *Stage) Run(ctx context.Context, day string) (stage.Summary, error) {
	if err := s.cfg.RequireImages(); err != nil {
		return stage.Summary{}, services.Wrap(services.ErrConfiguration, "images", "check credentials",
			"Image credential missing", err)
	}
	logger := logging.WithContext(ctx, s.logger)

	var pending []drafts.Draft
	for _, d := range s.store.List(drafts.Filter{Status: drafts.StatusPending, Day: day}) {
		if !d.HasImage() {
			pending = append(pending, d)
		}
	}
	logger.Info("drafts needing images", logging.Int("count", len(pending)), logging.String("day", day))

	summary := stage.Summary{}
	for i, d := range pending {
		summary.Processed++
		itemLogger := logging.WithContext(services.WithPostID(ctx, d.ID), s.logger).With(
			logging.Int("index", i+1),
			logging.Int("total", len(pending)),
		)
		if err := s.limiter.Wait(ctx); err != nil {
			return summary, err
		}

		theme := Classify(d.DraftText)
		start := time.Now()
		image, err := s.renderer.Generate(ctx, BuildPrompt(s.cfg.Images.CharacterDescription, theme))
		if err != nil {
			summary.Skipped++
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			logging.WarnWithContext(itemLogger, "image generation failed; skipping draft", "image_skipped",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check the image API key and content policy"),
				logging.String(logging.FieldImpact, "draft stays without an image until the next run"),
			)
			continue
		}

		name := textutil.SanitizeToken(d.ID) + ".png"
		if err := fileutil.WriteFileAtomic(filepath.Join(s.cfg.ImagesDir(), name), image.Data, 0o644); err != nil {
			summary.Skipped++
			logging.WarnWithContext(itemLogger, "image write failed; skipping draft", "image_write_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check free space and permissions on the dashboard directory"),
				logging.String(logging.FieldImpact, "draft stays without an image"),
			)
			continue
		}
		relative := "images/" + name
		if err := s.store.Update(ctx, d.ID, func(stored *drafts.Draft) {
			stored.ImagePath = relative
			stored.ImageTheme = theme.Type
		}); err != nil {
			summary.Skipped++
			logging.WarnWithContext(itemLogger, "draft vanished before image was recorded", "image_orphaned",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "the draft was evicted from the store during this run"),
				logging.String(logging.FieldImpact, "image file kept but unreferenced"),
			)
			continue
		}

		summary.Produced++
		s.metrics.IncImage()
		itemLogger.Info("image generated",
			logging.String("theme", theme.Type),
			logging.String("path", relative),
			logging.Duration("elapsed", time.Since(start)),
		)
	}

	logger.Info("image stage complete",
		logging.String(logging.FieldEventType, "images_complete"),
		logging.Int("processed", summary.Processed),
		logging.Int("generated", summary.Produced),
		logging.Int("skipped", summary.Skipped),
	)
	return summary, nil
}

func (s *Stage) HealthCheck(context.Context) stage.Health {
	if err := s.cfg.RequireImages(); err != nil {
		return stage.Unhealthy(s.Name(), err.Error())
	}
	return stage.Healthy(s.Name())
}
