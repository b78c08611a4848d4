package generation

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"draftline/internal/candidate"
	"draftline/internal/config"
	"draftline/internal/drafts"
	"draftline/internal/logging"
	"draftline/internal/metrics"
	"draftline/internal/pacing"
	"draftline/internal/post"
	"draftline/internal/scrape"
	"draftline/internal/services"
	"draftline/internal/services/llm"
	"draftline/internal/stage"
	"draftline/internal/voice"
)

// Stage drafts posts from the day's scraped material and stores them.
type Stage struct {
	cfg       *config.Config
	completer Completer
	store     *drafts.Store
	logger    *slog.Logger
	metrics   *metrics.Recorder
	limiter   *rate.Limiter
	now       func() time.Time
}

// NewStage builds the generation stage over an explicit completer.
func NewStage(cfg *config.Config, completer Completer, logger *slog.Logger, recorder *metrics.Recorder) *Stage {
	return &Stage{
		cfg:       cfg,
		completer: completer,
		store:     drafts.NewStore(cfg.DraftStorePath(), cfg.Store.MaxDrafts, logger),
		logger:    logging.NewComponentLogger(logger, "generate"),
		metrics:   recorder,
		limiter:   pacing.NewLimiter(cfg.Generation.DelaySeconds),
		now:       time.Now,
	}
}

// NewStageFromConfig wires the chat completion client from cfg.LLM.
func NewStageFromConfig(cfg *config.Config, logger *slog.Logger, recorder *metrics.Recorder) *Stage {
	client := llm.NewClient(llm.Config{
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		Model:          cfg.LLM.Model,
		Referer:        cfg.LLM.Referer,
		Title:          cfg.LLM.Title,
		TimeoutSeconds: cfg.LLM.TimeoutSeconds,
		MaxTokens:      cfg.LLM.MaxTokens,
		Temperature:    cfg.LLM.Temperature,
	})
	return NewStage(cfg, client, logger, recorder)
}

func (s *Stage) Name() string { return "generate" }

// Run generates drafts for day. Per-post failures are logged and skipped;
// only a missing credential or an unwritable store fails the stage.
func (s *Stage) Run(ctx context.Context, day string) (stage.Summary, error) {
	if err := s.cfg.RequireLLM(); err != nil {
		return stage.Summary{}, services.Wrap(services.ErrConfiguration, "generate", "check credentials",
			"Drafting credential missing", err)
	}
	logger := logging.WithContext(ctx, s.logger)

	candidates, filtered, err := s.candidates(logger, day)
	if err != nil {
		return stage.Summary{}, err
	}
	summary := stage.Summary{}
	for reason, count := range filtered {
		summary.Rejected += count
		for i := 0; i < count; i++ {
			s.metrics.IncRejected(string(reason))
		}
	}
	if limit := s.cfg.Generation.MaxPosts; limit > 0 && len(candidates) > limit {
		summary.Skipped += len(candidates) - limit
		logger.Info("batch capped",
			logging.Args(logging.DecisionAttrs("batch_cap", "truncated", fmt.Sprintf("%d of %d posts", limit, len(candidates)))...)...)
		candidates = candidates[:limit]
	}

	profile, err := voice.Load(s.cfg.Paths.VoiceProfile)
	if err != nil {
		logging.WarnWithContext(logger, "voice profile unreadable; drafting without it", "voice_profile_unreadable",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "run draftline analyze to rebuild the profile"),
			logging.String(logging.FieldImpact, "drafts will not be conditioned on the persona voice"),
		)
		profile = voice.Profile{}
	}
	if profile.Empty() {
		logger.Info("voice profile empty", logging.String("path", s.cfg.Paths.VoiceProfile))
	}

	gen := s.cfg.Generation
	persona := Persona{Handle: gen.PersonaHandle, Description: gen.PersonaDescription}
	generator := NewGenerator(s.completer, BuildDirective(persona, profile, gen.MaxExamples, gen.TargetLength),
		gen.PersonaHandle, gen.TargetLength)
	gate := Gate{Threshold: gen.SimilarityThreshold}

	batch := make([]drafts.Draft, 0, len(candidates))
	for i, src := range candidates {
		summary.Processed++
		itemCtx := services.WithPostID(ctx, src.ID)
		itemLogger := logging.WithContext(itemCtx, s.logger).With(
			logging.Int("index", i+1),
			logging.Int("total", len(candidates)),
			logging.String("source_username", src.Username),
		)
		if err := s.limiter.Wait(ctx); err != nil {
			return summary, err
		}

		text, err := generator.Generate(itemCtx, src)
		if err != nil {
			summary.Skipped++
			if errors.Is(err, ErrEmptyDraft) {
				s.metrics.IncRejected("empty_output")
			} else {
				s.metrics.IncGenerationError()
			}
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			logging.WarnWithContext(itemLogger, "draft generation failed; skipping post", "draft_skipped",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check model availability and rate limits"),
				logging.String(logging.FieldImpact, "no draft for this source post"),
			)
			continue
		}

		score, ok := gate.Accept(src.Text, text)
		if !ok {
			summary.Rejected++
			s.metrics.IncRejected("similarity")
			itemLogger.Info("draft rejected as too similar",
				logging.Args(append(logging.DecisionAttrs("similarity_gate", "rejected",
					fmt.Sprintf("overlap %.2f > %.2f", score, gate.Threshold)),
					logging.Float64("similarity", score))...)...)
			continue
		}

		draft := drafts.New(src, text, gen.PermalinkBase, s.now())
		batch = append(batch, draft)
		summary.Produced++
		itemLogger.Info("draft generated",
			logging.String("draft_id", draft.ID),
			logging.Float64("similarity", score),
			logging.Int("length", len([]rune(text))),
		)
	}

	snapshot, err := drafts.WriteSnapshot(s.cfg.SnapshotPath(day), batch)
	if err != nil {
		return summary, services.Wrap(services.ErrTransient, "generate", "write snapshot",
			"Failed to write dated snapshot", err)
	}
	result, err := s.store.Merge(ctx, batch)
	if err != nil {
		return summary, services.Wrap(services.ErrTransient, "generate", "merge store",
			"Failed to update draft store", err)
	}
	s.metrics.AddGenerated(result.Added)

	logger.Info("generation complete",
		logging.String(logging.FieldEventType, "generation_complete"),
		logging.Int("processed", summary.Processed),
		logging.Int("generated", summary.Produced),
		logging.Int("skipped", summary.Skipped),
		logging.Int("rejected", summary.Rejected),
		logging.String("snapshot", snapshot),
		logging.Int("store_total", result.Total),
		logging.Int("store_evicted", result.Evicted),
	)
	return summary, nil
}

// candidates loads the day's scraped posts, normalizes them, and applies the
// candidate filter. A missing scraped file yields no candidates.
func (s *Stage) candidates(logger *slog.Logger, day string) ([]post.Post, map[candidate.Reason]int, error) {
	path := s.cfg.ScrapedPath(day)
	records, err := scrape.LoadScraped(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Info("no scraped posts for day", logging.String("path", path))
			return nil, nil, nil
		}
		logging.WarnWithContext(logger, "scraped file unreadable; nothing to draft", "scraped_unreadable",
			logging.String("path", path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "rerun draftline scrape for this day"),
			logging.String(logging.FieldImpact, "no drafts generated"),
		)
		return nil, nil, nil
	}

	posts, stats := post.NewNormalizer(s.now, s.logger).NormalizeAll(records, time.Time{})
	filter := candidate.New(candidate.Options{
		MinLength:          s.cfg.Generation.MinTextLength,
		MinLengthSansLinks: s.cfg.Generation.MinTextWithoutURLs,
	})
	eligible, rejected := filter.Apply(posts)
	for reason, count := range stats.Dropped {
		rejected[candidate.Reason(reason)] += count
	}
	logger.Info("candidates selected",
		logging.String("path", path),
		logging.Int("records", stats.Input),
		logging.Int("normalized", stats.Kept),
		logging.Int("eligible", len(eligible)),
	)
	return eligible, rejected, nil
}

func (s *Stage) HealthCheck(context.Context) stage.Health {
	if err := s.cfg.RequireLLM(); err != nil {
		return stage.Unhealthy(s.Name(), err.Error())
	}
	return stage.Healthy(s.Name())
}
