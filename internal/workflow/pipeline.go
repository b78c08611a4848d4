package workflow

import (
	"log/slog"

	"draftline/internal/config"
	"draftline/internal/generation"
	"draftline/internal/imagery"
	"draftline/internal/metrics"
	"draftline/internal/scrape"
)

// Stage names used in reports and the run ledger.
const (
	StageScrape   = "scrape"
	StageAnalyze  = "analyze"
	StageGenerate = "generate"
	StageImages   = "images"
)

// DailySteps builds the configured daily pipeline. A failed scrape is
// tolerated because generation can still draft from an earlier scrape file;
// a failed generation ends the run. The image step is included only when
// images are enabled.
func DailySteps(cfg *config.Config, logger *slog.Logger, recorder *metrics.Recorder) []Step {
	steps := []Step{
		{Handler: scrape.NewStageFromConfig(cfg, logger, recorder)},
		{Handler: generation.NewStageFromConfig(cfg, logger, recorder), AbortOnError: true},
	}
	if cfg.Images.Enabled {
		steps = append(steps, Step{Handler: imagery.NewStageFromConfig(cfg, logger, recorder)})
	}
	return steps
}
