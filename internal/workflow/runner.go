package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"draftline/internal/logging"
	"draftline/internal/metrics"
	"draftline/internal/notifications"
	"draftline/internal/runlog"
	"draftline/internal/services"
	"draftline/internal/stage"
)

// Step pairs a stage handler with its failure policy.
type Step struct {
	Handler      stage.Handler
	AbortOnError bool
}

// StageResult captures one stage execution inside a run.
type StageResult struct {
	Name          string
	CorrelationID string
	Summary       stage.Summary
	Duration      time.Duration
	Err           error
}

// Report is the outcome of a full run.
type Report struct {
	Day      string
	Results  []StageResult
	Duration time.Duration
}

// Failed lists the names of stages that returned an error.
func (r Report) Failed() []string {
	var names []string
	for _, res := range r.Results {
		if res.Err != nil {
			names = append(names, res.Name)
		}
	}
	return names
}

// Produced returns the produced count for the named stage.
func (r Report) Produced(name string) int {
	for _, res := range r.Results {
		if res.Name == name {
			return res.Summary.Produced
		}
	}
	return 0
}

// Rejected returns the rejected count for the named stage.
func (r Report) Rejected(name string) int {
	for _, res := range r.Results {
		if res.Name == name {
			return res.Summary.Rejected
		}
	}
	return 0
}

// Options wires the runner's collaborators. Every field except Logger may be
// nil.
type Options struct {
	Ledger       *runlog.Ledger
	Metrics      *metrics.Recorder
	Notifier     notifications.Service
	Logger       *slog.Logger
	TextfilePath string
}

// Runner executes pipeline steps in order.
type Runner struct {
	steps        []Step
	ledger       *runlog.Ledger
	metrics      *metrics.Recorder
	notifier     notifications.Service
	logger       *slog.Logger
	textfilePath string
	now          func() time.Time
}

// NewRunner constructs a runner over the given steps.
func NewRunner(steps []Step, opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notifications.NewService(nil)
	}
	return &Runner{
		steps:        steps,
		ledger:       opts.Ledger,
		metrics:      opts.Metrics,
		notifier:     notifier,
		logger:       logging.NewComponentLogger(logger, "workflow"),
		textfilePath: strings.TrimSpace(opts.TextfilePath),
		now:          time.Now,
	}
}

// Run executes every step for day. The returned error is the first failure
// that stopped the run; failures of non-aborting steps are only reported.
func (r *Runner) Run(ctx context.Context, day string) (Report, error) {
	runStart := r.now()
	report := Report{Day: day}
	runCtx := services.WithDay(ctx, day)

	var runErr error
	for _, step := range r.steps {
		if step.Handler == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		result := r.execute(runCtx, step.Handler, day)
		report.Results = append(report.Results, result)
		if result.Err == nil {
			continue
		}
		if errors.Is(result.Err, context.Canceled) {
			runErr = result.Err
			break
		}
		r.notifyFailure(runCtx, result)
		if step.AbortOnError || services.IsFatal(result.Err) {
			runErr = fmt.Errorf("%s stage: %w", result.Name, result.Err)
			break
		}
	}
	report.Duration = r.now().Sub(runStart)

	r.writeTextfile()
	if !errors.Is(runErr, context.Canceled) {
		r.notifyCompletion(runCtx, report)
	}

	r.logger.Info("run complete",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.String(logging.FieldDay, day),
		logging.Int("stages", len(report.Results)),
		logging.Int("failed", len(report.Failed())),
		logging.Duration("run_duration", report.Duration),
	)
	return report, runErr
}

// RunStage executes a single handler with the same bookkeeping as a full
// run, without notifications.
func (r *Runner) RunStage(ctx context.Context, handler stage.Handler, day string) (StageResult, error) {
	result := r.execute(services.WithDay(ctx, day), handler, day)
	r.writeTextfile()
	return result, result.Err
}

func (r *Runner) execute(ctx context.Context, handler stage.Handler, day string) StageResult {
	name := handler.Name()
	correlationID := uuid.NewString()
	stageCtx := services.WithRequestID(services.WithStage(ctx, name), correlationID)
	logger := logging.WithContext(stageCtx, r.logger)

	start := r.now()
	logger.Info("stage started", logging.String(logging.FieldEventType, "stage_start"))

	summary, err := handler.Run(stageCtx, day)
	finished := r.now()
	r.metrics.ObserveStage(name, start)

	result := StageResult{
		Name:          name,
		CorrelationID: correlationID,
		Summary:       summary,
		Duration:      finished.Sub(start),
		Err:           err,
	}

	entry := runlog.Entry{
		CorrelationID: correlationID,
		Stage:         name,
		Day:           day,
		StartedAt:     start,
		FinishedAt:    finished,
		Summary:       summary,
		Outcome:       services.Outcome(err),
	}
	if err != nil {
		entry.Error = err.Error()
	}
	// The ledger outlives a cancelled run context so interrupted stages are still recorded.
	if _, recErr := r.ledger.Record(context.WithoutCancel(ctx), entry); recErr != nil {
		logging.WarnWithContext(logger, "run ledger write failed", "ledger_write_failed",
			logging.Error(recErr),
			logging.String(logging.FieldErrorHint, "check the runs.db path and disk space"),
			logging.String(logging.FieldImpact, "this stage will be missing from 'draftline history'"),
		)
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Debug("stage interrupted")
			return result
		}
		logging.ErrorWithContext(logger, "stage failed", "stage_failed",
			logging.Error(err),
			logging.String("outcome", entry.Outcome),
			logging.Duration("stage_duration", result.Duration),
		)
		return result
	}

	logger.Info("stage completed",
		logging.String(logging.FieldEventType, "stage_complete"),
		logging.Int("processed", summary.Processed),
		logging.Int("produced", summary.Produced),
		logging.Int("skipped", summary.Skipped),
		logging.Int("rejected", summary.Rejected),
		logging.Duration("stage_duration", result.Duration),
	)
	return result
}

func (r *Runner) notifyFailure(ctx context.Context, result StageResult) {
	if err := r.notifier.NotifyStageFailed(ctx, result.Name, result.Err); err != nil {
		r.logger.Debug("stage error notification failed", logging.Error(err))
	}
}

func (r *Runner) notifyCompletion(ctx context.Context, report Report) {
	err := r.notifier.NotifyRunCompleted(ctx, notifications.RunReport{
		Day:      report.Day,
		Drafts:   report.Produced(StageGenerate),
		Images:   report.Produced(StageImages),
		Rejected: report.Rejected(StageGenerate),
		Failed:   report.Failed(),
		Duration: report.Duration,
	})
	if err != nil {
		r.logger.Debug("run summary notification failed", logging.Error(err))
	}
}

func (r *Runner) writeTextfile() {
	if r.textfilePath == "" || r.metrics == nil {
		return
	}
	if err := r.metrics.WriteTextfile(r.textfilePath); err != nil {
		logging.WarnWithContext(r.logger, "metrics textfile write failed", "metrics_write_failed",
			logging.Error(err),
			logging.String("path", r.textfilePath),
			logging.String(logging.FieldErrorHint, "check metrics.textfile_path permissions"),
			logging.String(logging.FieldImpact, "node exporter keeps the previous values"),
		)
	}
}
