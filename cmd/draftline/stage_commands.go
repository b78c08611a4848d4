package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"draftline/internal/config"
	"draftline/internal/generation"
	"draftline/internal/imagery"
	"draftline/internal/metrics"
	"draftline/internal/scrape"
	"draftline/internal/stage"
	"draftline/internal/voice"
	"draftline/internal/workflow"
)

type stageFactory func(cfg *config.Config, logger *slog.Logger, recorder *metrics.Recorder) stage.Handler

func newStageCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newStageCommand(ctx, "scrape", "Collect recent posts from watched accounts",
			func(cfg *config.Config, logger *slog.Logger, recorder *metrics.Recorder) stage.Handler {
				return scrape.NewStageFromConfig(cfg, logger, recorder)
			}, true),
		newStageCommand(ctx, "analyze", "Rebuild the voice profile from the persona account",
			func(cfg *config.Config, logger *slog.Logger, _ *metrics.Recorder) stage.Handler {
				return voice.NewStageFromConfig(cfg, logger)
			}, false),
		newStageCommand(ctx, "generate", "Draft posts from the day's scraped posts",
			func(cfg *config.Config, logger *slog.Logger, recorder *metrics.Recorder) stage.Handler {
				return generation.NewStageFromConfig(cfg, logger, recorder)
			}, true),
		newStageCommand(ctx, "images", "Generate images for pending drafts",
			func(cfg *config.Config, logger *slog.Logger, recorder *metrics.Recorder) stage.Handler {
				return imagery.NewStageFromConfig(cfg, logger, recorder)
			}, false),
	}
}

// newStageCommand builds a single-stage command. When defaultToday is false an
// omitted --date is passed through as empty so the stage covers every day.
func newStageCommand(ctx *commandContext, name, short string, factory stageFactory, defaultToday bool) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day := ""
			if defaultToday || dateFlag != "" {
				resolved, err := resolveDay(dateFlag)
				if err != nil {
					return err
				}
				day = resolved
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}
			runner, err := ctx.newRunner(nil)
			if err != nil {
				return err
			}

			result, err := runner.RunStage(cmd.Context(), factory(cfg, logger, ctx.recorder), day)
			if err != nil {
				return err
			}
			printStageResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().StringVar(&dateFlag, "date", "", "Day to process (YYYY-MM-DD)")
	return cmd
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the daily pipeline: scrape, generate, and images when enabled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := resolveDay(dateFlag)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}
			runner, err := ctx.newRunner(workflow.DailySteps(cfg, logger, ctx.recorder))
			if err != nil {
				return err
			}

			report, runErr := runner.Run(cmd.Context(), day)
			out := cmd.OutOrStdout()
			for _, result := range report.Results {
				printStageResult(out, result)
			}
			if runErr != nil {
				return runErr
			}
			fmt.Fprintf(out, "Run for %s complete in %s\n", day, report.Duration.Round(time.Second))
			return nil
		},
	}
	cmd.Flags().StringVar(&dateFlag, "date", "", "Day to process (YYYY-MM-DD)")
	return cmd
}

func printStageResult(out io.Writer, result workflow.StageResult) {
	status := "ok"
	if result.Err != nil {
		status = "failed: " + result.Err.Error()
	}
	s := result.Summary
	fmt.Fprintf(out, "%-8s processed=%d produced=%d skipped=%d rejected=%d (%s)\n",
		result.Name, s.Processed, s.Produced, s.Skipped, s.Rejected, status)
}
