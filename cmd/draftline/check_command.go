package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"draftline/internal/generation"
	"draftline/internal/imagery"
	"draftline/internal/notifications"
	"draftline/internal/preflight"
	"draftline/internal/scrape"
	"draftline/internal/stage"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var ping bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify directories, credentials, and providers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}
			results := preflight.RunAll(cmd.Context(), cfg, preflight.Options{PingLLM: ping})

			rows := make([][]string, 0, len(results)+4)
			for _, r := range results {
				rows = append(rows, []string{r.Name, passLabel(r.Passed), r.Detail})
			}
			handlers := []stage.Handler{
				scrape.NewStageFromConfig(cfg, logger, nil),
				generation.NewStageFromConfig(cfg, logger, nil),
			}
			if cfg.Images.Enabled {
				handlers = append(handlers, imagery.NewStageFromConfig(cfg, logger, nil))
			}
			for _, h := range stage.CheckAll(cmd.Context(), handlers...) {
				detail := h.Detail
				if h.Ready {
					detail = "ready"
				}
				rows = append(rows, []string{"Stage " + h.Name, passLabel(h.Ready), detail})
			}
			renderRows(cmd.OutOrStdout(), []string{"Check", "Status", "Detail"}, rows, nil)

			if preflight.Failed(results) {
				return errors.New("one or more checks failed")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&ping, "ping", false, "Also send a test request to the drafting LLM")
	return cmd
}

func passLabel(ok bool) string {
	if ok {
		return "ok"
	}
	return "FAIL"
}

func newTestNotifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test notification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cfg.Notifications.NtfyTopic == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Notifications disabled (notifications.ntfy_topic is empty)")
				return nil
			}
			if err := notifications.NewService(cfg).TestNotification(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Test notification sent")
			return nil
		},
	}
}
