package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent stage runs from the run ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, err := ctx.openLedger()
			if err != nil {
				return err
			}
			entries, err := ledger.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("read run ledger: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					e.StartedAt.Local().Format("2006-01-02 15:04:05"),
					e.Stage,
					e.Day,
					formatCount(e.Summary.Processed),
					formatCount(e.Summary.Produced),
					formatCount(e.Summary.Skipped),
					formatCount(e.Summary.Rejected),
					e.Duration().Round(time.Millisecond).String(),
					e.Outcome,
				})
			}
			renderRows(out,
				[]string{"Started", "Stage", "Day", "Processed", "Produced", "Skipped", "Rejected", "Duration", "Outcome"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft},
			)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs to show")
	return cmd
}
