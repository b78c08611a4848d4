package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"draftline/internal/drafts"
)

func newDraftsCommand(ctx *commandContext) *cobra.Command {
	draftsCmd := &cobra.Command{
		Use:   "drafts",
		Short: "Inspect and review stored drafts",
	}
	draftsCmd.AddCommand(newDraftsListCommand(ctx))
	draftsCmd.AddCommand(newDraftsReviewCommand(ctx, "approve", drafts.StatusApproved))
	draftsCmd.AddCommand(newDraftsReviewCommand(ctx, "reject", drafts.StatusRejected))
	return draftsCmd
}

func newDraftsListCommand(ctx *commandContext) *cobra.Command {
	var statusFlag string
	var dateFlag string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List drafts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := drafts.Filter{Limit: limit}
			if statusFlag != "" {
				status, ok := drafts.ParseStatus(strings.ToLower(strings.TrimSpace(statusFlag)))
				if !ok {
					return fmt.Errorf("invalid --status %q (want pending, approved, or rejected)", statusFlag)
				}
				filter.Status = status
			}
			if dateFlag != "" {
				day, err := resolveDay(dateFlag)
				if err != nil {
					return err
				}
				filter.Day = day
			}

			store, err := ctx.draftStore()
			if err != nil {
				return err
			}
			list := store.List(filter)
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No drafts")
				return nil
			}

			rows := make([][]string, 0, len(list))
			for _, d := range list {
				image := ""
				if d.HasImage() {
					image = d.ImageTheme
				}
				rows = append(rows, []string{
					d.ID,
					d.CreatedAt.Format("2006-01-02 15:04"),
					string(d.Status),
					"@" + d.Source.Username,
					truncate(d.DraftText, 60),
					image,
				})
			}
			renderRows(out, []string{"ID", "Created", "Status", "Source", "Draft", "Image"}, rows, nil)
			return nil
		},
	}
	cmd.Flags().StringVar(&statusFlag, "status", "", "Only drafts with this status (pending, approved, rejected)")
	cmd.Flags().StringVar(&dateFlag, "date", "", "Only drafts created on this day (YYYY-MM-DD, UTC)")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum drafts to show (0 for all)")
	return cmd
}

func newDraftsReviewCommand(ctx *commandContext, verb string, status drafts.Status) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   verb + " <id>",
		Short: "Mark a draft as " + string(status),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.draftStore()
			if err != nil {
				return err
			}
			id := strings.TrimSpace(args[0])
			if err := store.Update(cmd.Context(), id, func(d *drafts.Draft) {
				d.Status = status
				if notes != "" {
					d.Notes = notes
				}
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Draft %s %s\n", id, status)
			return nil
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "Reviewer notes stored with the draft")
	return cmd
}

func formatCount(n int) string {
	return strconv.Itoa(n)
}
