package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mgrinnell/lectern/internal/cli/formatter"
	"github.com/mgrinnell/lectern/internal/domain"
	"github.com/mgrinnell/lectern/internal/poll"
)

func newReviseCmd(app *App) *cobra.Command {
	var (
		subject, unit      string
		component, priority string
		feedback           string
	)

	cmd := &cobra.Command{
		Use:   "revise ID",
		Short: "Request changes to a package component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if (component == "" || strings.TrimSpace(feedback) == "") && app.interactive() {
				if priority == "" {
					priority = string(domain.PriorityMedium)
				}
				if err := revisionForm(&component, &feedback, &priority).Run(); err != nil {
					return err
				}
			}

			req := domain.RevisionRequest{
				PackageID: args[0],
				Subject:   subject,
				Unit:      unit,
				Revisions: []domain.ComponentRevision{{
					ComponentType: domain.ComponentType(component),
					Feedback:      feedback,
					Priority:      domain.RevisionPriority(priority),
				}},
			}

			pkg, err := app.Revisions.Submit(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Revision requested for %s %s\n",
				formatter.Bold(pkg.ID), formatter.StatusPill(pkg.Status))
			fmt.Fprintln(out, formatter.Dim("Run `lectern revisions "+pkg.ID+"` to track it."))
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Subject scope for the lookup")
	cmd.Flags().StringVar(&unit, "unit", "", "Unit scope for the lookup")
	cmd.Flags().StringVar(&component, "component", "", "Component to revise: reading, visual, audio or practice")
	cmd.Flags().StringVar(&feedback, "feedback", "", "What should change in the component")
	cmd.Flags().StringVar(&priority, "priority", "", "Revision priority: low, medium or high")

	return cmd
}

func newRevisionsCmd(app *App) *cobra.Command {
	var subject, unit string
	var watch bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "revisions ID",
		Short: "Show a package's revision history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			entries, err := app.Revisions.History(ctx, args[0], subject, unit)
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatRevisionEntries(entries))

			if !watch || !hasOpenRevisions(entries) {
				return nil
			}

			// Re-poll until nothing is left in progress.
			fmt.Fprintln(out, formatter.Dim("Waiting for in-progress revisions (ctrl-c to stop)..."))
			poller := poll.New(func(ctx context.Context) ([]domain.RevisionEntry, error) {
				return app.Revisions.History(ctx, args[0], subject, unit)
			}, poll.WithInterval(interval))
			poller.Start(ctx)
			defer poller.Stop()

			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case result := <-poller.Updates():
					if result.Err != nil {
						fmt.Fprintln(out, formatter.StyleRed.Render("poll error: "+result.Err.Error()))
						continue
					}
					if !hasOpenRevisions(result.Value) {
						fmt.Fprint(out, formatter.FormatRevisionEntries(result.Value))
						return nil
					}
				}
			}
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Subject scope for the lookup")
	cmd.Flags().StringVar(&unit, "unit", "", "Unit scope for the lookup")
	cmd.Flags().BoolVar(&watch, "watch", false, "Keep polling until no revision is in progress")
	cmd.Flags().DurationVar(&interval, "interval", 5*time.Second, "Polling interval with --watch")

	return cmd
}

func hasOpenRevisions(entries []domain.RevisionEntry) bool {
	for _, e := range entries {
		if e.Status == domain.RevisionInProgress {
			return true
		}
	}
	return false
}
