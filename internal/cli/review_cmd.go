package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgrinnell/lectern/internal/cli/formatter"
	"github.com/mgrinnell/lectern/internal/domain"
)

func newQueueCmd(app *App) *cobra.Command {
	var subject, unit string
	var limit int

	cmd := &cobra.Command{
		Use:   "queue",
		Short: "List packages waiting for review",
		RunE: func(cmd *cobra.Command, args []string) error {
			pkgs, err := app.Review.Queue(cmd.Context(), subject, unit, limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReviewQueue(pkgs))
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Filter by subject")
	cmd.Flags().StringVar(&unit, "unit", "", "Filter by unit")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of packages to list")

	return cmd
}

func newReviewCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review packages and record decisions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("the review dashboard needs an interactive terminal; use `lectern review approve|reject|request-changes` instead")
			}
			return runReviewDashboard(cmd.Context(), app)
		},
	}

	cmd.AddCommand(
		newDecisionCmd(app, "approve", domain.StatusApproved,
			"Approve a package for publication"),
		newDecisionCmd(app, "reject", domain.StatusRejected,
			"Reject a package"),
		newDecisionCmd(app, "request-changes", domain.StatusNeedsRevision,
			"Send a package back for revision"),
		newReviewInfoCmd(app),
		newReviewLogCmd(app),
		newReviewDraftsCmd(app),
	)

	return cmd
}

func newDecisionCmd(app *App, verb string, target domain.PackageStatus, short string) *cobra.Command {
	var subject, unit, notes string

	cmd := &cobra.Command{
		Use:   verb + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			// Resume a saved draft when no notes were given.
			if notes == "" {
				if draft, err := app.Review.LoadDraft(ctx, args[0]); err == nil && draft.TargetStatus == target {
					notes = draft.Notes
					fmt.Fprintln(out, formatter.Dim("Resuming saved draft notes."))
				}
			}

			if strings.TrimSpace(notes) == "" && target != domain.StatusApproved && app.interactive() {
				if err := decisionNotesForm(target, &notes).Run(); err != nil {
					return err
				}
			}

			result, err := app.Review.Decide(ctx, args[0], subject, unit, target, notes)
			if err != nil {
				var verr *domain.ValidationError
				if errors.As(err, &verr) && app.interactive() {
					// Let the reviewer fill notes in and retry once.
					if formErr := decisionNotesForm(target, &notes).Run(); formErr != nil {
						return formErr
					}
					result, err = app.Review.Decide(ctx, args[0], subject, unit, target, notes)
				}
				if err != nil {
					return err
				}
			}

			fmt.Fprint(out, formatter.FormatDecision(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Subject scope for the lookup")
	cmd.Flags().StringVar(&unit, "unit", "", "Unit scope for the lookup")
	cmd.Flags().StringVar(&notes, "notes", "", "Review notes recorded with the decision")

	return cmd
}

func newReviewInfoCmd(app *App) *cobra.Command {
	var subject, unit string

	cmd := &cobra.Command{
		Use:   "info ID",
		Short: "Show a package's review history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := app.Review.ReviewInfo(cmd.Context(), args[0], subject, unit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReviewInfo(info))
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Subject scope for the lookup")
	cmd.Flags().StringVar(&unit, "unit", "", "Unit scope for the lookup")

	return cmd
}

func newReviewLogCmd(app *App) *cobra.Command {
	var packageID string
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show locally recorded review decisions",
		RunE: func(cmd *cobra.Command, args []string) error {
			var actions []*domain.ReviewAction
			var err error
			if packageID != "" {
				actions, err = app.Review.Actions(cmd.Context(), packageID)
			} else {
				actions, err = app.Review.RecentActions(cmd.Context(), limit)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatActionLog(actions))
			return nil
		},
	}

	cmd.Flags().StringVar(&packageID, "package", "", "Show decisions for one package")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of decisions to show")

	return cmd
}

func newReviewDraftsCmd(app *App) *cobra.Command {
	var discard string

	cmd := &cobra.Command{
		Use:   "drafts",
		Short: "List or discard unsent review drafts",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if discard != "" {
				if err := app.Review.DiscardDraft(cmd.Context(), discard); err != nil {
					return err
				}
				fmt.Fprintf(out, "Discarded draft for %s\n", discard)
				return nil
			}

			drafts, err := app.Review.ListDrafts(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatDrafts(drafts))
			return nil
		},
	}

	cmd.Flags().StringVar(&discard, "discard", "", "Discard the draft for a package")

	return cmd
}
