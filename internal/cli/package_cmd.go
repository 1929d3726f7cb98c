package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mgrinnell/lectern/internal/api"
	"github.com/mgrinnell/lectern/internal/cli/formatter"
	"github.com/mgrinnell/lectern/internal/domain"
)

func newListCmd(app *App) *cobra.Command {
	var (
		subject, unit, status string
		limit                 int
		cached                bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List content packages",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if cached {
				pkgs, err := app.Packages.ListCached(cmd.Context())
				if err != nil {
					return err
				}
				flat := make([]domain.ContentPackage, 0, len(pkgs))
				for _, p := range pkgs {
					flat = append(flat, *p)
				}
				fmt.Fprint(out, formatter.FormatPackageList(flat))
				fmt.Fprintln(out, formatter.Dim("Showing locally cached copies; the service was not contacted."))
				return nil
			}

			if status != "" && !domain.ValidPackageStatuses[status] {
				return domain.NewValidationError("status", fmt.Sprintf("unknown status %q", status))
			}

			pkgs, err := app.Packages.List(cmd.Context(), api.ListFilter{
				Subject: subject,
				Unit:    unit,
				Status:  domain.PackageStatus(status),
				Limit:   limit,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatPackageList(pkgs))
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Filter by subject")
	cmd.Flags().StringVar(&unit, "unit", "", "Filter by unit")
	cmd.Flags().StringVar(&status, "status", "", "Filter by package status")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of packages to list")
	cmd.Flags().BoolVar(&cached, "cached", false, "List locally cached packages without contacting the service")

	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	var subject, unit, component string
	var cached bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show one content package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			var pkg *domain.ContentPackage
			var err error
			if cached {
				cachedPkg, fetchedAt, cacheErr := app.Packages.GetCached(cmd.Context(), args[0])
				if cacheErr != nil {
					return cacheErr
				}
				fmt.Fprintln(out, formatter.Dim("Cached copy from "+formatter.HumanTimestamp(fetchedAt)))
				pkg = cachedPkg
			} else {
				pkg, err = app.Packages.Get(cmd.Context(), args[0], subject, unit)
				if err != nil {
					return err
				}
			}

			if component != "" {
				ct := domain.ComponentType(component)
				if !domain.ValidComponentTypes[component] {
					return domain.NewValidationError("component", fmt.Sprintf("unknown component type %q", component))
				}
				fmt.Fprint(out, formatter.FormatComponentContent(ct, pkg.Content[ct]))
				return nil
			}

			fmt.Fprint(out, formatter.FormatPackageDetail(pkg))
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Subject scope for the lookup")
	cmd.Flags().StringVar(&unit, "unit", "", "Unit scope for the lookup")
	cmd.Flags().StringVar(&component, "component", "", "Show one embedded component instead of the summary")
	cmd.Flags().BoolVar(&cached, "cached", false, "Show the locally cached copy without contacting the service")

	return cmd
}

func newDeleteCmd(app *App) *cobra.Command {
	var subject, unit string
	var force bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a content package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if !force {
				if !app.interactive() {
					return fmt.Errorf("refusing to delete without --force in a non-interactive session")
				}
				confirmed := false
				if err := confirmForm("Delete package "+args[0]+"?", &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(out, "Aborted.")
					return nil
				}
			}

			deleted, err := app.Packages.Delete(cmd.Context(), args[0], subject, unit)
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Fprintln(out, formatter.StyleYellow.Render("The service did not confirm the deletion."))
				return nil
			}
			fmt.Fprintf(out, "Deleted %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Subject scope for the lookup")
	cmd.Flags().StringVar(&unit, "unit", "", "Unit scope for the lookup")
	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")

	return cmd
}
