package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mgrinnell/lectern/internal/cli/formatter"
)

func newAudioCmd(app *App) *cobra.Command {
	var output string
	var urlOnly bool

	cmd := &cobra.Command{
		Use:   "audio PACKAGE_ID FILENAME",
		Short: "Download a package's narration audio",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if urlOnly {
				fmt.Fprintln(out, app.Ops.AudioURL(args[0], args[1]))
				return nil
			}

			dest := output
			if dest == "" {
				dest = args[1]
			}
			f, err := os.Create(dest)
			if err != nil {
				return fmt.Errorf("creating %s: %w", dest, err)
			}
			defer f.Close()

			n, err := app.Ops.FetchAudio(cmd.Context(), args[0], args[1], f)
			if err != nil {
				os.Remove(dest)
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("writing %s: %w", dest, err)
			}

			fmt.Fprintf(out, "Saved %s (%s)\n", dest, formatter.HumanBytes(n))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file (default: the remote filename)")
	cmd.Flags().BoolVar(&urlOnly, "url", false, "Print the audio URL instead of downloading")

	return cmd
}

func newHealthCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the content service's health",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := app.Ops.GetHealth(cmd.Context())
			if err != nil {
				return err
			}

			pill := formatter.StyleGreen.Render("● " + h.Status)
			if h.Status != "healthy" && h.Status != "ok" {
				pill = formatter.StyleYellow.Render("◐ " + h.Status)
			}
			pairs := [][2]string{
				{"STATUS", pill},
				{"SERVICE", formatter.StyleFg.Render(h.Service)},
				{"VERSION", formatter.StyleFg.Render(h.Version)},
				{"ENDPOINT", formatter.StyleDim.Render(app.Config.BaseURL)},
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderBox("Health", formatter.RenderKeyValues(pairs)))
			return nil
		},
	}
}

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show service-side storage statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Ops.GetStorageStats(cmd.Context())
			if err != nil {
				return err
			}

			pairs := [][2]string{
				{"PACKAGES", formatter.StyleFg.Render(fmt.Sprintf("%d", s.TotalPackages))},
				{"AUDIO FILES", formatter.StyleFg.Render(fmt.Sprintf("%d", s.AudioFiles))},
				{"TOTAL SIZE", formatter.StyleFg.Render(formatter.HumanBytes(s.TotalBytes))},
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderBox("Storage", formatter.RenderKeyValues(pairs)))
			return nil
		},
	}
}
