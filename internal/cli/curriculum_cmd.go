package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgrinnell/lectern/internal/cli/formatter"
)

func newCurriculumCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "curriculum",
		Short: "Browse server-side curriculum data",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := app.Curriculum.Status(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCurriculumStatus(status))
			return nil
		},
	}

	cmd.AddCommand(
		newCurriculumSubjectsCmd(app),
		newCurriculumGradesCmd(app),
		newCurriculumBrowseCmd(app),
		newCurriculumContextCmd(app),
	)

	return cmd
}

func newCurriculumSubjectsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "subjects",
		Short: "List subjects with curriculum data",
		RunE: func(cmd *cobra.Command, args []string) error {
			subjects, err := app.Curriculum.Subjects(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderNameList("Subjects", subjects))
			return nil
		},
	}
}

func newCurriculumGradesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "grades SUBJECT",
		Short: "List grades available for a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			grades, err := app.Curriculum.Grades(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderNameList("Grades: "+args[0], grades))
			return nil
		},
	}
}

func newCurriculumBrowseCmd(app *App) *cobra.Command {
	var grade string

	cmd := &cobra.Command{
		Use:   "browse SUBJECT",
		Short: "Show a subject's unit/skill/subskill tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			curricula, err := app.Curriculum.Browse(cmd.Context(), args[0], grade)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCurriculumTree(curricula))
			return nil
		},
	}

	cmd.Flags().StringVar(&grade, "grade", "", "Restrict to one grade")

	return cmd
}

func newCurriculumContextCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "context SUBSKILL_ID",
		Short: "Show the generation pre-fill context for a subskill",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := app.Curriculum.SubskillContext(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatSubskillContext(sc))
			fmt.Fprintln(out, formatter.Dim("Run `lectern generate --from-subskill "+sc.SubskillID+"` to generate from here."))
			return nil
		},
		Args: cobra.ExactArgs(1),
	}
}

func renderNameList(title string, names []string) string {
	if len(names) == 0 {
		return formatter.RenderBox(title, formatter.Dim("Nothing available"))
	}
	var b strings.Builder
	for _, n := range names {
		b.WriteString("  " + formatter.StyleGreen.Render("•") + " " + formatter.StyleFg.Render(n) + "\n")
	}
	return formatter.RenderBox(title, b.String())
}
