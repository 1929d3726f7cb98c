package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mgrinnell/lectern/internal/cli/formatter"
	"github.com/mgrinnell/lectern/internal/domain"
)

func newGenerateCmd(app *App) *cobra.Command {
	var (
		subject, unit, skill, subskill string
		difficulty, instructions       string
		subskillID                     string
		prerequisites, contentTypes    []string
		watch                          bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new content package",
		Long: `Generate a new content package, either from manually supplied
subject/unit/skill/subskill fields or from a curriculum subskill
reference (--from-subskill). With --watch the command stays attached
and follows the generation run until the package is ready.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var pkg *domain.ContentPackage
			var err error

			switch {
			case subskillID != "":
				pkg, err = runCurriculumGeneration(ctx, app, subskillID, instructions, contentTypes)
			default:
				req := domain.GenerationRequest{
					Subject:         subject,
					Unit:            unit,
					Skill:           skill,
					Subskill:        subskill,
					DifficultyLevel: domain.DifficultyLevel(difficulty),
					Prerequisites:   prerequisites,
					EducatorID:      app.Config.ReviewerID,
				}
				if needsGenerationForm(&req) {
					if !app.interactive() {
						return domain.NewValidationError("subject",
							"subject, unit, skill and subskill are required (or run interactively)")
					}
					if err := generationForm(&req, &difficulty).Run(); err != nil {
						return err
					}
					req.DifficultyLevel = domain.DifficultyLevel(difficulty)
				}
				if instructions != "" || len(contentTypes) > 0 {
					pkg, err = runEnhancedManualGeneration(ctx, app, req, instructions, contentTypes)
				} else {
					pkg, err = app.Generation.Generate(ctx, req)
				}
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Generation started: %s %s\n",
				formatter.Bold(pkg.ID), formatter.StatusPill(pkg.Status))

			if watch {
				return runGenerationWatch(ctx, app, pkg, out)
			}

			fmt.Fprintln(out, formatter.Dim("Run `lectern show "+pkg.ID+
				"` to check on it, or re-run with --watch to follow."))
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Subject area (e.g. biology)")
	cmd.Flags().StringVar(&unit, "unit", "", "Unit within the subject")
	cmd.Flags().StringVar(&skill, "skill", "", "Skill within the unit")
	cmd.Flags().StringVar(&subskill, "subskill", "", "Subskill to generate content for")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Difficulty level: beginner, intermediate or advanced")
	cmd.Flags().StringSliceVar(&prerequisites, "prerequisite", nil, "Prerequisite concept (repeatable)")
	cmd.Flags().StringVar(&subskillID, "from-subskill", "", "Generate from a curriculum subskill reference")
	cmd.Flags().StringVar(&instructions, "instructions", "", "Custom generation instructions")
	cmd.Flags().StringSliceVar(&contentTypes, "types", nil, "Component types to generate (default: all)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Follow the generation run until completion")

	return cmd
}

func needsGenerationForm(req *domain.GenerationRequest) bool {
	return req.Subject == "" || req.Unit == "" || req.Skill == "" || req.Subskill == ""
}

func runCurriculumGeneration(ctx context.Context, app *App, subskillID, instructions string, contentTypes []string) (*domain.ContentPackage, error) {
	req, err := app.Curriculum.PrefillRequest(ctx, subskillID)
	if err != nil {
		return nil, err
	}
	req.CustomInstructions = instructions
	if len(contentTypes) > 0 {
		req.ContentTypes = toComponentTypes(contentTypes)
	}
	return app.Generation.GenerateEnhanced(ctx, *req)
}

func runEnhancedManualGeneration(ctx context.Context, app *App, manual domain.GenerationRequest, instructions string, contentTypes []string) (*domain.ContentPackage, error) {
	req := domain.EnhancedGenerationRequest{
		Mode:               domain.ModeManual,
		ManualRequest:      &manual,
		CustomInstructions: instructions,
	}
	if len(contentTypes) > 0 {
		req.ContentTypes = toComponentTypes(contentTypes)
	}
	return app.Generation.GenerateEnhanced(ctx, req)
}

func toComponentTypes(names []string) []domain.ComponentType {
	out := make([]domain.ComponentType, 0, len(names))
	for _, n := range names {
		out = append(out, domain.ComponentType(n))
	}
	return out
}
