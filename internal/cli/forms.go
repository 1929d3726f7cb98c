package cli

import (
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mgrinnell/lectern/internal/cli/formatter"
	"github.com/mgrinnell/lectern/internal/domain"
)

// lecternHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func lecternHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func requiredInput(title, placeholder string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(value).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return domain.NewValidationError("", "Field cannot be empty")
			}
			return nil
		})
}

// generationForm collects the manual generation fields not already
// supplied by flags. The difficulty select writes into the caller's
// string so the choice survives Run.
func generationForm(req *domain.GenerationRequest, difficulty *string) *huh.Form {
	if *difficulty == "" {
		*difficulty = string(domain.DifficultyIntermediate)
	}

	return huh.NewForm(
		huh.NewGroup(
			requiredInput("Subject", "biology", &req.Subject),
			requiredInput("Unit", "cells", &req.Unit),
			requiredInput("Skill", "cell-structure", &req.Skill),
			requiredInput("Subskill", "organelles", &req.Subskill),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Difficulty").
				Options(
					huh.NewOption("Beginner", string(domain.DifficultyBeginner)),
					huh.NewOption("Intermediate", string(domain.DifficultyIntermediate)),
					huh.NewOption("Advanced", string(domain.DifficultyAdvanced)),
				).
				Value(difficulty),
		),
	).WithTheme(lecternHuhTheme()).WithShowHelp(false)
}

// decisionNotesForm collects review notes for a decision. Approval may
// leave them blank.
func decisionNotesForm(target domain.PackageStatus, notes *string) *huh.Form {
	title := "Review notes"
	description := "Required for this decision"
	if target == domain.StatusApproved {
		description = "Optional; a stock approval note is used when blank"
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title(title).
				Description(description).
				Value(notes),
		),
	).WithTheme(lecternHuhTheme()).WithShowHelp(false)
}

// revisionForm collects component feedback for a revision request.
func revisionForm(component *string, feedback *string, priority *string) *huh.Form {
	componentOptions := make([]huh.Option[string], 0, len(domain.AllComponentTypes))
	for _, ct := range domain.AllComponentTypes {
		componentOptions = append(componentOptions, huh.NewOption(string(ct), string(ct)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Component").
				Options(componentOptions...).
				Value(component),
			huh.NewSelect[string]().
				Title("Priority").
				Options(
					huh.NewOption("Low", string(domain.PriorityLow)),
					huh.NewOption("Medium", string(domain.PriorityMedium)),
					huh.NewOption("High", string(domain.PriorityHigh)),
				).
				Value(priority),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Feedback").
				Description("What should change in this component?").
				Value(feedback),
		),
	).WithTheme(lecternHuhTheme()).WithShowHelp(false)
}

// confirmForm asks a yes/no question.
func confirmForm(title string, confirmed *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(confirmed),
		),
	).WithTheme(lecternHuhTheme()).WithShowHelp(false)
}
