package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/mgrinnell/lectern/internal/cli/formatter"
	"github.com/mgrinnell/lectern/internal/domain"
)

// decideView wraps the decision notes form as a View on the stack.
// Completing the form submits the decision; escaping with notes typed
// saves them as a draft instead of losing them.
type decideView struct {
	state  *dashState
	pkg    domain.ContentPackage
	target domain.PackageStatus
	notes  string
	form   *huh.Form
}

func newDecideView(state *dashState, pkg domain.ContentPackage, target domain.PackageStatus) *decideView {
	v := &decideView{state: state, pkg: pkg, target: target}

	// Pre-fill from a saved draft for the same decision.
	if draft, err := state.App.Review.LoadDraft(context.Background(), pkg.ID); err == nil && draft.TargetStatus == target {
		v.notes = draft.Notes
	}

	v.form = decisionNotesForm(target, &v.notes)
	return v
}

func (v *decideView) ID() ViewID { return ViewDecide }

func (v *decideView) Title() string {
	switch v.target {
	case domain.StatusApproved:
		return "Approve"
	case domain.StatusRejected:
		return "Reject"
	default:
		return "Request Changes"
	}
}

func (v *decideView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel (keeps notes as draft)")),
	}
}

func (v *decideView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *decideView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return v, v.cancel()
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		return v, v.submit()
	}

	return v, cmd
}

func (v *decideView) submit() tea.Cmd {
	app := v.state.App
	pkg, target, notes := v.pkg, v.target, v.notes
	return func() tea.Msg {
		result, err := app.Review.Decide(context.Background(), pkg.ID, pkg.Subject, pkg.Unit, target, notes)
		if err != nil {
			return decidedMsg{err: err}
		}
		return decidedMsg{
			text: formatter.StyleGreen.Render("✔ ") +
				formatter.Bold(result.PackageID) + " " +
				formatter.StatusPill(result.OldStatus) + " " +
				formatter.Dim("→") + " " +
				formatter.StatusPill(result.NewStatus),
		}
	}
}

func (v *decideView) cancel() tea.Cmd {
	app := v.state.App
	pkg, target, notes := v.pkg, v.target, strings.TrimSpace(v.notes)
	return func() tea.Msg {
		if notes == "" {
			return popViewMsg{}
		}
		err := app.Review.SaveDraft(context.Background(), &domain.ReviewDraft{
			PackageID:    pkg.ID,
			Subject:      pkg.Subject,
			Unit:         pkg.Unit,
			TargetStatus: target,
			Notes:        notes,
		})
		if err != nil {
			return decidedMsg{err: err}
		}
		return decidedMsg{text: formatter.StyleYellow.Render("✎ ") +
			formatter.Dim("Draft saved for "+pkg.DisplayID())}
	}
}

func (v *decideView) View() string {
	header := formatter.Bold(v.Title()+" "+v.pkg.DisplayID()) + "  " +
		formatter.StatusPill(v.pkg.Status) + "\n\n"
	return header + v.form.View()
}
