package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mgrinnell/lectern/internal/cli/formatter"
	"github.com/mgrinnell/lectern/internal/domain"
)

// queueLoadedMsg signals that review queue data has been loaded.
type queueLoadedMsg struct {
	pkgs   []domain.ContentPackage
	drafts map[string]bool
	err    error
}

// queueView is the dashboard's home view: packages waiting for review,
// newest first, with saved-draft markers.
type queueView struct {
	state   *dashState
	pkgs    []domain.ContentPackage
	drafts  map[string]bool
	cursor  int
	loading bool
	err     error
}

func newQueueView(state *dashState) *queueView {
	return &queueView{state: state, loading: true}
}

func (v *queueView) ID() ViewID    { return ViewQueue }
func (v *queueView) Title() string { return "Review Queue" }

func (v *queueView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "approve")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reject")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "request changes")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *queueView) Init() tea.Cmd {
	return v.loadQueue()
}

func (v *queueView) loadQueue() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		ctx := context.Background()
		pkgs, err := app.Review.Queue(ctx, "", "", 0)
		if err != nil {
			return queueLoadedMsg{err: err}
		}
		drafts := make(map[string]bool)
		if saved, err := app.Review.ListDrafts(ctx); err == nil {
			for _, d := range saved {
				drafts[d.PackageID] = true
			}
		}
		return queueLoadedMsg{pkgs: pkgs, drafts: drafts}
	}
}

func (v *queueView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case queueLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.pkgs = msg.pkgs
		v.drafts = msg.drafts
		if v.cursor >= len(v.pkgs) && len(v.pkgs) > 0 {
			v.cursor = len(v.pkgs) - 1
		}
		return v, nil

	case refreshViewMsg:
		v.loading = true
		return v, v.loadQueue()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.pkgs)-1 {
				v.cursor++
			}
		case "enter":
			if p := v.selected(); p != nil {
				return v, pushView(newPackageView(v.state, *p))
			}
		case "a":
			if p := v.selected(); p != nil {
				return v, pushView(newDecideView(v.state, *p, domain.StatusApproved))
			}
		case "x":
			if p := v.selected(); p != nil {
				return v, pushView(newDecideView(v.state, *p, domain.StatusRejected))
			}
		case "c":
			if p := v.selected(); p != nil {
				return v, pushView(newDecideView(v.state, *p, domain.StatusNeedsRevision))
			}
		case "r":
			v.loading = true
			return v, v.loadQueue()
		}
	}
	return v, nil
}

func (v *queueView) selected() *domain.ContentPackage {
	if v.cursor < 0 || v.cursor >= len(v.pkgs) {
		return nil
	}
	return &v.pkgs[v.cursor]
}

func (v *queueView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading review queue...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}
	if len(v.pkgs) == 0 {
		return "\n  " + formatter.Dim("Nothing is waiting for review.")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, p := range v.pkgs {
		cursor := "  "
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
		}

		draftMark := "  "
		if v.drafts[p.ID] {
			draftMark = formatter.StyleYellow.Render("✎ ")
		}

		b.WriteString(fmt.Sprintf("%s%s%s  %s %s %s  %s  %s\n",
			cursor,
			draftMark,
			formatter.TruncID(p.ID),
			formatter.StyleFg.Render(p.Subject),
			formatter.Dim("›"),
			formatter.StyleFg.Render(p.Subskill),
			formatter.StatusPill(p.Status),
			formatter.CoherenceBadge(p.CoherenceScore()),
		))
	}
	b.WriteString("\n  " + formatter.Dim(fmt.Sprintf("%d package(s)", len(v.pkgs))) +
		"  " + formatter.Dim("✎ = saved draft"))
	return b.String()
}
