package cli

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mgrinnell/lectern/internal/cli/formatter"
	"github.com/mgrinnell/lectern/internal/domain"
)

// packageLoadedMsg carries a freshly fetched package and its review
// info into the detail view.
type packageLoadedMsg struct {
	pkg  *domain.ContentPackage
	info *domain.ReviewInfo
	err  error
}

// packageView shows one package's full detail and review history in a
// scrollable viewport.
type packageView struct {
	state   *dashState
	pkg     domain.ContentPackage
	info    *domain.ReviewInfo
	vp      viewport.Model
	loading bool
	err     error
}

func newPackageView(state *dashState, pkg domain.ContentPackage) *packageView {
	vp := viewport.New(state.Width, state.ContentHeight())
	return &packageView{state: state, pkg: pkg, vp: vp, loading: true}
}

func (v *packageView) ID() ViewID    { return ViewPackage }
func (v *packageView) Title() string { return v.pkg.DisplayID() }

func (v *packageView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "approve")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reject")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "request changes")),
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "scroll")),
	}
}

func (v *packageView) Init() tea.Cmd {
	return v.loadDetail()
}

func (v *packageView) loadDetail() tea.Cmd {
	app := v.state.App
	id, subject, unit := v.pkg.ID, v.pkg.Subject, v.pkg.Unit
	return func() tea.Msg {
		ctx := context.Background()
		pkg, err := app.Packages.Get(ctx, id, subject, unit)
		if err != nil {
			return packageLoadedMsg{err: err}
		}
		// Review history is optional detail; the package alone renders.
		info, _ := app.Review.ReviewInfo(ctx, id, subject, unit)
		return packageLoadedMsg{pkg: pkg, info: info}
	}
}

func (v *packageView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case packageLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.pkg = *msg.pkg
		v.info = msg.info
		v.vp.SetContent(v.renderContent())
		return v, nil

	case refreshViewMsg:
		v.loading = true
		return v, v.loadDetail()

	case tea.WindowSizeMsg:
		v.vp.Width = msg.Width
		v.vp.Height = v.state.ContentHeight()
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "a":
			return v, pushView(newDecideView(v.state, v.pkg, domain.StatusApproved))
		case "x":
			return v, pushView(newDecideView(v.state, v.pkg, domain.StatusRejected))
		case "c":
			return v, pushView(newDecideView(v.state, v.pkg, domain.StatusNeedsRevision))
		}
		var cmd tea.Cmd
		v.vp, cmd = v.vp.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *packageView) renderContent() string {
	out := formatter.FormatPackageDetail(&v.pkg)
	if v.info != nil && len(v.info.Revisions) > 0 {
		out += "\n" + formatter.FormatRevisionEntries(v.info.Revisions)
	}
	return out
}

func (v *packageView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading package...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}
	return v.vp.View()
}
