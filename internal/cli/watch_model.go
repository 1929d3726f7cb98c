package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mgrinnell/lectern/internal/cli/formatter"
	"github.com/mgrinnell/lectern/internal/domain"
	"github.com/mgrinnell/lectern/internal/progress"
)

// runGenerationWatch attaches a live progress display to a generation
// run and blocks until it completes or the user detaches.
func runGenerationWatch(ctx context.Context, app *App, pkg *domain.ContentPackage, out io.Writer) error {
	tracker := progress.NewTracker(pkg.ID, func(ctx context.Context) (*domain.ContentPackage, error) {
		return app.Packages.Get(ctx, pkg.ID, pkg.Subject, pkg.Unit)
	})
	tracker.Start(ctx)
	defer tracker.Stop()

	model := newWatchModel(tracker)
	program := tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(out))
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("running watch display: %w", err)
	}

	m := final.(watchModel)
	if m.snap.Done && m.snap.Package != nil {
		fmt.Fprintf(out, "Generation finished in %s: %s\n",
			formatter.FormatElapsed(m.snap.Elapsed),
			formatter.StatusPill(m.snap.Package.Status))
	} else {
		fmt.Fprintln(out, formatter.Dim("Detached; generation continues on the server."))
	}
	return nil
}

// watchModel renders a generation run's progress snapshots.
type watchModel struct {
	tracker  *progress.Tracker
	snap     progress.Snapshot
	width    int
	quitting bool
}

func newWatchModel(tracker *progress.Tracker) watchModel {
	return watchModel{tracker: tracker, snap: tracker.Snapshot(), width: 60}
}

type watchSnapshotMsg progress.Snapshot

type watchTickMsg time.Time

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.waitForSnapshot(), watchTick())
}

func (m watchModel) waitForSnapshot() tea.Cmd {
	return func() tea.Msg {
		return watchSnapshotMsg(<-m.tracker.Updates())
	}
}

func watchTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			m.tracker.Stop()
			return m, tea.Quit
		}
		return m, nil

	case watchSnapshotMsg:
		m.snap = progress.Snapshot(msg)
		if m.snap.Done {
			return m, tea.Quit
		}
		return m, m.waitForSnapshot()

	case watchTickMsg:
		// Refresh the elapsed clock even when no snapshot arrived.
		m.snap = m.tracker.Snapshot()
		if m.snap.Done {
			return m, tea.Quit
		}
		return m, watchTick()
	}
	return m, nil
}

func (m watchModel) View() string {
	if m.quitting {
		return ""
	}

	header := formatter.Bold("Generating "+m.snap.PackageID) +
		"  " + formatter.Dim(formatter.FormatElapsed(m.snap.Elapsed))

	barWidth := m.width - 20
	if barWidth < 10 {
		barWidth = 10
	}
	if barWidth > 40 {
		barWidth = 40
	}
	bar := formatter.RenderProgress(formatter.StagePercent(m.snap), barWidth)

	body := header + "\n\n" + bar + "\n\n" + formatter.RenderStages(m.snap)

	if m.snap.Err != nil {
		body += "\n" + formatter.StyleRed.Render("poll error: "+m.snap.Err.Error()) +
			"\n" + formatter.Dim("Still retrying; the run is unaffected.")
	}

	body += "\n" + formatter.Dim("q: detach (generation continues server-side)")
	return body + "\n"
}
