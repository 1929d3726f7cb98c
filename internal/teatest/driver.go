// Package teatest runs bubbletea models synchronously in tests.
//
// Instead of starting a tea.Program, a Driver feeds messages straight
// into Update and works through the returned commands until none are
// left. Tests stay deterministic and goroutine-free.
//
// Commands that block on timers (cursor blink) are given a short grace
// period and dropped when they do not return in time.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxSteps bounds command processing so a model that keeps emitting
// commands cannot hang a test.
const maxSteps = 200

// cmdGrace is how long a command may run before it is dropped. Real
// commands (fakes, message factories) return in microseconds; cursor
// blink commands sleep for ~530ms.
const cmdGrace = 10 * time.Millisecond

// Driver drives a tea.Model synchronously.
type Driver struct {
	t     *testing.T
	model tea.Model

	// quit is set when a tea.QuitMsg comes through. The real runtime
	// intercepts it before the model sees it, so the driver tracks it
	// itself.
	quit bool
}

// Option configures a Driver during construction.
type Option func(*Driver)

// WithSize delivers an initial WindowSizeMsg before anything else runs.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		m, _ := d.model.Update(tea.WindowSizeMsg{Width: w, Height: h})
		d.model = m
	}
}

// New wraps a model. Call Init to run the model's startup command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{t: t, model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Init runs the model's Init command and everything it produces.
func (d *Driver) Init() {
	d.t.Helper()
	d.dispatch(d.model.Init())
}

// Model returns the current model, for assertions on concrete state.
func (d *Driver) Model() tea.Model { return d.model }

// View returns the model's current rendering.
func (d *Driver) View() string { return d.model.View() }

// Quit reports whether the model requested termination.
func (d *Driver) Quit() bool { return d.quit }

// Send feeds one message through Update and processes the resulting
// commands.
func (d *Driver) Send(msg tea.Msg) {
	d.t.Helper()
	if d.quit {
		return
	}
	m, cmd := d.model.Update(msg)
	d.model = m
	d.dispatch(cmd)
}

// Press sends a special key such as tea.KeyEnter or tea.KeyEsc.
func (d *Driver) Press(k tea.KeyType) {
	d.t.Helper()
	d.Send(tea.KeyMsg{Type: k})
}

// PressRune sends a single character key.
func (d *Driver) PressRune(r rune) {
	d.t.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// Type sends a string one character at a time.
func (d *Driver) Type(s string) {
	d.t.Helper()
	for _, r := range s {
		d.PressRune(r)
	}
}

// dispatch works through a command and its descendants breadth-first.
func (d *Driver) dispatch(cmd tea.Cmd) {
	d.t.Helper()

	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps >= maxSteps {
			d.t.Logf("teatest: stopped after %d command steps", maxSteps)
			return
		}

		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		msg := runWithGrace(next)
		if msg == nil || isBlink(msg) {
			continue
		}

		switch msg := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)

		case tea.QuitMsg:
			d.quit = true
			m, _ := d.model.Update(msg)
			d.model = m
			return

		default:
			m, produced := d.model.Update(msg)
			d.model = m
			queue = append(queue, produced)
		}
	}
}

// runWithGrace executes a command, dropping it when it blocks longer
// than cmdGrace.
func runWithGrace(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdGrace):
		return nil
	}
}

// isBlink filters cursor blink messages from bubbles/cursor, whose
// types are unexported and chain into blocking timer commands.
func isBlink(msg tea.Msg) bool {
	name := fmt.Sprintf("%T", msg)
	return strings.Contains(strings.ToLower(name), "blink")
}
