package cli

import tea "github.com/charmbracelet/bubbletea"

// Navigation messages used by views to request view transitions.
// The dashboard root model handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack,
// returning to the previous view.
type popViewMsg struct{}

// refreshViewMsg tells every view on the stack to reload its data.
// Broadcast after mutations so underlying views pick up new statuses.
type refreshViewMsg struct{}

// noticeMsg carries a transient one-line status message shown above
// the bottom bar.
type noticeMsg struct {
	text string
}

// decidedMsg reports the outcome of a review decision made from a
// decide view. The root model pops the form, shows the outcome and
// broadcasts a refresh.
type decidedMsg struct {
	text string
	err  error
}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// popView returns a tea.Cmd that pops the current view.
func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

// notice returns a tea.Cmd that displays a transient status line.
func notice(text string) tea.Cmd {
	return func() tea.Msg { return noticeMsg{text: text} }
}
