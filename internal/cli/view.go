package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID identifies each type of view in the review dashboard.
type ViewID int

const (
	ViewQueue ViewID = iota
	ViewPackage
	ViewDecide
)

// View is the interface all dashboard views implement. It extends
// tea.Model with navigation and help metadata.
type View interface {
	tea.Model
	ID() ViewID
	ShortHelp() []key.Binding // key hints shown in the bottom bar
	Title() string            // breadcrumb segment for this view
}
