package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mgrinnell/lectern/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// StatusPill returns a colored status indicator for a package status.
func StatusPill(status domain.PackageStatus) string {
	switch status {
	case domain.StatusDraft:
		return StyleDim.Render("○ Draft")
	case domain.StatusGenerating:
		return StyleYellow.Render("◐ Generating")
	case domain.StatusGenerated:
		return StyleBlue.Render("● Generated")
	case domain.StatusUnderReview:
		return StyleBlue.Render("◉ Under Review")
	case domain.StatusApproved:
		return StyleGreen.Render("✔ Approved")
	case domain.StatusRejected:
		return StyleRed.Render("✖ Rejected")
	case domain.StatusNeedsRevision:
		return StyleYellow.Render("▲ Needs Revision")
	case domain.StatusPublished:
		return StyleGreen.Render("★ Published")
	default:
		return StyleDim.Render(string(status))
	}
}

// PriorityBadge returns a colored revision priority label.
func PriorityBadge(p domain.RevisionPriority) string {
	switch p {
	case domain.PriorityHigh:
		return StyleRed.Render("HIGH")
	case domain.PriorityMedium:
		return StyleYellow.Render("MED")
	case domain.PriorityLow:
		return StyleDim.Render("LOW")
	default:
		return StyleDim.Render(string(p))
	}
}

// ComponentBadge returns a purple-styled component type label.
func ComponentBadge(ct domain.ComponentType) string {
	label := string(ct)
	if label == "" {
		return StyleDim.Render("--")
	}
	label = strings.ToUpper(label[:1]) + label[1:]
	return StylePurple.Render(label)
}

// CoherenceBadge colors a coherence score by quality band.
func CoherenceBadge(score float64) string {
	text := fmt.Sprintf("%.2f", score)
	switch {
	case score >= 0.8:
		return StyleGreen.Render(text)
	case score >= 0.6:
		return StyleYellow.Render(text)
	case score > 0:
		return StyleRed.Render(text)
	default:
		return StyleDim.Render("--")
	}
}

// TruncID returns the display form of a package ID, dimmed.
func TruncID(id string) string {
	if len(id) > 14 {
		id = id[:13] + "…"
	}
	return StyleDim.Render(id)
}

// HumanDate returns a human-friendly absolute date string.
func HumanDate(t time.Time) string {
	now := time.Now()
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()

	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	yesterday := now.AddDate(0, 0, -1)
	y3, m3, d3 := yesterday.Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Yesterday"
	}
	return t.Format("Jan 2, 2006")
}

// HumanTimestamp returns a human-friendly relative timestamp string.
func HumanTimestamp(t time.Time) string {
	if t.IsZero() {
		return "--"
	}
	diff := time.Since(t)

	switch {
	case diff < 0:
		return HumanDate(t)
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return HumanDate(t)
	}
}

// HumanBytes renders a byte count with a binary unit suffix.
func HumanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// FormatElapsed renders a wall-clock duration as m:ss.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
