package formatter

import (
	"fmt"
	"strings"

	"github.com/mgrinnell/lectern/internal/progress"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░] 45%.
func RenderProgress(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// RenderStages renders the generation pipeline checklist for a
// snapshot: completed stages checked, the current stage highlighted,
// pending stages dimmed.
func RenderStages(snap progress.Snapshot) string {
	var b strings.Builder
	for i, stage := range progress.Stages {
		switch {
		case snap.Done || i < snap.StageIndex:
			b.WriteString("  " + StyleGreen.Render("✔") + " " + StyleDim.Render(stage.Label))
		case i == snap.StageIndex:
			b.WriteString("  " + StyleYellow.Render("◐") + " " + StyleFg.Render(stage.Label))
		default:
			b.WriteString("  " + StyleDim.Render("○ "+stage.Label))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// StagePercent maps a snapshot to overall progress for the bar. The
// stage index is a cosmetic estimate, so the bar never reports 100%
// until the run is actually done.
func StagePercent(snap progress.Snapshot) float64 {
	if snap.Done {
		return 1
	}
	pct := float64(snap.StageIndex) / float64(len(progress.Stages))
	if pct > 0.95 {
		pct = 0.95
	}
	return pct
}
