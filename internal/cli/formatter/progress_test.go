package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mgrinnell/lectern/internal/progress"
)

func TestRenderProgress(t *testing.T) {
	bar := RenderProgress(0.5, 10)
	assert.Contains(t, bar, " 50%")
	assert.Equal(t, 5, strings.Count(bar, filledBlock))
	assert.Equal(t, 5, strings.Count(bar, emptyBlock))

	// Clamped at both ends.
	assert.Contains(t, RenderProgress(-1, 10), "  0%")
	assert.Contains(t, RenderProgress(2, 10), "100%")
}

func TestStagePercentNeverFullBeforeDone(t *testing.T) {
	snap := progress.Snapshot{StageIndex: len(progress.Stages) - 1}
	assert.Less(t, StagePercent(snap), 1.0)

	snap.Done = true
	assert.Equal(t, 1.0, StagePercent(snap))
}

func TestRenderStages(t *testing.T) {
	snap := progress.Snapshot{StageIndex: 2}
	out := RenderStages(snap)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, len(progress.Stages))
	assert.Contains(t, lines[0], "✔")
	assert.Contains(t, lines[1], "✔")
	assert.Contains(t, lines[2], "◐")
	assert.Contains(t, lines[3], "○")

	done := progress.Snapshot{Done: true, StageIndex: len(progress.Stages) - 1}
	assert.NotContains(t, RenderStages(done), "◐")
}
