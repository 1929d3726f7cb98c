package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mgrinnell/lectern/internal/api"
	"github.com/mgrinnell/lectern/internal/domain"
	"github.com/mgrinnell/lectern/internal/progress"
	"github.com/mgrinnell/lectern/internal/teatest"
)

func newWatchTracker(t *testing.T) *progress.Tracker {
	t.Helper()
	tracker := progress.NewTracker("pkg_watch",
		func(ctx context.Context) (*domain.ContentPackage, error) {
			return nil, api.ErrNotFound
		},
		progress.WithStageInterval(time.Hour),
		progress.WithPollInterval(time.Hour),
	)
	tracker.Start(context.Background())
	t.Cleanup(tracker.Stop)
	return tracker
}

func TestWatchModelRendersProgress(t *testing.T) {
	tracker := newWatchTracker(t)
	d := teatest.New(t, newWatchModel(tracker), teatest.WithSize(80, 24))
	d.Init()

	view := d.View()
	assert.Contains(t, view, "Generating pkg_watch")
	assert.Contains(t, view, "Building master context")
	assert.Contains(t, view, "q: detach")
}

func TestWatchModelQuitsWhenDone(t *testing.T) {
	tracker := newWatchTracker(t)
	d := teatest.New(t, newWatchModel(tracker), teatest.WithSize(80, 24))
	d.Init()

	pkg := &domain.ContentPackage{ID: "pkg_watch", Status: domain.StatusGenerated}
	d.Send(watchSnapshotMsg(progress.Snapshot{
		PackageID: "pkg_watch",
		Done:      true,
		Package:   pkg,
		Elapsed:   90 * time.Second,
	}))

	assert.True(t, d.Quit())
	m := d.Model().(watchModel)
	assert.True(t, m.snap.Done)
	assert.Equal(t, pkg, m.snap.Package)
}

func TestWatchModelDetachesOnKey(t *testing.T) {
	tracker := newWatchTracker(t)
	d := teatest.New(t, newWatchModel(tracker), teatest.WithSize(80, 24))
	d.Init()

	d.PressRune('q')
	assert.True(t, d.Quit())
	assert.True(t, d.Model().(watchModel).quitting)
}

func TestWatchModelShowsPollError(t *testing.T) {
	tracker := newWatchTracker(t)
	d := teatest.New(t, newWatchModel(tracker), teatest.WithSize(80, 24))
	d.Init()

	d.Send(watchSnapshotMsg(progress.Snapshot{
		PackageID: "pkg_watch",
		Err:       assertableErr("connection refused"),
	}))

	view := d.View()
	assert.Contains(t, view, "connection refused")
	assert.Contains(t, view, "Still retrying")
}

type assertableErr string

func (e assertableErr) Error() string { return string(e) }
