// Package progress tracks a package generation run from the client
// side. The service exposes no progress endpoint, so the tracker
// combines two independent timers: a cosmetic stage ticker that walks
// the known pipeline stages on a fixed cadence, and a completion poll
// that re-fetches the package until it exists in a finished state. The
// stage display is an estimate; only the completion poll is truthful.
package progress

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mgrinnell/lectern/internal/api"
	"github.com/mgrinnell/lectern/internal/domain"
	"github.com/mgrinnell/lectern/internal/poll"
)

const (
	// DefaultStageInterval is how long the display lingers on each
	// pipeline stage.
	DefaultStageInterval = 20 * time.Second
	// DefaultPollInterval is how often the tracker re-fetches the
	// package to check for completion.
	DefaultPollInterval = 5 * time.Second
)

// Stage is one step of the generation pipeline.
type Stage struct {
	Name  string
	Label string
}

// Stages lists the generation pipeline steps in service execution
// order.
var Stages = []Stage{
	{Name: "master_context", Label: "Building master context"},
	{Name: "reading", Label: "Writing reading material"},
	{Name: "visual", Label: "Creating visual content"},
	{Name: "audio_script", Label: "Drafting audio script"},
	{Name: "audio_tts", Label: "Synthesizing audio"},
	{Name: "practice", Label: "Generating practice problems"},
	{Name: "validation", Label: "Validating package coherence"},
}

// Snapshot is the tracker's current view of the run.
type Snapshot struct {
	PackageID  string
	StageIndex int
	Stage      Stage
	Elapsed    time.Duration
	Done       bool
	Package    *domain.ContentPackage
	// Err is the last real poll failure. A 404 is not a failure: the
	// package simply does not exist yet.
	Err error
}

// Fetcher fetches the package being generated.
type Fetcher func(ctx context.Context) (*domain.ContentPackage, error)

// Option configures a Tracker during construction.
type Option func(*Tracker)

// WithStageInterval sets the stage display cadence.
func WithStageInterval(d time.Duration) Option {
	return func(t *Tracker) {
		if d > 0 {
			t.stageEvery = d
		}
	}
}

// WithPollInterval sets the completion poll cadence.
func WithPollInterval(d time.Duration) Option {
	return func(t *Tracker) {
		if d > 0 {
			t.pollEvery = d
		}
	}
}

// WithOnComplete registers a callback invoked exactly once when the
// package is observed in a finished state.
func WithOnComplete(fn func(*domain.ContentPackage)) Option {
	return func(t *Tracker) {
		t.onComplete = fn
	}
}

// Tracker follows one generation run.
type Tracker struct {
	packageID  string
	fetch      Fetcher
	stageEvery time.Duration
	pollEvery  time.Duration
	onComplete func(*domain.ContentPackage)

	mu          sync.Mutex
	startedAt   time.Time
	completedAt time.Time
	stageIdx    int
	done        bool
	pkg         *domain.ContentPackage
	lastErr     error

	poller       *poll.Poller[*domain.ContentPackage]
	updates      chan Snapshot
	stop         chan struct{}
	stopOnce     sync.Once
	completeOnce sync.Once
	started      bool
}

// NewTracker creates a Tracker for the given package. Call Start to
// begin tracking.
func NewTracker(packageID string, fetch Fetcher, opts ...Option) *Tracker {
	t := &Tracker{
		packageID:  packageID,
		fetch:      fetch,
		stageEvery: DefaultStageInterval,
		pollEvery:  DefaultPollInterval,
		updates:    make(chan Snapshot, 16),
		stop:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.poller = poll.New(fetch, poll.WithInterval(t.pollEvery))
	return t
}

// Start begins the stage ticker and the completion poll. Starting an
// already started tracker is a no-op.
func (t *Tracker) Start(ctx context.Context) {
	t.mu.Lock()
	if t.started {
		t.mu.Unlock()
		return
	}
	t.started = true
	t.startedAt = time.Now()
	t.mu.Unlock()

	t.poller.Start(ctx)
	go t.stageLoop(ctx)
	go t.pollLoop(ctx)
}

// Stop halts both timers. Safe to call more than once.
func (t *Tracker) Stop() {
	t.stopOnce.Do(func() { close(t.stop) })
	t.poller.Stop()
}

// Snapshot returns the tracker's current view.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

// Updates returns a channel carrying a snapshot after every state
// change. Older snapshots are dropped when the consumer falls behind.
func (t *Tracker) Updates() <-chan Snapshot {
	return t.updates
}

func (t *Tracker) stageLoop(ctx context.Context) {
	ticker := time.NewTicker(t.stageEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.stop:
			return
		case <-ticker.C:
			t.mu.Lock()
			if t.done {
				t.mu.Unlock()
				return
			}
			if t.stageIdx < len(Stages)-1 {
				t.stageIdx++
			}
			snap := t.snapshotLocked()
			t.mu.Unlock()
			t.emit(snap)
		}
	}
}

func (t *Tracker) pollLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.stop:
			return
		case result := <-t.poller.Updates():
			if t.observe(result) {
				return
			}
		}
	}
}

// observe folds one poll result into the tracker state. It reports
// whether the run finished.
func (t *Tracker) observe(result poll.Result[*domain.ContentPackage]) bool {
	t.mu.Lock()
	if t.done {
		t.mu.Unlock()
		return true
	}

	switch {
	case errors.Is(result.Err, api.ErrNotFound):
		// Still generating. Not an error, and not a recovery either:
		// an earlier real failure stays visible until a poll actually
		// succeeds.
	case result.Err != nil:
		t.lastErr = result.Err
	case result.Value != nil && result.Value.Status == domain.StatusGenerating:
		t.lastErr = nil
		t.pkg = result.Value
	default:
		t.lastErr = nil
		t.pkg = result.Value
		t.done = true
		t.completedAt = time.Now()
		t.stageIdx = len(Stages) - 1
	}

	done := t.done
	pkg := t.pkg
	snap := t.snapshotLocked()
	t.mu.Unlock()

	t.emit(snap)

	if done {
		t.completeOnce.Do(func() {
			if t.onComplete != nil {
				t.onComplete(pkg)
			}
		})
		t.Stop()
	}
	return done
}

func (t *Tracker) snapshotLocked() Snapshot {
	elapsed := time.Since(t.startedAt)
	if t.done {
		elapsed = t.completedAt.Sub(t.startedAt)
	}
	return Snapshot{
		PackageID:  t.packageID,
		StageIndex: t.stageIdx,
		Stage:      Stages[t.stageIdx],
		Elapsed:    elapsed,
		Done:       t.done,
		Package:    t.pkg,
		Err:        t.lastErr,
	}
}

func (t *Tracker) emit(snap Snapshot) {
	select {
	case t.updates <- snap:
	default:
		select {
		case <-t.updates:
		default:
		}
		select {
		case t.updates <- snap:
		default:
		}
	}
}
