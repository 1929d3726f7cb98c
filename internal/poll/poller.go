// Package poll provides a generic interval-based re-fetch primitive.
//
// A Poller repeatedly invokes a producer on a fixed interval, exposing
// the latest result, last error, and an in-flight flag. Producer errors
// are captured in the snapshot rather than stopping the loop, so a
// transient failure never halts polling.
//
// The poller deliberately does not serialize producer calls: if a call
// takes longer than the interval, the next tick launches a concurrent
// call regardless. Consumers that need mutual exclusion must provide it
// in the producer.
package poll

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is the polling cadence when none is configured.
const DefaultInterval = 30 * time.Second

// Result is the latest observation from the producer.
type Result[T any] struct {
	Value T
	Err   error
	// Loading reports whether at least one producer call is in flight.
	Loading bool
	// LastFetch is when the most recent producer call completed.
	LastFetch time.Time
}

// Poller drives a producer on a fixed interval.
type Poller[T any] struct {
	producer func(context.Context) (T, error)
	interval time.Duration

	mu       sync.Mutex
	latest   Result[T]
	inflight int

	updates  chan Result[T]
	refresh  chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
	started  bool
}

// Option configures a Poller during construction.
type Option func(*options)

type options struct {
	interval time.Duration
}

// WithInterval sets the polling interval.
func WithInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.interval = d
		}
	}
}

// New creates a Poller for the given producer. Call Start to begin
// polling.
func New[T any](producer func(context.Context) (T, error), opts ...Option) *Poller[T] {
	o := options{interval: DefaultInterval}
	for _, opt := range opts {
		opt(&o)
	}
	return &Poller[T]{
		producer: producer,
		interval: o.interval,
		updates:  make(chan Result[T], 16),
		refresh:  make(chan struct{}, 1),
		stop:     make(chan struct{}),
	}
}

// Start performs an immediate fetch and then schedules fetches every
// interval until Stop is called or ctx is cancelled. Starting an
// already started poller is a no-op.
func (p *Poller[T]) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	go p.loop(ctx)
}

// Stop deterministically halts scheduling: no producer invocations are
// issued after Stop returns. An in-flight call is allowed to finish,
// but its result is discarded.
func (p *Poller[T]) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
}

// Refresh requests an out-of-band immediate fetch without disturbing
// the interval schedule. It is a no-op if a refresh is already queued
// or the poller is stopped.
func (p *Poller[T]) Refresh() {
	select {
	case p.refresh <- struct{}{}:
	default:
	}
}

// Snapshot returns the latest observation.
func (p *Poller[T]) Snapshot() Result[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	r := p.latest
	r.Loading = p.inflight > 0
	return r
}

// Updates returns a channel carrying each completed observation. The
// channel is buffered; when a consumer falls behind, older observations
// are dropped in favor of newer ones.
func (p *Poller[T]) Updates() <-chan Result[T] {
	return p.updates
}

func (p *Poller[T]) loop(ctx context.Context) {
	// Immediate first fetch on start.
	go p.fetchOnce(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stop:
			return
		case <-ticker.C:
			// No in-flight guard: a slow producer call does not
			// suppress the next tick.
			go p.fetchOnce(ctx)
		case <-p.refresh:
			go p.fetchOnce(ctx)
		}
	}
}

func (p *Poller[T]) fetchOnce(ctx context.Context) {
	p.mu.Lock()
	p.inflight++
	p.mu.Unlock()

	value, err := p.producer(ctx)

	p.mu.Lock()
	p.inflight--
	r := Result[T]{
		Value:     value,
		Err:       err,
		Loading:   p.inflight > 0,
		LastFetch: time.Now(),
	}
	p.latest = r
	p.mu.Unlock()

	select {
	case <-p.stop:
		// Stopped while the call was in flight; discard.
		return
	default:
	}

	// Drop the oldest pending update if the consumer is behind.
	select {
	case p.updates <- r:
	default:
		select {
		case <-p.updates:
		default:
		}
		select {
		case p.updates <- r:
		default:
		}
	}
}
