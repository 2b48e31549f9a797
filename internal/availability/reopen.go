package availability

import (
	"context"
	"sync"
	"time"
)

// DefaultReopenInterval is how often a ReopenScheduler re-checks its closure.
const DefaultReopenInterval = 30 * time.Second

// RefreshFunc reloads a shop after its closure lapsed and returns the closure now stored.
type RefreshFunc func(ctx context.Context) (TemporaryClosure, error)

// SchedulerOption configures a ReopenScheduler.
type SchedulerOption func(*ReopenScheduler)

// WithInterval sets the tick interval. Non-positive values are ignored.
func WithInterval(d time.Duration) SchedulerOption {
	return func(s *ReopenScheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) SchedulerOption {
	return func(s *ReopenScheduler) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the shop timezone used to read ReopenTime.
func WithLocation(loc *time.Location) SchedulerOption {
	return func(s *ReopenScheduler) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithErrorHandler receives refresh errors.
func WithErrorHandler(fn func(error)) SchedulerOption {
	return func(s *ReopenScheduler) {
		s.onError = fn
	}
}

// ReopenScheduler watches one shop's temporary closure and calls refresh once each time the
// closure goes from active to lapsed. Refresh runs on the scheduler goroutine, so calls never
// overlap. Stop must not be called from inside refresh.
type ReopenScheduler struct {
	interval time.Duration
	now      func() time.Time
	loc      *time.Location
	refresh  RefreshFunc
	onError  func(error)

	mu      sync.Mutex
	closure TemporaryClosure
	expired bool
	version uint64
	started bool
	stopped bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewReopenScheduler creates a scheduler holding closure as its initial snapshot.
func NewReopenScheduler(closure TemporaryClosure, refresh RefreshFunc, opts ...SchedulerOption) *ReopenScheduler {
	s := &ReopenScheduler{
		interval: DefaultReopenInterval,
		now:      time.Now,
		loc:      time.UTC,
		refresh:  refresh,
		closure:  closure,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start evaluates the closure immediately and then on every tick until ctx ends or Stop is
// called. Calling Start twice, or after Stop, does nothing.
func (s *ReopenScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started || s.stopped {
		s.mu.Unlock()
		return
	}
	s.started = true
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.mu.Unlock()

	go s.run(ctx)
}

// Stop cancels the scheduler and waits for its goroutine to exit. No refresh starts after
// Stop returns.
func (s *ReopenScheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// Update replaces the held closure, for example after the owner edits it.
func (s *ReopenScheduler) Update(c TemporaryClosure) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closure = c
	s.expired = false
	s.version++
}

// Closure returns the snapshot currently held.
func (s *ReopenScheduler) Closure() TemporaryClosure {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closure
}

func (s *ReopenScheduler) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.check(ctx)

	for {
		select {
		case <-ticker.C:
			s.check(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (s *ReopenScheduler) check(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	now := s.now().In(s.loc)

	s.mu.Lock()
	c := s.closure
	expired := c.IsClosed && ClosureExpired(c, now)
	newlyExpired := expired && !s.expired
	s.expired = expired
	version := s.version
	s.mu.Unlock()

	if !newlyExpired || s.refresh == nil || ctx.Err() != nil {
		return
	}

	fresh, err := s.refresh(ctx)
	if err != nil {
		if s.onError != nil && ctx.Err() == nil {
			s.onError(err)
		}
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.version != version {
		return
	}
	s.closure = fresh
	s.expired = fresh.IsClosed && ClosureExpired(fresh, s.now().In(s.loc))
}
