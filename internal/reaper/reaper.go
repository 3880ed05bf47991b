// Package reaper implements the optional idle-session sweeper for
// long-running servers. The core state machine never removes sessions on
// its own; the reaper is the extension point that keeps abandoned cooks
// from accumulating.
package reaper

import (
	"context"
	"sync"
	"time"

	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/logger"
)

// Option configures the reaper.
type Option func(*Reaper)

// WithInterval sets how often the reaper scans for idle sessions.
func WithInterval(d time.Duration) Option {
	return func(r *Reaper) { r.interval = d }
}

// WithClock overrides the wall-clock source for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Reaper) { r.now = now }
}

// Reaper periodically removes sessions that have been untouched for
// longer than the TTL.
type Reaper struct {
	store    domain.SessionStore
	ttl      time.Duration
	interval time.Duration
	log      *logger.Logger
	now      func() time.Time

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
}

// New creates a reaper over the given store. Sessions idle for longer
// than ttl get removed on the next sweep.
func New(store domain.SessionStore, ttl time.Duration, log *logger.Logger, opts ...Option) *Reaper {
	r := &Reaper{
		store:    store,
		ttl:      ttl,
		interval: time.Minute,
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start begins the background sweep loop. Non-blocking.
func (r *Reaper) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		r.log.Warn("session reaper already running")
		return
	}

	childCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.running = true

	go r.loop(childCtx)
	r.log.Info("session reaper started (ttl=%s, interval=%s)", r.ttl, r.interval)
}

// Stop gracefully shuts down the reaper.
func (r *Reaper) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}
	r.cancel()
	r.running = false
	r.log.Info("session reaper stopped")
}

func (r *Reaper) loop(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

// Sweep removes every session whose last update is older than the TTL.
// Returns how many sessions were removed.
func (r *Reaper) Sweep(ctx context.Context) int {
	ids, err := r.store.IDs(ctx)
	if err != nil {
		r.log.Error("reaper: listing sessions: %v", err)
		return 0
	}

	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for _, id := range ids {
		idle := false
		err := r.store.View(ctx, id, func(s *domain.Session) {
			idle = s.UpdatedAt.Before(cutoff)
		})
		if err != nil {
			continue // removed concurrently, nothing to do
		}
		if !idle {
			continue
		}
		if err := r.store.Delete(ctx, id); err == nil {
			removed++
			r.log.Info("reaper: removed idle session %s", id)
		}
	}
	return removed
}
