package artifact

import (
	"context"
	"sync/atomic"
	"time"
)

// ReaperState is the observable state of the background sweeper.
type ReaperState string

const (
	ReaperIdle     ReaperState = "idle"
	ReaperSweeping ReaperState = "sweeping"
)

// DefaultSweepInterval matches the shortest retention policy so nothing
// lingers much more than one interval past its deadline.
const DefaultSweepInterval = 5 * time.Minute

// Reaper periodically clears expired entries that no read ever observed.
// It works from registry snapshots and never holds the registry lock
// across a pass.
type Reaper struct {
	store    *Store
	interval time.Duration
	sweeping atomic.Bool
}

// NewReaper schedules sweeps over store. A non-positive interval falls
// back to DefaultSweepInterval.
func NewReaper(store *Store, interval time.Duration) *Reaper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Reaper{store: store, interval: interval}
}

// Interval returns the configured sweep cadence.
func (r *Reaper) Interval() time.Duration {
	return r.interval
}

// Run sweeps on a ticker until ctx is cancelled.
func (r *Reaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.store.logger.Info("reaper started", "interval", r.interval)
	for {
		select {
		case <-ctx.Done():
			r.store.logger.Info("reaper stopped")
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// Sweep performs one pass over a snapshot and reports how many entries it
// evicted. Entries that vanished between snapshot and delete were claimed
// by the lazy path; destroying them again is a no-op.
func (r *Reaper) Sweep() int {
	r.sweeping.Store(true)
	defer r.sweeping.Store(false)

	now := r.store.clock.Now()
	evicted := 0
	for _, e := range r.store.registry.Snapshot() {
		if !e.Expired(now) {
			continue
		}
		r.store.evict(e, "sweep")
		evicted++
	}

	r.store.metrics.IncSweeps()
	if evicted > 0 {
		r.store.logger.Info("sweep reclaimed artifacts",
			"evicted", evicted, "remaining", r.store.registry.Len())
	}
	return evicted
}

// State reports whether a sweep is in flight.
func (r *Reaper) State() ReaperState {
	if r.sweeping.Load() {
		return ReaperSweeping
	}
	return ReaperIdle
}
