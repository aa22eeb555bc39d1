package artifact

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperdrop/paperdrop/pkg/logging"
)

func TestSweepEvictsOnlyExpiredEntries(t *testing.T) {
	store, clock := newTestStore(t)
	reaper := NewReaper(store, time.Minute)

	stale, err := store.Issue(pdfBytes, "application/pdf", "stale.pdf", 5*time.Minute)
	require.NoError(t, err)
	fresh, err := store.Issue(pdfBytes, "application/pdf", "fresh.pdf", time.Hour)
	require.NoError(t, err)

	clock.Advance(10 * time.Minute)
	assert.Equal(t, 1, reaper.Sweep())

	_, err = store.Resolve(stale.Token)
	assert.ErrorIs(t, err, ErrNotFound, "swept entry is gone, not expired")

	resolved, err := store.Resolve(fresh.Token)
	require.NoError(t, err)
	assert.Equal(t, fresh.Handle, resolved.Handle)

	exists, err := store.blobs.Exists(stale.Handle)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSweepNothingExpired(t *testing.T) {
	store, _ := newTestStore(t)
	reaper := NewReaper(store, time.Minute)

	_, err := store.Issue(pdfBytes, "application/pdf", "form.pdf", time.Hour)
	require.NoError(t, err)

	assert.Zero(t, reaper.Sweep())
	assert.Equal(t, 1, store.Len())
}

func TestSweepToleratesLazyEvictionRace(t *testing.T) {
	store, clock := newTestStore(t)
	_ = NewReaper(store, time.Minute)

	issued, err := store.Issue(pdfBytes, "application/pdf", "form.pdf", 5*time.Minute)
	require.NoError(t, err)

	clock.Advance(10 * time.Minute)

	// The lazy path wins the race; the sweep then destroys an entry that
	// is already gone from the registry but still in its snapshot.
	snapshot := store.registry.Snapshot()
	_, err = store.Resolve(issued.Token)
	require.ErrorIs(t, err, ErrExpired)

	for _, e := range snapshot {
		store.evict(e, "sweep")
	}
	assert.Zero(t, store.Len())
}

func TestReaperStateTransitions(t *testing.T) {
	store, _ := newTestStore(t)
	reaper := NewReaper(store, time.Minute)

	assert.Equal(t, ReaperIdle, reaper.State())
	reaper.Sweep()
	assert.Equal(t, ReaperIdle, reaper.State(), "reaper returns to idle after a pass")
}

func TestReaperDefaultInterval(t *testing.T) {
	store, _ := newTestStore(t)
	assert.Equal(t, DefaultSweepInterval, NewReaper(store, 0).Interval())
	assert.Equal(t, time.Second, NewReaper(store, time.Second).Interval())
}

func TestReaperRunStopsOnCancel(t *testing.T) {
	store, _ := newTestStore(t)
	reaper := NewReaper(store, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		reaper.Run(ctx)
		close(done)
	}()

	time.Sleep(35 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reaper did not stop after cancellation")
	}
}

func TestReaperRunSweepsPeriodically(t *testing.T) {
	store, clock := newTestStore(t)
	reaper := NewReaper(store, 5*time.Millisecond)

	_, err := store.Issue(pdfBytes, "application/pdf", "form.pdf", time.Minute)
	require.NoError(t, err)
	clock.Advance(2 * time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go reaper.Run(ctx)

	require.Eventually(t, func() bool {
		return store.Len() == 0
	}, time.Second, 5*time.Millisecond, "ticker-driven sweep should evict the expired entry")
}

func TestSweepConcurrentWithIssueAndResolve(t *testing.T) {
	// Real clock: short TTLs must actually elapse while traffic flows.
	fs := afero.NewMemMapFs()
	blobs, err := NewBlobWriter(fs, "/data/artifacts")
	require.NoError(t, err)
	store := NewStore(blobs, SystemClock(), logging.NewTestLogger(), nil)
	t.Cleanup(store.Close)
	reaper := NewReaper(store, time.Minute)

	var wg, workers sync.WaitGroup
	stop := make(chan struct{})

	// Continuous sweeping while traffic flows.
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				reaper.Sweep()
			}
		}
	}()

	for worker := 0; worker < 4; worker++ {
		workers.Add(1)
		go func(n int) {
			defer workers.Done()
			for i := 0; i < 100; i++ {
				payload := []byte(fmt.Sprintf("worker-%d-%d", n, i))
				ttl := time.Hour
				if i%2 == 0 {
					ttl = time.Nanosecond
				}
				issued, err := store.Issue(payload, "text/plain", "f.txt", ttl)
				require.NoError(t, err)

				entry, err := store.Resolve(issued.Token)
				if err != nil {
					// Short-lived entries may expire before the read.
					continue
				}

				// An unexpired entry observed by Resolve must still have
				// its blob: the sweeper never deletes live artifacts.
				exists, eerr := store.blobs.Exists(entry.Handle)
				require.NoError(t, eerr)
				assert.True(t, exists, "live entry lost its blob")
			}
		}(worker)
	}

	workers.Wait()
	close(stop)
	wg.Wait()
}
