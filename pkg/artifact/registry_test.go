package artifact

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryWithToken(token string) Entry {
	now := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	return Entry{
		Token:     token,
		Handle:    Handle{Key: token + ".pdf", ContentType: "application/pdf", Size: 42},
		Filename:  "form.pdf",
		CreatedAt: now,
		ExpiresAt: now.Add(5 * time.Minute),
	}
}

func TestRegistryPutGet(t *testing.T) {
	r := NewRegistry()
	e := entryWithToken("tok-1")

	require.NoError(t, r.Put(e))

	got, ok := r.Get("tok-1")
	require.True(t, ok)
	assert.Equal(t, e, got)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryGetMissing(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Get("missing")
	assert.False(t, ok)
}

func TestRegistryPutDuplicateRejected(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Put(entryWithToken("tok-1")))

	err := r.Put(entryWithToken("tok-1"))
	assert.ErrorIs(t, err, ErrDuplicateToken)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryDeleteIdempotent(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Put(entryWithToken("tok-1")))

	r.Delete("tok-1")
	r.Delete("tok-1")
	r.Delete("never-existed")

	assert.Zero(t, r.Len())
}

func TestRegistrySnapshotIsACopy(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Put(entryWithToken("tok-1")))
	require.NoError(t, r.Put(entryWithToken("tok-2")))

	snap := r.Snapshot()
	require.Len(t, snap, 2)

	// Mutations after the snapshot do not show up in it.
	r.Delete("tok-1")
	r.Delete("tok-2")
	assert.Len(t, snap, 2)
	assert.Zero(t, r.Len())
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			token := fmt.Sprintf("tok-%d", n)
			require.NoError(t, r.Put(entryWithToken(token)))
			_, ok := r.Get(token)
			assert.True(t, ok)
			_ = r.Snapshot()
			if n%2 == 0 {
				r.Delete(token)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 25, r.Len())
}
