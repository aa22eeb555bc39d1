package artifact

import (
	"errors"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/paperdrop/paperdrop/pkg/logging"
	"github.com/paperdrop/paperdrop/pkg/metrics"
)

// DefaultTTL bounds entries issued without an explicit lifetime.
const DefaultTTL = 5 * time.Minute

// newToken generates access tokens. A UUIDv4 carries 122 bits of
// randomness. Swappable in tests to force collisions.
var newToken = func() string { return uuid.New().String() }

// Store is the access gateway over the registry and the blob writer. It
// issues tokens for fresh payloads and resolves tokens back to entries,
// evicting expired artifacts on first observation.
type Store struct {
	registry *Registry
	blobs    *BlobWriter
	clock    Clock
	logger   *logging.Logger
	metrics  metrics.StoreMetrics
}

// NewStore wires a store from its parts. A nil clock falls back to the
// system clock and nil metrics to a no-op sink.
func NewStore(blobs *BlobWriter, clock Clock, logger *logging.Logger, m metrics.StoreMetrics) *Store {
	if clock == nil {
		clock = SystemClock()
	}
	if m == nil {
		m = metrics.Noop{}
	}
	return &Store{
		registry: NewRegistry(),
		blobs:    blobs,
		clock:    clock,
		logger:   logger,
		metrics:  m,
	}
}

// Issue stores data and registers a fresh token for it. A non-positive
// ttl falls back to DefaultTTL so a bad policy value never blocks
// issuance. On a token collision the token is regenerated once; a second
// collision aborts and removes the blob so nothing dangles.
func (s *Store) Issue(data []byte, contentType, filename string, ttl time.Duration) (Entry, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	handle, err := s.blobs.Store(data, contentType)
	if err != nil {
		return Entry{}, err
	}

	now := s.clock.Now()
	entry := Entry{
		Token:     newToken(),
		Handle:    handle,
		Filename:  filename,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	err = s.registry.Put(entry)
	if errors.Is(err, ErrDuplicateToken) {
		entry.Token = newToken()
		err = s.registry.Put(entry)
	}
	if err != nil {
		if derr := s.blobs.Delete(handle); derr != nil {
			s.logger.Error("orphaned blob after failed issue", "key", handle.Key, "error", derr)
		}
		return Entry{}, err
	}

	s.metrics.IncIssued(contentType)
	s.logger.Debug("artifact issued",
		"key", handle.Key,
		"size", humanize.Bytes(uint64(handle.Size)),
		"filename", filename,
		"expires_at", entry.ExpiresAt.Format(time.RFC3339))
	return entry, nil
}

// Resolve exchanges a token for its live entry. An expired entry is
// evicted as part of the observation, so the first caller past the
// deadline gets ErrExpired and everyone after gets ErrNotFound. Both are
// expected outcomes of normal traffic.
func (s *Store) Resolve(token string) (Entry, error) {
	entry, ok := s.registry.Get(token)
	if !ok {
		s.metrics.IncResolved("not_found")
		return Entry{}, ErrNotFound
	}

	if entry.Expired(s.clock.Now()) {
		s.evict(entry, "lazy")
		s.metrics.IncResolved("expired")
		return Entry{}, ErrExpired
	}

	s.metrics.IncResolved("ok")
	return entry, nil
}

// Open streams the blob behind a resolved entry.
func (s *Store) Open(h Handle) (afero.File, error) {
	return s.blobs.Open(h)
}

// Len reports how many artifacts are currently registered.
func (s *Store) Len() int {
	return s.registry.Len()
}

// Close evicts everything still registered. Links never outlive the
// process, so shutdown reclaims the whole scratch directory.
func (s *Store) Close() {
	for _, e := range s.registry.Snapshot() {
		s.evict(e, "shutdown")
	}
}

// evict is the single authoritative destruction routine shared by lazy
// expiry, the reaper and shutdown. Blob first, then registry row; each
// side tolerates the other eviction path having won the race. A failed
// blob delete is logged and swallowed so one bad file cannot wedge
// expiry for everything else.
func (s *Store) evict(e Entry, cause string) {
	if err := s.blobs.Delete(e.Handle); err != nil {
		s.logger.Error("blob delete failed during eviction",
			"key", e.Handle.Key, "cause", cause, "error", err)
	}
	s.registry.Delete(e.Token)
	s.metrics.IncEvicted(cause)
	s.logger.Debug("artifact evicted", "key", e.Handle.Key, "cause", cause)
}
