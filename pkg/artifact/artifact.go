// Package artifact implements an ephemeral artifact store: generated files
// parked in a scratch directory, addressed through unguessable tokens, and
// reclaimed on expiry by lazy reads or a background reaper. Nothing
// survives the process; restart means every link issued before is dead.
package artifact

import "time"

// Handle locates a stored blob and carries its content metadata. Handles
// are created by the blob writer and destroyed only by eviction, never by
// a downloader.
type Handle struct {
	Key         string
	ContentType string
	Size        int64
}

// Entry binds an access token to a stored blob for a bounded lifetime.
// Entries are immutable once issued; there is no renewal, the only
// transition is removal.
type Entry struct {
	Token     string
	Handle    Handle
	Filename  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the entry is past its deadline at now. The
// deadline instant itself still resolves.
func (e Entry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}
