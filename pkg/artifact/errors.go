package artifact

import (
	"errors"
	"fmt"
)

// Resolution outcomes. NotFound and Expired are expected results of normal
// operation, not failures; callers map them to their own status codes.
var (
	// ErrNotFound means the token was never issued or its entry is already gone.
	ErrNotFound = errors.New("artifact not found")

	// ErrExpired means the token was found past its deadline. The artifact is
	// evicted as part of the same observation, so later lookups see ErrNotFound.
	ErrExpired = errors.New("artifact expired")

	// ErrDuplicateToken means an insert collided with an already registered
	// token. With 122 bits of randomness this signals a broken token source,
	// not bad luck.
	ErrDuplicateToken = errors.New("duplicate token")
)

// StorageError wraps a blob storage failure with the failed operation and
// the storage key involved.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
