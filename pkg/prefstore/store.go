// Package prefstore persists small string preferences across sessions.
//
// Storage is best-effort: callers treat ErrNotFound and ErrUnavailable the
// same way, as "no saved value", and keep running on in-memory state.
package prefstore

import (
	"errors"
	"fmt"
)

// DefaultKey is the key the theme preference is stored under.
const DefaultKey = "theme-pulse-theme"

var (
	// ErrNotFound is returned by Get when no value is stored for the key.
	ErrNotFound = errors.New("preference not found")

	// ErrUnavailable is matched by every UnavailableError.
	ErrUnavailable = errors.New("preference storage unavailable")
)

// Store reads and writes string values by key.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// UnavailableError reports a storage read or write that failed at the I/O
// layer (missing permissions, full disk, corrupt file).
type UnavailableError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *UnavailableError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("prefstore: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("prefstore: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrUnavailable) match.
func (e *UnavailableError) Is(target error) bool {
	return target == ErrUnavailable
}
