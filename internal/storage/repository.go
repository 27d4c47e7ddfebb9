// ABOUTME: Key/value storage interface for guest-mode persistence.
// ABOUTME: Implemented by SQLite, Badger, in-memory, and Charm-backed stores.
package storage

import "errors"

// ErrNotFound is returned by Get when the key has never been set.
var ErrNotFound = errors.New("key not found")

// KV is the get/set capability the local tally store persists through.
// Implementations can be swapped freely (e.g., for testing).
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}
