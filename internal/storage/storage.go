package storage

import "errors"

var (
	ErrEmptyKey = errors.New("storage key is empty")
)

// Store is the durable client-side storage port. It replaces the browser's
// persistent storage: string keys, opaque blob values, whole-value writes.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	// Delete is a no-op for missing keys.
	Delete(key string) error
}
