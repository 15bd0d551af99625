// Package kvstore provides the small string key-value stores the search
// history is persisted in.
package kvstore

import "fmt"

// Store is a string key-value store
type Store interface {
	// Get returns the value for key and whether it was present
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Backends accepted by Open
const (
	BackendFile = "file"
	BackendBolt = "bolt"
)

// Open opens the store for backend at path. The returned func releases it.
func Open(backend, path string) (Store, func() error, error) {
	switch backend {
	case "", BackendFile:
		fs, err := OpenFileStore(path)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() error { return nil }, nil
	case BackendBolt:
		bs, err := OpenBoltStore(path)
		if err != nil {
			return nil, nil, err
		}
		return bs, bs.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
