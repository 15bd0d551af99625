// Package history keeps the list of recent search terms.
//
// The list is most-recent-first, holds at most Capacity entries and never
// contains the same term twice. Recording a term that is already present
// leaves the list untouched, including its order. Every change is written
// back to the key-value store as a JSON array.
package history

import (
	"encoding/json"
	"fmt"
	"log"
	"slices"
	"sync"

	"herbalsearch/internal/kvstore"
)

const (
	// DefaultKey is the store key the list is kept under
	DefaultKey = "searchHistory"
	// DefaultCapacity is the number of terms kept
	DefaultCapacity = 5
)

// History is the persisted recent-search list
type History struct {
	mu       sync.Mutex
	store    kvstore.Store
	key      string
	capacity int
	entries  []string
}

// Option configures a History
type Option func(*History)

// WithKey overrides the store key
func WithKey(key string) Option {
	return func(h *History) {
		if key != "" {
			h.key = key
		}
	}
}

// WithCapacity overrides the number of kept terms
func WithCapacity(n int) Option {
	return func(h *History) {
		if n > 0 {
			h.capacity = n
		}
	}
}

// Load reads the list from store. An absent key is initialised to an empty
// list; an unreadable value is logged and replaced by an empty list.
func Load(store kvstore.Store, opts ...Option) (*History, error) {
	h := &History{
		store:    store,
		key:      DefaultKey,
		capacity: DefaultCapacity,
		entries:  []string{},
	}
	for _, opt := range opts {
		opt(h)
	}

	raw, ok, err := store.Get(h.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read search history: %w", err)
	}
	if !ok {
		if err := store.Set(h.key, "[]"); err != nil {
			return nil, fmt.Errorf("failed to initialise search history: %w", err)
		}
		return h, nil
	}

	var entries []string
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		log.Printf("Discarding unreadable search history under %q: %v", h.key, err)
		return h, nil
	}
	entries = dedupe(entries)
	if len(entries) > h.capacity {
		entries = entries[:h.capacity]
	}
	if entries != nil {
		h.entries = entries
	}
	return h, nil
}

// Record puts term at the front of the list unless it is already present.
// It reports whether the list changed. When persisting fails the in-memory
// list keeps the new term and the error is returned.
func (h *History) Record(term string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if slices.Contains(h.entries, term) {
		return false, nil
	}

	h.entries = slices.Insert(h.entries, 0, term)
	if len(h.entries) > h.capacity {
		h.entries = h.entries[:h.capacity]
	}

	data, err := json.Marshal(h.entries)
	if err != nil {
		return true, fmt.Errorf("failed to marshal search history: %w", err)
	}
	if err := h.store.Set(h.key, string(data)); err != nil {
		return true, fmt.Errorf("failed to save search history: %w", err)
	}
	return true, nil
}

// Entries returns a copy of the list, most recent first
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.entries)
}

// Len returns the number of stored terms
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Capacity returns the maximum number of stored terms
func (h *History) Capacity() int {
	return h.capacity
}

// dedupe keeps the first occurrence of every term
func dedupe(entries []string) []string {
	seen := make(map[string]struct{}, len(entries))
	out := entries[:0]
	for _, e := range entries {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}
