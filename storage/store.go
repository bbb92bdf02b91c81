package storage

import (
	"errors"
	"sync"
)

// Store is the persistent key-value capability the storage syscalls run
// against. Implementations must be safe for use from a single call
// context; they are not required to be goroutine-safe unless shared.
type Store interface {
	// Get returns the value stored under key, if any.
	Get(key []byte) ([]byte, bool)

	// Set stores value under key and returns the length of the value it
	// replaced, if any.
	Set(key, value []byte) (prevLen int, existed bool, err error)

	// Delete removes key and returns the length of the removed value,
	// if any.
	Delete(key []byte) (prevLen int, existed bool)

	// Contains reports whether key exists.
	Contains(key []byte) bool
}

// MemStore is an in-memory Store with configurable limits.
type MemStore struct {
	mu         sync.RWMutex
	data       map[string][]byte
	maxKeySize int
	maxValSize int
	maxEntries int
}

// MemStoreOption configures a MemStore.
type MemStoreOption func(*MemStore)

// WithMaxKeySize limits key length in bytes.
func WithMaxKeySize(n int) MemStoreOption {
	return func(s *MemStore) { s.maxKeySize = n }
}

// WithMaxValueSize limits value length in bytes.
func WithMaxValueSize(n int) MemStoreOption {
	return func(s *MemStore) { s.maxValSize = n }
}

// WithMaxEntries limits the number of stored keys.
func WithMaxEntries(n int) MemStoreOption {
	return func(s *MemStore) { s.maxEntries = n }
}

// NewMemStore creates an empty in-memory store. Without options all
// limits are unbounded.
func NewMemStore(opts ...MemStoreOption) *MemStore {
	s := &MemStore{data: make(map[string][]byte)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	errKeyTooLarge   = errors.New("key too large")
	errValueTooLarge = errors.New("value too large")
	errStoreFull     = errors.New("store full")
)

func (s *MemStore) Get(key []byte) ([]byte, bool) {
	s.mu.RLock()
	v, ok := s.data[string(key)]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true
}

func (s *MemStore) Set(key, value []byte) (int, bool, error) {
	if s.maxKeySize > 0 && len(key) > s.maxKeySize {
		return 0, false, errKeyTooLarge
	}
	if s.maxValSize > 0 && len(value) > s.maxValSize {
		return 0, false, errValueTooLarge
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.data[string(key)]
	if !existed && s.maxEntries > 0 && len(s.data) >= s.maxEntries {
		return 0, false, errStoreFull
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[string(key)] = stored
	return len(prev), existed, nil
}

func (s *MemStore) Delete(key []byte) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, existed := s.data[string(key)]
	delete(s.data, string(key))
	return len(prev), existed
}

func (s *MemStore) Contains(key []byte) bool {
	s.mu.RLock()
	_, ok := s.data[string(key)]
	s.mu.RUnlock()
	return ok
}

// Len returns the number of stored keys.
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
