package session

import "sync"

// KeyedMutex provides one mutex per key with automatic cleanup: an entry
// lives only while at least one goroutine holds or waits on it, so the map
// does not grow with the number of visitors ever seen.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*mutexEntry
}

type mutexEntry struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedMutex creates an empty keyed mutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{entries: make(map[string]*mutexEntry)}
}

// Lock acquires the mutex for key, blocking until it is available, and
// returns the function that releases it.
func (km *KeyedMutex) Lock(key string) func() {
	km.mu.Lock()
	entry, ok := km.entries[key]
	if !ok {
		entry = &mutexEntry{}
		km.entries[key] = entry
	}
	entry.refs++
	km.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		km.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(km.entries, key)
		}
		km.mu.Unlock()
	}
}

// ActiveCount returns the number of keys with a held or awaited lock.
func (km *KeyedMutex) ActiveCount() int {
	km.mu.Lock()
	defer km.mu.Unlock()

	return len(km.entries)
}
