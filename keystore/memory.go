package keystore

import "sync"

// Memory is an in-process Store backed by a map. Values never touch disk;
// the zero value is not usable, use NewMemory.
type Memory struct {
	sync.RWMutex

	values map[string][]byte
	closed bool
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		values: make(map[string][]byte),
	}
}

// Get returns the value stored under key, or ErrKeyNotFound.
func (m *Memory) Get(key string) ([]byte, error) {
	m.RLock()
	defer m.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}
	value, ok := m.values[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Put stores value under key, replacing any existing value.
func (m *Memory) Put(key string, value []byte) error {
	m.Lock()
	defer m.Unlock()

	if m.closed {
		return ErrClosed
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.values[key] = stored
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (m *Memory) Delete(key string) error {
	m.Lock()
	defer m.Unlock()

	if m.closed {
		return ErrClosed
	}
	delete(m.values, key)
	return nil
}

// Close drops all stored values and marks the store unusable.
func (m *Memory) Close() error {
	m.Lock()
	defer m.Unlock()

	if m.closed {
		return ErrClosed
	}
	m.closed = true
	m.values = nil
	return nil
}
