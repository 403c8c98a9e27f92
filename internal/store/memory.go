package store

import "slices"

// Memory is an in-process Store for tests and dry runs.
type Memory struct {
	values map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

// Load returns a copy of the stored value, or (nil, nil) when absent.
func (m *Memory) Load(key string) ([]byte, error) {
	v, ok := m.values[key]
	if !ok {
		return nil, nil
	}
	return slices.Clone(v), nil
}

// Save stores a copy of value under key.
func (m *Memory) Save(key string, value []byte) error {
	m.values[key] = slices.Clone(value)
	return nil
}
