package store

import (
    "context"
    "sync"
)

// Memory is the in-process KV backend.  It is the default in demo mode
// (state lives for the lifetime of the process, mirroring a single browser
// tab) and the backend used by tests.
type Memory struct {
    mu   sync.RWMutex
    data map[string][]byte
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
    return &Memory{data: make(map[string][]byte)}
}

// Get returns a copy of the value under key, or ErrKeyNotFound.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
    m.mu.RLock()
    defer m.mu.RUnlock()
    raw, ok := m.data[key]
    if !ok {
        return nil, ErrKeyNotFound
    }
    out := make([]byte, len(raw))
    copy(out, raw)
    return out, nil
}

// Set stores a copy of value under key.
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
    m.mu.Lock()
    defer m.mu.Unlock()
    raw := make([]byte, len(value))
    copy(raw, value)
    m.data[key] = raw
    return nil
}
