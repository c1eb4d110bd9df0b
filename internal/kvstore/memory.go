// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package kvstore

import (
	"context"
	"sync"
)

// Memory is a map-backed Store. State is lost when the process exits;
// it exists for tests and for running without any storage configured.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Load(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	payload, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}

	// Copy so callers can't mutate the stored payload.
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, true, nil
}

func (m *Memory) Save(_ context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(payload))
	copy(stored, payload)
	m.data[key] = stored
	return nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}
