package store

import (
	"context"
	"sync"

	"fairshare/internal/exploration"
)

// Memory is an in-memory Gateway for tests and ephemeral runs.
type Memory struct {
	mu    sync.Mutex
	exps  []exploration.Exploration
	Saves int // number of Save calls, for write-through assertions
}

// NewMemory creates an empty in-memory gateway.
func NewMemory() *Memory {
	return &Memory{}
}

// Load implements Gateway.
func (m *Memory) Load(_ context.Context) []exploration.Exploration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.exps == nil {
		return []exploration.Exploration{}
	}
	return exploration.CloneAll(m.exps)
}

// Save implements Gateway.
func (m *Memory) Save(_ context.Context, exps []exploration.Exploration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exps = exploration.CloneAll(exps)
	m.Saves++
}

// Seed replaces the stored collection without counting as a save.
func (m *Memory) Seed(exps []exploration.Exploration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exps = exploration.CloneAll(exps)
}
