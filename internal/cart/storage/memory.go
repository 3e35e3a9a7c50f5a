package storage

import (
	"context"
	"sync"

	"cinemax/internal/models"
)

// Memory keeps the snapshot in-process. Used when Redis is disabled or
// unreachable, and as a fixture in tests.
type Memory struct {
	mu   sync.Mutex
	snap models.CartSnapshot
	set  bool
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(ctx context.Context) (models.CartSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return models.CartSnapshot{}, nil
	}
	return m.snap, nil
}

func (m *Memory) Save(ctx context.Context, snap models.CartSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = snap
	m.set = true
	return nil
}
