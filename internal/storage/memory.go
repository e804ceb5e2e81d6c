package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Meow-nya-nya-nya/chat-game/pkg/game"
)

// MemoryStorage is an in-memory Storage implementation used by tests and
// single-process setups that have no Redis.
type MemoryStorage struct {
	mu     sync.RWMutex
	states map[uuid.UUID][]byte
}

var _ Storage = (*MemoryStorage)(nil)

// NewMemoryStorage creates an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		states: make(map[uuid.UUID][]byte),
	}
}

func (m *MemoryStorage) Ping(ctx context.Context) error {
	return nil
}

func (m *MemoryStorage) Close() error {
	return nil
}

func (m *MemoryStorage) SaveGameState(ctx context.Context, id uuid.UUID, gs *game.GameState) error {
	data, err := json.Marshal(gs)
	if err != nil {
		return fmt.Errorf("failed to marshal game state: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[id] = data
	return nil
}

func (m *MemoryStorage) LoadGameState(ctx context.Context, id uuid.UUID) (*game.GameState, error) {
	m.mu.RLock()
	data, ok := m.states[id]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	var gs game.GameState
	if err := json.Unmarshal(data, &gs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game state: %w", err)
	}
	return &gs, nil
}

func (m *MemoryStorage) DeleteGameState(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, id)
	return nil
}
