package game

import (
	"time"

	"github.com/google/uuid"
)

const (
	EntrySystem   = "system"
	EntryCommand  = "command"
	EntryResponse = "response"
)

// HistoryEntry is one line of the session's displayed transcript.
type HistoryEntry struct {
	Type    string `json:"type"` // "system", "command", "response"
	Content string `json:"content"`
}

// GameState is the caller-owned state of one game session. The interpreter
// mutates it in place; persistence is the caller's concern.
type GameState struct {
	ID         uuid.UUID      `json:"id"`
	Location   string         `json:"location,omitempty"`
	PlayerName string         `json:"player_name,omitempty"`
	History    []HistoryEntry `json:"history,omitempty"`
	Started    bool           `json:"started"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// NewGameState creates an empty game state with a fresh session ID.
func NewGameState() *GameState {
	now := time.Now()
	return &GameState{
		ID:        uuid.New(),
		History:   make([]HistoryEntry, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AppendHistory adds a transcript entry.
func (gs *GameState) AppendHistory(entryType, content string) {
	gs.History = append(gs.History, HistoryEntry{Type: entryType, Content: content})
}
