package chat

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	ChatRoleUser   = "user"      // Player
	ChatRoleAgent  = "assistant" // NPC
	ChatRoleSystem = "system"    // Game narration or system prompt
)

// ChatMessage is a single role-tagged message in a conversation.
// The shape matches the message lists accepted by chat-completion APIs.
type ChatMessage struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// ChatResponse is the raw text returned by an LLM provider.
type ChatResponse struct {
	Message string `json:"message"`
}

// CommandRequest is one line of player input addressed to a game session.
type CommandRequest struct {
	GameStateID uuid.UUID `json:"gamestate_id"`
	Command     string    `json:"command"`
}

// CommandResponse carries the formatted reply for a processed command.
type CommandResponse struct {
	GameStateID uuid.UUID `json:"gamestate_id,omitempty"`
	Command     string    `json:"command,omitempty"`
	Response    string    `json:"response,omitempty"`
	Location    string    `json:"location,omitempty"`
	Error       string    `json:"error,omitempty"`
}

func (cr *CommandRequest) Validate() error {
	if cr.GameStateID == uuid.Nil {
		return fmt.Errorf("gamestate_id is required")
	}
	if cr.Command == "" {
		return fmt.Errorf("command cannot be empty")
	}
	return nil
}
