package services

import (
	"context"

	"github.com/Meow-nya-nya-nya/chat-game/pkg/chat"
)

// LLMService defines the interface for interacting with a chat-completion API
type LLMService interface {
	// InitModel initializes the LLM model on startup
	InitModel(ctx context.Context, modelName string) error

	// GetChatResponse generates a chat response using the LLM
	GetChatResponse(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error)

	// IsModelReady checks if the specified model is ready for use
	IsModelReady(ctx context.Context, modelName string) (bool, error)
}
