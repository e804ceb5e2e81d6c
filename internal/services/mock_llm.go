package services

import (
	"context"
	"sync"

	"github.com/Meow-nya-nya-nya/chat-game/pkg/chat"
)

// MockLLMAPI is a mock implementation of LLMService for testing
type MockLLMAPI struct {
	InitModelFunc       func(ctx context.Context, modelName string) error
	GetChatResponseFunc func(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error)
	IsModelReadyFunc    func(ctx context.Context, modelName string) (bool, error)

	// Track calls for testing
	InitModelCalls       []string
	GetChatResponseCalls []GetChatResponseCall
	IsModelReadyCalls    []string

	mu sync.Mutex // protects all fields above
}

type GetChatResponseCall struct {
	Messages []chat.ChatMessage
}

// NewMockLLMAPI creates a new mock LLM service
func NewMockLLMAPI() *MockLLMAPI {
	return &MockLLMAPI{
		InitModelCalls:       make([]string, 0),
		GetChatResponseCalls: make([]GetChatResponseCall, 0),
		IsModelReadyCalls:    make([]string, 0),
	}
}

// InitModel mocks model initialization
func (m *MockLLMAPI) InitModel(ctx context.Context, modelName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.InitModelCalls = append(m.InitModelCalls, modelName)

	if m.InitModelFunc != nil {
		return m.InitModelFunc(ctx, modelName)
	}
	return nil
}

// GetChatResponse mocks response generation
func (m *MockLLMAPI) GetChatResponse(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetChatResponseCalls = append(m.GetChatResponseCalls, GetChatResponseCall{
		Messages: messages,
	})

	if m.GetChatResponseFunc != nil {
		return m.GetChatResponseFunc(ctx, messages)
	}

	return &chat.ChatResponse{
		Message: `{"msg": "Mock response", "mood": 0.5}`,
	}, nil
}

// IsModelReady mocks model readiness check
func (m *MockLLMAPI) IsModelReady(ctx context.Context, modelName string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.IsModelReadyCalls = append(m.IsModelReadyCalls, modelName)

	if m.IsModelReadyFunc != nil {
		return m.IsModelReadyFunc(ctx, modelName)
	}
	return true, nil
}

// Reset clears all call tracking
func (m *MockLLMAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InitModelCalls = make([]string, 0)
	m.GetChatResponseCalls = make([]GetChatResponseCall, 0)
	m.IsModelReadyCalls = make([]string, 0)
}

// SetResponse sets up the mock to return a fixed message
func (m *MockLLMAPI) SetResponse(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetChatResponseFunc = func(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
		return &chat.ChatResponse{Message: message}, nil
	}
}

// SetError sets up the mock to return an error on GetChatResponse
func (m *MockLLMAPI) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetChatResponseFunc = func(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
		return nil, err
	}
}

// GetCalls returns a copy of the call tracking data in a thread-safe way
func (m *MockLLMAPI) GetCalls() ([]string, []GetChatResponseCall, []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	initCalls := make([]string, len(m.InitModelCalls))
	copy(initCalls, m.InitModelCalls)

	respCalls := make([]GetChatResponseCall, len(m.GetChatResponseCalls))
	copy(respCalls, m.GetChatResponseCalls)

	readyCalls := make([]string, len(m.IsModelReadyCalls))
	copy(readyCalls, m.IsModelReadyCalls)

	return initCalls, respCalls, readyCalls
}
