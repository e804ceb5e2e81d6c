package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/Meow-nya-nya-nya/chat-game/pkg/chat"
)

func TestMockLLMAPI(t *testing.T) {
	mockService := NewMockLLMAPI()

	err := mockService.InitModel(context.Background(), "test-model")
	if err != nil {
		t.Errorf("InitModel failed: %v", err)
	}

	if len(mockService.InitModelCalls) != 1 {
		t.Errorf("Expected 1 InitModel call, got %d", len(mockService.InitModelCalls))
	}
	if mockService.InitModelCalls[0] != "test-model" {
		t.Errorf("Expected model name 'test-model', got '%s'", mockService.InitModelCalls[0])
	}

	messages := []chat.ChatMessage{
		{Role: chat.ChatRoleUser, Content: "Hello"},
	}

	response, err := mockService.GetChatResponse(context.Background(), messages)
	if err != nil {
		t.Errorf("GetChatResponse failed: %v", err)
	}
	if response.Message != `{"msg": "Mock response", "mood": 0.5}` {
		t.Errorf("Unexpected default response: %s", response.Message)
	}

	_, chatCalls, _ := mockService.GetCalls()
	if len(chatCalls) != 1 {
		t.Errorf("Expected 1 GetChatResponse call, got %d", len(chatCalls))
	}
	if len(chatCalls[0].Messages) != 1 || chatCalls[0].Messages[0].Content != "Hello" {
		t.Errorf("Unexpected recorded call: %+v", chatCalls[0])
	}
}

func TestMockLLMAPI_SetResponse(t *testing.T) {
	mockService := NewMockLLMAPI()
	mockService.SetResponse(`{"msg": "Custom reply", "mood": 0.9}`)

	response, err := mockService.GetChatResponse(context.Background(), nil)
	if err != nil {
		t.Fatalf("GetChatResponse failed: %v", err)
	}
	if response.Message != `{"msg": "Custom reply", "mood": 0.9}` {
		t.Errorf("Unexpected response: %s", response.Message)
	}
}

func TestMockLLMAPI_SetError(t *testing.T) {
	mockService := NewMockLLMAPI()
	expectedErr := fmt.Errorf("API request failed with status 500")
	mockService.SetError(expectedErr)

	_, err := mockService.GetChatResponse(context.Background(), nil)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if err.Error() != expectedErr.Error() {
		t.Errorf("Expected error '%v', got '%v'", expectedErr, err)
	}
}

func TestMockLLMAPI_Reset(t *testing.T) {
	mockService := NewMockLLMAPI()

	_ = mockService.InitModel(context.Background(), "m")
	_, _ = mockService.GetChatResponse(context.Background(), nil)
	_, _ = mockService.IsModelReady(context.Background(), "m")

	mockService.Reset()

	initCalls, chatCalls, readyCalls := mockService.GetCalls()
	if len(initCalls) != 0 || len(chatCalls) != 0 || len(readyCalls) != 0 {
		t.Errorf("Reset should clear call tracking: %d/%d/%d", len(initCalls), len(chatCalls), len(readyCalls))
	}
}
