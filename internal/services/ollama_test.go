package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/Meow-nya-nya-nya/chat-game/pkg/chat"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestOllamaService_IsModelReady(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"models": [{"name": "llama3"}, {"name": "qwen2"}]}`)
	}))
	defer server.Close()

	service := NewOllamaService(server.URL, "llama3", testLogger())

	ready, err := service.IsModelReady(context.Background(), "llama3")
	if err != nil {
		t.Fatalf("IsModelReady failed: %v", err)
	}
	if !ready {
		t.Error("Expected llama3 to be ready")
	}

	ready, err = service.IsModelReady(context.Background(), "mistral")
	if err != nil {
		t.Fatalf("IsModelReady failed: %v", err)
	}
	if ready {
		t.Error("Expected mistral to be absent")
	}
}

func TestOllamaService_InitModel_PullsMissingModel(t *testing.T) {
	pulled := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			fmt.Fprint(w, `{"models": []}`)
		case "/api/pull":
			var req map[string]any
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("Failed to decode pull request: %v", err)
			}
			if req["name"] != "llama3" {
				t.Errorf("Pull requested model %v, want llama3", req["name"])
			}
			pulled = true
			fmt.Fprint(w, `{"status": "success"}`)
		default:
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	service := NewOllamaService(server.URL, "llama3", testLogger())
	if err := service.InitModel(context.Background(), "llama3"); err != nil {
		t.Fatalf("InitModel failed: %v", err)
	}
	if !pulled {
		t.Error("Expected missing model to be pulled")
	}
}

func TestOllamaService_GetChatResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req["stream"] != false {
			t.Error("Streaming should be disabled")
		}
		fmt.Fprint(w, `{"message": {"role": "assistant", "content": "{\"msg\": \"Greetings\", \"mood\": 0.7}"}, "done": true}`)
	}))
	defer server.Close()

	service := NewOllamaService(server.URL, "llama3", testLogger())
	resp, err := service.GetChatResponse(context.Background(), []chat.ChatMessage{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("GetChatResponse failed: %v", err)
	}
	if !strings.Contains(resp.Message, "Greetings") {
		t.Errorf("Unexpected message %q", resp.Message)
	}
}

func TestOllamaService_GetChatResponse_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error": "model not found"}`)
	}))
	defer server.Close()

	service := NewOllamaService(server.URL, "llama3", testLogger())
	_, err := service.GetChatResponse(context.Background(), nil)
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("Expected status error, got %v", err)
	}
}

func TestOllamaService_GetChatResponse_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"message": {"role": "assistant", "content": ""}, "done": true}`)
	}))
	defer server.Close()

	service := NewOllamaService(server.URL, "llama3", testLogger())
	_, err := service.GetChatResponse(context.Background(), nil)
	if err == nil || !strings.Contains(err.Error(), "no content") {
		t.Errorf("Expected no-content error, got %v", err)
	}
}
