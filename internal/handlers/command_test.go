package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Meow-nya-nya-nya/chat-game/internal/services"
	"github.com/Meow-nya-nya-nya/chat-game/internal/storage"
	"github.com/Meow-nya-nya-nya/chat-game/pkg/chat"
	"github.com/Meow-nya-nya-nya/chat-game/pkg/game"
)

func TestCommandHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		body           interface{}
		mockSetup      func(*services.MockLLMAPI)
		expectedStatus int
		expectedError  string
		checkResponse  func(t *testing.T, resp chat.CommandResponse)
	}{
		{
			name:           "look command",
			method:         http.MethodPost,
			body:           chat.CommandRequest{Command: "look"},
			mockSetup:      func(m *services.MockLLMAPI) {},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp chat.CommandResponse) {
				assert.Contains(t, resp.Response, "Village Center")
				assert.Equal(t, "center", resp.Location)
			},
		},
		{
			name:   "talk command reaches the LLM",
			method: http.MethodPost,
			body:   chat.CommandRequest{Command: "talk elder hello"},
			mockSetup: func(m *services.MockLLMAPI) {
				m.SetResponse(`{"msg": "Welcome, young one.", "mood": 0.8}`)
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp chat.CommandResponse) {
				assert.Contains(t, resp.Response, "Welcome, young one.")
			},
		},
		{
			name:   "talk command degrades on LLM failure",
			method: http.MethodPost,
			body:   chat.CommandRequest{Command: "talk elder hello"},
			mockSetup: func(m *services.MockLLMAPI) {
				m.SetError(errors.New("API request failed with status 401"))
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp chat.CommandResponse) {
				assert.Contains(t, resp.Response, "authentication failed")
			},
		},
		{
			name:   "move command updates location",
			method: http.MethodPost,
			body:   chat.CommandRequest{Command: "go north"},
			mockSetup: func(m *services.MockLLMAPI) {
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp chat.CommandResponse) {
				assert.Contains(t, resp.Response, "You head North.")
				assert.Equal(t, "forest", resp.Location)
			},
		},
		{
			name:           "method not allowed",
			method:         http.MethodGet,
			body:           nil,
			mockSetup:      func(m *services.MockLLMAPI) {},
			expectedStatus: http.StatusMethodNotAllowed,
			expectedError:  "Method not allowed. Only POST is supported.",
		},
		{
			name:           "invalid JSON body",
			method:         http.MethodPost,
			body:           "invalid json",
			mockSetup:      func(m *services.MockLLMAPI) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid request body. Expected JSON with 'gamestate_id' and 'command' fields.",
		},
		{
			name:           "empty command",
			method:         http.MethodPost,
			body:           chat.CommandRequest{Command: ""},
			mockSetup:      func(m *services.MockLLMAPI) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid request: command cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockLLM := services.NewMockLLMAPI()
			tt.mockSetup(mockLLM)

			mockStorage := storage.NewMemoryStorage()
			g := newTestGame(t, mockLLM)

			// Commands need a persisted session to act on.
			var gameStateID uuid.UUID
			if tt.expectedStatus == http.StatusOK {
				gs := g.NewGame()
				gameStateID = gs.ID
				if err := mockStorage.SaveGameState(context.Background(), gs.ID, gs); err != nil {
					t.Fatalf("Failed to save test game state: %v", err)
				}
				if reqBody, ok := tt.body.(chat.CommandRequest); ok {
					reqBody.GameStateID = gameStateID
					tt.body = reqBody
				}
			} else if reqBody, ok := tt.body.(chat.CommandRequest); ok {
				reqBody.GameStateID = uuid.New()
				tt.body = reqBody
			}

			handler := NewCommandHandler(g, mockStorage, testLogger())

			var body []byte
			if tt.body != nil {
				if str, ok := tt.body.(string); ok {
					body = []byte(str)
				} else {
					var err error
					body, err = json.Marshal(tt.body)
					assert.NoError(t, err)
				}
			}

			req := httptest.NewRequest(tt.method, "/v1/command", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code, "body: %s", rr.Body.String())

			var response chat.CommandResponse
			assert.NoError(t, json.NewDecoder(rr.Body).Decode(&response))

			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, response.Error)
				return
			}

			assert.Empty(t, response.Error)
			assert.Equal(t, gameStateID, response.GameStateID)
			if tt.checkResponse != nil {
				tt.checkResponse(t, response)
			}
		})
	}
}

func TestCommandHandler_GameStateNotFound(t *testing.T) {
	g := newTestGame(t, services.NewMockLLMAPI())
	handler := NewCommandHandler(g, storage.NewMemoryStorage(), testLogger())

	body, _ := json.Marshal(chat.CommandRequest{GameStateID: uuid.New(), Command: "look"})
	req := httptest.NewRequest(http.MethodPost, "/v1/command", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCommandHandler_PersistsTranscript(t *testing.T) {
	mockStorage := storage.NewMemoryStorage()
	g := newTestGame(t, services.NewMockLLMAPI())
	handler := NewCommandHandler(g, mockStorage, testLogger())

	gs := g.NewGame()
	assert.NoError(t, mockStorage.SaveGameState(context.Background(), gs.ID, gs))
	before := len(gs.History)

	body, _ := json.Marshal(chat.CommandRequest{GameStateID: gs.ID, Command: "look"})
	req := httptest.NewRequest(http.MethodPost, "/v1/command", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	saved, err := mockStorage.LoadGameState(context.Background(), gs.ID)
	assert.NoError(t, err)
	assert.NotNil(t, saved)
	assert.Len(t, saved.History, before+2)
	assert.Equal(t, game.EntryCommand, saved.History[before].Type)
	assert.Equal(t, "> look", saved.History[before].Content)
	assert.Equal(t, game.EntryResponse, saved.History[before+1].Type)
}

func TestCommandHandler_ClearCommandEmptiesHistory(t *testing.T) {
	mockStorage := storage.NewMemoryStorage()
	g := newTestGame(t, services.NewMockLLMAPI())
	handler := NewCommandHandler(g, mockStorage, testLogger())

	gs := g.NewGame()
	assert.NoError(t, mockStorage.SaveGameState(context.Background(), gs.ID, gs))

	body, _ := json.Marshal(chat.CommandRequest{GameStateID: gs.ID, Command: "clear"})
	req := httptest.NewRequest(http.MethodPost, "/v1/command", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	saved, err := mockStorage.LoadGameState(context.Background(), gs.ID)
	assert.NoError(t, err)
	// The cleared transcript holds only the clear command and its reply.
	assert.Len(t, saved.History, 2)
}
