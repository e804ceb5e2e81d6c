package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Meow-nya-nya-nya/chat-game/internal/storage"
	"github.com/Meow-nya-nya-nya/chat-game/pkg/chat"
	"github.com/Meow-nya-nya-nya/chat-game/pkg/game"
)

// CommandHandler processes one player command per request against a stored
// game session.
type CommandHandler struct {
	game    *game.Game
	storage storage.Storage
	logger  *slog.Logger
}

func NewCommandHandler(g *game.Game, storage storage.Storage, logger *slog.Logger) *CommandHandler {
	return &CommandHandler{
		game:    g,
		storage: storage,
		logger:  logger,
	}
}

// ServeHTTP handles POST /v1/command
func (h *CommandHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		h.logger.Warn("Method not allowed for command endpoint",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr)
		writeCommandError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only POST is supported.")
		return
	}

	var request chat.CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		writeCommandError(w, h.logger, http.StatusBadRequest, "Invalid request body. Expected JSON with 'gamestate_id' and 'command' fields.")
		return
	}

	if err := request.Validate(); err != nil {
		h.logger.Warn("Invalid command request", "error", err)
		writeCommandError(w, h.logger, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	gs, err := h.storage.LoadGameState(r.Context(), request.GameStateID)
	if err != nil {
		h.logger.Error("Failed to load game state", "gamestate_id", request.GameStateID, "error", err)
		writeCommandError(w, h.logger, http.StatusInternalServerError, "Failed to load game state")
		return
	}
	if gs == nil {
		writeCommandError(w, h.logger, http.StatusNotFound, "Game state not found")
		return
	}

	responseText := h.game.ProcessCommand(r.Context(), request.Command, gs)

	gs.AppendHistory(game.EntryCommand, "> "+request.Command)
	gs.AppendHistory(game.EntryResponse, responseText)

	if err := h.storage.SaveGameState(r.Context(), gs.ID, gs); err != nil {
		h.logger.Error("Failed to save game state", "gamestate_id", gs.ID, "error", err)
		writeCommandError(w, h.logger, http.StatusInternalServerError, "Failed to save game state")
		return
	}

	response := chat.CommandResponse{
		GameStateID: gs.ID,
		Command:     request.Command,
		Response:    responseText,
		Location:    gs.Location,
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Error encoding command response", "error", err)
	}
}

func writeCommandError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	w.WriteHeader(status)
	response := chat.CommandResponse{Error: message}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("Error encoding command error response", "error", err)
	}
}
