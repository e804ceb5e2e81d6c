package storage

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/Meow-nya-nya-nya/chat-game/pkg/game"
)

func TestMemoryStorage_SaveAndLoadGameState(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	gs := game.NewGameState()
	gs.Location = "forest_entrance"
	gs.AppendHistory(game.EntryCommand, "> look")

	if err := storage.SaveGameState(ctx, gs.ID, gs); err != nil {
		t.Fatalf("Failed to save game state: %v", err)
	}

	loaded, err := storage.LoadGameState(ctx, gs.ID)
	if err != nil {
		t.Fatalf("Failed to load game state: %v", err)
	}
	if loaded == nil {
		t.Fatal("Expected non-nil game state")
	}
	if loaded.ID != gs.ID || loaded.Location != "forest_entrance" {
		t.Errorf("Loaded state = %+v", loaded)
	}

	// Stored bytes are a snapshot; later mutations are not visible.
	gs.Location = "deep_forest"
	reloaded, err := storage.LoadGameState(ctx, gs.ID)
	if err != nil {
		t.Fatalf("Failed to reload game state: %v", err)
	}
	if reloaded.Location != "forest_entrance" {
		t.Errorf("Expected snapshot location 'forest_entrance', got %v", reloaded.Location)
	}
}

func TestMemoryStorage_LoadNonExistentGameState(t *testing.T) {
	storage := NewMemoryStorage()

	loaded, err := storage.LoadGameState(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Expected no error for non-existent game state, got: %v", err)
	}
	if loaded != nil {
		t.Error("Expected nil for non-existent game state")
	}
}

func TestMemoryStorage_DeleteGameState(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	gs := game.NewGameState()
	if err := storage.SaveGameState(ctx, gs.ID, gs); err != nil {
		t.Fatalf("Failed to save game state: %v", err)
	}

	if err := storage.DeleteGameState(ctx, gs.ID); err != nil {
		t.Fatalf("Failed to delete game state: %v", err)
	}
	loaded, err := storage.LoadGameState(ctx, gs.ID)
	if err != nil || loaded != nil {
		t.Errorf("Expected nil after deletion, got %v (err %v)", loaded, err)
	}

	// Deleting twice is a no-op.
	if err := storage.DeleteGameState(ctx, gs.ID); err != nil {
		t.Errorf("Second delete errored: %v", err)
	}
}
