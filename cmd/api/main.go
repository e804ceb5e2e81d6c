package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Meow-nya-nya-nya/chat-game/internal/config"
	"github.com/Meow-nya-nya-nya/chat-game/internal/handlers"
	"github.com/Meow-nya-nya-nya/chat-game/internal/logger"
	"github.com/Meow-nya-nya-nya/chat-game/internal/middleware"
	"github.com/Meow-nya-nya-nya/chat-game/internal/services"
	"github.com/Meow-nya-nya-nya/chat-game/internal/storage"
	"github.com/Meow-nya-nya-nya/chat-game/pkg/actor"
	"github.com/Meow-nya-nya-nya/chat-game/pkg/dialogue"
	"github.com/Meow-nya-nya-nya/chat-game/pkg/game"
	"github.com/Meow-nya-nya-nya/chat-game/pkg/plot"
	"github.com/Meow-nya-nya-nya/chat-game/pkg/world"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg)

	log.Info("Starting Chat Game API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"llm_provider", cfg.LLMProvider,
		"model_name", cfg.ModelName)

	var llmService services.LLMService
	switch strings.ToLower(cfg.LLMProvider) {
	case "openai", "kimi", "moonshot":
		if cfg.APIKey == "" {
			log.Warn("No API key configured; dialogue will use fallback replies")
		} else {
			llmService = services.NewOpenAIService(cfg.APIKey, cfg.ModelName, cfg.APIBaseURL)
			log.Info("Using OpenAI-compatible LLM provider", "base_url", cfg.APIBaseURL)
		}
	case "ollama":
		llmService = services.NewOllamaService(cfg.APIBaseURL, cfg.ModelName, log)
		log.Info("Using Ollama LLM provider", "base_url", cfg.APIBaseURL)
	default:
		log.Error("Invalid LLM provider specified", "provider", cfg.LLMProvider, "supported", []string{"openai", "ollama"})
		os.Exit(1)
	}

	worldDef, err := loadWorldDefinition(cfg)
	if err != nil {
		log.Error("Failed to load world definition", "error", err)
		os.Exit(1)
	}
	w, err := world.New(worldDef, cfg.Language)
	if err != nil {
		log.Error("Invalid world definition", "error", err)
		os.Exit(1)
	}

	roster, err := loadRoster(cfg)
	if err != nil {
		log.Error("Failed to load character roster", "error", err)
		os.Exit(1)
	}
	registry := actor.NewRegistry(roster, cfg.DefaultMood)

	// A nil llmService is allowed: the adapter degrades to fallback replies.
	var completer dialogue.Completer
	if llmService != nil {
		completer = llmService
	}
	adapter := dialogue.NewAdapter(completer, cfg.MaxResponseLength, cfg.Language, log)

	plots := plot.NewManager(cfg.PlotsDir, log)

	g := game.New(w, registry, adapter, plots, game.Config{
		Title:   cfg.GameTitle,
		Version: cfg.GameVersion,
		Debug:   cfg.DebugMode,
	}, log)

	store := storage.NewRedisStorage(cfg.RedisURL, log)
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()

	if err := store.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}

	if llmService != nil {
		initCtx, initCancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer initCancel()
		if err := llmService.InitModel(initCtx, cfg.ModelName); err != nil {
			log.Error("Failed to initialize LLM model", "error", err, "model", cfg.ModelName)
			os.Exit(1)
		}
	}

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(store, llmService, log)
	mux.Handle("/health", healthHandler)

	gameStateHandler := handlers.NewGameStateHandler(g, store, log)
	mux.Handle("/v1/gamestate", gameStateHandler)
	mux.Handle("/v1/gamestate/", gameStateHandler)

	commandHandler := handlers.NewCommandHandler(g, store, log)
	mux.Handle("/v1/command", commandHandler)

	handler := middleware.Logger(mux)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}

func loadWorldDefinition(cfg *config.Config) (*world.Definition, error) {
	if cfg.WorldFile != "" {
		return world.LoadDefinition(cfg.WorldFile)
	}
	return world.DefaultDefinition()
}

func loadRoster(cfg *config.Config) (*actor.Roster, error) {
	if cfg.RosterFile != "" {
		return actor.LoadRoster(cfg.RosterFile)
	}
	return actor.DefaultRoster()
}
