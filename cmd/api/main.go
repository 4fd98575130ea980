package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jwebster45206/outpost-engine/internal/config"
	"github.com/jwebster45206/outpost-engine/internal/generator"
	"github.com/jwebster45206/outpost-engine/internal/handlers"
	"github.com/jwebster45206/outpost-engine/internal/logger"
	"github.com/jwebster45206/outpost-engine/internal/metrics"
	"github.com/jwebster45206/outpost-engine/internal/middleware"
	"github.com/jwebster45206/outpost-engine/internal/services"
	istorage "github.com/jwebster45206/outpost-engine/internal/storage"
	"github.com/jwebster45206/outpost-engine/pkg/fallback"
	"github.com/jwebster45206/outpost-engine/pkg/npc"
	"github.com/jwebster45206/outpost-engine/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logFile, err := logger.OpenFile(cfg.LogFile)
	if err != nil {
		log.Fatal(err)
	}
	defer logFile.Close()

	log := logger.Setup(cfg, logFile)

	log.Info("Starting Outpost Engine API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"use_llm_quests", cfg.UseLLMQuests,
		"storage_backend", cfg.StorageBackend,
		"content_rating", cfg.ContentRating,
		"log_file", logFile.Path())

	var store storage.SaveStore
	switch cfg.StorageBackend {
	case config.StorageRedis:
		storageCtx, storageCancel := context.WithTimeout(context.Background(), 30*time.Second)
		store, err = istorage.NewRedisStorage(storageCtx, cfg.RedisURL, log)
		storageCancel()
		if err != nil {
			log.Error("Failed to connect to storage", "error", err)
			os.Exit(1)
		}
	default:
		store = istorage.NewMemoryStorage(log)
	}
	log.Info("Save storage ready", "backend", cfg.StorageBackend)

	llm := services.NewOllamaService(cfg.OllamaURL, cfg.OllamaModel, cfg.CompletionTimeout, log)
	log.Info("Completion service configured",
		"ollama_url", llm.BaseURL(),
		"ollama_model", llm.ModelName(),
		"timeout", cfg.CompletionTimeout)

	// The model is optional at startup: every pipeline falls back without it.
	probeCtx, probeCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if models, err := llm.ListModels(probeCtx); err != nil {
		log.Warn("Completion service not reachable, serving fallbacks until it is", "error", err)
	} else {
		log.Info("Completion service reachable", "models", models)
	}
	probeCancel()

	m := metrics.New(prometheus.DefaultRegisterer)
	npcs := npc.Default()
	gen := generator.New(llm, npcs, fallback.New(), generator.OptionsFromConfig(cfg), log, m)

	mux := http.NewServeMux()
	handlers.Register(mux, cfg.APIPrefix, handlers.Deps{
		Generator: gen,
		Store:     store,
		LLM:       llm,
		NPCs:      npcs,
		Logs:      logFile,
		Health: handlers.HealthInfo{
			OllamaURL:    llm.BaseURL(),
			OllamaModel:  llm.ModelName(),
			UseLLMQuests: cfg.UseLLMQuests,
		},
		Logger: log,
	})
	mux.Handle("/metrics", promhttp.Handler())

	mws := []func(http.Handler) http.Handler{
		middleware.Logger(log, m),
		middleware.Recover(log),
		middleware.CORS(cfg.CORSOrigins),
	}
	if cfg.RateLimitRPS > 0 {
		mws = append(mws, middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware)
		log.Info("Rate limiting enabled", "rps", cfg.RateLimitRPS, "burst", cfg.RateLimitBurst)
	}

	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     middleware.Chain(mux, mws...),
		ReadTimeout: 15 * time.Second,
		// completions can take up to COMPLETION_TIMEOUT
		WriteTimeout: cfg.CompletionTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr, "api_prefix", cfg.APIPrefix)
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

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	log.Info("Server exited")
}
