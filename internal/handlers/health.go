package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jwebster45206/outpost-engine/internal/logger"
	"github.com/jwebster45206/outpost-engine/internal/services"
	"github.com/jwebster45206/outpost-engine/pkg/storage"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusDegraded  = "degraded"

	healthTimeout = 2 * time.Second
)

type HealthResponse struct {
	Status       string                 `json:"status"`
	Timestamp    time.Time              `json:"timestamp"`
	Service      string                 `json:"service"`
	OllamaURL    string                 `json:"ollama_url"`
	OllamaModel  string                 `json:"ollama_model"`
	UseLLMQuests bool                   `json:"use_llm_quests"`
	Components   map[string]interface{} `json:"components"`
}

// HealthInfo is the static part of the health report.
type HealthInfo struct {
	OllamaURL    string
	OllamaModel  string
	UseLLMQuests bool
}

type HealthHandler struct {
	store  storage.SaveStore
	llm    services.CompletionService
	info   HealthInfo
	logger *slog.Logger
}

func NewHealthHandler(store storage.SaveStore, llm services.CompletionService, info HealthInfo, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		store:  store,
		llm:    llm,
		info:   info,
		logger: logger,
	}
}

// ServeHTTP probes storage and the completion service concurrently. A
// storage failure makes the service unhealthy (503); an unreachable model
// only degrades it, since every pipeline has a fallback.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)
	if !allowMethod(w, r, log, http.MethodGet) {
		return
	}

	log.Debug("Health check requested",
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr)

	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	var (
		storageErr error
		models     []string
		modelErr   error
		g          errgroup.Group
	)
	g.Go(func() error {
		storageErr = h.store.Ping(ctx)
		return nil
	})
	g.Go(func() error {
		models, modelErr = h.llm.ListModels(ctx)
		return nil
	})
	_ = g.Wait()

	components := make(map[string]interface{})
	overallStatus := statusHealthy

	if storageErr != nil {
		log.Warn("Storage health check failed", "error", storageErr)
		components["storage"] = statusUnhealthy
		overallStatus = statusUnhealthy
	} else {
		components["storage"] = statusHealthy
	}

	if modelErr != nil {
		log.Warn("Completion service health check failed", "error", modelErr)
		components["ollama"] = statusUnhealthy
		if overallStatus == statusHealthy {
			overallStatus = statusDegraded
		}
	} else {
		components["ollama"] = statusHealthy
		components["models"] = models
	}

	statusCode := http.StatusOK
	if overallStatus == statusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, log, statusCode, HealthResponse{
		Status:       overallStatus,
		Timestamp:    time.Now(),
		Service:      "outpost-engine",
		OllamaURL:    h.info.OllamaURL,
		OllamaModel:  h.info.OllamaModel,
		UseLLMQuests: h.info.UseLLMQuests,
		Components:   components,
	})
}
