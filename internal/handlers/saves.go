package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jwebster45206/outpost-engine/internal/logger"
	"github.com/jwebster45206/outpost-engine/pkg/chat"
	"github.com/jwebster45206/outpost-engine/pkg/storage"
)

type SaveResponse struct {
	Success bool   `json:"success"`
	SaveID  string `json:"save_id"`
	Message string `json:"message"`
}

type LoadResponse struct {
	Success   bool            `json:"success"`
	SaveID    string          `json:"save_id"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// SaveHandler stores client game state.
// Routes:
// POST /save - Store the request body as a new save
// GET /load  - Return the latest save
type SaveHandler struct {
	store  storage.SaveStore
	logger *slog.Logger
}

func NewSaveHandler(store storage.SaveStore, logger *slog.Logger) *SaveHandler {
	return &SaveHandler{
		store:  store,
		logger: logger,
	}
}

// Save handles POST /save. The body may be any JSON value.
func (h *SaveHandler) Save(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)
	if !allowMethod(w, r, log, http.MethodPost) {
		return
	}

	var data json.RawMessage
	if err := chat.Decode(r.Body, &data); err != nil {
		log.Warn("Invalid save request", "error", err)
		writeError(w, log, http.StatusBadRequest, err.Error())
		return
	}

	saved, err := h.store.Save(r.Context(), data)
	if err != nil {
		log.Error("Failed to save game", "error", err)
		writeError(w, log, http.StatusInternalServerError, "Failed to save game")
		return
	}

	log.Info("Game saved", "save_id", saved.ID)
	writeJSON(w, log, http.StatusOK, SaveResponse{
		Success: true,
		SaveID:  saved.ID,
		Message: "Game saved successfully",
	})
}

// Load handles GET /load.
func (h *SaveHandler) Load(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)
	if !allowMethod(w, r, log, http.MethodGet) {
		return
	}

	saved, err := h.store.Latest(r.Context())
	if err != nil {
		if errors.Is(err, storage.ErrNoSave) {
			writeJSON(w, log, http.StatusNotFound, ErrorResponse{Message: "No saved game found"})
			return
		}
		log.Error("Failed to load game", "error", err)
		writeError(w, log, http.StatusInternalServerError, "Failed to load game")
		return
	}

	writeJSON(w, log, http.StatusOK, LoadResponse{
		Success:   true,
		SaveID:    saved.ID,
		Data:      saved.Data,
		Timestamp: saved.Timestamp,
	})
}
