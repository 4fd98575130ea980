package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jwebster45206/outpost-engine/internal/logger"
	"github.com/jwebster45206/outpost-engine/pkg/npc"
)

type NPCListResponse struct {
	Success bool          `json:"success"`
	NPCs    []npc.Profile `json:"npcs"`
}

// NPCHandler serves GET /npcs, the roster clients can talk to.
type NPCHandler struct {
	npcs   *npc.Catalog
	logger *slog.Logger
}

func NewNPCHandler(npcs *npc.Catalog, logger *slog.Logger) *NPCHandler {
	return &NPCHandler{
		npcs:   npcs,
		logger: logger,
	}
}

func (h *NPCHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)
	if !allowMethod(w, r, log, http.MethodGet) {
		return
	}
	writeJSON(w, log, http.StatusOK, NPCListResponse{Success: true, NPCs: h.npcs.All()})
}
