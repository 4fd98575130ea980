package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jwebster45206/outpost-engine/internal/logger"
	"github.com/jwebster45206/outpost-engine/pkg/chat"
)

// DialogueGenerator produces NPC replies.
type DialogueGenerator interface {
	Dialogue(ctx context.Context, req chat.DialogueRequest) string
	FallbackDialogue(npcID, npcName string) string
}

// DialogueHandler serves POST /dialogue.
type DialogueHandler struct {
	gen    DialogueGenerator
	logger *slog.Logger
}

func NewDialogueHandler(gen DialogueGenerator, logger *slog.Logger) *DialogueHandler {
	return &DialogueHandler{
		gen:    gen,
		logger: logger,
	}
}

func (h *DialogueHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)
	if !allowMethod(w, r, log, http.MethodPost) {
		return
	}

	var req chat.DialogueRequest
	defer func() {
		if rec := recover(); rec != nil {
			log.Error("Dialogue handler panicked", "panic", rec, "npc_id", req.NPCID)
			writeJSON(w, log, http.StatusInternalServerError, chat.DialogueResponse{
				Message:   h.gen.FallbackDialogue(req.NPCID, req.NPCName),
				NPCID:     req.NPCID,
				Timestamp: time.Now(),
				Error:     fmt.Sprint(rec),
			})
		}
	}()

	err := chat.Decode(r.Body, &req)
	if err == nil {
		err = req.Validate()
	}
	if err != nil {
		h.badRequest(w, log, req, err)
		return
	}

	log.Info("Dialogue requested", "npc_id", req.NPCID, "npc", req.NPCName)

	msg := h.gen.Dialogue(r.Context(), req)
	writeJSON(w, log, http.StatusOK, chat.DialogueResponse{
		Success:   true,
		Message:   msg,
		NPCID:     req.NPCID,
		Timestamp: time.Now(),
	})
}

func (h *DialogueHandler) badRequest(w http.ResponseWriter, log *slog.Logger, req chat.DialogueRequest, err error) {
	log.Warn("Invalid dialogue request", "error", err)
	writeJSON(w, log, http.StatusBadRequest, chat.DialogueResponse{
		Message:   h.gen.FallbackDialogue(req.NPCID, req.NPCName),
		NPCID:     req.NPCID,
		Timestamp: time.Now(),
		Error:     err.Error(),
	})
}
