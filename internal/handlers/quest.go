package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jwebster45206/outpost-engine/internal/logger"
	"github.com/jwebster45206/outpost-engine/pkg/chat"
	"github.com/jwebster45206/outpost-engine/pkg/quest"
)

// QuestGenerator produces quests for both quest endpoints.
type QuestGenerator interface {
	Quest(ctx context.Context, req chat.QuestRequest) quest.Quest
	GenerateQuest(ctx context.Context, req chat.GenerateQuestRequest) quest.Quest
	FallbackQuest(npcID, npcName string) quest.Quest
}

// QuestHandler serves POST /quest: a quest offered by an NPC on its own
// initiative.
type QuestHandler struct {
	gen    QuestGenerator
	logger *slog.Logger
}

func NewQuestHandler(gen QuestGenerator, logger *slog.Logger) *QuestHandler {
	return &QuestHandler{
		gen:    gen,
		logger: logger,
	}
}

func (h *QuestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)
	if !allowMethod(w, r, log, http.MethodPost) {
		return
	}

	var req chat.QuestRequest
	defer func() {
		if rec := recover(); rec != nil {
			log.Error("Quest handler panicked", "panic", rec, "npc_id", req.NPCID)
			h.fail(w, log, http.StatusInternalServerError, req, fmt.Sprint(rec))
		}
	}()

	err := chat.Decode(r.Body, &req)
	if err == nil {
		err = req.Validate()
	}
	if err != nil {
		log.Warn("Invalid quest request", "error", err)
		h.fail(w, log, http.StatusBadRequest, req, err.Error())
		return
	}

	log.Info("Quest requested", "npc_id", req.NPCID, "npc", req.NPCName, "existing_quests", len(req.ExistingQuests))

	q := h.gen.Quest(r.Context(), req)
	now := time.Now()
	writeJSON(w, log, http.StatusOK, chat.QuestResponse{
		Success:   true,
		Quest:     &q,
		Timestamp: &now,
	})
}

// fail answers with a fallback quest so the client always has something to
// offer.
func (h *QuestHandler) fail(w http.ResponseWriter, log *slog.Logger, status int, req chat.QuestRequest, msg string) {
	q := h.gen.FallbackQuest(req.NPCID, req.NPCName)
	writeJSON(w, log, status, chat.QuestResponse{
		Quest: &q,
		Error: msg,
	})
}

// GenerateQuestHandler serves POST /generate-quest: a quest shaped by the
// player's suggestion.
type GenerateQuestHandler struct {
	gen    QuestGenerator
	logger *slog.Logger
}

func NewGenerateQuestHandler(gen QuestGenerator, logger *slog.Logger) *GenerateQuestHandler {
	return &GenerateQuestHandler{
		gen:    gen,
		logger: logger,
	}
}

func (h *GenerateQuestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)
	if !allowMethod(w, r, log, http.MethodPost) {
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("Generate quest handler panicked", "panic", rec)
			writeJSON(w, log, http.StatusInternalServerError, chat.QuestResponse{Error: fmt.Sprint(rec)})
		}
	}()

	var req chat.GenerateQuestRequest
	err := chat.Decode(r.Body, &req)
	if err == nil {
		err = req.Validate()
	}
	if err != nil {
		log.Warn("Invalid generate quest request", "error", err)
		writeError(w, log, http.StatusBadRequest, err.Error())
		return
	}

	q := h.gen.GenerateQuest(r.Context(), req)
	writeJSON(w, log, http.StatusOK, chat.QuestResponse{
		Success: true,
		Quest:   &q,
	})
}
