package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jwebster45206/outpost-engine/internal/services"
	"github.com/jwebster45206/outpost-engine/pkg/npc"
	"github.com/jwebster45206/outpost-engine/pkg/storage"
)

// Generator is everything the dialogue and quest endpoints need.
type Generator interface {
	DialogueGenerator
	QuestGenerator
}

// Deps are the collaborators of the API handlers.
type Deps struct {
	Generator Generator
	Store     storage.SaveStore
	LLM       services.CompletionService
	NPCs      *npc.Catalog
	Logs      LogSource
	Health    HealthInfo
	Logger    *slog.Logger
}

// Register mounts every API route on mux under prefix, e.g. "/api".
func Register(mux *http.ServeMux, prefix string, d Deps) {
	saves := NewSaveHandler(d.Store, d.Logger)
	logs := NewLogsHandler(d.Logs, d.Logger)

	mux.Handle(prefix+"/health", NewHealthHandler(d.Store, d.LLM, d.Health, d.Logger))
	mux.Handle(prefix+"/dialogue", NewDialogueHandler(d.Generator, d.Logger))
	mux.Handle(prefix+"/quest", NewQuestHandler(d.Generator, d.Logger))
	mux.Handle(prefix+"/generate-quest", NewGenerateQuestHandler(d.Generator, d.Logger))
	mux.HandleFunc(prefix+"/save", saves.Save)
	mux.HandleFunc(prefix+"/load", saves.Load)
	mux.Handle(prefix+"/logs", logs)
	mux.Handle(prefix+"/logs/clear", logs)
	mux.Handle(prefix+"/npcs", NewNPCHandler(d.NPCs, d.Logger))
}
