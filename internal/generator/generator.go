// Package generator runs the dialogue and quest pipelines: build a prompt,
// call the completion service, interpret the output and fall back to the
// hand-written catalog on any failure.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jwebster45206/outpost-engine/internal/config"
	"github.com/jwebster45206/outpost-engine/internal/logger"
	"github.com/jwebster45206/outpost-engine/internal/metrics"
	"github.com/jwebster45206/outpost-engine/internal/services"
	"github.com/jwebster45206/outpost-engine/pkg/chat"
	"github.com/jwebster45206/outpost-engine/pkg/dialogue"
	"github.com/jwebster45206/outpost-engine/pkg/fallback"
	"github.com/jwebster45206/outpost-engine/pkg/npc"
	"github.com/jwebster45206/outpost-engine/pkg/prompts"
	"github.com/jwebster45206/outpost-engine/pkg/quest"
	"github.com/jwebster45206/outpost-engine/pkg/textfilter"
)

const (
	pipelineDialogue = "dialogue"
	pipelineQuest    = "quest"

	endpointQuest         = "quest"
	endpointGenerateQuest = "generate_quest"
)

// Options are the sampling and behaviour settings of a Generator.
type Options struct {
	DialogueTemperature float64
	DialogueMaxTokens   int
	QuestTemperature    float64
	QuestMaxTokens      int
	UseLLMQuests        bool
	ContentRating       string
	Budget              prompts.Budget
}

// OptionsFromConfig copies the generator settings out of cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		DialogueTemperature: cfg.DialogueTemperature,
		DialogueMaxTokens:   cfg.DialogueMaxTokens,
		QuestTemperature:    cfg.QuestTemperature,
		QuestMaxTokens:      cfg.QuestMaxTokens,
		UseLLMQuests:        cfg.UseLLMQuests,
		ContentRating:       cfg.ContentRating,
		Budget:              cfg.Budget(),
	}
}

// Generator produces dialogue lines and quests. It never returns an error:
// every failure is logged and answered from the fallback catalog.
type Generator struct {
	llm       services.CompletionService
	npcs      *npc.Catalog
	fallbacks *fallback.Catalog
	filter    *textfilter.Filter
	opts      Options
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// New creates a Generator. A nil m gets a private registry.
func New(llm services.CompletionService, npcs *npc.Catalog, fallbacks *fallback.Catalog, opts Options, logger *slog.Logger, m *metrics.Metrics) *Generator {
	if m == nil {
		m = metrics.New(prometheus.NewRegistry())
	}
	g := &Generator{
		llm:       llm,
		npcs:      npcs,
		fallbacks: fallbacks,
		opts:      opts,
		logger:    logger,
		metrics:   m,
	}
	if prompts.CleanLanguage(opts.ContentRating) {
		g.filter = textfilter.New()
	}
	return g
}

// Dialogue returns the NPC's answer to the player's message.
func (g *Generator) Dialogue(ctx context.Context, req chat.DialogueRequest) string {
	log := logger.FromContext(ctx, g.logger)
	profile := g.dialogueProfile(req)

	prompt, err := prompts.NewDialogue().
		WithNPC(profile).
		WithPlayerContext(req.PlayerContext).
		WithMemory(req.MemoryContext).
		WithPlayerMessage(req.PlayerMessage).
		WithRating(g.opts.ContentRating).
		Build()
	if err != nil {
		log.Warn("Cannot build dialogue prompt", "npc_id", req.NPCID, "error", err)
		return g.fallbackDialogue(req.NPCID, req.NPCName)
	}

	g.opts.Budget.Check(log, "Dialogue - "+profile.Name, prompt, g.opts.DialogueMaxTokens)
	log.Info("Dialogue request",
		"npc", profile.Name,
		"player_message", req.PlayerMessage,
		"prompt", prompt)

	start := time.Now()
	raw, err := g.llm.Generate(ctx, services.GenerateRequest{
		Prompt:      prompt,
		Temperature: g.opts.DialogueTemperature,
		MaxTokens:   g.opts.DialogueMaxTokens,
	})
	g.metrics.ObserveCompletion(pipelineDialogue, start, err)
	if err != nil {
		logger.WithError(log, err).Error("Dialogue completion failed", "npc", profile.Name)
		return g.fallbackDialogue(req.NPCID, req.NPCName)
	}

	line := dialogue.Sanitize(raw)
	if g.filter != nil {
		line = g.filter.Apply(line)
	}

	log.Info("Dialogue response", "npc", profile.Name, "response", line)
	g.metrics.DialogueRequests.WithLabelValues(metrics.SourceModel).Inc()
	return line
}

// FallbackDialogue returns the canned line for the NPC named by id or name.
func (g *Generator) FallbackDialogue(npcID, npcName string) string {
	return g.fallbacks.Dialogue(g.resolveID(npcID, npcName))
}

// Quest offers a quest fitting the NPC and the player's situation.
func (g *Generator) Quest(ctx context.Context, req chat.QuestRequest) quest.Quest {
	log := logger.FromContext(ctx, g.logger)
	profile := g.questProfile(req)

	items := req.AvailableItems
	if len(items) == 0 {
		items = quest.Items
	}
	targets := req.AvailableNPCs
	if len(targets) == 0 {
		targets = g.otherNPCs(profile.Name)
	}

	c := quest.Constraints{
		NPCID:          profile.ID,
		AvailableItems: items,
		AvailableNPCs:  targets,
		Suggestion:     req.PlayerSuggestion,
	}

	q, err := g.modelQuest(ctx, profile, req.PlayerContext, req.ExistingTitles(), c)
	if err != nil {
		logger.WithError(log, err).Warn("Using fallback quest", "npc_id", profile.ID)
		return g.fallbackQuest(endpointQuest, g.resolveID(req.NPCID, req.NPCName))
	}
	g.metrics.QuestRequests.WithLabelValues(endpointQuest, metrics.SourceModel).Inc()
	return q
}

// FallbackQuest returns a fresh copy of the canned quest for the NPC named by
// id or name.
func (g *Generator) FallbackQuest(npcID, npcName string) quest.Quest {
	return g.fallbacks.Quest(g.resolveID(npcID, npcName))
}

// GenerateQuest builds a quest around the player's own suggestion. Known NPCs
// ask the model when model quests are enabled; everything else is answered by
// the rule-based generator.
func (g *Generator) GenerateQuest(ctx context.Context, req chat.GenerateQuestRequest) quest.Quest {
	log := logger.FromContext(ctx, g.logger)

	log.Info("Generate quest request",
		"npc", req.NPCName,
		"player_suggestion", req.PlayerSuggestion,
		"conversation_context", req.ConversationContext,
		"available_items", req.AvailableItems,
		"available_npcs", req.AvailableNPCs,
		"use_llm_quests", g.opts.UseLLMQuests)

	c := quest.Constraints{
		AvailableItems: req.AvailableItems,
		AvailableNPCs:  req.AvailableNPCs,
		Suggestion:     req.PlayerSuggestion,
	}

	profile, known := g.npcs.ByName(req.NPCName)
	if known {
		c.NPCID = profile.ID
	}
	if !g.opts.UseLLMQuests || !known {
		if g.opts.UseLLMQuests {
			log.Info("Unknown NPC, using rule-based quest generation", "npc", req.NPCName)
		}
		q := quest.Rules(c)
		g.metrics.QuestRequests.WithLabelValues(endpointGenerateQuest, metrics.SourceRules).Inc()
		log.Info("Generated quest", "source", metrics.SourceRules, "quest_id", q.ID, "title", q.Title)
		return q
	}

	q, err := g.modelQuest(ctx, profile, chat.PlayerContext{}, nil, c)
	if err != nil {
		logger.WithError(log, err).Warn("Using fallback quest", "npc_id", profile.ID)
		return g.fallbackQuest(endpointGenerateQuest, profile.ID)
	}
	g.metrics.QuestRequests.WithLabelValues(endpointGenerateQuest, metrics.SourceModel).Inc()
	log.Info("Generated quest", "source", metrics.SourceModel, "quest_id", q.ID, "title", q.Title)
	return q
}

// modelQuest asks the model for a quest and interprets the answer.
func (g *Generator) modelQuest(ctx context.Context, p npc.Profile, pc chat.PlayerContext, existing []string, c quest.Constraints) (quest.Quest, error) {
	log := logger.FromContext(ctx, g.logger)

	prompt, err := prompts.NewQuest().
		WithNPC(p).
		WithPlayerContext(pc).
		WithAvailableItems(c.AvailableItems).
		WithAvailableNPCs(c.AvailableNPCs).
		WithSuggestion(c.Suggestion).
		WithExistingQuests(existing).
		Build()
	if err != nil {
		return quest.Quest{}, fmt.Errorf("failed to build quest prompt: %w", err)
	}

	g.opts.Budget.Check(log, "Quest Generation - "+p.Name, prompt, g.opts.QuestMaxTokens)
	log.Info("Quest request",
		"npc", p.Name,
		"npc_id", p.ID,
		"player_suggestion", c.Suggestion,
		"prompt", prompt)

	start := time.Now()
	raw, err := g.llm.Generate(ctx, services.GenerateRequest{
		Prompt:      prompt,
		Temperature: g.opts.QuestTemperature,
		MaxTokens:   g.opts.QuestMaxTokens,
	})
	g.metrics.ObserveCompletion(pipelineQuest, start, err)
	if err != nil {
		return quest.Quest{}, fmt.Errorf("quest completion: %w", err)
	}

	log.Info("Quest response", "npc", p.Name, "npc_id", p.ID, "response", raw)

	res, err := quest.Parse(raw, c)
	if err != nil {
		log.Warn("Could not find a quest in completion", "npc_id", p.ID, "response", raw)
		return quest.Quest{}, err
	}

	g.metrics.ParseStrategies.WithLabelValues(res.Strategy).Inc()
	if len(res.Fixes) > 0 {
		g.metrics.QuestRepairs.Add(float64(len(res.Fixes)))
		log.Warn("Repaired generated quest", "quest_id", res.Quest.ID, "fixes", res.Fixes)
	}
	return res.Quest, nil
}

func (g *Generator) fallbackDialogue(npcID, npcName string) string {
	g.metrics.DialogueRequests.WithLabelValues(metrics.SourceFallback).Inc()
	return g.fallbacks.Dialogue(g.resolveID(npcID, npcName))
}

func (g *Generator) fallbackQuest(endpoint, npcID string) quest.Quest {
	g.metrics.QuestRequests.WithLabelValues(endpoint, metrics.SourceFallback).Inc()
	return g.fallbacks.Entry(npcID).Quest
}

// resolveID picks the fallback entry for an NPC. An id with its own entry
// wins, then a catalog id, then the id of the NPC called name. Clients may
// send their own ids next to catalog names.
func (g *Generator) resolveID(npcID, name string) string {
	if g.fallbacks.Has(npcID) {
		return npcID
	}
	if _, ok := g.npcs.ByID(npcID); ok {
		return npcID
	}
	if p, ok := g.npcs.ByName(name); ok {
		return p.ID
	}
	return npcID
}

// dialogueProfile merges the profile sent by the client with the catalog
// entry for the same NPC. Fields sent by the client win.
func (g *Generator) dialogueProfile(req chat.DialogueRequest) npc.Profile {
	p := npc.Profile{
		ID:            req.NPCID,
		Name:          req.NPCName,
		Personality:   req.NPCPersonality,
		Role:          req.NPCRole,
		Background:    req.NPCBackground,
		DialogueStyle: req.NPCDialogueStyle,
	}
	return g.complete(p)
}

func (g *Generator) questProfile(req chat.QuestRequest) npc.Profile {
	p := npc.Profile{
		ID:          req.NPCID,
		Name:        req.NPCName,
		Personality: req.NPCPersonality,
		Role:        req.NPCRole,
	}
	return g.complete(p)
}

func (g *Generator) complete(p npc.Profile) npc.Profile {
	known, ok := g.npcs.ByID(p.ID)
	if !ok {
		known, ok = g.npcs.ByName(p.Name)
	}
	if !ok {
		return p
	}

	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&p.ID, known.ID)
	fill(&p.Name, known.Name)
	fill(&p.Personality, known.Personality)
	fill(&p.Role, known.Role)
	fill(&p.Background, known.Background)
	fill(&p.DialogueStyle, known.DialogueStyle)
	return p
}

// otherNPCs lists every catalog name except giver, so a quest never sends the
// player back to the NPC who offered it.
func (g *Generator) otherNPCs(giver string) []string {
	names := g.npcs.Names()
	others := slices.DeleteFunc(slices.Clone(names), func(n string) bool { return n == giver })
	if len(others) == 0 {
		return names
	}
	return others
}
