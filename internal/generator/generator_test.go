package generator

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/outpost-engine/internal/config"
	"github.com/jwebster45206/outpost-engine/internal/metrics"
	"github.com/jwebster45206/outpost-engine/internal/services"
	"github.com/jwebster45206/outpost-engine/pkg/chat"
	"github.com/jwebster45206/outpost-engine/pkg/dialogue"
	"github.com/jwebster45206/outpost-engine/pkg/fallback"
	"github.com/jwebster45206/outpost-engine/pkg/npc"
	"github.com/jwebster45206/outpost-engine/pkg/prompts"
	"github.com/jwebster45206/outpost-engine/pkg/quest"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError, // Reduce noise in tests
	}))
}

func testOptions() Options {
	return Options{
		DialogueTemperature: 0.8,
		DialogueMaxTokens:   150,
		QuestTemperature:    0.7,
		QuestMaxTokens:      300,
		UseLLMQuests:        true,
		ContentRating:       prompts.RatingR,
		Budget:              prompts.DefaultBudget(),
	}
}

func newTestGenerator(llm services.CompletionService, opts Options) (*Generator, *metrics.Metrics) {
	m := metrics.New(prometheus.NewRegistry())
	return New(llm, npc.Default(), fallback.New(), opts, testLogger(), m), m
}

func failing(err error) *services.MockCompletionService {
	return &services.MockCompletionService{
		GenerateFunc: func(context.Context, services.GenerateRequest) (string, error) {
			return "", err
		},
	}
}

var completionErr = &services.CompletionError{StatusCode: 500, Body: "model not loaded"}

func TestDialogue_Success(t *testing.T) {
	llm := services.NewMockCompletionService("Response: Good to see you, pilot. Stay sharp out there.")
	g, m := newTestGenerator(llm, testOptions())

	line := g.Dialogue(context.Background(), chat.DialogueRequest{
		NPCID:         "commander_sarah",
		PlayerMessage: "Any news?",
	})

	assert.Equal(t, "Good to see you, pilot. Stay sharp out there.", line)

	calls := llm.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, 0.8, calls[0].Temperature)
	assert.Equal(t, 150, calls[0].MaxTokens)
	// the catalog fills in what the client left out
	assert.Contains(t, calls[0].Prompt, "You are Commander Sarah Chen, a Outpost Commander")
	assert.Contains(t, calls[0].Prompt, `The player says: "Any news?"`)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.DialogueRequests.WithLabelValues(metrics.SourceModel)))
}

func TestDialogue_ClientProfileWins(t *testing.T) {
	llm := services.NewMockCompletionService("Fine weather for a supply run.")
	g, _ := newTestGenerator(llm, testOptions())

	g.Dialogue(context.Background(), chat.DialogueRequest{
		NPCName:        "Scout Jake Williams",
		NPCPersonality: "nervous today",
	})

	prompt := llm.Calls()[0].Prompt
	assert.Contains(t, prompt, "PERSONALITY: nervous today")
	assert.Contains(t, prompt, "Frontier Scout")
}

func TestDialogue_CompletionFailureFallsBack(t *testing.T) {
	g, m := newTestGenerator(failing(completionErr), testOptions())

	line := g.Dialogue(context.Background(), chat.DialogueRequest{
		NPCID:         "engineer_marcus",
		NPCName:       "Engineer Marcus Rodriguez",
		PlayerMessage: "hello",
	})

	assert.Equal(t, fallback.New().Dialogue("engineer_marcus"), line)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.DialogueRequests.WithLabelValues(metrics.SourceFallback)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CompletionErrors.WithLabelValues(pipelineDialogue)))
}

func TestDialogue_FallbackResolvesIDFromName(t *testing.T) {
	g, _ := newTestGenerator(failing(completionErr), testOptions())

	line := g.Dialogue(context.Background(), chat.DialogueRequest{
		NPCName:       "Trader Eliza Thompson",
		PlayerMessage: "hello",
	})

	assert.Equal(t, fallback.New().Dialogue("trader_eliza"), line)
}

func TestDialogue_ForeignIDFallsBackByName(t *testing.T) {
	g, _ := newTestGenerator(failing(completionErr), testOptions())

	req := chat.DialogueRequest{
		NPCID:         "medic",
		NPCName:       "Dr. Kim Park",
		PlayerMessage: "hello",
	}
	line := g.Dialogue(context.Background(), req)

	assert.Equal(t, fallback.New().Dialogue("medic_dr_kim"), line)
	assert.Equal(t, g.FallbackDialogue(req.NPCID, req.NPCName), line)
}

func TestDialogue_MissingNPCFallsBackWithoutCallingModel(t *testing.T) {
	llm := services.NewMockCompletionService("unused")
	g, _ := newTestGenerator(llm, testOptions())

	line := g.Dialogue(context.Background(), chat.DialogueRequest{PlayerMessage: "hello?"})

	assert.Equal(t, fallback.DefaultDialogue, line)
	assert.Empty(t, llm.Calls())
}

func TestDialogue_EchoedPromptIsSanitized(t *testing.T) {
	raw := prompts.MemoryStart + "\nRELATIONSHIP STATUS: Trust: 5\n" + prompts.MemoryEnd
	g, _ := newTestGenerator(services.NewMockCompletionService(raw), testOptions())

	line := g.Dialogue(context.Background(), chat.DialogueRequest{NPCID: "commander_sarah"})

	assert.Contains(t, dialogue.FallbackLines, line)
}

func TestDialogue_CleanRatingFiltersProfanity(t *testing.T) {
	opts := testOptions()
	opts.ContentRating = prompts.RatingPG

	llm := services.NewMockCompletionService("What the hell is going on out there?")
	g, _ := newTestGenerator(llm, opts)

	line := g.Dialogue(context.Background(), chat.DialogueRequest{NPCID: "unfiltered_rick"})
	assert.Equal(t, "What the void is going on out there?", line)
	assert.Contains(t, llm.Calls()[0].Prompt, "CONTENT RATING: "+prompts.ContentRatingPG)
}

func TestDialogue_AdultRatingKeepsText(t *testing.T) {
	g, _ := newTestGenerator(services.NewMockCompletionService("What the hell is going on out there?"), testOptions())

	line := g.Dialogue(context.Background(), chat.DialogueRequest{NPCID: "unfiltered_rick"})
	assert.Equal(t, "What the hell is going on out there?", line)
}

func TestQuest_ModelQuest(t *testing.T) {
	completion := `Here you go: {"quest_type":"collect_item","title":"Ore Run","description":"Bring me ore","target_item":"iron_ore","quantity":2,"reward_crypto":40,"response":"Thanks!"}`
	llm := services.NewMockCompletionService(completion)
	g, m := newTestGenerator(llm, testOptions())

	q := g.Quest(context.Background(), chat.QuestRequest{
		NPCID:   "engineer_marcus",
		NPCName: "Engineer Marcus Rodriguez",
		NPCRole: "Chief Engineer",
	})

	assert.Equal(t, quest.TypeCollectItem, q.Type)
	assert.Equal(t, "iron_ore", q.TargetItem)
	assert.Equal(t, 2, q.Quantity)
	assert.Equal(t, 40, q.RewardCrypto)
	assert.Equal(t, quest.StatusAvailable, q.Status)
	assert.True(t, strings.HasPrefix(q.ID, "engineer_marcus_quest_"), q.ID)

	call := llm.Calls()[0]
	assert.Equal(t, 0.7, call.Temperature)
	assert.Equal(t, 300, call.MaxTokens)
	// defaults when the client sends no sets; the giver is not a target
	assert.Contains(t, call.Prompt, `"cosmic_dust"`)
	assert.Contains(t, call.Prompt, `"Scout Jake Williams"`)
	assert.NotContains(t, call.Prompt, `"Engineer Marcus Rodriguez"`)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.QuestRequests.WithLabelValues(endpointQuest, metrics.SourceModel)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ParseStrategies.WithLabelValues("bracket_span")))
}

func TestQuest_ExistingQuestsReachPrompt(t *testing.T) {
	llm := services.NewMockCompletionService(`{"quest_type":"talk_to_npc","title":"Ping","description":"d","target_npc":"Dr. Kim Park","reward_crypto":10,"response":"r"}`)
	g, _ := newTestGenerator(llm, testOptions())

	q := g.Quest(context.Background(), chat.QuestRequest{
		NPCID:          "commander_sarah",
		NPCName:        "Commander Sarah Chen",
		ExistingQuests: []json.RawMessage{json.RawMessage(`{"title":"Security Assessment"}`)},
	})

	assert.Equal(t, "Dr. Kim Park", q.TargetNPC)
	assert.Contains(t, llm.Calls()[0].Prompt, "Security Assessment")
}

func TestQuest_RepairsOutOfSetTargets(t *testing.T) {
	llm := services.NewMockCompletionService(`{"quest_type":"collect_item","title":"Gold","description":"d","target_item":"gold_bar","quantity":1,"reward_crypto":5000,"response":"r"}`)
	g, m := newTestGenerator(llm, testOptions())

	q := g.Quest(context.Background(), chat.QuestRequest{
		NPCID:          "trader_eliza",
		NPCName:        "Trader Eliza Thompson",
		AvailableItems: []string{"space_rock", "glow_stalk"},
	})

	assert.Equal(t, "space_rock", q.TargetItem)
	assert.Equal(t, quest.MaxRewardCrypto, q.RewardCrypto)
	assert.Equal(t, float64(2), testutil.ToFloat64(m.QuestRepairs))
}

func TestQuest_Fallbacks(t *testing.T) {
	tests := []struct {
		name   string
		llm    *services.MockCompletionService
		req    chat.QuestRequest
		prefix string
		title  string
	}{
		{
			name:   "completion failure",
			llm:    failing(completionErr),
			req:    chat.QuestRequest{NPCID: "scout_jake", NPCName: "Scout Jake Williams"},
			prefix: "fallback_scout_",
		},
		{
			name:   "text without braces",
			llm:    services.NewMockCompletionService("I have nothing for you today, wanderer."),
			req:    chat.QuestRequest{NPCID: "medic_dr_kim", NPCName: "Dr. Kim Park"},
			prefix: "fallback_medic_",
		},
		{
			name:   "client id with catalog name",
			llm:    failing(completionErr),
			req:    chat.QuestRequest{NPCID: "medic", NPCName: "Dr. Kim Park"},
			prefix: "fallback_medic_",
		},
		{
			name:   "unknown npc",
			llm:    failing(errors.New("unreachable")),
			req:    chat.QuestRequest{NPCID: "ghost", NPCName: "Ghost"},
			prefix: "fallback_commander_",
		},
		{
			name:   "missing npc name",
			llm:    services.NewMockCompletionService("unused"),
			req:    chat.QuestRequest{},
			prefix: "fallback_commander_",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, m := newTestGenerator(tt.llm, testOptions())

			q := g.Quest(context.Background(), tt.req)

			assert.True(t, strings.HasPrefix(q.ID, tt.prefix), q.ID)
			assert.True(t, q.IsTemplate())
			assert.Equal(t, quest.StatusAvailable, q.Status)
			assert.Equal(t, float64(1), testutil.ToFloat64(m.QuestRequests.WithLabelValues(endpointQuest, metrics.SourceFallback)))
		})
	}
}

func TestGenerateQuest_KnownNPCUsesModel(t *testing.T) {
	llm := services.NewMockCompletionService(`{"quest_type":"collect_item","title":"Rocks","description":"d","target_item":"space_rock","quantity":1,"reward_crypto":20,"response":"r"}`)
	g, m := newTestGenerator(llm, testOptions())

	q := g.GenerateQuest(context.Background(), chat.GenerateQuestRequest{
		NPCName:          "Commander Sarah Chen",
		PlayerSuggestion: "collect 7 pieces of ore",
		AvailableItems:   []string{"space_rock", "iron_ore"},
		AvailableNPCs:    []string{"Scout Jake Williams"},
	})

	require.Len(t, llm.Calls(), 1)
	assert.Equal(t, "space_rock", q.TargetItem)
	assert.Equal(t, 7, q.Quantity)
	assert.True(t, strings.HasPrefix(q.ID, "commander_sarah_quest_"), q.ID)
	assert.Contains(t, llm.Calls()[0].Prompt, `PLAYER_SUGGESTION: "collect 7 pieces of ore"`)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.QuestRequests.WithLabelValues(endpointGenerateQuest, metrics.SourceModel)))
}

func TestGenerateQuest_UnknownNPCUsesRules(t *testing.T) {
	llm := services.NewMockCompletionService("unused")
	g, m := newTestGenerator(llm, testOptions())

	q := g.GenerateQuest(context.Background(), chat.GenerateQuestRequest{
		NPCName:          chat.UnknownNPC,
		PlayerSuggestion: "I want to talk to someone",
		AvailableNPCs:    []string{"Scout Jake Williams"},
	})

	assert.Empty(t, llm.Calls())
	assert.Equal(t, quest.TypeTalkToNPC, q.Type)
	assert.Equal(t, "Scout Jake Williams", q.TargetNPC)
	assert.Equal(t, 10, q.RewardCrypto)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.QuestRequests.WithLabelValues(endpointGenerateQuest, metrics.SourceRules)))
}

func TestGenerateQuest_ModelQuestsDisabled(t *testing.T) {
	opts := testOptions()
	opts.UseLLMQuests = false
	llm := services.NewMockCompletionService("unused")
	g, _ := newTestGenerator(llm, opts)

	q := g.GenerateQuest(context.Background(), chat.GenerateQuestRequest{
		NPCName:          "Commander Sarah Chen",
		PlayerSuggestion: "please collect crystals",
	})

	assert.Empty(t, llm.Calls())
	assert.Equal(t, quest.TypeCollectItem, q.Type)
	assert.Equal(t, quest.DefaultItem, q.TargetItem)
	assert.Equal(t, 15, q.RewardCrypto)
}

func TestGenerateQuest_RuleQuestCarriesNPCID(t *testing.T) {
	opts := testOptions()
	opts.UseLLMQuests = false
	g, _ := newTestGenerator(services.NewMockCompletionService("unused"), opts)

	q := g.GenerateQuest(context.Background(), chat.GenerateQuestRequest{
		NPCName:          "Scout Jake Williams",
		PlayerSuggestion: "talk to the commander",
		AvailableNPCs:    []string{"Commander Sarah Chen"},
	})

	assert.True(t, strings.HasPrefix(q.ID, "scout_jake_quest_"), q.ID)
}

func TestGenerateQuest_UnparseableFallsBack(t *testing.T) {
	g, m := newTestGenerator(services.NewMockCompletionService("no json here"), testOptions())

	q := g.GenerateQuest(context.Background(), chat.GenerateQuestRequest{NPCName: "Engineer Marcus Rodriguez"})

	assert.True(t, strings.HasPrefix(q.ID, "fallback_engineer_"), q.ID)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.QuestRequests.WithLabelValues(endpointGenerateQuest, metrics.SourceFallback)))
}

func TestFallbackHelpers(t *testing.T) {
	g, _ := newTestGenerator(services.NewMockCompletionService(""), testOptions())
	catalog := fallback.New()

	assert.Equal(t, catalog.Dialogue("scout_jake"), g.FallbackDialogue("", "Scout Jake Williams"))
	assert.Equal(t, catalog.Dialogue("scout_jake"), g.FallbackDialogue("scout_jake", ""))
	assert.Equal(t, fallback.DefaultDialogue, g.FallbackDialogue("", ""))

	assert.True(t, strings.HasPrefix(g.FallbackQuest("", "Dr. Kim Park").ID, "fallback_medic_"))
	assert.True(t, strings.HasPrefix(g.FallbackQuest("nobody", "").ID, "fallback_commander_"))
}

func TestNew_FilterFollowsRating(t *testing.T) {
	g, _ := newTestGenerator(services.NewMockCompletionService(""), Options{ContentRating: prompts.RatingG})
	assert.NotNil(t, g.filter)

	g, _ = newTestGenerator(services.NewMockCompletionService(""), Options{ContentRating: prompts.RatingR})
	assert.Nil(t, g.filter)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{
		"QUEST_TEMPERATURE":  "0.5",
		"QUEST_MAX_TOKENS":   "250",
		"USE_LLM_QUESTS":     "false",
		"CONTENT_RATING":     "PG-13",
		"MAX_CONTEXT_TOKENS": "4096",
	})
	require.NoError(t, err)

	opts := OptionsFromConfig(cfg)
	assert.Equal(t, 0.5, opts.QuestTemperature)
	assert.Equal(t, 250, opts.QuestMaxTokens)
	assert.Equal(t, 150, opts.DialogueMaxTokens)
	assert.False(t, opts.UseLLMQuests)
	assert.Equal(t, prompts.RatingPG13, opts.ContentRating)
	assert.Equal(t, 4096, opts.Budget.MaxContextTokens)
}
