package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jwebster45206/outpost-engine/pkg/chat"
	"github.com/jwebster45206/outpost-engine/pkg/npc"
)

const questHeader = `You are generating a quest for a sci-fi frontier outpost game. You must respond with ONLY valid JSON, no other text.`

const questInstructions = `Create a quest fitting this NPC's role. IMPORTANT: Consider the player's suggestion carefully:
- If they mention a specific item, use that item if available
- If they mention a reward amount, use that amount (or close to it)
- If they mention a quantity, use that quantity
- If they want a talking quest, create a talk_to_npc quest
- Only use items from AVAILABLE_ITEMS and NPCs from AVAILABLE_NPCS`

const questShapes = `You must respond with ONLY this exact JSON format, no other text:
{
    "quest_type": "collect_item",
    "title": "Quest Title",
    "description": "Quest description",
    "target_item": "item_name",
    "quantity": 1,
    "reward_crypto": 15,
    "response": "NPC's response when offering the quest"
}

OR for talk quests:
{
    "quest_type": "talk_to_npc",
    "title": "Quest Title",
    "description": "Quest description",
    "target_npc": "NPC_name",
    "reward_crypto": 15,
    "response": "NPC's response when offering the quest"
}

Respond with ONLY the JSON:`

// QuestBuilder assembles the prompt asking the model for one quest as JSON.
type QuestBuilder struct {
	npc        npc.Profile
	context    chat.ContextSummary
	items      []string
	npcs       []string
	suggestion string
	existing   []string
}

// NewQuest creates an empty quest prompt builder.
func NewQuest() *QuestBuilder {
	return &QuestBuilder{}
}

func (b *QuestBuilder) WithNPC(p npc.Profile) *QuestBuilder {
	b.npc = p
	return b
}

func (b *QuestBuilder) WithPlayerContext(pc chat.PlayerContext) *QuestBuilder {
	b.context = pc.Summary()
	return b
}

// WithAvailableItems sets the only item ids the quest may target.
func (b *QuestBuilder) WithAvailableItems(items []string) *QuestBuilder {
	b.items = items
	return b
}

// WithAvailableNPCs sets the only NPC names the quest may target.
func (b *QuestBuilder) WithAvailableNPCs(names []string) *QuestBuilder {
	b.npcs = names
	return b
}

// WithSuggestion sets the player's own idea for the quest, embedded verbatim.
func (b *QuestBuilder) WithSuggestion(suggestion string) *QuestBuilder {
	b.suggestion = suggestion
	return b
}

// WithExistingQuests lists titles the player already holds so the model can
// avoid repeating them.
func (b *QuestBuilder) WithExistingQuests(titles []string) *QuestBuilder {
	b.existing = titles
	return b
}

// Build renders the prompt.
func (b *QuestBuilder) Build() (string, error) {
	name := strings.TrimSpace(b.npc.Name)
	if name == "" {
		return "", ErrMissingNPC
	}

	summary, err := json.Marshal(b.context)
	if err != nil {
		return "", fmt.Errorf("failed to marshal player context: %w", err)
	}
	items, err := marshalList(b.items)
	if err != nil {
		return "", fmt.Errorf("failed to marshal available items: %w", err)
	}
	npcs, err := marshalList(b.npcs)
	if err != nil {
		return "", fmt.Errorf("failed to marshal available npcs: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(questHeader)
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "NPC: %s - %s\n", name, b.npc.Role)
	fmt.Fprintf(&sb, "PERSONALITY: %s\n", b.npc.Personality)
	fmt.Fprintf(&sb, "CONTEXT: %s\n", summary)
	fmt.Fprintf(&sb, "AVAILABLE_ITEMS: %s\n", items)
	fmt.Fprintf(&sb, "AVAILABLE_NPCS: %s\n", npcs)
	if len(b.existing) > 0 {
		existing, err := marshalList(b.existing)
		if err != nil {
			return "", fmt.Errorf("failed to marshal existing quests: %w", err)
		}
		fmt.Fprintf(&sb, "EXISTING_QUESTS: %s\n", existing)
	}
	fmt.Fprintf(&sb, "PLAYER_SUGGESTION: \"%s\"\n\n", b.suggestion)

	sb.WriteString(questInstructions)
	if len(b.existing) > 0 {
		sb.WriteString("\n- Do not repeat any quest listed in EXISTING_QUESTS")
	}
	sb.WriteString("\n\n")
	sb.WriteString(questShapes)

	return sb.String(), nil
}

// marshalList renders a nil slice as [] rather than null.
func marshalList(list []string) ([]byte, error) {
	if list == nil {
		list = []string{}
	}
	return json.Marshal(list)
}
