package prompts

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jwebster45206/outpost-engine/pkg/chat"
	"github.com/jwebster45206/outpost-engine/pkg/npc"
)

// ErrMissingNPC is returned by Build when no NPC name was supplied.
var ErrMissingNPC = errors.New("npc name is required")

const dialogueInstructions = `IMPORTANT INSTRUCTIONS:
- Respond naturally as %[1]s in character
- Keep responses under 2-3 sentences
- Use the memory context to inform your response, but don't repeat it
- Be true to your personality and role
- If you remember something relevant from the memory context, reference it naturally
- DO NOT include the memory context text in your response
- DO NOT include instruction text in your response`

// DialogueBuilder assembles the prompt for a single in-character reply.
type DialogueBuilder struct {
	npc     npc.Profile
	context chat.ContextSummary
	memory  string
	message string
	rating  string
}

// NewDialogue creates an empty dialogue prompt builder.
func NewDialogue() *DialogueBuilder {
	return &DialogueBuilder{}
}

// WithNPC sets who is speaking.
func (b *DialogueBuilder) WithNPC(p npc.Profile) *DialogueBuilder {
	b.npc = p
	return b
}

// WithPlayerContext sets the player's state; only its summary is embedded.
func (b *DialogueBuilder) WithPlayerContext(pc chat.PlayerContext) *DialogueBuilder {
	b.context = pc.Summary()
	return b
}

// WithMemory sets the NPC's memory of the player, in either the delimited or
// the legacy plain format.
func (b *DialogueBuilder) WithMemory(memory string) *DialogueBuilder {
	b.memory = memory
	return b
}

// WithPlayerMessage sets what the player said.
func (b *DialogueBuilder) WithPlayerMessage(message string) *DialogueBuilder {
	b.message = message
	return b
}

// WithRating sets the content rating guidance. Empty omits it.
func (b *DialogueBuilder) WithRating(rating string) *DialogueBuilder {
	b.rating = rating
	return b
}

// Build renders the prompt.
func (b *DialogueBuilder) Build() (string, error) {
	name := strings.TrimSpace(b.npc.Name)
	if name == "" {
		return "", ErrMissingNPC
	}

	summary, err := json.Marshal(b.context)
	if err != nil {
		return "", fmt.Errorf("failed to marshal player context: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are %s, a %s in a sci-fi frontier outpost.\n\n", name, b.npc.Role)
	fmt.Fprintf(&sb, "PERSONALITY: %s\n", b.npc.Personality)
	fmt.Fprintf(&sb, "BACKGROUND: %s\n", b.npc.Background)
	fmt.Fprintf(&sb, "DIALOGUE STYLE: %s\n", b.npc.DialogueStyle)
	if b.rating != "" {
		fmt.Fprintf(&sb, "CONTENT RATING: %s\n", GetContentRatingPrompt(b.rating))
	}
	fmt.Fprintf(&sb, "\nPLAYER CONTEXT: %s\n\n", summary)

	if memory := NormalizeMemory(b.memory); memory != "" {
		sb.WriteString(memory)
		sb.WriteString("\n\n")
	}

	fmt.Fprintf(&sb, "The player says: \"%s\"\n\n", b.message)
	fmt.Fprintf(&sb, dialogueInstructions, name)
	fmt.Fprintf(&sb, "\n\n%s:\n", name)

	return sb.String(), nil
}
