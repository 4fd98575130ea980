package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jwebster45206/outpost-engine/pkg/quest"
)

// ErrInvalidRequest marks caller input that cannot be processed.
var ErrInvalidRequest = errors.New("invalid request")

// MaxPlayerTextLength bounds free text sent by the game client.
const MaxPlayerTextLength = 2000

// MaxMemoryContextLength bounds memory and conversation context. It keeps a
// full prompt well inside the default context window.
const MaxMemoryContextLength = 16000

// MaxBodyBytes bounds a decoded request body.
const MaxBodyBytes = 1 << 20

// UnknownNPC is the display name used when a quest request names no NPC.
const UnknownNPC = "Unknown NPC"

// PlayerContext is the slice of game state the client sends with each
// request. Quest and inventory entries are opaque; only their counts reach
// the model.
type PlayerContext struct {
	Crypto       float64           `json:"crypto"`
	ActiveQuests []json.RawMessage `json:"active_quests,omitempty"`
	Inventory    []json.RawMessage `json:"inventory,omitempty"`
}

// ContextSummary is the reduced form of PlayerContext embedded in prompts.
type ContextSummary struct {
	Crypto            float64 `json:"crypto"`
	ActiveQuestsCount int     `json:"active_quests_count"`
	InventoryCount    int     `json:"inventory_count"`
}

// Summary reduces pc to counts.
func (pc PlayerContext) Summary() ContextSummary {
	return ContextSummary{
		Crypto:            pc.Crypto,
		ActiveQuestsCount: len(pc.ActiveQuests),
		InventoryCount:    len(pc.Inventory),
	}
}

// DialogueRequest asks an NPC to answer the player.
type DialogueRequest struct {
	NPCID            string        `json:"npc_id"`
	NPCName          string        `json:"npc_name"`
	NPCPersonality   string        `json:"npc_personality"`
	NPCRole          string        `json:"npc_role"`
	NPCBackground    string        `json:"npc_background"`
	NPCDialogueStyle string        `json:"npc_dialogue_style"`
	PlayerMessage    string        `json:"player_message"`
	PlayerContext    PlayerContext `json:"player_context"`
	MemoryContext    string        `json:"memory_context"`
}

func (r *DialogueRequest) Validate() error {
	if len(r.PlayerMessage) > MaxPlayerTextLength {
		return fmt.Errorf("%w: player_message exceeds %d characters", ErrInvalidRequest, MaxPlayerTextLength)
	}
	if len(r.MemoryContext) > MaxMemoryContextLength {
		return fmt.Errorf("%w: memory_context exceeds %d characters", ErrInvalidRequest, MaxMemoryContextLength)
	}
	return nil
}

// DialogueResponse is returned by the dialogue endpoint. On failure Success is
// false, Error is set and Message still carries a fallback line.
type DialogueResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	NPCID     string    `json:"npc_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
}

// QuestRequest asks an NPC to offer a quest.
//
// AvailableItems, AvailableNPCs and PlayerSuggestion are optional; the server
// substitutes its own catalogs when the sets are empty.
type QuestRequest struct {
	NPCID            string            `json:"npc_id"`
	NPCName          string            `json:"npc_name"`
	NPCPersonality   string            `json:"npc_personality"`
	NPCRole          string            `json:"npc_role"`
	PlayerContext    PlayerContext     `json:"player_context"`
	ExistingQuests   []json.RawMessage `json:"existing_quests,omitempty"`
	AvailableItems   []string          `json:"available_items,omitempty"`
	AvailableNPCs    []string          `json:"available_npcs,omitempty"`
	PlayerSuggestion string            `json:"player_suggestion,omitempty"`
}

func (r *QuestRequest) Validate() error {
	if len(r.PlayerSuggestion) > MaxPlayerTextLength {
		return fmt.Errorf("%w: player_suggestion exceeds %d characters", ErrInvalidRequest, MaxPlayerTextLength)
	}
	return nil
}

// ExistingTitles returns the titles of the quests the player already holds.
// Entries may be quest objects or bare title strings; anything else is
// skipped.
func (r *QuestRequest) ExistingTitles() []string {
	var titles []string
	for _, raw := range r.ExistingQuests {
		var obj struct {
			Title string `json:"title"`
		}
		if err := json.Unmarshal(raw, &obj); err == nil {
			if t := strings.TrimSpace(obj.Title); t != "" {
				titles = append(titles, t)
			}
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if t := strings.TrimSpace(s); t != "" {
				titles = append(titles, t)
			}
		}
	}
	return titles
}

// GenerateQuestRequest asks for a quest shaped by the player's own idea.
type GenerateQuestRequest struct {
	NPCName             string   `json:"npc_name"`
	ConversationContext string   `json:"conversation_context"`
	PlayerSuggestion    string   `json:"player_suggestion"`
	AvailableItems      []string `json:"available_items"`
	AvailableNPCs       []string `json:"available_npcs"`
}

func (r *GenerateQuestRequest) Validate() error {
	if len(r.PlayerSuggestion) > MaxPlayerTextLength {
		return fmt.Errorf("%w: player_suggestion exceeds %d characters", ErrInvalidRequest, MaxPlayerTextLength)
	}
	if len(r.ConversationContext) > MaxMemoryContextLength {
		return fmt.Errorf("%w: conversation_context exceeds %d characters", ErrInvalidRequest, MaxMemoryContextLength)
	}
	if strings.TrimSpace(r.NPCName) == "" {
		r.NPCName = UnknownNPC
	}
	return nil
}

// QuestResponse is returned by both quest endpoints.
type QuestResponse struct {
	Success   bool         `json:"success"`
	Quest     *quest.Quest `json:"quest,omitempty"`
	Timestamp *time.Time   `json:"timestamp,omitempty"`
	Error     string       `json:"error,omitempty"`
}

// Decode reads a single JSON request body of at most MaxBodyBytes into v.
// Any failure is reported as ErrInvalidRequest.
func Decode(r io.Reader, v any) error {
	lr := &io.LimitedReader{R: r, N: MaxBodyBytes + 1}
	dec := json.NewDecoder(lr)
	if err := dec.Decode(v); err != nil {
		if lr.N <= 0 {
			return fmt.Errorf("%w: body exceeds %d bytes", ErrInvalidRequest, MaxBodyBytes)
		}
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", ErrInvalidRequest)
		}
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

const (
	ChatRoleUser  = "user"      // Player
	ChatRoleAgent = "assistant" // NPC
)

// ChatMessage is one line of a conversation kept by a client.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Transcript renders messages as "Name: text" lines, suitable as a legacy
// memory context.
func Transcript(messages []ChatMessage, playerName, npcName string) string {
	var sb strings.Builder
	for _, m := range messages {
		speaker := playerName
		if m.Role == ChatRoleAgent {
			speaker = npcName
		}
		sb.WriteString(speaker)
		sb.WriteString(": ")
		sb.WriteString(strings.TrimSpace(m.Content))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
