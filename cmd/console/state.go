package main

import (
	"encoding/json"

	"github.com/jwebster45206/outpost-engine/pkg/chat"
	"github.com/jwebster45206/outpost-engine/pkg/quest"
)

// playerState is the console's own game state. The server keeps none; it is
// sent along with every request and stored opaquely by /save.
type playerState struct {
	Crypto        float64                       `json:"crypto"`
	ActiveQuests  []quest.Quest                 `json:"active_quests"`
	Inventory     []string                      `json:"inventory"`
	Conversations map[string][]chat.ChatMessage `json:"conversations"`
}

func newPlayerState() *playerState {
	return &playerState{
		Crypto:        100,
		Conversations: make(map[string][]chat.ChatMessage),
	}
}

// context reduces the state to what the API expects as player context.
func (s *playerState) context() chat.PlayerContext {
	pc := chat.PlayerContext{Crypto: s.Crypto}
	for _, q := range s.ActiveQuests {
		if raw, err := json.Marshal(q); err == nil {
			pc.ActiveQuests = append(pc.ActiveQuests, raw)
		}
	}
	for _, item := range s.Inventory {
		if raw, err := json.Marshal(item); err == nil {
			pc.Inventory = append(pc.Inventory, raw)
		}
	}
	return pc
}

func (s *playerState) history(npcID string) []chat.ChatMessage {
	return s.Conversations[npcID]
}

func (s *playerState) addMessage(npcID, role, content string) {
	if s.Conversations == nil {
		s.Conversations = make(map[string][]chat.ChatMessage)
	}
	s.Conversations[npcID] = append(s.Conversations[npcID], chat.ChatMessage{Role: role, Content: content})
}

// lastReply returns the most recent line spoken by npcID.
func (s *playerState) lastReply(npcID string) (string, bool) {
	msgs := s.Conversations[npcID]
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == chat.ChatRoleAgent {
			return msgs[i].Content, true
		}
	}
	return "", false
}
