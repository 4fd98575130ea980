package chat

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerContext_Summary(t *testing.T) {
	var req DialogueRequest
	body := `{
		"npc_name": "Dr. Kim Park",
		"player_context": {
			"crypto": 42.5,
			"active_quests": [{"id": "q1", "title": "Find ore"}, {"id": "q2"}],
			"inventory": ["iron_ore", {"id": "space_rock", "count": 2}, 7]
		}
	}`
	require.NoError(t, Decode(strings.NewReader(body), &req))

	assert.Equal(t, ContextSummary{Crypto: 42.5, ActiveQuestsCount: 2, InventoryCount: 3}, req.PlayerContext.Summary())

	raw, err := json.Marshal(req.PlayerContext.Summary())
	require.NoError(t, err)
	assert.JSONEq(t, `{"crypto":42.5,"active_quests_count":2,"inventory_count":3}`, string(raw))
}

func TestPlayerContext_EmptySummary(t *testing.T) {
	assert.Equal(t, ContextSummary{}, PlayerContext{}.Summary())
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"npc_id":"scout_jake"}`, false},
		{"empty", ``, true},
		{"malformed", `{"npc_id":`, true},
		{"wrong type", `{"npc_id": 12}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req DialogueRequest
			err := Decode(strings.NewReader(tt.body), &req)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRequest)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDecode_BodyTooLarge(t *testing.T) {
	body := `{"npc_id":"scout_jake","memory_context":"` + strings.Repeat("m", MaxBodyBytes) + `"}`

	var req DialogueRequest
	err := Decode(strings.NewReader(body), &req)
	require.ErrorIs(t, err, ErrInvalidRequest)
	assert.Contains(t, err.Error(), "body exceeds")
}

func TestValidate_ContextLength(t *testing.T) {
	long := strings.Repeat("m", MaxMemoryContextLength+1)

	d := DialogueRequest{NPCName: "Dr. Kim Park", MemoryContext: long}
	assert.ErrorIs(t, d.Validate(), ErrInvalidRequest)
	d.MemoryContext = long[:MaxMemoryContextLength]
	assert.NoError(t, d.Validate())

	g := GenerateQuestRequest{NPCName: "Dr. Kim Park", ConversationContext: long}
	assert.ErrorIs(t, g.Validate(), ErrInvalidRequest)
}

func TestValidate(t *testing.T) {
	long := strings.Repeat("x", MaxPlayerTextLength+1)

	d := DialogueRequest{PlayerMessage: "hello"}
	assert.NoError(t, d.Validate())
	d.PlayerMessage = long
	assert.ErrorIs(t, d.Validate(), ErrInvalidRequest)

	q := QuestRequest{PlayerSuggestion: long}
	assert.ErrorIs(t, q.Validate(), ErrInvalidRequest)

	g := GenerateQuestRequest{PlayerSuggestion: "collect crystals"}
	require.NoError(t, g.Validate())
	assert.Equal(t, UnknownNPC, g.NPCName)

	g = GenerateQuestRequest{NPCName: "Scout Jake Williams", PlayerSuggestion: long}
	assert.ErrorIs(t, g.Validate(), ErrInvalidRequest)
}

func TestQuestRequest_ExistingTitles(t *testing.T) {
	var req QuestRequest
	body := `{"existing_quests": [
		{"id": "a", "title": "Security Assessment"},
		"Medical Supply Run",
		{"id": "b"},
		42,
		{"title": "  "}
	]}`
	require.NoError(t, Decode(strings.NewReader(body), &req))

	assert.Equal(t, []string{"Security Assessment", "Medical Supply Run"}, req.ExistingTitles())
}

func TestTranscript(t *testing.T) {
	msgs := []ChatMessage{
		{Role: ChatRoleUser, Content: "Any work for me?"},
		{Role: ChatRoleAgent, Content: " Always. \n"},
	}
	assert.Equal(t, "Player: Any work for me?\nScout Jake Williams: Always.", Transcript(msgs, "Player", "Scout Jake Williams"))
	assert.Empty(t, Transcript(nil, "Player", "NPC"))
}
