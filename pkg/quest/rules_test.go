package quest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRules(t *testing.T) {
	tests := []struct {
		name        string
		constraints Constraints
		wantType    Type
		wantItem    string
		wantNPC     string
		wantReward  int
		wantQty     int
	}{
		{
			name: "talk request targets first available npc",
			constraints: Constraints{
				Suggestion:    "I need someone to talk to Commander Sarah Chen",
				AvailableNPCs: []string{"Commander Sarah Chen"},
			},
			wantType:   TypeTalkToNPC,
			wantNPC:    "Commander Sarah Chen",
			wantReward: 10,
		},
		{
			name:        "message request without npcs uses default",
			constraints: Constraints{Suggestion: "send a message for me"},
			wantType:    TypeTalkToNPC,
			wantNPC:     DefaultNPC,
			wantReward:  10,
		},
		{
			name: "collect request",
			constraints: Constraints{
				Suggestion:     "I could collect 3 pieces of something",
				AvailableItems: []string{"glow_stalk", "iron_ore"},
			},
			wantType:   TypeCollectItem,
			wantItem:   "glow_stalk",
			wantReward: 15,
			wantQty:    3,
		},
		{
			name:        "crystal request without items",
			constraints: Constraints{Suggestion: "crystals!"},
			wantType:    TypeCollectItem,
			wantItem:    DefaultItem,
			wantReward:  15,
			wantQty:     1,
		},
		{
			name: "anything else is a default collect quest",
			constraints: Constraints{
				Suggestion:     "what can I do for 80 crypto",
				AvailableItems: []string{"cosmic_dust"},
			},
			wantType:   TypeCollectItem,
			wantItem:   "cosmic_dust",
			wantReward: 80,
			wantQty:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Rules(tt.constraints)
			assert.Equal(t, tt.wantType, q.Type)
			assert.Equal(t, tt.wantItem, q.TargetItem)
			assert.Equal(t, tt.wantNPC, q.TargetNPC)
			assert.Equal(t, tt.wantReward, q.RewardCrypto)
			assert.Equal(t, tt.wantQty, q.Quantity)
			assert.Equal(t, StatusAvailable, q.Status)
			assert.NotEmpty(t, q.ID)
			assert.NotEmpty(t, q.Title)
			assert.NotEmpty(t, q.Response)
		})
	}
}

func TestRules_DefaultTitleWithoutItems(t *testing.T) {
	q := Rules(Constraints{Suggestion: "surprise me"})
	assert.Equal(t, "Collect an item", q.Title)
	assert.Equal(t, DefaultItem, q.TargetItem)
}
