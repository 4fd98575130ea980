package fallback

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/outpost-engine/pkg/quest"
)

func TestCatalog_KnownNPCs(t *testing.T) {
	c := New()

	tests := []struct {
		npcID     string
		title     string
		idPrefix  string
		objective string
		target    int
	}{
		{"commander_sarah", "Security Assessment", "fallback_commander_", "assess_perimeter", 4},
		{"engineer_marcus", "Power Grid Maintenance", "fallback_engineer_", "repair_systems", 3},
		{"trader_eliza", "Supply Chain Management", "fallback_trader_", "deliver_goods", 5},
		{"scout_jake", "Wilderness Reconnaissance", "fallback_scout_", "scout_areas", 3},
		{"medic_dr_kim", "Medical Supply Run", "fallback_medic_", "gather_supplies", 4},
		{"unfiltered_rick", "Shady Business", "fallback_rick_", "shady_tasks", 3},
	}

	for _, tt := range tests {
		t.Run(tt.npcID, func(t *testing.T) {
			assert.True(t, c.Has(tt.npcID))

			e := c.Entry(tt.npcID)
			assert.NotEmpty(t, e.Dialogue)
			assert.Equal(t, tt.title, e.Quest.Title)
			assert.True(t, strings.HasPrefix(e.Quest.ID, tt.idPrefix), e.Quest.ID)
			assert.Equal(t, quest.StatusAvailable, e.Quest.Status)
			assert.True(t, e.Quest.IsTemplate())
			assert.NotEmpty(t, e.Quest.Reward)

			require.Len(t, e.Quest.Objectives, 1)
			assert.Equal(t, tt.objective, e.Quest.Objectives[0].ID)
			assert.Equal(t, tt.target, e.Quest.Objectives[0].Target)
			assert.Zero(t, e.Quest.Objectives[0].Progress)
		})
	}
}

func TestCatalog_UnknownNPCUsesDefault(t *testing.T) {
	c := New()

	for _, id := range []string{"", "nobody", "COMMANDER_SARAH", "rick_unfiltered"} {
		t.Run(id, func(t *testing.T) {
			assert.False(t, c.Has(id))

			e := c.Entry(id)
			assert.Equal(t, DefaultDialogue, e.Dialogue)
			assert.Equal(t, "Security Assessment", e.Quest.Title)
			assert.True(t, strings.HasPrefix(e.Quest.ID, "fallback_commander_"))
		})
	}
}

func TestCatalog_RickSpeaksDefaultLine(t *testing.T) {
	assert.Equal(t, DefaultDialogue, New().Dialogue("unfiltered_rick"))
}

func TestCatalog_QuestsAreIndependentCopies(t *testing.T) {
	c := New()

	first := c.Quest("scout_jake")
	first.Objectives[0].Progress = 2
	first.Title = "changed"

	second := c.Quest("scout_jake")
	assert.Zero(t, second.Objectives[0].Progress)
	assert.Equal(t, "Wilderness Reconnaissance", second.Title)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCatalog_QuestJSONHasTextRewardOnly(t *testing.T) {
	data, err := json.Marshal(New().Quest("trader_eliza"))
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.NotContains(t, fields, "reward_crypto")
	assert.NotContains(t, fields, "quest_type")
	assert.Contains(t, fields, "reward")
	assert.Contains(t, fields, "objectives")
}
