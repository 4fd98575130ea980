package quest

import (
	"fmt"

	"github.com/google/uuid"
)

// Type discriminates the two quest shapes the game client understands.
type Type string

const (
	TypeCollectItem Type = "collect_item"
	TypeTalkToNPC   Type = "talk_to_npc"
)

// Status is the lifecycle state of a quest. Only creation is owned here;
// progression and completion belong to the game client.
type Status string

const StatusAvailable Status = "available"

const (
	// DefaultItem is used when a collect quest has no available item to target.
	DefaultItem = "crystal_red"
	// DefaultNPC is used when a talk quest has no available NPC to target.
	DefaultNPC = "Commander Sarah Chen"

	MaxRewardCrypto = 1000
	MaxQuantity     = 10
)

// Objective is a fixed-target step of a hand-authored quest template.
type Objective struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Target      int    `json:"target"`
	Progress    int    `json:"progress"`
}

// Quest is a quest record as returned to the game client.
//
// Generated quests carry a Type and either TargetItem/Quantity (collect_item)
// or TargetNPC (talk_to_npc). Fallback templates carry no Type; they describe
// their goal through Reward and Objectives instead.
type Quest struct {
	ID           string      `json:"id"`
	Type         Type        `json:"quest_type,omitempty"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	TargetItem   string      `json:"target_item,omitempty"`
	Quantity     int         `json:"quantity,omitempty"`
	TargetNPC    string      `json:"target_npc,omitempty"`
	RewardCrypto int         `json:"reward_crypto,omitempty"`
	Reward       string      `json:"reward,omitempty"`
	Response     string      `json:"response,omitempty"`
	Status       Status      `json:"status"`
	Objectives   []Objective `json:"objectives,omitempty"`
}

// IsTemplate reports whether q is a hand-authored fallback template rather
// than a generated quest.
func (q Quest) IsTemplate() bool {
	return q.Type == "" && len(q.Objectives) > 0
}

// NewID returns a fresh quest id scoped to the offering NPC.
func NewID(npcID string) string {
	if npcID == "" {
		npcID = "npc"
	}
	return fmt.Sprintf("%s_quest_%s", npcID, uuid.NewString())
}

func clampReward(reward int) int {
	return min(max(reward, 0), MaxRewardCrypto)
}
