package quest

import (
	"fmt"
	"slices"
)

// Constraints is the closed world a generated quest must fit into.
type Constraints struct {
	NPCID          string
	AvailableItems []string
	AvailableNPCs  []string
	Suggestion     string
}

// Result is a successfully interpreted completion.
type Result struct {
	Quest    Quest
	Strategy string
	Fixes    []string
}

// Parse recovers a quest from a raw completion and repairs it against c.
// It fails only with ErrUnparseable.
func Parse(text string, c Constraints) (Result, error) {
	cand, strategy, ok := Extract(text)
	if !ok {
		return Result{}, ErrUnparseable
	}
	q, fixes := Repair(cand, c)
	return Result{Quest: q, Strategy: strategy, Fixes: fixes}, nil
}

// Repair turns a candidate into a quest that only references entities from
// the available sets. It never fails: every violation is replaced with a
// valid value and described in the returned fixes.
//
// Rewards are clamped to [0, MaxRewardCrypto] whatever their source, so a
// model reward above the cap changes on the first pass. Repairing a quest
// that is already within the cap changes nothing.
func Repair(cand Candidate, c Constraints) (Quest, []string) {
	var fixes []string

	q := Quest{
		ID:          cand.str("id"),
		Type:        Type(cand.str("quest_type")),
		Title:       cand.str("title"),
		Description: cand.str("description"),
		Response:    cand.str("response"),
		Status:      StatusAvailable,
	}

	reward, _ := cand.integer("reward_crypto")
	if hint, ok := RewardHint(c.Suggestion); ok {
		fixes = append(fixes, fmt.Sprintf("reward_crypto %d replaced by player suggestion %d", reward, hint))
		reward = hint
	}
	if clamped := clampReward(reward); clamped != reward {
		fixes = append(fixes, fmt.Sprintf("reward_crypto %d clamped to %d", reward, clamped))
		reward = clamped
	}
	q.RewardCrypto = reward

	if q.Type != TypeCollectItem && q.Type != TypeTalkToNPC {
		inferred := inferType(cand)
		fixes = append(fixes, fmt.Sprintf("quest_type %q inferred as %q", q.Type, inferred))
		q.Type = inferred
	}

	switch q.Type {
	case TypeCollectItem:
		item := cand.str("target_item")
		if !slices.Contains(c.AvailableItems, item) {
			repaired := repairItem(c)
			fixes = append(fixes, fmt.Sprintf("target_item %q not available, using %q", item, repaired))
			item = repaired
		}
		q.TargetItem = item

		quantity, ok := cand.integer("quantity")
		if !ok {
			quantity = 1
		}
		if hint, ok := QuantityHint(c.Suggestion); ok {
			quantity = hint
		}
		q.Quantity = max(quantity, 1)

		if q.Title == "" {
			q.Title = "Collect " + q.TargetItem
		}
		if q.Description == "" {
			q.Description = fmt.Sprintf("Please collect %d %s for me.", q.Quantity, q.TargetItem)
		}

	case TypeTalkToNPC:
		target := cand.str("target_npc")
		if !slices.Contains(c.AvailableNPCs, target) {
			repaired := DefaultNPC
			if len(c.AvailableNPCs) > 0 {
				repaired = c.AvailableNPCs[0]
			}
			fixes = append(fixes, fmt.Sprintf("target_npc %q not available, using %q", target, repaired))
			target = repaired
		}
		q.TargetNPC = target

		if q.Title == "" {
			q.Title = "Talk to " + q.TargetNPC
		}
		if q.Description == "" {
			q.Description = fmt.Sprintf("Please deliver a message to %s.", q.TargetNPC)
		}
	}

	if q.Response == "" {
		q.Response = "I could use your help with something."
	}
	if q.ID == "" {
		q.ID = NewID(c.NPCID)
	}
	return q, fixes
}

// repairItem resolves the item a collect quest should target when the model
// chose one outside the available set.
func repairItem(c Constraints) string {
	if item, ok := MatchItem(c.Suggestion, c.AvailableItems); ok {
		return item
	}
	if len(c.AvailableItems) > 0 {
		return c.AvailableItems[0]
	}
	return DefaultItem
}

func inferType(cand Candidate) Type {
	if cand.str("target_npc") != "" && cand.str("target_item") == "" {
		return TypeTalkToNPC
	}
	return TypeCollectItem
}
