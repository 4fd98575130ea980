package quest

import "fmt"

// Rules builds a quest from the player's suggestion alone, without consulting
// a model. Collect and talk requests are recognised by keyword; anything else
// gets a default collect quest. The result goes through Repair so player hints
// (reward, quantity, item) are honoured the same way as for generated quests.
func Rules(c Constraints) Quest {
	var cand Candidate

	switch {
	case wantsCollect(c.Suggestion):
		item, response := DefaultItem, "That's a great idea! I could really use some help collecting items."
		title, description := "Collect an item", "Please collect an item for me."
		if len(c.AvailableItems) > 0 {
			item = c.AvailableItems[0]
			title = "Collect " + item
			description = fmt.Sprintf("Please collect %s for me.", item)
			response = fmt.Sprintf("That's a great idea! I could really use some %s. Can you collect it for me?", item)
		}
		cand = collectCandidate(title, description, item, 15, response)

	case wantsTalk(c.Suggestion):
		npc, response := DefaultNPC, "That's perfect! I need to get a message to someone. Can you help me?"
		title, description := "Talk to someone", "Please deliver a message to another NPC."
		if len(c.AvailableNPCs) > 0 {
			npc = c.AvailableNPCs[0]
			title = "Talk to " + npc
			description = fmt.Sprintf("Please deliver a message to %s.", npc)
			response = fmt.Sprintf("That's perfect! I need to get a message to %s. Can you help me?", npc)
		}
		cand = Candidate{
			"quest_type":    string(TypeTalkToNPC),
			"title":         title,
			"description":   description,
			"target_npc":    npc,
			"reward_crypto": float64(10),
			"response":      response,
		}

	default:
		item, name := DefaultItem, "an item"
		if len(c.AvailableItems) > 0 {
			item, name = c.AvailableItems[0], c.AvailableItems[0]
		}
		cand = collectCandidate(
			"Collect "+name,
			fmt.Sprintf("Please collect %s for me.", name),
			item, 15,
			"I'd be happy to give you a task! Here's something you can help me with.",
		)
	}

	q, _ := Repair(cand, c)
	return q
}

func collectCandidate(title, description, item string, reward int, response string) Candidate {
	return Candidate{
		"quest_type":    string(TypeCollectItem),
		"title":         title,
		"description":   description,
		"target_item":   item,
		"quantity":      float64(1),
		"reward_crypto": float64(reward),
		"response":      response,
	}
}
