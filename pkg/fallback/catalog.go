package fallback

import "github.com/jwebster45206/outpost-engine/pkg/quest"

func objective(id, description string, target int) []quest.Objective {
	return []quest.Objective{{ID: id, Description: description, Target: target}}
}

var builtin = map[string]template{
	"commander_sarah": {
		short:    "commander",
		dialogue: "At ease, soldier. The outpost is running smoothly, but we always need to stay vigilant. Is there something specific you need assistance with?",
		quest: quest.Quest{
			Title:       "Security Assessment",
			Description: "Conduct a security assessment of the outpost perimeter and report any vulnerabilities",
			Reward:      "Military commendation and access to restricted areas",
			Objectives:  objective("assess_perimeter", "Check all security checkpoints around the outpost", 4),
		},
	},
	"engineer_marcus": {
		short:    "engineer",
		dialogue: "Oh! Hello there! I was just working on some fascinating modifications to the power grid. The quantum flux capacitors are behaving most unusually today!",
		quest: quest.Quest{
			Title:       "Power Grid Maintenance",
			Description: "Help maintain the outpost power grid by checking and repairing critical systems",
			Reward:      "Technical schematics and engineering tools",
			Objectives:  objective("repair_systems", "Repair 3 critical power systems", 3),
		},
	},
	"trader_eliza": {
		short:    "trader",
		dialogue: "Well hello, handsome! I've got some excellent deals today. Just got a shipment of rare materials from the outer colonies. Interested?",
		quest: quest.Quest{
			Title:       "Supply Chain Management",
			Description: "Help manage the supply chain by delivering goods to various outpost locations",
			Reward:      "Credits and rare trade goods",
			Objectives:  objective("deliver_goods", "Deliver supplies to 5 different locations", 5),
		},
	},
	"scout_jake": {
		short:    "scout",
		dialogue: "*whispers* You should be careful out there. I've seen things in the wilderness that would make your blood run cold. The outpost walls are all that keep us safe.",
		quest: quest.Quest{
			Title:       "Wilderness Reconnaissance",
			Description: "Scout the dangerous areas beyond the outpost and report any threats",
			Reward:      "Survival gear and wilderness knowledge",
			Objectives:  objective("scout_areas", "Explore 3 dangerous areas and report findings", 3),
		},
	},
	"medic_dr_kim": {
		short:    "medic",
		dialogue: "Hello! I hope you're feeling well. The medical bay is fully stocked, but I'm always concerned about the health of our outpost residents. How are you holding up?",
		quest: quest.Quest{
			Title:       "Medical Supply Run",
			Description: "Help gather medical supplies and check on the health of outpost residents",
			Reward:      "Medical supplies and first aid training",
			Objectives:  objective("gather_supplies", "Collect medical supplies from 4 locations", 4),
		},
	},
	// Rick has no dedicated line; he falls back to the generic greeting.
	"unfiltered_rick": {
		short: "rick",
		quest: quest.Quest{
			Title:       "Shady Business",
			Description: `Help me with some... let's say "unofficial" business around the outpost. Nothing illegal, just... creative.`,
			Reward:      "Some crypto and maybe some interesting stories",
			Objectives:  objective("shady_tasks", "Complete some questionable but profitable tasks", 3),
		},
	},
}
