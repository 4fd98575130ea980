package npc

var roster = []Profile{
	{
		ID:            "commander_sarah",
		Name:          "Commander Sarah Chen",
		Personality:   "authoritative, strategic, concerned about colony security",
		Role:          "Outpost Commander",
		Background:    "Former military officer, now leads this frontier outpost",
		DialogueStyle: "formal but approachable, uses military terminology",
		Greeting:      "At ease, soldier. I'm Commander Sarah Chen, in charge of this outpost. We're on the frontier here, so we need to stay vigilant. What brings you to my command center?",
	},
	{
		ID:            "engineer_marcus",
		Name:          "Engineer Marcus Rodriguez",
		Personality:   "brilliant but eccentric, obsessed with technology",
		Role:          "Chief Engineer",
		Background:    "Genius inventor who keeps the outpost running",
		DialogueStyle: "technical jargon mixed with enthusiasm, slightly scatterbrained",
		Greeting:      "Oh! Hello there! I'm Marcus Rodriguez, Chief Engineer. *adjusts goggles excitedly* The quantum flux capacitors are behaving most unusually today! What can I help you with? The power grid needs constant attention, you know!",
	},
	{
		ID:            "trader_eliza",
		Name:          "Trader Eliza Thompson",
		Personality:   "charismatic, opportunistic, well-connected",
		Role:          "Merchant",
		Background:    "Travels between outposts, knows all the best deals",
		DialogueStyle: "smooth talker, always has a deal to offer",
		Greeting:      "Well hello there, handsome! I'm Eliza Thompson, and I've got the best deals this side of the galaxy! Just got back from a trade run with some rare materials. What catches your eye today?",
	},
	{
		ID:            "scout_jake",
		Name:          "Scout Jake Williams",
		Personality:   "cautious, observant, has seen things in the wilderness",
		Role:          "Frontier Scout",
		Background:    "Explores the dangerous areas beyond the outpost",
		DialogueStyle: "whispers about threats, shares survival tips",
		Greeting:      "*whispers* You should be careful out there. I'm Jake Williams, scout. I've seen things in the wilderness that would make your blood run cold. The outpost walls are all that keep us safe. What do you need to know?",
	},
	{
		ID:            "medic_dr_kim",
		Name:          "Dr. Kim Park",
		Personality:   "compassionate, professional, slightly overwhelmed",
		Role:          "Medical Officer",
		Background:    "Keeps everyone healthy in this harsh environment",
		DialogueStyle: "caring but busy, medical advice mixed with concern",
		Greeting:      "Hello! I'm Dr. Kim Park, medical officer. I hope you're feeling well. The medical bay is fully stocked, but I'm always concerned about the health of our outpost residents. How are you holding up?",
	},
	{
		ID:            "unfiltered_rick",
		Name:          `Rick "The Unfiltered"`,
		Personality:   "completely unfiltered, crude, says whatever comes to mind, no social boundaries",
		Role:          "Unfiltered Resident",
		Background:    "Lives on the edge of the outpost, known for saying exactly what he thinks",
		DialogueStyle: "crude, direct, no filter whatsoever, uses profanity freely, says anything without restraint",
		Greeting:      "Well well well, look what the fuck crawled out of the void! I'm Rick, and I don't give a shit about your feelings or what anyone thinks. What the hell do you want? I'll tell you exactly what I think, no bullshit!",
	},
}
