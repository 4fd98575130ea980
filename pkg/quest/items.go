package quest

// Items lists the collectible item identifiers placed in the outpost world.
// Used as the available set when a caller does not send its own.
var Items = []string{
	"crystal_red",
	"iron_ore",
	"plant_fiber",
	"space_rock",
	"azure_crystal",
	"meteorite_fragment",
	"enigmatic_artifact",
	"crystal_spires",
	"ancient_rubble",
	"glow_stalk",
	"impact_shard",
	"alien_relic",
	"cosmic_dust",
}

type keywordMapping struct {
	keyword string
	item    string
}

// itemKeywords maps words players use for items onto item identifiers.
// Order matters: the first keyword found in a suggestion wins.
var itemKeywords = []keywordMapping{
	{"alien", "alien_relic"},
	{"crystal", "crystal_red"},
	{"rock", "space_rock"},
	{"ore", "iron_ore"},
	{"plant", "plant_fiber"},
	{"artifact", "enigmatic_artifact"},
	{"dust", "cosmic_dust"},
	{"shard", "impact_shard"},
	{"spire", "crystal_spires"},
	{"rubble", "ancient_rubble"},
	{"stalk", "glow_stalk"},
	{"fragment", "meteorite_fragment"},
	{"azure", "azure_crystal"},
}
