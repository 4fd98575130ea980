// Package npc is the static roster of outpost residents.
package npc

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// fuzzyThreshold is the minimum Jaro-Winkler similarity for a name that does
// not match exactly, e.g. "Commander Sara Chen" or "dr kim park".
const fuzzyThreshold = 0.92

// Profile describes an NPC. Profiles are read-only.
type Profile struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Personality   string `json:"personality"`
	Role          string `json:"role"`
	Background    string `json:"background"`
	DialogueStyle string `json:"dialogue_style"`
	Greeting      string `json:"default_greeting"`
}

// Catalog indexes profiles by display name and by id. It is safe for
// concurrent use.
type Catalog struct {
	profiles []Profile
	byName   map[string]int
	byID     map[string]int
}

// NewCatalog builds a catalog over profiles. Later duplicates lose.
func NewCatalog(profiles []Profile) *Catalog {
	c := &Catalog{
		profiles: profiles,
		byName:   make(map[string]int, len(profiles)),
		byID:     make(map[string]int, len(profiles)),
	}
	for i, p := range profiles {
		if _, ok := c.byName[p.Name]; !ok {
			c.byName[p.Name] = i
		}
		if _, ok := c.byID[p.ID]; !ok {
			c.byID[p.ID] = i
		}
	}
	return c
}

// Default returns the catalog of the built-in outpost residents.
func Default() *Catalog {
	return NewCatalog(roster)
}

// ByName finds a profile by display name. Exact matches win, then
// case-insensitive ones, then the closest name by Jaro-Winkler similarity
// above fuzzyThreshold.
func (c *Catalog) ByName(name string) (Profile, bool) {
	if i, ok := c.byName[name]; ok {
		return c.profiles[i], true
	}

	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return Profile{}, false
	}

	best, bestScore := -1, 0.0
	for i, p := range c.profiles {
		candidate := strings.ToLower(p.Name)
		if candidate == needle {
			return p, true
		}
		if score := matchr.JaroWinkler(needle, candidate, false); score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 || bestScore < fuzzyThreshold {
		return Profile{}, false
	}
	return c.profiles[best], true
}

// ByID finds a profile by its identifier.
func (c *Catalog) ByID(id string) (Profile, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Profile{}, false
	}
	return c.profiles[i], true
}

// Names returns every display name in roster order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.profiles))
	for i, p := range c.profiles {
		names[i] = p.Name
	}
	return names
}

// All returns a copy of every profile in roster order.
func (c *Catalog) All() []Profile {
	out := make([]Profile, len(c.profiles))
	copy(out, c.profiles)
	return out
}
