// Package fallback holds the hand-authored dialogue lines and quest templates
// served whenever generation fails. Lookups never fail: unknown NPCs get the
// default entry.
package fallback

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jwebster45206/outpost-engine/pkg/quest"
)

// DefaultNPCID is the entry served for unknown NPC identifiers.
const DefaultNPCID = "commander_sarah"

// DefaultDialogue is spoken by NPCs without a dedicated fallback line.
const DefaultDialogue = "Hello there! I'd be happy to help you with whatever you need around the outpost."

// Entry is the fallback content for a single NPC.
type Entry struct {
	Dialogue string
	Quest    quest.Quest
}

type template struct {
	short    string
	dialogue string
	quest    quest.Quest
}

// Catalog maps NPC identifiers to fallback content. The zero value is not
// usable; call New.
type Catalog struct {
	entries map[string]template
}

// New returns the built-in catalog.
func New() *Catalog {
	return &Catalog{entries: builtin}
}

// Entry returns the dialogue line and a freshly stamped quest for npcID.
func (c *Catalog) Entry(npcID string) Entry {
	return Entry{Dialogue: c.Dialogue(npcID), Quest: c.Quest(npcID)}
}

// Dialogue returns the fallback line for npcID. Entries without a dedicated
// line speak DefaultDialogue.
func (c *Catalog) Dialogue(npcID string) string {
	if t, ok := c.entries[npcID]; ok && t.dialogue != "" {
		return t.dialogue
	}
	return DefaultDialogue
}

// Quest returns a copy of npcID's quest template with a new id, status
// available and zero progress on every objective.
func (c *Catalog) Quest(npcID string) quest.Quest {
	t := c.lookup(npcID)

	q := t.quest
	q.ID = fmt.Sprintf("fallback_%s_%s", t.short, uuid.NewString())
	q.Status = quest.StatusAvailable
	q.Objectives = make([]quest.Objective, len(t.quest.Objectives))
	for i, o := range t.quest.Objectives {
		o.Progress = 0
		q.Objectives[i] = o
	}
	return q
}

// Has reports whether npcID has a dedicated entry.
func (c *Catalog) Has(npcID string) bool {
	_, ok := c.entries[npcID]
	return ok
}

func (c *Catalog) lookup(npcID string) template {
	if t, ok := c.entries[npcID]; ok {
		return t
	}
	return c.entries[DefaultNPCID]
}
