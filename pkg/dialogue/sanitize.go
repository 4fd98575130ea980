// Package dialogue cleans model completions into a single in-character line.
package dialogue

import (
	"math/rand/v2"
	"regexp"
	"strings"

	"github.com/jwebster45206/outpost-engine/pkg/prompts"
)

// MinLength is the shortest cleaned reply kept; anything at or below it is
// replaced by a neutral line.
const MinLength = 5

// FallbackLines are neutral replies used when nothing usable survives
// cleaning.
var FallbackLines = []string{
	"I'm not sure how to respond to that.",
	"That's an interesting question.",
	"I need to think about that for a moment.",
	"Let me consider what you're asking.",
}

// Applied in order, case-insensitively, with . matching newlines.
var removals = []*regexp.Regexp{
	regexp.MustCompile(`(?is)If the player asks about.*?\.`),
	regexp.MustCompile(`(?is)Respond as.*?\.`),
	regexp.MustCompile(`(?is)Keep responses under.*?\.`),
	regexp.MustCompile(`(?is)Be true to.*?\.`),
	regexp.MustCompile(`(?is)If there are relevant memories.*?\.`),
	regexp.MustCompile(`(?i)Response:`),
	regexp.MustCompile(`(?i)Answer:`),
	regexp.MustCompile(`(?i)Dialogue:`),
	regexp.MustCompile(`(?i)` + regexp.QuoteMeta(prompts.MemoryStart)),
	regexp.MustCompile(`(?i)` + regexp.QuoteMeta(prompts.MemoryEnd)),
	regexp.MustCompile(`(?is)RELATIONSHIP STATUS:.*?RECENT CONVERSATION CONTEXT:.*?` + regexp.QuoteMeta(prompts.MemoryEnd)),
	regexp.MustCompile(`(?is)IMPORTANT INSTRUCTIONS:.*?DO NOT include instruction text in your response`),
	regexp.MustCompile(`(?is)PERSONALITY:.*?DIALOGUE STYLE:.*?PLAYER CONTEXT:.*?The player says:`),
}

// Lines containing any of these are memory state echoed back by the model.
var memoryKeywords = []string{
	"relationship status:", "trust:", "friendship:", "respect:", "attraction:",
	"personal_info:", "relationship:", "promises:", "emotional:", "gossip:", "trade:", "quests:",
	"recent conversation context:", "player:", "npc:", "emotion:",
	"===", "memory context", "end memory context",
}

// Lines containing any of these are prompt instructions leaking through.
var instructionKeywords = []string{
	"important instructions:", "respond naturally", "keep responses", "be true to",
	"use the memory context", "do not include", "personality:", "background:", "dialogue style:",
}

// Sanitize strips prompt and memory echoes from raw and joins what is left
// into one line. The result is never empty and never contains the memory
// sentinels.
func Sanitize(raw string) string {
	cleaned := strings.TrimSpace(raw)
	for _, re := range removals {
		cleaned = re.ReplaceAllString(cleaned, "")
	}

	var kept []string
	for _, line := range strings.Split(cleaned, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		if containsAny(lower, memoryKeywords) || containsAny(lower, instructionKeywords) {
			continue
		}
		kept = append(kept, line)
	}

	cleaned = strings.TrimSpace(strings.Join(kept, " "))
	if len(cleaned) > MinLength {
		return cleaned
	}
	return FallbackLines[rand.IntN(len(FallbackLines))]
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
