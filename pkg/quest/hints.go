package quest

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Player suggestions are matched with a fixed set of patterns applied in a
// fixed order; when several could apply, the first match wins.
var (
	rewardPattern   = regexp.MustCompile(`(\d+)\s*crypto`)
	quantityPattern = regexp.MustCompile(`(\d+)\s*(?:pieces?|items?|units?|of)`)
	fewPattern      = regexp.MustCompile(`\b(?:some|a few|several)\b`)
	singlePattern   = regexp.MustCompile(`\ban?\s`)
	leadingDigits   = regexp.MustCompile(`^-?\d+`)
)

const fewQuantity = 3

// RewardHint extracts a reward such as "50 crypto" from a suggestion, capped
// at MaxRewardCrypto.
func RewardHint(suggestion string) (int, bool) {
	m := rewardPattern.FindStringSubmatch(strings.ToLower(suggestion))
	if m == nil {
		return 0, false
	}
	return capInt(m[1], MaxRewardCrypto), true
}

// QuantityHint extracts how many items the player asked for. An explicit
// count ("7 pieces") is capped at MaxQuantity; "some", "a few" and
// "several" mean three; a lone indefinite article means one.
func QuantityHint(suggestion string) (int, bool) {
	s := strings.ToLower(suggestion)
	if m := quantityPattern.FindStringSubmatch(s); m != nil {
		return max(capInt(m[1], MaxQuantity), 1), true
	}
	if fewPattern.MatchString(s) {
		return fewQuantity, true
	}
	if singlePattern.MatchString(s) {
		return 1, true
	}
	return 0, false
}

// MatchItem picks the available item a suggestion refers to. An item matches
// when its identifier, or any of its underscore-separated words, appears in
// the suggestion. Failing that, well-known keywords are mapped onto items that
// are actually available.
func MatchItem(suggestion string, available []string) (string, bool) {
	s := strings.ToLower(suggestion)
	if s == "" {
		return "", false
	}
	for _, item := range available {
		id := strings.ToLower(item)
		if id != "" && strings.Contains(s, id) {
			return item, true
		}
		for _, word := range strings.Split(id, "_") {
			if word != "" && strings.Contains(s, word) {
				return item, true
			}
		}
	}
	for _, m := range itemKeywords {
		if strings.Contains(s, m.keyword) && slices.Contains(available, m.item) {
			return m.item, true
		}
	}
	return "", false
}

// wantsCollect and wantsTalk classify a suggestion for rule-based generation.
func wantsCollect(suggestion string) bool {
	s := strings.ToLower(suggestion)
	return strings.Contains(s, "collect") || strings.Contains(s, "crystal")
}

func wantsTalk(suggestion string) bool {
	s := strings.ToLower(suggestion)
	return strings.Contains(s, "talk") || strings.Contains(s, "message")
}

// capInt parses a run of digits, saturating at limit on overflow.
func capInt(digits string, limit int) int {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return limit
	}
	return min(n, limit)
}

func leadingInt(s string) (int, bool) {
	m := leadingDigits.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}
