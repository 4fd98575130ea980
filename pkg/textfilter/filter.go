// Package textfilter swaps profanity for outpost slang in NPC dialogue served
// under family-friendly content ratings.
package textfilter

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const censored = "[censored]"

// replacements maps each filtered word or phrase to its substitute.
var replacements = map[string]string{
	"fuck":         "frak",
	"fucking":      "frakking",
	"motherfucker": "void-spawn",
	"shit":         "slag",
	"bullshit":     "static",
	"horseshit":    "static",
	"dipshit":      "space-brain",
	"shithead":     "space-brain",
	"damn":         "blast",
	"goddamn":      "blasted",
	"hell":         "void",
	"ass":          "hull",
	"asshole":      "airlock",
	"dumbass":      "space-brain",
	"jackass":      "glitch",
	"smartass":     "wise guy",
	"badass":       "tough",
	"bitch":        "glitch",
	"bastard":      "drifter",
	"crap":         "scrap",
	"piss":         "leak",
	"pissed":       "fried",
	"dick":         "glitch",
	"dickhead":     "glitch",
	"prick":        "glitch",
	"douche":       "drifter",
	"douchebag":    "drifter",
	"jesus christ": "great stars",
	"christ":       "stars",
	"cock":         censored,
	"pussy":        censored,
	"tits":         censored,
	"whore":        censored,
	"slut":         censored,
	"fag":          censored,
	"retard":       censored,
	"nigger":       censored,
	"nigga":        censored,
	"spic":         censored,
	"chink":        censored,
	"kike":         censored,
}

// Filter replaces profanity while keeping the casing of what it replaces.
// It is safe for concurrent use.
type Filter struct {
	re *regexp.Regexp
}

// New compiles the word list into a single case-insensitive pattern.
func New() *Filter {
	words := make([]string, 0, len(replacements))
	for w := range replacements {
		words = append(words, w)
	}
	// Longest first so phrases win over the words they contain.
	sort.Slice(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) > len(words[j])
		}
		return words[i] < words[j]
	})
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}

	return &Filter{re: regexp.MustCompile(`(?i)\b(?:` + strings.Join(words, "|") + `)\b`)}
}

// Apply returns text with every filtered word replaced.
func (f *Filter) Apply(text string) string {
	return f.re.ReplaceAllStringFunc(text, func(match string) string {
		return matchCase(match, replacements[strings.ToLower(match)])
	})
}

// Contains reports whether text has anything Apply would replace.
func (f *Filter) Contains(text string) bool {
	return f.re.MatchString(text)
}

// matchCase shapes replacement after original: all caps, all lower, title
// case, or rune by rune for anything mixed.
func matchCase(original, replacement string) string {
	if replacement == censored {
		return replacement
	}
	// Casers are stateful, so each call gets its own.
	title := cases.Title(language.English)
	switch {
	case strings.ToUpper(original) == original:
		return strings.ToUpper(replacement)
	case strings.ToLower(original) == original:
		return strings.ToLower(replacement)
	case title.String(strings.ToLower(original)) == original:
		return title.String(replacement)
	}

	orig := []rune(original)
	out := []rune(strings.ToLower(replacement))
	for i := range out {
		if i < len(orig) && unicode.IsUpper(orig[i]) {
			out[i] = unicode.ToUpper(out[i])
		}
	}
	return string(out)
}
