package quest

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrUnparseable is returned when no JSON object can be recovered from a
// model completion.
var ErrUnparseable = errors.New("no quest object found in completion")

// Candidate is a decoded, not yet validated, JSON object pulled out of a
// completion.
type Candidate map[string]any

// Strategy tries to recover a single JSON object from free text.
type Strategy struct {
	Name    string
	Extract func(text string) (Candidate, bool)
}

// balancedBraces matches an object with at most one level of nested objects.
var balancedBraces = regexp.MustCompile(`\{[^{}]*(?:\{[^{}]*\}[^{}]*)*\}`)

// Strategies is the ordered extraction chain. Each is attempted only when the
// ones before it produced nothing parseable.
var Strategies = []Strategy{
	{Name: "bracket_span", Extract: BracketSpan},
	{Name: "line_scan", Extract: LineScan},
	{Name: "balanced_braces", Extract: BalancedBraces},
}

// Extract runs the strategy chain and returns the first candidate found along
// with the name of the strategy that produced it.
func Extract(text string) (Candidate, string, bool) {
	text = strings.TrimSpace(text)
	for _, s := range Strategies {
		if c, ok := s.Extract(text); ok {
			return c, s.Name, true
		}
	}
	return nil, "", false
}

// BracketSpan parses everything between the first '{' and the last '}'.
func BracketSpan(text string) (Candidate, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return nil, false
	}
	return decodeObject(text[start : end+1])
}

// LineScan parses the first line that is itself a complete object.
func LineScan(text string) (Candidate, bool) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "{") || !strings.HasSuffix(line, "}") {
			continue
		}
		if c, ok := decodeObject(line); ok {
			return c, true
		}
	}
	return nil, false
}

// BalancedBraces tries every balanced-brace span in order of appearance.
// A completion wrapped in a single pair of double quotes is unwrapped first.
func BalancedBraces(text string) (Candidate, bool) {
	if len(text) >= 2 && strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) {
		text = text[1 : len(text)-1]
	}
	for _, match := range balancedBraces.FindAllString(text, -1) {
		if c, ok := decodeObject(match); ok {
			return c, true
		}
	}
	return nil, false
}

func decodeObject(s string) (Candidate, bool) {
	var c Candidate
	if err := json.Unmarshal([]byte(s), &c); err != nil || c == nil {
		return nil, false
	}
	return c, true
}

func (c Candidate) str(key string) string {
	switch v := c[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case nil:
		return ""
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// integer reads a numeric field, accepting JSON numbers and numeric strings.
func (c Candidate) integer(key string) (int, bool) {
	switch v := c[key].(type) {
	case float64:
		return int(v), true
	case string:
		n, ok := leadingInt(strings.TrimSpace(v))
		return n, ok
	default:
		return 0, false
	}
}
