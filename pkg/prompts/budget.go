package prompts

import "log/slog"

const (
	DefaultMaxContextTokens = 8192
	DefaultReservedTokens   = 1000
)

// Budget is the model's context window split into prompt and response space.
// Checks are advisory; oversized prompts are still sent.
type Budget struct {
	MaxContextTokens int
	ReservedTokens   int
}

// DefaultBudget matches an 8k-context model.
func DefaultBudget() Budget {
	return Budget{MaxContextTokens: DefaultMaxContextTokens, ReservedTokens: DefaultReservedTokens}
}

// MaxInputTokens is the room left for the prompt.
func (b Budget) MaxInputTokens() int {
	return b.MaxContextTokens - b.ReservedTokens
}

// Usage is one token estimate.
type Usage struct {
	InputTokens    int
	ResponseTokens int
	TotalTokens    int
	OverBudget     bool
}

// EstimateTokens approximates tokens as one per four bytes of English text.
func EstimateTokens(text string) int {
	return len(text) / 4
}

// Check estimates the cost of sending prompt and logs it under name. It
// warns when the prompt alone exceeds MaxInputTokens.
func (b Budget) Check(logger *slog.Logger, name, prompt string, responseTokens int) Usage {
	u := Usage{
		InputTokens:    EstimateTokens(prompt),
		ResponseTokens: responseTokens,
	}
	u.TotalTokens = u.InputTokens + u.ResponseTokens
	u.OverBudget = u.InputTokens > b.MaxInputTokens()

	if logger == nil {
		return u
	}

	pct := 0.0
	if b.MaxContextTokens > 0 {
		pct = float64(u.TotalTokens) / float64(b.MaxContextTokens) * 100
	}
	logger.Info("Token usage",
		"context", name,
		"input_tokens", u.InputTokens,
		"response_tokens", u.ResponseTokens,
		"total_tokens", u.TotalTokens,
		"context_window", b.MaxContextTokens,
		"usage_percent", pct)

	if u.OverBudget {
		logger.Warn("Prompt exceeds input token budget",
			"context", name,
			"input_tokens", u.InputTokens,
			"max_input_tokens", b.MaxInputTokens())
	}
	return u
}
