package domain

import "context"

type completionUsageKey struct{}

// CompletionUsage collects language model token usage for a single HTTP request.
// The handler puts a mutable pointer into the context before calling the service;
// the service writes after the completion call; the handler reads it for response headers.
type CompletionUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Used             bool
}

// NewContextWithUsage returns a context with an embedded usage collector.
func NewContextWithUsage(ctx context.Context) (context.Context, *CompletionUsage) {
	u := &CompletionUsage{}
	return context.WithValue(ctx, completionUsageKey{}, u), u
}

// UsageFromContext extracts the usage collector from context. Returns nil if not set.
func UsageFromContext(ctx context.Context) *CompletionUsage {
	u, _ := ctx.Value(completionUsageKey{}).(*CompletionUsage)
	return u
}

// Add records consumed tokens. Safe on a nil receiver.
func (u *CompletionUsage) Add(prompt, completion, total int) {
	if u != nil {
		u.PromptTokens += prompt
		u.CompletionTokens += completion
		u.TotalTokens += total
		u.Used = true
	}
}
