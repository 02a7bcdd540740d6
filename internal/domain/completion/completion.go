package completion

// Result carries the generated text and token usage of one chat completion.
type Result struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}
