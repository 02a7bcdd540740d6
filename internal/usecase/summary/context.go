package summary

import (
	"strings"

	"github.com/kailas-cloud/explorer/internal/domain/search"
)

// DefaultSnippetBudget is the per-result content cap in characters.
const DefaultSnippetBudget = 1000

// BuildContext renders search results into the grounding text for the language model.
// Each snippet is cut at budget characters; result order is preserved.
func BuildContext(results []search.Result, budget int) string {
	blocks := make([]string, len(results))
	for i := range results {
		r := &results[i]
		blocks[i] = "Source: " + r.Title() + "\nContent: " + truncate(r.Content(), budget)
	}
	return strings.Join(blocks, "\n\n")
}

// truncate cuts s to at most n runes. Non-positive n disables the cap.
func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

func userContent(topic, grounding string) string {
	return "Topic: " + topic + "\n\nSearch Results:\n" + grounding
}
