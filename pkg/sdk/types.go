package explorer

// Category names accepted by Summarize. Unknown names fall back to CategoryOverview.
const (
	CategoryOverview  = "Overview"
	CategoryResearch  = "Research"
	CategoryNews      = "News"
	CategoryFactCheck = "Fact-Check"
)

// Summary is a synthesized answer with its citations.
type Summary struct {
	Summary string // Markdown
	Sources []Source
	Images  []string
	// Tokens is the total token count reported by the completion provider.
	Tokens int
}

// Source is one search result the summary was grounded on.
type Source struct {
	Title string
	URL   string
}

// CategoryInfo describes how a category shapes the search.
type CategoryInfo struct {
	Name       string
	Label      string
	Depth      string // "basic" or "advanced"
	MaxResults int
}
