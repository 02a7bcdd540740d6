package search

import "github.com/kailas-cloud/explorer/internal/domain/category"

// Query is a web search request shaped by a category.
type Query struct {
	Text          string
	Depth         category.Depth
	MaxResults    int
	IncludeImages bool
}

// NewQuery builds the search query for a topic under the given category.
func NewQuery(topic string, c category.Category) Query {
	return Query{
		Text:          c.Query(topic),
		Depth:         c.Depth(),
		MaxResults:    c.MaxResults(),
		IncludeImages: true,
	}
}

// Result is a single ranked web search hit.
type Result struct {
	title   string
	url     string
	content string
}

// NewResult creates a search result.
func NewResult(title, url, content string) Result {
	return Result{title: title, url: url, content: content}
}

// Title returns the page title.
func (r *Result) Title() string { return r.title }

// URL returns the absolute page URL.
func (r *Result) URL() string { return r.url }

// Content returns the raw snippet text.
func (r *Result) Content() string { return r.content }

// Response is the normalized provider answer. Results keep provider rank order.
type Response struct {
	Results []Result
	Images  []string
}
