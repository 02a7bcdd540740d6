package summary

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/explorer/internal/domain"
	"github.com/kailas-cloud/explorer/internal/domain/category"
)

// Request is a validated summarization request.
type Request struct {
	topic    string
	category category.Category
}

// NewRequest validates the topic and resolves the category name.
// A blank topic or category is rejected; an unknown category name resolves to Overview.
func NewRequest(topic, categoryName string) (Request, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" || strings.TrimSpace(categoryName) == "" {
		return Request{}, fmt.Errorf("topic and category are required: %w", domain.ErrInvalidRequest)
	}
	return Request{topic: topic, category: category.Parse(categoryName)}, nil
}

// Topic returns the trimmed topic.
func (r *Request) Topic() string { return r.topic }

// Category returns the resolved category.
func (r *Request) Category() category.Category { return r.category }

// Source is a citation for one search result.
type Source struct {
	Title string
	URL   string
}

// Response is the synthesized summary with its citations.
type Response struct {
	summary string
	sources []Source
	images  []string
}

// NewResponse creates a response. Nil slices are normalized to empty ones.
func NewResponse(text string, sources []Source, images []string) Response {
	if sources == nil {
		sources = []Source{}
	}
	if images == nil {
		images = []string{}
	}
	return Response{summary: text, sources: sources, images: images}
}

// Summary returns the Markdown summary.
func (r *Response) Summary() string { return r.summary }

// Sources returns the citations in search rank order.
func (r *Response) Sources() []Source { return r.sources }

// Images returns the image URLs supplied by the search provider.
func (r *Response) Images() []string { return r.images }
