package summary

import (
	"context"

	"github.com/kailas-cloud/explorer/internal/domain/completion"
	"github.com/kailas-cloud/explorer/internal/domain/search"
)

// Searcher runs a web search for a shaped query.
type Searcher interface {
	// Configured reports whether a provider credential is present.
	Configured() bool
	Search(ctx context.Context, q search.Query) (search.Response, error)
}

// Completer runs a two-message chat completion.
type Completer interface {
	// Configured reports whether a provider credential is present.
	Configured() bool
	Complete(ctx context.Context, system, user string) (completion.Result, error)
}
