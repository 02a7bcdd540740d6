package domain

import "errors"

var (
	// ErrInvalidRequest signals missing or malformed caller input.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrConfiguration signals a missing provider credential.
	ErrConfiguration = errors.New("configuration error")
	// ErrSearchFailed signals a transport or provider failure during web search.
	ErrSearchFailed = errors.New("search failed")
	// ErrNoResults signals a successful search that matched nothing.
	ErrNoResults = errors.New("no search results found for this topic")
	// ErrCompletionFailed signals a transport, provider or response-shape failure of the language model.
	ErrCompletionFailed = errors.New("summarization failed")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
)
