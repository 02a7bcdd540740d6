package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/explorer/internal/domain"
	"github.com/kailas-cloud/explorer/internal/domain/search"
	domsummary "github.com/kailas-cloud/explorer/internal/domain/summary"
	logpkg "github.com/kailas-cloud/explorer/internal/logger"
	"github.com/kailas-cloud/explorer/internal/metrics"
)

// Service runs the search-then-summarize pipeline for one request at a time.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	search        Searcher
	complete      Completer
	snippetBudget int
}

// New creates a summary service.
func New(search Searcher, complete Completer) *Service {
	return &Service{search: search, complete: complete, snippetBudget: DefaultSnippetBudget}
}

// WithSnippetBudget overrides the per-result content cap.
func (s *Service) WithSnippetBudget(n int) *Service {
	if n > 0 {
		s.snippetBudget = n
	}
	return s
}

// Summarize searches the web for the topic and asks the language model to summarize the findings.
// Any failure aborts the whole operation; there is no partial response.
// Provider errors are returned as-is so callers can match them with errors.Is.
func (s *Service) Summarize(ctx context.Context, req *domsummary.Request) (domsummary.Response, error) {
	resp, err := s.summarize(ctx, req)
	metrics.SummariesTotal.WithLabelValues(req.Category().String(), outcome(err)).Inc()
	return resp, err
}

func (s *Service) summarize(ctx context.Context, req *domsummary.Request) (domsummary.Response, error) {
	logger := logpkg.FromContext(ctx)

	if err := s.checkCredentials(); err != nil {
		logger.Error("summary aborted", zap.Error(err))
		return domsummary.Response{}, err
	}

	cat := req.Category()
	q := search.NewQuery(req.Topic(), cat)
	logger.Info("searching",
		zap.String("category", cat.String()),
		zap.String("query", q.Text),
		zap.String("depth", string(q.Depth)),
		zap.Int("max_results", q.MaxResults),
	)

	found, err := s.search.Search(ctx, q)
	if err != nil {
		return domsummary.Response{}, err
	}
	if len(found.Results) == 0 {
		return domsummary.Response{}, domain.ErrNoResults
	}

	groundText := BuildContext(found.Results, s.snippetBudget)

	logger.Info("summarizing", zap.Int("results", len(found.Results)), zap.Int("context_chars", len(groundText)))
	out, err := s.complete.Complete(ctx, cat.SystemPrompt(), userContent(req.Topic(), groundText))
	if err != nil {
		return domsummary.Response{}, err
	}
	domain.UsageFromContext(ctx).Add(out.PromptTokens, out.CompletionTokens, out.TotalTokens)

	sources := make([]domsummary.Source, len(found.Results))
	for i := range found.Results {
		r := &found.Results[i]
		sources[i] = domsummary.Source{Title: r.Title(), URL: r.URL()}
	}

	return domsummary.NewResponse(out.Text, sources, found.Images), nil
}

// checkCredentials fails before any network call when a provider cannot be used.
func (s *Service) checkCredentials() error {
	var missing []string
	if !s.search.Configured() {
		missing = append(missing, "search")
	}
	if !s.complete.Configured() {
		missing = append(missing, "completion")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: API key missing for %s provider", domain.ErrConfiguration, strings.Join(missing, " and "))
	}
	return nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrConfiguration):
		return "configuration_error"
	case errors.Is(err, domain.ErrNoResults):
		return "no_results"
	case errors.Is(err, domain.ErrSearchFailed):
		return "search_failed"
	case errors.Is(err, domain.ErrCompletionFailed):
		return "completion_failed"
	default:
		return "error"
	}
}
