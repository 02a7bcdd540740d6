package explorer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/explorer/internal/domain"
	"github.com/kailas-cloud/explorer/internal/domain/category"
	domsummary "github.com/kailas-cloud/explorer/internal/domain/summary"
	openaiTransport "github.com/kailas-cloud/explorer/internal/transport/openai"
	"github.com/kailas-cloud/explorer/internal/transport/tavily"
	healthuc "github.com/kailas-cloud/explorer/internal/usecase/health"
	summaryuc "github.com/kailas-cloud/explorer/internal/usecase/summary"
)

// Internal interfaces for substitution in tests.
type summaryUseCase interface {
	Summarize(ctx context.Context, req *domsummary.Request) (domsummary.Response, error)
}

// Client is the explorer SDK entry point.
type Client struct {
	summarySvc summaryUseCase
	healthSvc  healthUseCase
	obs        *observer
}

// New creates a Client. Missing API keys are not an error here:
// Summarize reports them as ErrConfiguration without calling any provider.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}
	return wireClient(cfg, obs), nil
}

func wireClient(cfg *clientConfig, obs *observer) *Client {
	// Provider adapters log through zap; the SDK reports through its own observer.
	nop := zap.NewNop()

	searcher := tavily.NewClient(&tavily.Config{
		APIKey:  cfg.searchKey,
		BaseURL: cfg.searchBaseURL,
		Timeout: cfg.searchTimeout,
		Logger:  nop,
	})
	completer := openaiTransport.NewCompleter(&openaiTransport.Config{
		APIKey:  cfg.completionKey,
		BaseURL: cfg.completionBaseURL,
		Model:   cfg.model,
		Timeout: cfg.completionTimeout,
		Logger:  nop,
	})

	summarySvc := summaryuc.New(searcher, completer)
	if cfg.snippetBudget > 0 {
		summarySvc = summarySvc.WithSnippetBudget(cfg.snippetBudget)
	}

	return &Client{
		summarySvc: summarySvc,
		healthSvc:  healthuc.New(searcher, completer),
		obs:        obs,
	}
}

// Summarize searches the web for topic and returns a Markdown summary with sources.
// categoryName is matched case-insensitively; unknown names use CategoryOverview.
func (c *Client) Summarize(ctx context.Context, topic, categoryName string) (s Summary, err error) {
	start := time.Now()
	defer func() { c.obs.observe("summarize", start, err) }()

	req, err := domsummary.NewRequest(topic, categoryName)
	if err != nil {
		return Summary{}, err
	}

	ctx, usage := domain.NewContextWithUsage(ctx)
	resp, err := c.summarySvc.Summarize(ctx, &req)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize %q: %w", req.Topic(), err)
	}

	sources := make([]Source, len(resp.Sources()))
	for i, src := range resp.Sources() {
		sources[i] = Source{Title: src.Title, URL: src.URL}
	}
	return Summary{
		Summary: resp.Summary(),
		Sources: sources,
		Images:  resp.Images(),
		Tokens:  usage.TotalTokens,
	}, nil
}

// Categories lists the supported categories in display order.
func Categories() []CategoryInfo {
	all := category.All()
	out := make([]CategoryInfo, len(all))
	for i, cat := range all {
		out[i] = CategoryInfo{
			Name:       cat.String(),
			Label:      cat.Label(),
			Depth:      string(cat.Depth()),
			MaxResults: cat.MaxResults(),
		}
	}
	return out
}
