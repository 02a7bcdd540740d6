package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/explorer/internal/domain"
	"github.com/kailas-cloud/explorer/internal/domain/search"
	"github.com/kailas-cloud/explorer/internal/metrics"
)

const (
	providerName = "tavily"
	// DefaultBaseURL is the public Tavily API endpoint.
	DefaultBaseURL = "https://api.tavily.com"
	// DefaultTimeout bounds a single search call.
	DefaultTimeout = 20 * time.Second

	maxErrorBody = 4 << 10
)

// Config holds the search provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Logger  *zap.Logger
	// ProbeHealth makes HealthCheck run a one-result basic search.
	// Each probe consumes provider credits.
	ProbeHealth bool
}

// Client is a web search provider backed by the Tavily search API.
type Client struct {
	http        *http.Client
	apiKey      string
	baseURL     string
	timeout     time.Duration
	logger      *zap.Logger
	probeHealth bool
}

// NewClient creates a Tavily search client.
func NewClient(cfg *Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http:        &http.Client{Timeout: timeout},
		apiKey:      strings.TrimSpace(cfg.APIKey),
		baseURL:     baseURL,
		timeout:     timeout,
		logger:      logger,
		probeHealth: cfg.ProbeHealth,
	}
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool { return c.apiKey != "" }

type searchRequest struct {
	APIKey        string `json:"api_key"`
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth"`
	MaxResults    int    `json:"max_results"`
	IncludeImages bool   `json:"include_images"`
}

type searchResponse struct {
	Results []struct {
		Title   string  `json:"title"`
		URL     string  `json:"url"`
		Content string  `json:"content"`
		Score   float64 `json:"score"`
	} `json:"results"`
	Images []image `json:"images"`
}

// image accepts both the plain URL form and the {url, description} form.
type image struct {
	URL string
}

func (i *image) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		i.URL = s
		return nil
	}
	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	i.URL = obj.URL
	return nil
}

// Search runs a web search. Result order is the provider ranking.
// A successful response with zero results yields domain.ErrNoResults.
func (c *Client) Search(ctx context.Context, q search.Query) (search.Response, error) {
	if strings.TrimSpace(q.Text) == "" {
		return search.Response{}, fmt.Errorf("%w: empty query", domain.ErrSearchFailed)
	}

	body, err := json.Marshal(searchRequest{
		APIKey:        c.apiKey,
		Query:         q.Text,
		SearchDepth:   string(q.Depth),
		MaxResults:    q.MaxResults,
		IncludeImages: q.IncludeImages,
	})
	if err != nil {
		return search.Response{}, fmt.Errorf("%w: encode request: %v", domain.ErrSearchFailed, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return search.Response{}, fmt.Errorf("%w: build request: %v", domain.ErrSearchFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.recordError("transport")
		c.logger.Error("Tavily search error", zap.Duration("duration", duration), zap.Error(err))
		return search.Response{}, fmt.Errorf("%w: %s", domain.ErrSearchFailed, transportMessage(err))
	}
	defer resp.Body.Close()

	metrics.ProviderRequestDuration.WithLabelValues(providerName).Observe(duration.Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.recordError("status")
		c.logger.Error("Tavily search error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("payload", payload),
		)
		return search.Response{}, fmt.Errorf("%w: status %d: %s",
			domain.ErrSearchFailed, resp.StatusCode, errorDetail(payload))
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		c.recordError("decode")
		return search.Response{}, fmt.Errorf("%w: decode response: %v", domain.ErrSearchFailed, err)
	}

	metrics.ProviderRequestsTotal.WithLabelValues(providerName, "success").Inc()

	if len(parsed.Results) == 0 {
		c.logger.Warn("Tavily search returned no results", zap.String("query", q.Text))
		return search.Response{}, domain.ErrNoResults
	}

	out := search.Response{
		Results: make([]search.Result, len(parsed.Results)),
		Images:  make([]string, 0, len(parsed.Images)),
	}
	for i, r := range parsed.Results {
		out.Results[i] = search.NewResult(r.Title, r.URL, r.Content)
	}
	for _, img := range parsed.Images {
		if img.URL != "" {
			out.Images = append(out.Images, img.URL)
		}
	}
	return out, nil
}

func (c *Client) recordError(errorType string) {
	metrics.ProviderRequestsTotal.WithLabelValues(providerName, "error").Inc()
	metrics.ProviderErrorsTotal.WithLabelValues(providerName, errorType).Inc()
}

func transportMessage(err error) string {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return "timeout"
	}
	return err.Error()
}

// errorDetail extracts the "detail" message from a Tavily error body, falling back to the raw body.
func errorDetail(body []byte) string {
	var parsed struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && len(parsed.Detail) > 0 {
		var s string
		if json.Unmarshal(parsed.Detail, &s) == nil {
			return s
		}
		var obj struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(parsed.Detail, &obj) == nil && obj.Error != "" {
			return obj.Error
		}
	}
	return strings.TrimSpace(string(body))
}

// healthProbeQuery is the search issued by a probing HealthCheck.
var healthProbeQuery = search.Query{Text: "weather", Depth: "basic", MaxResults: 1}

// HealthCheck reports whether the client can issue searches.
// Tavily has no free status endpoint: without ProbeHealth only the credential is verified,
// with it a minimal search must succeed. An empty result still counts as reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	if !c.Configured() {
		return fmt.Errorf("%s: %w", providerName, domain.ErrConfiguration)
	}
	if !c.probeHealth {
		return nil
	}
	if _, err := c.Search(ctx, healthProbeQuery); err != nil && !errors.Is(err, domain.ErrNoResults) {
		return fmt.Errorf("%s health probe: %w", providerName, err)
	}
	return nil
}
