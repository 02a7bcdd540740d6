package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/explorer/internal/domain"
	"github.com/kailas-cloud/explorer/internal/domain/completion"
	"github.com/kailas-cloud/explorer/internal/metrics"
)

// Defaults target the Groq OpenAI-compatible endpoint.
const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama-3.1-8b-instant"
	DefaultTimeout = 45 * time.Second
)

// Completer is a chat completion provider using the OpenAI-compatible API (e.g. Groq).
type Completer struct {
	client     *openai.Client
	model      string
	configured bool
	provider   string
	timeout    time.Duration
	logger     *zap.Logger
}

// Config holds the completion provider settings.
type Config struct {
	APIKey   string
	BaseURL  string
	Model    string
	Provider string
	Timeout  time.Duration
	Logger   *zap.Logger
}

// NewCompleter creates an OpenAI-compatible chat completion provider.
// The API key is trimmed: stray whitespace from env files breaks bearer authentication.
func NewCompleter(cfg *Config) *Completer {
	apiKey := strings.TrimSpace(cfg.APIKey)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	clientCfg := openai.DefaultConfig(apiKey)
	clientCfg.BaseURL = DefaultBaseURL
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	provider := cfg.Provider
	if provider == "" {
		provider = "groq"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Completer{
		client:     openai.NewClientWithConfig(clientCfg),
		model:      model,
		configured: apiKey != "",
		provider:   provider,
		timeout:    timeout,
		logger:     logger,
	}
}

// Configured reports whether an API key is set.
func (c *Completer) Configured() bool { return c.configured }

// Complete sends exactly one system and one user message and returns the first choice verbatim.
func (c *Completer) Complete(ctx context.Context, system, user string) (completion.Result, error) {
	if strings.TrimSpace(system) == "" || strings.TrimSpace(user) == "" {
		return completion.Result{}, fmt.Errorf("%w: system and user content are required", domain.ErrCompletionFailed)
	}

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		c.recordError("api_error")
		c.logger.Error("Completion request failed",
			zap.String("provider", c.provider),
			zap.String("model", c.model),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return completion.Result{}, parseAPIError(err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		c.recordError("empty_response")
		c.logger.Error("Completion response has no content",
			zap.String("provider", c.provider),
			zap.Int("choices", len(resp.Choices)),
		)
		return completion.Result{}, fmt.Errorf("%w: empty choice list", domain.ErrCompletionFailed)
	}

	metrics.ProviderRequestsTotal.WithLabelValues(c.provider, "success").Inc()
	metrics.ProviderRequestDuration.WithLabelValues(c.provider).Observe(duration.Seconds())
	if resp.Usage.TotalTokens > 0 {
		metrics.CompletionTokensTotal.WithLabelValues(c.model, "prompt").Add(float64(resp.Usage.PromptTokens))
		metrics.CompletionTokensTotal.WithLabelValues(c.model, "completion").Add(float64(resp.Usage.CompletionTokens))
		metrics.CompletionTokensTotal.WithLabelValues(c.model, "total").Add(float64(resp.Usage.TotalTokens))
	}

	return completion.Result{
		Text:             resp.Choices[0].Message.Content,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (c *Completer) HealthCheck(ctx context.Context) error {
	if !c.configured {
		return fmt.Errorf("%s: %w", c.provider, domain.ErrConfiguration)
	}
	if _, err := c.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

func (c *Completer) recordError(errorType string) {
	metrics.ProviderRequestsTotal.WithLabelValues(c.provider, "error").Inc()
	metrics.ProviderErrorsTotal.WithLabelValues(c.provider, errorType).Inc()
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrCompletionFailed.
func parseAPIError(err error) error {
	wrap := domain.ErrCompletionFailed

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: API error %d: %s", wrap, apiErr.HTTPStatusCode, apiErr.Message)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail == "" {
			detail = strings.TrimSpace(string(reqErr.Body))
		}
		return fmt.Errorf("%w: API error %d: %s", wrap, reqErr.HTTPStatusCode, detail)
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: timeout", wrap)
	}

	return fmt.Errorf("%w: %v", wrap, err)
}

// extractDetail extracts the "detail" or "error.message" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
		Error  struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &parsed) != nil {
		return ""
	}
	if parsed.Detail != "" {
		return parsed.Detail
	}
	return parsed.Error.Message
}
