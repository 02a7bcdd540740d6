package explorer

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	searchKey     string
	searchBaseURL string
	searchTimeout time.Duration

	completionKey     string
	completionBaseURL string
	model             string
	completionTimeout time.Duration

	snippetBudget int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithTavily sets the Tavily search API key.
func WithTavily(apiKey string) Option {
	return optionFunc(func(c *clientConfig) {
		c.searchKey = apiKey
	})
}

// WithSearchBaseURL overrides the search endpoint (tests, proxies).
func WithSearchBaseURL(baseURL string) Option {
	return optionFunc(func(c *clientConfig) {
		c.searchBaseURL = baseURL
	})
}

// WithCompletion configures the OpenAI-compatible completion provider.
// Empty baseURL and model keep the Groq defaults.
func WithCompletion(apiKey, baseURL, model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.completionKey = apiKey
		c.completionBaseURL = baseURL
		c.model = model
	})
}

// WithTimeouts bounds each upstream call. Zero keeps the default.
func WithTimeouts(search, completion time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.searchTimeout = search
		c.completionTimeout = completion
	})
}

// WithSnippetBudget caps how many characters of each search result reach the model.
// Default: 1000.
func WithSnippetBudget(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.snippetBudget = n
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
