package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/explorer/internal/domain"
	"github.com/kailas-cloud/explorer/internal/domain/category"
	domsummary "github.com/kailas-cloud/explorer/internal/domain/summary"
	logpkg "github.com/kailas-cloud/explorer/internal/logger"
	healthuc "github.com/kailas-cloud/explorer/internal/usecase/health"
	summaryuc "github.com/kailas-cloud/explorer/internal/usecase/summary"
)

// Error codes carried next to the message in error responses.
const (
	codeBadRequest       = "bad_request"
	codeUnauthorized     = "unauthorized"
	codeRateLimited      = "rate_limited"
	codeConfiguration    = "configuration_error"
	codeSearchFailed     = "search_failed"
	codeNoResults        = "no_results"
	codeCompletionFailed = "completion_failed"
	codeInternal         = "internal_error"
)

// MissingInputMessage is returned when topic or category is absent.
const MissingInputMessage = "Topic and category are required."

// maxBodyBytes bounds the summarize request body.
const maxBodyBytes = 16 << 10

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server holds the HTTP handlers of the explorer API.
type Server struct {
	summaries     *summaryuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(summaries *summaryuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		summaries: summaries,
		health:    health,
		logger:    logger,
	}
	// Upstream failures share 500; the code and message tell them apart.
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, codeBadRequest),
		sentinelHandler(domain.ErrConfiguration, http.StatusInternalServerError, codeConfiguration),
		sentinelHandler(domain.ErrNoResults, http.StatusInternalServerError, codeNoResults),
		sentinelHandler(domain.ErrSearchFailed, http.StatusInternalServerError, codeSearchFailed),
		sentinelHandler(domain.ErrCompletionFailed, http.StatusInternalServerError, codeCompletionFailed),
	}
	return s
}

type summarizeRequest struct {
	Topic    string `json:"topic"`
	Category string `json:"category"`
}

type sourceDTO struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type summarizeResponse struct {
	Summary string      `json:"summary"`
	Sources []sourceDTO `json:"sources"`
	Images  []string    `json:"images"`
}

type categoryDTO struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Depth      string `json:"depth"`
	MaxResults int    `json:"max_results"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Summarize handles POST /api/summarize.
func (s *Server) Summarize(w http.ResponseWriter, r *http.Request) {
	var body summarizeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	logger := logpkg.FromContextOr(r.Context(), s.logger)
	logger.Info("summarize request received",
		zap.String("topic", body.Topic),
		zap.String("category", body.Category),
	)

	if strings.TrimSpace(body.Topic) == "" || strings.TrimSpace(body.Category) == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, MissingInputMessage)
		return
	}

	req, err := domsummary.NewRequest(body.Topic, body.Category)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	resp, err := s.summaries.Summarize(ctx, &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	if usage.Used {
		w.Header().Set("X-Completion-Tokens", strconv.Itoa(usage.TotalTokens))
	}
	writeJSON(w, http.StatusOK, summaryToDTO(&resp))
}

// ListCategories handles GET /api/categories.
func (s *Server) ListCategories(w http.ResponseWriter, _ *http.Request) {
	all := category.All()
	items := make([]categoryDTO, len(all))
	for i, c := range all {
		items[i] = categoryDTO{
			ID:         c.String(),
			Label:      c.Label(),
			Depth:      string(c.Depth()),
			MaxResults: c.MaxResults(),
		}
	}
	writeJSON(w, http.StatusOK, items)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{Status: string(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func summaryToDTO(resp *domsummary.Response) summarizeResponse {
	sources := make([]sourceDTO, len(resp.Sources()))
	for i, src := range resp.Sources() {
		sources[i] = sourceDTO{Title: src.Title, URL: src.URL}
	}
	images := resp.Images()
	if images == nil {
		images = []string{}
	}
	return summarizeResponse{Summary: resp.Summary(), Sources: sources, Images: images}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
// The full error text is sent: it carries the provider status and detail the caller needs.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logpkg.FromContextOr(r.Context(), s.logger)
	for _, h := range s.errorHandlers {
		if h(w, err) {
			if errors.Is(err, domain.ErrInvalidRequest) {
				logger.Warn("invalid request", zap.Error(err))
			} else {
				logger.Error("summarize failed", zap.Error(err))
			}
			return
		}
	}
	logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
}
