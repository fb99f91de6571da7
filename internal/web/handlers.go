package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"regexp"
	"strconv"

	"github.com/dobrana/CheckSol-token/internal/analyzer"
	"github.com/dobrana/CheckSol-token/internal/metrics"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// mintPattern is the fixed-format check for a Solana address: 32 to 44
// base58-alphabet characters. Existence is checked downstream, not here.
var mintPattern = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`)

// ErrorResponse is the JSON error envelope
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// APIError carries a stable code plus a human-readable message
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, nil); err != nil {
		s.logger.Error().Err(err).Msg("Failed to render index page")
	}
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	mint := r.URL.Query().Get("mint")
	if !mintPattern.MatchString(mint) {
		s.respond(w, "analyze", http.StatusBadRequest, ErrorResponse{Error: APIError{
			Code:    "INVALID_ADDRESS",
			Message: "mint must be a 32-44 character base58 Solana address",
		}})
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), mint)
	if err != nil {
		status, code, message := mapAnalyzeError(err)
		s.logger.Warn().Err(err).Str("mint", mint).Int("status", status).Msg("Analysis failed")
		s.respond(w, "analyze", status, ErrorResponse{Error: APIError{Code: code, Message: message}})
		return
	}

	s.respond(w, "analyze", http.StatusOK, result)
}

// mapAnalyzeError folds the analyzer error taxonomy into HTTP responses
func mapAnalyzeError(err error) (int, string, string) {
	switch {
	case errors.Is(err, analyzer.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND",
			"No transaction history found for this mint; it may not exist on mainnet"
	case errors.Is(err, analyzer.ErrBadCredentials):
		return http.StatusServiceUnavailable, "CONFIG_ERROR",
			"The chain-data provider rejected the API key; set a valid HELIUS_API_KEY and restart"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusBadGateway, "UPSTREAM_TIMEOUT",
			"Data providers took too long to answer; try again"
	default:
		return http.StatusBadGateway, "UPSTREAM_ERROR",
			"A required data provider is unavailable; try again"
	}
}

func (s *Server) respond(w http.ResponseWriter, route string, status int, data interface{}) {
	metrics.RecordHTTPRequest(route, strconv.Itoa(status))
	respondJSON(w, status, data)
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: APIError{Code: code, Message: message}})
}
