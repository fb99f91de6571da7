package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dobrana/CheckSol-token/internal/analyzer"
	"github.com/dobrana/CheckSol-token/internal/models"
)

const validMint = "So11111111111111111111111111111111111111112"

type stubAnalyzer struct {
	result *models.RiskResult
	err    error
}

func (s *stubAnalyzer) Analyze(_ context.Context, _ string) (*models.RiskResult, error) {
	return s.result, s.err
}

type panickingAnalyzer struct{}

func (panickingAnalyzer) Analyze(_ context.Context, _ string) (*models.RiskResult, error) {
	panic("boom")
}

func newTestServer(a AnalyzerService) *Server {
	return NewServer(ServerConfig{Host: "127.0.0.1", Port: "0"}, a, zerolog.Nop())
}

func doRequest(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestAnalyzeSuccess(t *testing.T) {
	result := &models.RiskResult{
		Score:    72,
		Severity: models.RiskLow,
		Factors: []models.RiskFactor{
			{ID: "fixed_supply", Label: "Mint authority revoked", Severity: models.FactorPositive, Impact: 10},
		},
		EmissionStatus: "fixed",
	}
	s := newTestServer(&stubAnalyzer{result: result})

	rec := doRequest(t, s, "/api/analyze?mint="+validMint)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got models.RiskResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, 72, got.Score)
	assert.Equal(t, models.RiskLow, got.Severity)
	require.Len(t, got.Factors, 1)
	assert.Equal(t, "fixed_supply", got.Factors[0].ID)
}

func TestAnalyzeRejectsBadAddresses(t *testing.T) {
	s := newTestServer(&stubAnalyzer{})

	tests := []struct {
		name string
		mint string
	}{
		{"missing", ""},
		{"too short", "abc"},
		{"too long", validMint + validMint},
		{"non base58 characters", "0OIl!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, s, "/api/analyze?mint="+tt.mint)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "INVALID_ADDRESS", decodeError(t, rec).Error.Code)
		})
	}
}

func TestAnalyzeErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"unknown mint", analyzer.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"rejected credentials", analyzer.ErrBadCredentials, http.StatusServiceUnavailable, "CONFIG_ERROR"},
		{"budget exhausted", context.DeadlineExceeded, http.StatusBadGateway, "UPSTREAM_TIMEOUT"},
		{"provider down", errors.New("connection refused"), http.StatusBadGateway, "UPSTREAM_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(&stubAnalyzer{err: tt.err})
			rec := doRequest(t, s, "/api/analyze?mint="+validMint)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, rec).Error.Code)
		})
	}
}

func TestAnalyzeWrappedErrorsStillMap(t *testing.T) {
	wrapped := errors.Join(errors.New("analysis failed"), analyzer.ErrNotFound)
	s := newTestServer(&stubAnalyzer{err: wrapped})

	rec := doRequest(t, s, "/api/analyze?mint="+validMint)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	s := newTestServer(panickingAnalyzer{})

	rec := doRequest(t, s, "/api/analyze?mint="+validMint)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", decodeError(t, rec).Error.Code)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(&stubAnalyzer{})

	rec := doRequest(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func TestIndexPage(t *testing.T) {
	s := newTestServer(&stubAnalyzer{})

	rec := doRequest(t, s, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "CheckSol")
}
