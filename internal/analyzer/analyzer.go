// Package analyzer ties the evidence collector and the risk scorer together
// behind the single inbound operation the UI consumes.
package analyzer

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/dobrana/CheckSol-token/internal/collector"
	"github.com/dobrana/CheckSol-token/internal/helius"
	"github.com/dobrana/CheckSol-token/internal/metrics"
	"github.com/dobrana/CheckSol-token/internal/models"
	"github.com/dobrana/CheckSol-token/internal/scoring"
)

// ErrNotFound means the mint has no transaction history at all; there is
// nothing to analyze.
var ErrNotFound = collector.ErrNoTransactionHistory

// ErrBadCredentials means the chain-data provider rejected the configured
// API key. Callers should render setup instructions, not retry.
var ErrBadCredentials = helius.ErrUnauthorized

// Analyzer runs one analysis per call. Requests are fully independent: no
// shared mutable state, no caching, no coalescing.
type Analyzer struct {
	collector *collector.Collector
	timeout   time.Duration
	logger    zerolog.Logger
}

// New creates an analyzer with the given per-request wall-clock budget
func New(c *collector.Collector, timeout time.Duration, logger zerolog.Logger) *Analyzer {
	return &Analyzer{
		collector: c,
		timeout:   timeout,
		logger:    logger.With().Str("component", "analyzer").Logger(),
	}
}

// Analyze collects evidence for a mint and scores it. The mint address must
// already be format-validated by the caller; only the existence of
// transaction history is checked here.
func (a *Analyzer) Analyze(ctx context.Context, mint string) (*models.RiskResult, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	evidence, err := a.collector.Collect(ctx, mint)
	if err != nil {
		outcome := "upstream_error"
		switch {
		case errors.Is(err, ErrNotFound):
			outcome = "not_found"
		case errors.Is(err, ErrBadCredentials):
			outcome = "config_error"
		case errors.Is(err, context.DeadlineExceeded):
			outcome = "timeout"
		}
		metrics.RecordAnalysis(outcome, time.Since(start).Seconds())
		return nil, err
	}

	result := scoring.Score(*evidence)
	metrics.RecordAnalysis("ok", time.Since(start).Seconds())

	a.logger.Info().
		Str("mint", mint).
		Int("score", result.Score).
		Str("severity", string(result.Severity)).
		Int("factors", len(result.Factors)).
		Dur("duration", time.Since(start)).
		Msg("Analysis completed")

	return &result, nil
}
