package analyzer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dobrana/CheckSol-token/internal/collector"
	"github.com/dobrana/CheckSol-token/internal/helius"
	"github.com/dobrana/CheckSol-token/internal/market"
	"github.com/dobrana/CheckSol-token/internal/models"
)

// fakeChain answers the creator-resolution lookup for one mint and leaves
// every secondary lookup empty.
type fakeChain struct {
	mint    string
	mintTx  *helius.Transaction
	mintErr error
	block   bool
}

func (f *fakeChain) EarliestTransaction(ctx context.Context, address string) (*helius.Transaction, error) {
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if address == f.mint {
		return f.mintTx, f.mintErr
	}
	return nil, nil
}

func (f *fakeChain) Transactions(_ context.Context, _ string, _ helius.TxQuery) ([]helius.Transaction, error) {
	return nil, nil
}

func (f *fakeChain) Asset(_ context.Context, _ string) (*helius.Asset, error) {
	return nil, nil
}

func (f *fakeChain) TokenAccounts(_ context.Context, _ string, _ int) ([]helius.TokenAccount, error) {
	return nil, nil
}

func (f *fakeChain) MintAccountBytes(_ context.Context, _ string) ([]byte, error) {
	return nil, errors.New("account not found")
}

type emptyMarket struct{}

func (emptyMarket) PairsForToken(_ context.Context, _ string) ([]market.Pair, error) {
	return nil, nil
}

func newAnalyzer(chain *fakeChain, timeout time.Duration) *Analyzer {
	c := collector.New(chain, emptyMarket{}, zerolog.Nop())
	return New(c, timeout, zerolog.Nop())
}

func TestAnalyzeUnknownMint(t *testing.T) {
	a := newAnalyzer(&fakeChain{mint: "mint"}, time.Second)

	result, err := a.Analyze(context.Background(), "mint")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAnalyzeRejectedCredentials(t *testing.T) {
	a := newAnalyzer(&fakeChain{mint: "mint", mintErr: helius.ErrUnauthorized}, time.Second)

	result, err := a.Analyze(context.Background(), "mint")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestAnalyzeTimeoutBudget(t *testing.T) {
	a := newAnalyzer(&fakeChain{mint: "mint", block: true}, 50*time.Millisecond)

	start := time.Now()
	result, err := a.Analyze(context.Background(), "mint")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestAnalyzeMinimalEvidence(t *testing.T) {
	// Only the creator is resolvable; every optional lookup comes back empty.
	// The analysis still completes, parked at the neutral baseline.
	a := newAnalyzer(&fakeChain{
		mint:   "mint",
		mintTx: &helius.Transaction{Signature: "sig", Timestamp: 1700000000, FeePayer: "creator"},
	}, time.Second)

	result, err := a.Analyze(context.Background(), "mint")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 50, result.Score)
	assert.Equal(t, models.RiskMedium, result.Severity)
	assert.Equal(t, "creator", result.Evidence.Creator.Address)
	assert.Equal(t, models.MintAuthorityUnknown, result.Evidence.Creator.MintAuthority)
}
