// Package collector gathers best-effort evidence about a token mint: who
// created it, how supply is distributed, whether it trades anywhere, and what
// else the creator has deployed. Exactly one lookup is mandatory (resolving
// the creator); every other failure degrades to absent evidence instead of
// failing the analysis.
package collector

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dobrana/CheckSol-token/internal/classify"
	"github.com/dobrana/CheckSol-token/internal/helius"
	"github.com/dobrana/CheckSol-token/internal/market"
	"github.com/dobrana/CheckSol-token/internal/models"
)

// ErrNoTransactionHistory is returned when the mint has no transaction
// history at all, which makes the creator undeterminable.
var ErrNoTransactionHistory = errors.New("no transaction history for mint")

const (
	maxHolderAccounts = 1000
	creatorSamplePage = 100
	maxSamplePages    = 10
	maxSiblings       = 8
	topHolderCount    = 10

	// mintAuthorityOffset is the position of the mint-authority presence
	// flag inside the raw SPL mint account data: 1 = set, 0 = revoked.
	mintAuthorityOffset = 10
)

// ChainProvider is the subset of the chain-data API the collector needs
type ChainProvider interface {
	Transactions(ctx context.Context, address string, q helius.TxQuery) ([]helius.Transaction, error)
	EarliestTransaction(ctx context.Context, address string) (*helius.Transaction, error)
	Asset(ctx context.Context, mint string) (*helius.Asset, error)
	TokenAccounts(ctx context.Context, mint string, limit int) ([]helius.TokenAccount, error)
	MintAccountBytes(ctx context.Context, mint string) ([]byte, error)
}

// MarketProvider is the subset of the market-data API the collector needs
type MarketProvider interface {
	PairsForToken(ctx context.Context, mint string) ([]market.Pair, error)
}

// Collector orchestrates evidence gathering for one mint at a time
type Collector struct {
	chain  ChainProvider
	market MarketProvider
	logger zerolog.Logger
	now    func() time.Time
}

// New creates a collector backed by the given providers
func New(chain ChainProvider, marketProvider MarketProvider, logger zerolog.Logger) *Collector {
	return &Collector{
		chain:  chain,
		market: marketProvider,
		logger: logger.With().Str("component", "collector").Logger(),
		now:    time.Now,
	}
}

// Collect assembles the evidence bundle for a mint. It fails only when the
// creator cannot be determined; all secondary lookups degrade to absent
// fields on error.
func (c *Collector) Collect(ctx context.Context, mint string) (*models.Evidence, error) {
	logger := c.logger.With().Str("mint", mint).Logger()

	// Phase 1: the one mandatory dependency. The fee payer of the mint's
	// earliest transaction is the creator.
	first, err := c.chain.EarliestTransaction(ctx, mint)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve creator: %w", err)
	}
	if first == nil {
		return nil, ErrNoTransactionHistory
	}
	if first.FeePayer == "" {
		return nil, fmt.Errorf("creator undeterminable: %w", ErrNoTransactionHistory)
	}
	creator := first.FeePayer
	logger.Debug().Str("creator", creator).Msg("Resolved token creator")

	// Phase 2: independent lookups run concurrently. Each goroutine owns its
	// own result variable; failures are logged and leave the field absent.
	var (
		wg           sync.WaitGroup
		creatorFirst *helius.Transaction
		sample       []helius.Transaction
		accounts     []helius.TokenAccount
		pairs        []market.Pair
		asset        *helius.Asset
		authority    models.MintAuthorityState
	)

	wg.Add(5)

	go func() {
		defer wg.Done()
		tx, err := c.chain.EarliestTransaction(ctx, creator)
		if err != nil {
			logger.Warn().Err(err).Msg("Creator first-activity lookup failed, account age unavailable")
			return
		}
		creatorFirst = tx
	}()

	go func() {
		defer wg.Done()
		txs, err := c.fetchCreatorSample(ctx, creator)
		if err != nil {
			logger.Warn().Err(err).Msg("Creator activity sample failed, behavior signals unavailable")
			return
		}
		sample = txs
	}()

	go func() {
		defer wg.Done()
		accs, err := c.chain.TokenAccounts(ctx, mint, maxHolderAccounts)
		if err != nil {
			logger.Warn().Err(err).Msg("Token account lookup failed, holder distribution unavailable")
			return
		}
		accounts = accs
	}()

	go func() {
		defer wg.Done()
		result, err := c.market.PairsForToken(ctx, mint)
		if err != nil {
			logger.Warn().Err(err).Msg("Market pair lookup failed, market stats unavailable")
			return
		}
		pairs = result
	}()

	go func() {
		defer wg.Done()
		asset, authority = c.resolveMintAuthority(ctx, mint, logger)
	}()

	wg.Wait()

	// Phase 3: derived evidence that depends on phase 2 results.
	profile := c.buildCreatorProfile(creator, creatorFirst, sample, authority)
	holders := buildDistribution(accounts, creator)
	if holders != nil {
		holders.CreatorConnectedHolders = connectedHolders(sample, creator, holders.TopHolders)
	}

	stats := buildMarketStats(pairs)
	if stats != nil && holders != nil {
		c.sampleFreshHolders(ctx, holders, stats, logger)
	}

	ev := &models.Evidence{
		Mint:     mint,
		Token:    tokenMeta(asset),
		Creator:  profile,
		Holders:  holders,
		Market:   stats,
		Siblings: c.collectSiblings(ctx, mint, sample, logger),
	}

	logger.Info().
		Int("sampled_txs", profile.SampledTxCount).
		Bool("holders_present", holders != nil).
		Bool("market_present", stats != nil).
		Int("siblings", len(ev.Siblings)).
		Msg("Evidence collection completed")

	return ev, nil
}

// buildCreatorProfile folds the creator lookups into an immutable profile
func (c *Collector) buildCreatorProfile(creator string, first *helius.Transaction, sample []helius.Transaction, authority models.MintAuthorityState) models.CreatorProfile {
	profile := models.CreatorProfile{
		Address:       creator,
		MintAuthority: authority,
	}

	if first != nil && first.Timestamp > 0 {
		ts := time.Unix(first.Timestamp, 0).UTC()
		profile.FirstActivity = &ts
		age := c.now().Sub(ts).Hours() / 24
		if age < 0 {
			age = 0
		}
		profile.AccountAgeDays = &age
	}

	profile.SampledTxCount = len(sample)
	profile.TxTypes = make([]string, 0, len(sample))
	for _, tx := range sample {
		profile.TxTypes = append(profile.TxTypes, tx.Type)
	}
	profile.EstimatedTokensCreated = classify.CountCreationEvents(profile.TxTypes)

	return profile
}

// fetchCreatorSample pages through the creator's recent history, newest
// first, up to maxSamplePages pages. The sample is bounded on purpose: it
// feeds heuristics, not accounting.
func (c *Collector) fetchCreatorSample(ctx context.Context, creator string) ([]helius.Transaction, error) {
	var sample []helius.Transaction
	before := ""

	for page := 0; page < maxSamplePages; page++ {
		txs, err := c.chain.Transactions(ctx, creator, helius.TxQuery{
			Order:  helius.OrderDesc,
			Limit:  creatorSamplePage,
			Before: before,
		})
		if err != nil {
			// A partial sample is still a sample
			if len(sample) > 0 {
				return sample, nil
			}
			return nil, err
		}
		if len(txs) == 0 {
			break
		}

		sample = append(sample, txs...)
		if len(txs) < creatorSamplePage {
			break
		}
		before = txs[len(txs)-1].Signature
	}

	return sample, nil
}

// resolveMintAuthority prefers structured asset metadata and falls back to
// the raw mint account flag. Either source failing yields Unknown.
func (c *Collector) resolveMintAuthority(ctx context.Context, mint string, logger zerolog.Logger) (*helius.Asset, models.MintAuthorityState) {
	asset, err := c.chain.Asset(ctx, mint)
	if err != nil {
		logger.Warn().Err(err).Msg("Asset metadata lookup failed")
		asset = nil
	}

	if asset != nil && asset.TokenInfo != nil {
		if asset.TokenInfo.MintAuthority != "" {
			return asset, models.MintAuthorityActive
		}
		return asset, models.MintAuthorityRevoked
	}

	data, err := c.chain.MintAccountBytes(ctx, mint)
	if err != nil {
		logger.Warn().Err(err).Msg("Raw mint account fetch failed, mint authority unknown")
		return asset, models.MintAuthorityUnknown
	}
	if len(data) <= mintAuthorityOffset {
		logger.Warn().Int("len", len(data)).Msg("Mint account data too short, mint authority unknown")
		return asset, models.MintAuthorityUnknown
	}

	switch data[mintAuthorityOffset] {
	case 1:
		return asset, models.MintAuthorityActive
	case 0:
		return asset, models.MintAuthorityRevoked
	default:
		return asset, models.MintAuthorityUnknown
	}
}

// tokenMeta extracts display metadata from the asset, when present
func tokenMeta(asset *helius.Asset) *models.TokenMeta {
	if asset == nil {
		return nil
	}

	meta := &models.TokenMeta{}
	if asset.Content != nil {
		meta.Name = asset.Content.Metadata.Name
		meta.Symbol = asset.Content.Metadata.Symbol
	}
	if asset.TokenInfo != nil {
		meta.Supply = asset.TokenInfo.Supply.String()
		meta.Decimals = asset.TokenInfo.Decimals
	}
	return meta
}
