package models

import (
	"math/big"
	"time"
)

// MintAuthorityState describes whether anyone still holds the power to mint
// additional supply for a token.
type MintAuthorityState string

const (
	MintAuthorityActive  MintAuthorityState = "active"
	MintAuthorityRevoked MintAuthorityState = "revoked"
	MintAuthorityUnknown MintAuthorityState = "unknown"
)

// MigrationStatus describes where a token currently trades, inferred from the
// set of venues its pairs live on.
type MigrationStatus string

const (
	MigrationBondingCurveOnly MigrationStatus = "bonding-curve-only"
	MigrationMigrated         MigrationStatus = "migrated-to-market"
	MigrationMarketOnly       MigrationStatus = "market-only"
	MigrationUnknown          MigrationStatus = "unknown"
)

// CreatorProfile captures the identity and behavior of the wallet that
// deployed the token under analysis. Built once per request, immutable after.
type CreatorProfile struct {
	Address string `json:"address"`

	// FirstActivity is the earliest known transaction time for the wallet,
	// nil when the lookup failed or the wallet has no visible history.
	FirstActivity  *time.Time `json:"firstActivity,omitempty"`
	AccountAgeDays *float64   `json:"accountAgeDays,omitempty"`

	// SampledTxCount is the size of the bounded recent-transaction sample,
	// not the wallet's lifetime transaction count.
	SampledTxCount int `json:"sampledTxCount"`

	// TxTypes holds the type tags of the sampled transactions so the scorer
	// can re-run creation-event classification without refetching.
	TxTypes []string `json:"-"`

	// EstimatedTokensCreated is the number of sampled transactions classified
	// as token-creation events, floored at 1.
	EstimatedTokensCreated int `json:"estimatedTokensCreated"`

	MintAuthority MintAuthorityState `json:"mintAuthority"`
}

// TopHolder is one entry of the descending-balance holder ranking.
type TopHolder struct {
	Owner           string   `json:"owner"`
	AmountRaw       *big.Int `json:"amountRaw"`
	PercentOfSupply float64  `json:"percentOfSupply"`
}

// ConnectedHolder is a top holder that previously received a transfer
// directly from the creator wallet.
type ConnectedHolder struct {
	Owner           string    `json:"owner"`
	PercentOfSupply float64   `json:"percentOfSupply"`
	FirstTransfer   time.Time `json:"firstTransfer"`
}

// HolderDistribution is a supply-concentration snapshot. A nil
// *HolderDistribution means the data was unavailable; a zero total supply is
// never represented as a zero-filled struct.
type HolderDistribution struct {
	TotalSupplyRaw          *big.Int          `json:"totalSupplyRaw"`
	TotalHolders            int               `json:"totalHolders"`
	TopHolders              []TopHolder       `json:"topHolders"`
	Top10Percent            float64           `json:"top10Percent"`
	CreatorHoldPercent      float64           `json:"creatorHoldPercent"`
	CreatorConnectedHolders []ConnectedHolder `json:"creatorConnectedHolders"`
}

// MarketPair is the highest-liquidity pair for one counter-asset symbol.
type MarketPair struct {
	QuoteSymbol  string  `json:"quoteSymbol"`
	LiquidityUSD float64 `json:"liquidityUsd"`
	DexID        string  `json:"dexId"`
	PairAddress  string  `json:"pairAddress"`
}

// MarketStats is a trading/liquidity snapshot. A nil *MarketStats means the
// token has no market data (not trading yet, or the provider was down).
type MarketStats struct {
	LiquidityUSD     float64         `json:"liquidityUsd"`
	Pairs            []MarketPair    `json:"pairs"`
	Buys24h          int             `json:"buys24h"`
	Sells24h         int             `json:"sells24h"`
	UniqueTraders24h *int            `json:"uniqueTraders24h,omitempty"`
	FreshHolderPct1d *float64        `json:"freshHolderPct1d,omitempty"`
	FreshHolderPct7d *float64        `json:"freshHolderPct7d,omitempty"`
	Migration        MigrationStatus `json:"migrationStatus"`
}

// SiblingToken is another token created by the same wallet, shown as part of
// the creator's track record.
type SiblingToken struct {
	Mint         string   `json:"mint"`
	Symbol       string   `json:"symbol,omitempty"`
	Name         string   `json:"name,omitempty"`
	LiquidityUSD *float64 `json:"liquidityUsd,omitempty"`
	Pairs        int      `json:"pairs"`
}

// TokenMeta is display metadata for the analyzed mint.
type TokenMeta struct {
	Name     string `json:"name,omitempty"`
	Symbol   string `json:"symbol,omitempty"`
	Supply   string `json:"supply,omitempty"`
	Decimals int    `json:"decimals"`
}

// Evidence is the full bundle the collector hands to the scorer. Only the
// creator profile is guaranteed to be present; every other field may be nil
// or empty when its lookup degraded.
type Evidence struct {
	Mint     string              `json:"mint"`
	Token    *TokenMeta          `json:"token,omitempty"`
	Creator  CreatorProfile      `json:"creator"`
	Holders  *HolderDistribution `json:"holderStats,omitempty"`
	Market   *MarketStats        `json:"marketStats,omitempty"`
	Siblings []SiblingToken      `json:"siblings,omitempty"`
}
