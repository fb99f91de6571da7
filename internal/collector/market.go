package collector

import (
	"sort"
	"strings"

	"github.com/dobrana/CheckSol-token/internal/market"
	"github.com/dobrana/CheckSol-token/internal/models"
)

// bondingVenues are venue identifiers that run a bonding curve instead of an
// open order book or AMM pool.
var bondingVenues = map[string]bool{
	"pumpfun":   true,
	"moonshot":  true,
	"launchlab": true,
}

// ammVenues are open-market venue identifiers a token migrates to.
var ammVenues = map[string]bool{
	"raydium":  true,
	"pumpswap": true,
	"orca":     true,
	"meteora":  true,
	"fluxbeam": true,
	"lifinity": true,
}

// buildMarketStats folds provider pairs into a market snapshot: total
// liquidity, total 24h trade counts, the best pair per counter-asset symbol,
// and the migration status inferred from the venues observed. Returns nil
// when the token has no pairs at all.
func buildMarketStats(pairs []market.Pair) *models.MarketStats {
	if len(pairs) == 0 {
		return nil
	}

	stats := &models.MarketStats{Migration: models.MigrationUnknown}
	bestPerQuote := make(map[string]models.MarketPair)
	hasBonding := false
	hasAMM := false

	for _, pair := range pairs {
		liquidity := 0.0
		if pair.Liquidity != nil {
			liquidity = pair.Liquidity.USD
		}

		stats.LiquidityUSD += liquidity
		stats.Buys24h += pair.Txns.H24.Buys
		stats.Sells24h += pair.Txns.H24.Sells

		venue := strings.ToLower(pair.DexID)
		if bondingVenues[venue] {
			hasBonding = true
		}
		if ammVenues[venue] {
			hasAMM = true
		}

		symbol := pair.QuoteToken.Symbol
		if symbol == "" {
			symbol = pair.QuoteToken.Address
		}
		if best, ok := bestPerQuote[symbol]; !ok || liquidity > best.LiquidityUSD {
			bestPerQuote[symbol] = models.MarketPair{
				QuoteSymbol:  symbol,
				LiquidityUSD: liquidity,
				DexID:        pair.DexID,
				PairAddress:  pair.PairAddress,
			}
		}
	}

	for _, best := range bestPerQuote {
		stats.Pairs = append(stats.Pairs, best)
	}
	sort.SliceStable(stats.Pairs, func(i, j int) bool {
		if stats.Pairs[i].LiquidityUSD != stats.Pairs[j].LiquidityUSD {
			return stats.Pairs[i].LiquidityUSD > stats.Pairs[j].LiquidityUSD
		}
		return stats.Pairs[i].QuoteSymbol < stats.Pairs[j].QuoteSymbol
	})

	switch {
	case hasBonding && hasAMM:
		stats.Migration = models.MigrationMigrated
	case hasBonding:
		stats.Migration = models.MigrationBondingCurveOnly
	case hasAMM:
		stats.Migration = models.MigrationMarketOnly
	}

	return stats
}
