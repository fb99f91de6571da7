package collector

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dobrana/CheckSol-token/internal/classify"
	"github.com/dobrana/CheckSol-token/internal/helius"
	"github.com/dobrana/CheckSol-token/internal/models"
)

// collectSiblings finds other mints the creator deployed: mints that appear
// as the transferred asset inside sampled creation events, excluding the
// token under analysis. Each sibling is enriched best-effort with metadata
// and market data; enrichment failures leave the bare mint in place.
func (c *Collector) collectSiblings(ctx context.Context, analyzedMint string, sample []helius.Transaction, logger zerolog.Logger) []models.SiblingToken {
	seen := map[string]bool{analyzedMint: true}
	var mints []string

	for _, tx := range sample {
		if !classify.IsCreationEvent(tx.Type) {
			continue
		}
		for _, transfer := range tx.TokenTransfers {
			if transfer.Mint == "" || seen[transfer.Mint] {
				continue
			}
			seen[transfer.Mint] = true
			mints = append(mints, transfer.Mint)
			if len(mints) == maxSiblings {
				break
			}
		}
		if len(mints) == maxSiblings {
			break
		}
	}
	if len(mints) == 0 {
		return nil
	}

	siblings := make([]models.SiblingToken, len(mints))
	var wg sync.WaitGroup
	for i, mint := range mints {
		wg.Add(1)
		go func(i int, mint string) {
			defer wg.Done()
			siblings[i] = c.enrichSibling(ctx, mint, logger)
		}(i, mint)
	}
	wg.Wait()

	return siblings
}

// enrichSibling fetches metadata and market data for one sibling mint
func (c *Collector) enrichSibling(ctx context.Context, mint string, logger zerolog.Logger) models.SiblingToken {
	sibling := models.SiblingToken{Mint: mint}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		asset, err := c.chain.Asset(ctx, mint)
		if err != nil || asset == nil {
			if err != nil {
				logger.Debug().Err(err).Str("sibling", mint).Msg("Sibling metadata lookup failed")
			}
			return
		}
		if asset.Content != nil {
			sibling.Name = asset.Content.Metadata.Name
			sibling.Symbol = asset.Content.Metadata.Symbol
		}
	}()

	go func() {
		defer wg.Done()
		pairs, err := c.market.PairsForToken(ctx, mint)
		if err != nil {
			logger.Debug().Err(err).Str("sibling", mint).Msg("Sibling market lookup failed")
			return
		}
		if stats := buildMarketStats(pairs); stats != nil {
			liquidity := stats.LiquidityUSD
			sibling.LiquidityUSD = &liquidity
			sibling.Pairs = len(stats.Pairs)
		}
	}()

	wg.Wait()
	return sibling
}
