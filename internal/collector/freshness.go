package collector

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dobrana/CheckSol-token/internal/models"
)

// sampleFreshHolders estimates how much of the top of the holder set consists
// of recently created wallets by probing each top holder's first activity.
// Purely best-effort: holders whose lookup fails drop out of the sample, and
// an empty sample leaves both percentages absent.
func (c *Collector) sampleFreshHolders(ctx context.Context, holders *models.HolderDistribution, stats *models.MarketStats, logger zerolog.Logger) {
	if len(holders.TopHolders) == 0 {
		return
	}

	now := c.now()
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		sampled int
		fresh1d int
		fresh7d int
	)

	for _, holder := range holders.TopHolders {
		wg.Add(1)
		go func(owner string) {
			defer wg.Done()
			first, err := c.chain.EarliestTransaction(ctx, owner)
			if err != nil || first == nil || first.Timestamp <= 0 {
				return
			}
			age := now.Sub(time.Unix(first.Timestamp, 0))

			mu.Lock()
			defer mu.Unlock()
			sampled++
			if age < 24*time.Hour {
				fresh1d++
			}
			if age < 7*24*time.Hour {
				fresh7d++
			}
		}(holder.Owner)
	}
	wg.Wait()

	if sampled == 0 {
		logger.Debug().Msg("No holder first-activity samples, fresh-holder signal unavailable")
		return
	}

	pct1d := float64(fresh1d) / float64(sampled) * 100
	pct7d := float64(fresh7d) / float64(sampled) * 100
	stats.FreshHolderPct1d = &pct1d
	stats.FreshHolderPct7d = &pct7d
}
