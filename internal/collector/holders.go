package collector

import (
	"math/big"
	"sort"
	"time"

	"github.com/dobrana/CheckSol-token/internal/helius"
	"github.com/dobrana/CheckSol-token/internal/models"
)

// buildDistribution aggregates token accounts into a per-owner holder
// ranking. Balances are summed with big.Int so large raw supplies never pass
// through a float. Returns nil when there is nothing to rank (no accounts,
// or an observed supply of zero).
func buildDistribution(accounts []helius.TokenAccount, creator string) *models.HolderDistribution {
	if len(accounts) == 0 {
		return nil
	}

	// One owner can hold through several token accounts; merge before ranking
	balances := make(map[string]*big.Int)
	for _, acc := range accounts {
		if acc.Owner == "" {
			continue
		}
		amount, ok := new(big.Int).SetString(acc.Amount.String(), 10)
		if !ok || amount.Sign() <= 0 {
			continue
		}
		if existing, found := balances[acc.Owner]; found {
			existing.Add(existing, amount)
		} else {
			balances[acc.Owner] = amount
		}
	}
	if len(balances) == 0 {
		return nil
	}

	total := new(big.Int)
	owners := make([]string, 0, len(balances))
	for owner, amount := range balances {
		total.Add(total, amount)
		owners = append(owners, owner)
	}
	if total.Sign() <= 0 {
		return nil
	}

	// Descending balance, owner address as the deterministic tie-break
	sort.SliceStable(owners, func(i, j int) bool {
		cmp := balances[owners[i]].Cmp(balances[owners[j]])
		if cmp != 0 {
			return cmp > 0
		}
		return owners[i] < owners[j]
	})

	dist := &models.HolderDistribution{
		TotalSupplyRaw: total,
		TotalHolders:   len(owners),
	}

	limit := topHolderCount
	if len(owners) < limit {
		limit = len(owners)
	}
	for _, owner := range owners[:limit] {
		pct := percentOfSupply(balances[owner], total)
		dist.TopHolders = append(dist.TopHolders, models.TopHolder{
			Owner:           owner,
			AmountRaw:       balances[owner],
			PercentOfSupply: pct,
		})
		dist.Top10Percent += pct
	}

	if amount, ok := balances[creator]; ok {
		dist.CreatorHoldPercent = percentOfSupply(amount, total)
	}

	return dist
}

// percentOfSupply computes amount/total as a percentage. The division runs in
// integer space at parts-per-million resolution; only the final display value
// becomes a float.
func percentOfSupply(amount, total *big.Int) float64 {
	ppm := new(big.Int).Mul(amount, big.NewInt(1_000_000))
	ppm.Quo(ppm, total)
	return float64(ppm.Int64()) / 10_000
}

// connectedHolders collects every distinct recipient that received a native
// or token transfer directly from the creator, keeps the earliest such
// transfer, and cross-references the result against the top holders.
func connectedHolders(sample []helius.Transaction, creator string, topHolders []models.TopHolder) []models.ConnectedHolder {
	firstTransfer := make(map[string]time.Time)

	record := func(from, to string, ts int64) {
		if from != creator || to == "" || to == creator || ts <= 0 {
			return
		}
		at := time.Unix(ts, 0).UTC()
		if existing, ok := firstTransfer[to]; !ok || at.Before(existing) {
			firstTransfer[to] = at
		}
	}

	for _, tx := range sample {
		for _, transfer := range tx.NativeTransfers {
			record(transfer.FromUserAccount, transfer.ToUserAccount, tx.Timestamp)
		}
		for _, transfer := range tx.TokenTransfers {
			record(transfer.FromUserAccount, transfer.ToUserAccount, tx.Timestamp)
		}
	}
	if len(firstTransfer) == 0 {
		return nil
	}

	var connected []models.ConnectedHolder
	for _, holder := range topHolders {
		if at, ok := firstTransfer[holder.Owner]; ok {
			connected = append(connected, models.ConnectedHolder{
				Owner:           holder.Owner,
				PercentOfSupply: holder.PercentOfSupply,
				FirstTransfer:   at,
			})
		}
	}
	return connected
}
