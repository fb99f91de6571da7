package scoring

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dobrana/CheckSol-token/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func factorIDs(result models.RiskResult) []string {
	ids := make([]string, 0, len(result.Factors))
	for _, f := range result.Factors {
		ids = append(ids, f.ID)
	}
	return ids
}

func holderSet(totalHolders int, top10, creatorPct float64) *models.HolderDistribution {
	return &models.HolderDistribution{
		TotalSupplyRaw:     big.NewInt(1_000_000_000),
		TotalHolders:       totalHolders,
		Top10Percent:       top10,
		CreatorHoldPercent: creatorPct,
	}
}

func TestScoreScenarioHighRisk(t *testing.T) {
	// Active mint authority, creator sold out, two holders, everything in the
	// top 10, almost no liquidity.
	ev := models.Evidence{
		Mint: "mint111111111111111111111111111111111111111",
		Creator: models.CreatorProfile{
			Address:       "creator",
			MintAuthority: models.MintAuthorityActive,
		},
		Holders: holderSet(2, 100, 0),
		Market:  &models.MarketStats{LiquidityUSD: 500},
	}

	result := Score(ev)

	assert.LessOrEqual(t, result.Score, 10)
	assert.Equal(t, models.RiskHigh, result.Severity)
	assert.True(t, result.CreatorSold)
	assert.Equal(t, "unlimited", result.EmissionStatus)

	ids := factorIDs(result)
	for _, want := range []string{"unlimited_mint", "creator_sold", "very_few_holders", "extreme_concentration", "low_liquidity"} {
		assert.Contains(t, ids, want)
	}
}

func TestScoreScenarioLowRisk(t *testing.T) {
	age := 200.0
	ev := models.Evidence{
		Mint: "mint111111111111111111111111111111111111111",
		Creator: models.CreatorProfile{
			Address:        "creator",
			MintAuthority:  models.MintAuthorityRevoked,
			AccountAgeDays: &age,
			SampledTxCount: 40,
			TxTypes:        []string{"SWAP", "TRANSFER", "TOKEN_MINT"},
		},
		Holders: holderSet(500, 25, 15),
		Market:  &models.MarketStats{LiquidityUSD: 80_000},
	}

	result := Score(ev)

	assert.GreaterOrEqual(t, result.Score, 90)
	assert.LessOrEqual(t, result.Score, 100)
	assert.Equal(t, models.RiskLow, result.Severity)
	assert.False(t, result.CreatorSold)
	assert.Equal(t, "fixed", result.EmissionStatus)

	ids := factorIDs(result)
	for _, want := range []string{"fixed_supply", "creator_holds", "first_or_few", "established_account", "distributed_holders", "good_liquidity"} {
		assert.Contains(t, ids, want)
	}
}

func TestScoreMissingEvidenceSkipsRules(t *testing.T) {
	// Holder distribution absent: every holder-dependent rule must be
	// silently skipped, nothing else may change.
	withHolders := models.Evidence{
		Creator: models.CreatorProfile{MintAuthority: models.MintAuthorityActive},
		Holders: holderSet(3, 90, 0),
		Market:  &models.MarketStats{LiquidityUSD: 500},
	}
	withoutHolders := withHolders
	withoutHolders.Holders = nil

	holderRules := map[string]bool{
		"creator_sold": true, "creator_holds": true,
		"very_few_holders": true, "few_holders": true, "low_holder_count": true,
		"extreme_concentration": true, "high_concentration": true, "distributed_holders": true,
		"creator_connected_holders": true,
	}

	full := Score(withHolders)
	degraded := Score(withoutHolders)

	for _, id := range factorIDs(degraded) {
		assert.False(t, holderRules[id], "holder rule %s fired without holder evidence", id)
	}

	// Non-holder factors are identical in id, order and impact
	var fullRest, degradedRest []models.RiskFactor
	for _, f := range full.Factors {
		if !holderRules[f.ID] {
			fullRest = append(fullRest, f)
		}
	}
	for _, f := range degraded.Factors {
		if !holderRules[f.ID] {
			degradedRest = append(degradedRest, f)
		}
	}
	assert.Equal(t, fullRest, degradedRest)
}

func TestScoreEmptyEvidenceStaysAtBase(t *testing.T) {
	result := Score(models.Evidence{
		Creator: models.CreatorProfile{MintAuthority: models.MintAuthorityUnknown},
	})

	assert.Equal(t, 50, result.Score)
	assert.Equal(t, models.RiskMedium, result.Severity)
	assert.Empty(t, result.Factors)
	assert.False(t, result.CreatorSold)
	assert.Equal(t, "fixed", result.EmissionStatus)
}

func TestScoreDeterminism(t *testing.T) {
	age := 3.5
	ev := models.Evidence{
		Creator: models.CreatorProfile{
			MintAuthority:  models.MintAuthorityActive,
			AccountAgeDays: &age,
			SampledTxCount: 600,
			TxTypes:        []string{"TOKEN_MINT", "CREATE", "SWAP"},
		},
		Holders: holderSet(12, 65, 2),
		Market: &models.MarketStats{
			LiquidityUSD:     5_000,
			FreshHolderPct1d: floatPtr(80),
		},
	}

	first := Score(ev)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Score(ev))
	}
}

func TestScoreClampedToBounds(t *testing.T) {
	age := 0.2
	worst := models.Evidence{
		Creator: models.CreatorProfile{
			MintAuthority:  models.MintAuthorityActive,
			AccountAgeDays: &age,
			SampledTxCount: 600,
			TxTypes: []string{
				"TOKEN_MINT", "TOKEN_MINT", "TOKEN_MINT", "TOKEN_MINT", "TOKEN_MINT",
				"TOKEN_MINT", "TOKEN_MINT", "TOKEN_MINT", "TOKEN_MINT", "TOKEN_MINT",
			},
		},
		Holders: &models.HolderDistribution{
			TotalSupplyRaw: big.NewInt(100),
			TotalHolders:   2,
			Top10Percent:   100,
			CreatorConnectedHolders: []models.ConnectedHolder{
				{Owner: "a", PercentOfSupply: 30},
				{Owner: "b", PercentOfSupply: 30},
				{Owner: "c", PercentOfSupply: 30},
			},
		},
		Market: &models.MarketStats{LiquidityUSD: 100, FreshHolderPct1d: floatPtr(90)},
	}

	result := Score(worst)
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, models.RiskHigh, result.Severity)
}

func TestSeverityTierBoundaries(t *testing.T) {
	assert.Equal(t, models.RiskHigh, models.SeverityForScore(0))
	assert.Equal(t, models.RiskHigh, models.SeverityForScore(30))
	assert.Equal(t, models.RiskMedium, models.SeverityForScore(31))
	assert.Equal(t, models.RiskMedium, models.SeverityForScore(60))
	assert.Equal(t, models.RiskLow, models.SeverityForScore(61))
	assert.Equal(t, models.RiskLow, models.SeverityForScore(100))
}

func TestConnectedHoldersRule(t *testing.T) {
	base := models.Evidence{
		Creator: models.CreatorProfile{MintAuthority: models.MintAuthorityUnknown},
	}

	t.Run("critical on count", func(t *testing.T) {
		ev := base
		ev.Holders = holderSet(50, 40, 5)
		ev.Holders.CreatorConnectedHolders = []models.ConnectedHolder{
			{Owner: "a", PercentOfSupply: 2}, {Owner: "b", PercentOfSupply: 2}, {Owner: "c", PercentOfSupply: 2},
		}
		result := Score(ev)
		factor := findFactor(t, result, "creator_connected_holders")
		assert.Equal(t, models.FactorCritical, factor.Severity)
		assert.Equal(t, -14, factor.Impact)
	})

	t.Run("critical on combined percent", func(t *testing.T) {
		ev := base
		ev.Holders = holderSet(50, 40, 5)
		ev.Holders.CreatorConnectedHolders = []models.ConnectedHolder{
			{Owner: "a", PercentOfSupply: 25},
		}
		result := Score(ev)
		factor := findFactor(t, result, "creator_connected_holders")
		assert.Equal(t, models.FactorCritical, factor.Severity)
	})

	t.Run("warning below both thresholds", func(t *testing.T) {
		ev := base
		ev.Holders = holderSet(50, 40, 5)
		ev.Holders.CreatorConnectedHolders = []models.ConnectedHolder{
			{Owner: "a", PercentOfSupply: 4}, {Owner: "b", PercentOfSupply: 3},
		}
		result := Score(ev)
		factor := findFactor(t, result, "creator_connected_holders")
		assert.Equal(t, models.FactorWarning, factor.Severity)
		assert.Equal(t, -6, factor.Impact)
	})
}

func TestTokensCreatedRecomputedFromSample(t *testing.T) {
	// Ten creation tags in the sample push the serial-creator rule even when
	// the collector's own estimate field says otherwise.
	ev := models.Evidence{
		Creator: models.CreatorProfile{
			MintAuthority:          models.MintAuthorityUnknown,
			SampledTxCount:         12,
			EstimatedTokensCreated: 1,
			TxTypes: []string{
				"TOKEN_MINT", "TOKEN_MINT", "TOKEN_MINT", "TOKEN_MINT", "TOKEN_MINT",
				"CREATE", "CREATE", "CREATE", "CREATE", "CREATE", "SWAP", "SWAP",
			},
		},
	}

	result := Score(ev)
	factor := findFactor(t, result, "serial_creator")
	assert.Equal(t, -25, factor.Impact)
}

func TestFreshHoldersRule(t *testing.T) {
	base := models.Evidence{Creator: models.CreatorProfile{MintAuthority: models.MintAuthorityUnknown}}

	t.Run("fires on one-day share", func(t *testing.T) {
		ev := base
		ev.Market = &models.MarketStats{LiquidityUSD: 20_000, FreshHolderPct1d: floatPtr(60)}
		assert.Contains(t, factorIDs(Score(ev)), "very_fresh_holders")
	})

	t.Run("fires on seven-day share", func(t *testing.T) {
		ev := base
		ev.Market = &models.MarketStats{LiquidityUSD: 20_000, FreshHolderPct1d: floatPtr(10), FreshHolderPct7d: floatPtr(80)}
		assert.Contains(t, factorIDs(Score(ev)), "very_fresh_holders")
	})

	t.Run("skipped when absent", func(t *testing.T) {
		ev := base
		ev.Market = &models.MarketStats{LiquidityUSD: 20_000}
		assert.NotContains(t, factorIDs(Score(ev)), "very_fresh_holders")
	})
}

func findFactor(t *testing.T, result models.RiskResult, id string) models.RiskFactor {
	t.Helper()
	for _, f := range result.Factors {
		if f.ID == id {
			return f
		}
	}
	require.Failf(t, "factor not found", "expected factor %s in %v", id, factorIDs(result))
	return models.RiskFactor{}
}
