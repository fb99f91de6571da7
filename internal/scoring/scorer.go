// Package scoring turns an evidence bundle into a bounded risk score with an
// explainable factor list. The scorer is a pure function: no I/O, no clock,
// fully deterministic for a given bundle. Missing evidence never fails a
// scoring run; the rule that needed it is skipped and the score stays closer
// to the neutral base.
package scoring

import (
	"fmt"

	"github.com/dobrana/CheckSol-token/internal/classify"
	"github.com/dobrana/CheckSol-token/internal/models"
)

// baseScore is the neutral anchor every analysis starts from. Rules move the
// score in both directions; with no evidence at all the result stays here.
const baseScore = 50

// Rule thresholds. Product-tuned constants, kept as fixed configuration; the
// calibration scenarios depend on these exact values.
const (
	creatorSoldBelowPct   = 1.0
	creatorHoldsAbovePct  = 10.0
	serialCreatorMin      = 10
	multipleTokensMin     = 5
	highActivitySampleMin = 500
	extremeTop10Pct       = 80.0
	highTop10Pct          = 50.0
	distributedTop10Pct   = 30.0
	distributedHoldersMin = 100
	connectedCountMin     = 3
	connectedPctMin       = 20.0
	lowLiquidityUSD       = 2000.0
	moderateLiquidityUSD  = 10000.0
	goodLiquidityUSD      = 50000.0
	fresh1dPctMax         = 50.0
	fresh7dPctMax         = 70.0
)

// Score evaluates the fixed rule sequence against the evidence and returns
// the result. Rules are independent: each one either fires (one delta, one
// factor) or is skipped because its inputs are absent. The factor order is
// the evaluation order and must stay stable.
func Score(ev models.Evidence) models.RiskResult {
	s := &scorer{score: baseScore}

	s.mintAuthority(ev.Creator)
	s.creatorHoldings(ev.Holders)
	s.tokensCreated(ev.Creator)
	s.accountAge(ev.Creator)
	s.activityVolume(ev.Creator)
	s.holderCount(ev.Holders)
	s.concentration(ev.Holders)
	s.connectedHolders(ev.Holders)
	s.liquidity(ev.Market)
	s.freshHolders(ev.Market)

	score := s.score
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	emission := "fixed"
	if ev.Creator.MintAuthority == models.MintAuthorityActive {
		emission = "unlimited"
	}

	creatorSold := ev.Holders != nil && ev.Holders.CreatorHoldPercent < creatorSoldBelowPct

	return models.RiskResult{
		Score:          score,
		Severity:       models.SeverityForScore(score),
		Factors:        s.factors,
		CreatorSold:    creatorSold,
		EmissionStatus: emission,
		Evidence:       ev,
	}
}

type scorer struct {
	score   int
	factors []models.RiskFactor
}

func (s *scorer) add(id, label string, severity models.FactorSeverity, impact int, format string, args ...interface{}) {
	s.score += impact
	s.factors = append(s.factors, models.RiskFactor{
		ID:          id,
		Label:       label,
		Severity:    severity,
		Description: fmt.Sprintf(format, args...),
		Impact:      impact,
	})
}

// Rule 1: mint authority
func (s *scorer) mintAuthority(creator models.CreatorProfile) {
	switch creator.MintAuthority {
	case models.MintAuthorityActive:
		s.add("unlimited_mint", "Unlimited mint", models.FactorCritical, -20,
			"Mint authority is still active: the creator can mint additional supply at any time")
	case models.MintAuthorityRevoked:
		s.add("fixed_supply", "Fixed supply", models.FactorPositive, +10,
			"Mint authority has been revoked: the supply cannot be inflated")
	}
}

// Rule 2: creator's own share of supply
func (s *scorer) creatorHoldings(holders *models.HolderDistribution) {
	if holders == nil {
		return
	}
	pct := holders.CreatorHoldPercent
	switch {
	case pct < creatorSoldBelowPct:
		s.add("creator_sold", "Creator sold out", models.FactorCritical, -18,
			"The creator wallet holds only %.2f%% of supply", pct)
	case pct >= creatorHoldsAbovePct:
		s.add("creator_holds", "Creator holds supply", models.FactorPositive, +8,
			"The creator wallet still holds %.2f%% of supply", pct)
	}
}

// Rule 3: how many tokens the creator has deployed. Recomputed here from the
// sampled type tags with the shared classifier so the scorer stays pure and
// testable without refetching.
func (s *scorer) tokensCreated(creator models.CreatorProfile) {
	if creator.SampledTxCount == 0 {
		return
	}
	created := classify.CountCreationEvents(creator.TxTypes)
	switch {
	case created >= serialCreatorMin:
		s.add("serial_creator", "Serial token creator", models.FactorCritical, -25,
			"The creator wallet shows roughly %d token-creation events in its recent history", created)
	case created >= multipleTokensMin:
		s.add("multiple_tokens", "Multiple tokens created", models.FactorWarning, -15,
			"The creator wallet shows roughly %d token-creation events in its recent history", created)
	case created <= 1:
		s.add("first_or_few", "First token", models.FactorPositive, +10,
			"This appears to be the creator's first token")
	}
}

// Rule 4: creator wallet age
func (s *scorer) accountAge(creator models.CreatorProfile) {
	if creator.AccountAgeDays == nil {
		return
	}
	age := *creator.AccountAgeDays
	switch {
	case age < 1:
		s.add("brand_new_account", "Brand new wallet", models.FactorCritical, -20,
			"The creator wallet is less than a day old (%.1f hours)", age*24)
	case age < 7:
		s.add("new_account", "New wallet", models.FactorWarning, -10,
			"The creator wallet is only %.1f days old", age)
	case age >= 90:
		s.add("established_account", "Established wallet", models.FactorPositive, +10,
			"The creator wallet has %.0f days of history", age)
	}
}

// Rule 5: sheer activity volume in the sample
func (s *scorer) activityVolume(creator models.CreatorProfile) {
	if creator.SampledTxCount > highActivitySampleMin {
		s.add("very_high_activity", "Very high activity", models.FactorWarning, -5,
			"The creator wallet produced over %d recent transactions, typical of bot operations", highActivitySampleMin)
	}
}

// Rule 6: raw holder count
func (s *scorer) holderCount(holders *models.HolderDistribution) {
	if holders == nil {
		return
	}
	n := holders.TotalHolders
	switch {
	case n <= 2:
		s.add("very_few_holders", "Almost no holders", models.FactorCritical, -18,
			"Only %d wallet(s) hold this token", n)
	case n <= 5:
		s.add("few_holders", "Very few holders", models.FactorWarning, -10,
			"Only %d wallets hold this token", n)
	case n <= 15:
		s.add("low_holder_count", "Low holder count", models.FactorWarning, -4,
			"Only %d wallets hold this token", n)
	}
}

// Rule 7: top-10 concentration
func (s *scorer) concentration(holders *models.HolderDistribution) {
	if holders == nil {
		return
	}
	top10 := holders.Top10Percent
	switch {
	case top10 >= extremeTop10Pct:
		s.add("extreme_concentration", "Extreme concentration", models.FactorCritical, -15,
			"The top 10 holders control %.1f%% of supply", top10)
	case top10 >= highTop10Pct:
		s.add("high_concentration", "High concentration", models.FactorWarning, -8,
			"The top 10 holders control %.1f%% of supply", top10)
	case top10 <= distributedTop10Pct && holders.TotalHolders >= distributedHoldersMin:
		s.add("distributed_holders", "Well distributed", models.FactorPositive, +5,
			"The top 10 holders control only %.1f%% of supply across %d holders", top10, holders.TotalHolders)
	}
}

// Rule 8: top holders funded by the creator — the sybil-cluster signal
func (s *scorer) connectedHolders(holders *models.HolderDistribution) {
	if holders == nil || len(holders.CreatorConnectedHolders) == 0 {
		return
	}
	count := len(holders.CreatorConnectedHolders)
	combined := 0.0
	for _, h := range holders.CreatorConnectedHolders {
		combined += h.PercentOfSupply
	}

	if count >= connectedCountMin || combined >= connectedPctMin {
		s.add("creator_connected_holders", "Creator-funded holders", models.FactorCritical, -14,
			"%d top holders holding %.1f%% of supply received funds directly from the creator", count, combined)
		return
	}
	s.add("creator_connected_holders", "Creator-funded holders", models.FactorWarning, -6,
		"%d top holder(s) holding %.1f%% of supply received funds directly from the creator", count, combined)
}

// Rule 9: liquidity depth
func (s *scorer) liquidity(stats *models.MarketStats) {
	if stats == nil {
		return
	}
	liq := stats.LiquidityUSD
	switch {
	case liq < lowLiquidityUSD:
		s.add("low_liquidity", "Low liquidity", models.FactorCritical, -12,
			"Total liquidity is only $%.0f; exits at size will be painful", liq)
	case liq < moderateLiquidityUSD:
		s.add("moderate_liquidity", "Moderate liquidity", models.FactorWarning, -5,
			"Total liquidity is $%.0f", liq)
	case liq >= goodLiquidityUSD:
		s.add("good_liquidity", "Good liquidity", models.FactorPositive, +5,
			"Total liquidity is $%.0f", liq)
	}
}

// Rule 10: fresh holder share
func (s *scorer) freshHolders(stats *models.MarketStats) {
	if stats == nil {
		return
	}
	fresh1d := stats.FreshHolderPct1d
	fresh7d := stats.FreshHolderPct7d
	if fresh1d == nil && fresh7d == nil {
		return
	}

	if fresh1d != nil && *fresh1d > fresh1dPctMax {
		s.add("very_fresh_holders", "Very fresh holders", models.FactorWarning, -5,
			"%.0f%% of sampled holders are wallets created within the last day", *fresh1d)
		return
	}
	if fresh7d != nil && *fresh7d > fresh7dPctMax {
		s.add("very_fresh_holders", "Very fresh holders", models.FactorWarning, -5,
			"%.0f%% of sampled holders are wallets created within the last week", *fresh7d)
	}
}
