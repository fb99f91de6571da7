package models

// FactorSeverity classifies how a single risk factor should be presented.
type FactorSeverity string

const (
	FactorCritical FactorSeverity = "critical"
	FactorWarning  FactorSeverity = "warning"
	FactorPositive FactorSeverity = "positive"
	FactorNeutral  FactorSeverity = "neutral"
)

// RiskSeverity is the overall tier derived from the final score.
type RiskSeverity string

const (
	RiskHigh   RiskSeverity = "high"
	RiskMedium RiskSeverity = "medium"
	RiskLow    RiskSeverity = "low"
)

// RiskFactor is one scoring rule's verdict, rendered with the concrete
// numbers that triggered it.
type RiskFactor struct {
	ID          string         `json:"id"`
	Label       string         `json:"label"`
	Severity    FactorSeverity `json:"severity"`
	Description string         `json:"description"`
	Impact      int            `json:"impact"`
}

// RiskResult is the scoring engine's output. Factors keep their evaluation
// order; callers must not re-sort them.
type RiskResult struct {
	Score          int          `json:"score"`
	Severity       RiskSeverity `json:"severity"`
	Factors        []RiskFactor `json:"factors"`
	CreatorSold    bool         `json:"creatorSold"`
	EmissionStatus string       `json:"emissionStatus"`
	Evidence       Evidence     `json:"evidence"`
}

// SeverityForScore maps a clamped score onto its tier.
func SeverityForScore(score int) RiskSeverity {
	switch {
	case score <= 30:
		return RiskHigh
	case score <= 60:
		return RiskMedium
	default:
		return RiskLow
	}
}
