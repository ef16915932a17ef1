package kelly

import (
	"fmt"

	"github.com/VinayJogani14/KellyBet-Analytics-Platform/pkg/models"
	"github.com/VinayJogani14/KellyBet-Analytics-Platform/pkg/oddsmath"
)

// Thresholds are risk tier boundaries expressed as unit fractions of
// bankroll. A stake below Low is LOW risk, below Medium is MEDIUM, and
// anything at or above Medium is HIGH.
type Thresholds struct {
	Low    float64
	Medium float64
}

// DefaultThresholds gives a real MEDIUM band: <5% LOW, 5-15% MEDIUM,
// ≥15% HIGH.
var DefaultThresholds = Thresholds{Low: 0.05, Medium: 0.15}

// Modifier presets for named risk tolerances used by Optimize.
const (
	quarterKelly      = 0.25
	halfKelly         = 0.50
	threeQuarterKelly = 0.75
)

// Engine computes risk-classified stake recommendations from a
// probability/odds/bankroll triple. It holds no mutable state; the
// caller owns the bankroll and passes it on every call.
type Engine struct {
	thresholds Thresholds
}

// NewEngine creates an engine with the given risk thresholds. Zero or
// inverted thresholds fall back to the defaults.
func NewEngine(thresholds Thresholds) *Engine {
	if thresholds.Low <= 0 || thresholds.Medium <= thresholds.Low {
		thresholds = DefaultThresholds
	}
	return &Engine{thresholds: thresholds}
}

// Fraction calculates the full Kelly fraction f = (b·p − q) / b where
// b is the net decimal odds and q = 1 − p. Returns 0 when p is outside
// (0,1), when the odds are unusable, or when the raw value is negative
// (no edge). The result is floored at 0 but deliberately not capped at
// 1: extreme edges pass through and are bounded downstream by the
// modifier and the max-bankroll-fraction cap.
func Fraction(winProbability float64, american int) float64 {
	if winProbability <= 0 || winProbability >= 1 {
		return 0
	}

	decimal, err := oddsmath.AmericanToDecimal(american)
	if err != nil {
		return 0
	}

	b := decimal - 1.0 // net odds received on the wager
	p := winProbability
	q := 1.0 - p

	f := (b*p - q) / b
	if f < 0 {
		return 0
	}
	return f
}

// ExpectedValue calculates the signed expected profit of placing stake
// at the given odds and win probability. Unusable inputs yield 0.
func ExpectedValue(winProbability float64, american int, stake float64) float64 {
	ev, err := oddsmath.ExpectedValue(winProbability, stake, american)
	if err != nil {
		return 0
	}
	return ev
}

// Recommend converts a probability/odds/bankroll triple into a bounded,
// risk-classified stake recommendation.
//
// The stake is eligible bankroll (bankroll × maxBankrollFraction) times
// the modified Kelly fraction (full Kelly × modifier). Recommend never
// errors for in-range numeric input: out-of-range probabilities,
// unusable odds, and non-positive bankrolls degrade to a zero-stake
// record so a caller that skipped validation still gets a safe, inert
// result.
func (e *Engine) Recommend(winProbability float64, american int, bankroll, modifier, maxBankrollFraction float64) models.StakeRecommendation {
	fraction := Fraction(winProbability, american)
	modified := fraction * modifier
	eligible := bankroll * maxBankrollFraction
	if eligible < 0 {
		eligible = 0
	}
	stake := eligible * modified

	implied, err := oddsmath.ImpliedProbability(american)
	if err != nil {
		implied = 0
	}

	edge := 0.0
	if winProbability > 0 && winProbability < 1 && implied > 0 {
		edge = winProbability - implied
	}

	stakePct := 0.0
	if bankroll > 0 {
		stakePct = stake / bankroll * 100.0
	}

	return models.StakeRecommendation{
		WinProbability:     winProbability,
		ImpliedProbability: implied,
		Edge:               edge,
		KellyFraction:      fraction,
		ModifiedKelly:      modified,
		EligibleBankroll:   eligible,
		RecommendedStake:   stake,
		StakePercentage:    stakePct,
		ExpectedValue:      ExpectedValue(winProbability, american, stake),
		RiskTier:           e.Classify(stakePct),
	}
}

// Classify maps a stake percentage of bankroll to a risk tier. The
// classification is advisory only and never changes the computed stake.
func (e *Engine) Classify(stakePercentage float64) models.RiskTier {
	switch {
	case stakePercentage < e.thresholds.Low*100:
		return models.RiskLow
	case stakePercentage < e.thresholds.Medium*100:
		return models.RiskMedium
	default:
		return models.RiskHigh
	}
}

// Optimize maps a named risk tolerance to a preset Kelly modifier and
// delegates to Recommend. Unknown tolerances default to half Kelly.
func (e *Engine) Optimize(winProbability float64, american int, bankroll float64, riskTolerance string) models.StakeRecommendation {
	modifier := halfKelly
	switch riskTolerance {
	case "low":
		modifier = quarterKelly
	case "medium":
		modifier = halfKelly
	case "high":
		modifier = threeQuarterKelly
	}

	return e.Recommend(winProbability, american, bankroll, modifier, 1.0)
}

// RankScenarios applies Recommend independently to each scenario against
// the same bankroll and returns them sorted by descending expected
// value. No bankroll is deducted between scenarios: this evaluates
// hypothetical parallel options, not a sequential portfolio.
func (e *Engine) RankScenarios(scenarios []models.Scenario, bankroll, modifier, maxBankrollFraction float64) []models.RankedScenario {
	ranked := make([]models.RankedScenario, 0, len(scenarios))
	for i, s := range scenarios {
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("Scenario %d", i+1)
		}
		ranked = append(ranked, models.RankedScenario{
			ScenarioID:          i,
			Name:                name,
			StakeRecommendation: e.Recommend(s.WinProbability, s.Odds, bankroll, modifier, maxBankrollFraction),
		})
	}

	// Insertion sort by descending EV keeps the original order for ties.
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].ExpectedValue > ranked[j-1].ExpectedValue; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}

	return ranked
}

// ValidateInputs is the guard callers invoke before trusting results.
// The calculation functions degrade gracefully on bad input; this gives
// an explicit, diagnosable reason instead.
func ValidateInputs(winProbability float64, american int, bankroll float64) error {
	if winProbability <= 0 || winProbability >= 1 {
		return fmt.Errorf("win probability must be between 0 and 1, got %g", winProbability)
	}
	if american == 0 {
		return fmt.Errorf("odds cannot be zero")
	}
	if !oddsmath.ValidOdds(american) {
		return fmt.Errorf("American odds must be -100 or lower, or +100 or higher, got %d", american)
	}
	if bankroll <= 0 {
		return fmt.Errorf("bankroll must be positive, got %g", bankroll)
	}
	return nil
}
