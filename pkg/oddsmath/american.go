package oddsmath

import (
	"fmt"
	"math"
)

// AmericanToDecimal converts American odds to decimal odds
// American +150 → Decimal 2.50
// American -110 → Decimal 1.909
func AmericanToDecimal(american int) (float64, error) {
	if american == 0 {
		return 0, fmt.Errorf("invalid American odds: cannot be 0")
	}

	if american > 0 {
		// Positive odds: (american / 100) + 1
		return (float64(american) / 100.0) + 1.0, nil
	}

	// Negative odds: (100 / abs(american)) + 1
	return (100.0 / float64(-american)) + 1.0, nil
}

// DecimalToAmerican converts decimal odds to American odds
// Decimal 2.50 → American +150
// Decimal 1.909 → American -110
func DecimalToAmerican(decimal float64) (int, error) {
	if decimal <= 1.0 {
		return 0, fmt.Errorf("invalid decimal odds: must be > 1.0")
	}

	if decimal >= 2.0 {
		// Positive American odds: (decimal - 1) * 100
		return int(math.Round((decimal - 1.0) * 100.0)), nil
	}

	// Negative American odds: -100 / (decimal - 1)
	return int(math.Round(-100.0 / (decimal - 1.0))), nil
}

// ImpliedProbability converts American odds to the break-even win
// probability embedded in the quote
// American -110 → 0.5238
// American +150 → 0.40
func ImpliedProbability(american int) (float64, error) {
	decimal, err := AmericanToDecimal(american)
	if err != nil {
		return 0, err
	}

	return 1.0 / decimal, nil
}

// ProbabilityToAmerican converts a win probability to the American odds
// that would make it a break-even bet
func ProbabilityToAmerican(probability float64) (int, error) {
	if probability <= 0 || probability >= 1 {
		return 0, fmt.Errorf("invalid probability: must be between 0 and 1")
	}

	return DecimalToAmerican(1.0 / probability)
}
