package oddsmath

import "fmt"

// Edge calculates the bettor's edge: estimated win probability minus the
// market-implied probability. Positive edge means the estimate exceeds
// the market price; non-positive edge means no bet should be recommended.
func Edge(winProbability float64, american int) (float64, error) {
	if winProbability <= 0 || winProbability >= 1 {
		return 0, fmt.Errorf("win probability must be between 0 and 1")
	}

	implied, err := ImpliedProbability(american)
	if err != nil {
		return 0, err
	}

	return winProbability - implied, nil
}

// ExpectedValue calculates the signed expected profit of placing stake at
// the given odds and win probability:
// EV = p × stake × (decimal − 1) − (1 − p) × stake
func ExpectedValue(winProbability, stake float64, american int) (float64, error) {
	decimal, err := AmericanToDecimal(american)
	if err != nil {
		return 0, err
	}

	winAmount := stake * (decimal - 1.0)
	loseAmount := -stake

	return winProbability*winAmount + (1.0-winProbability)*loseAmount, nil
}
