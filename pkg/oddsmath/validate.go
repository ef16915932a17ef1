package oddsmath

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidOdds reports whether american is a standard American odds value:
// non-zero with magnitude at least 100. Values in (-100, 100) are
// ambiguous and rejected everywhere in this codebase.
func ValidOdds(american int) bool {
	return american <= -100 || american >= 100
}

// ValidateAmerican parses and validates an externally supplied odds
// string. This is the single gate for user-entered odds: it accepts an
// optional leading +, rejects zero, and rejects any magnitude below 100.
func ValidateAmerican(raw string) (int, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "+")

	odds, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, fmt.Errorf("odds must be a whole number: %q", raw)
	}

	if odds == 0 {
		return 0, fmt.Errorf("odds cannot be zero")
	}

	if !ValidOdds(odds) {
		return 0, fmt.Errorf("American odds must be -100 or lower, or +100 or higher, got %d", odds)
	}

	return odds, nil
}
