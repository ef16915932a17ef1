package kelly

import (
	"fmt"
	"strings"

	"github.com/VinayJogani14/KellyBet-Analytics-Platform/pkg/models"
)

// Summary renders a recommendation as human-readable advice. Market and
// team names are optional flavor; the numbers come straight from the
// recommendation record.
func Summary(rec models.StakeRecommendation, market, home, away string) string {
	if rec.Edge <= 0 {
		return fmt.Sprintf("NO BET RECOMMENDED: no positive expected value detected. Model shows %.1f%% edge.", rec.Edge*100)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Recommended bet: %.1f%% of bankroll ($%.2f)", rec.StakePercentage, rec.RecommendedStake)
	if market != "" {
		fmt.Fprintf(&b, " on %s", market)
	}
	if home != "" && away != "" {
		fmt.Fprintf(&b, " for %s vs %s", home, away)
	}
	b.WriteString(".\n\nKey factors:\n")
	fmt.Fprintf(&b, "- Win probability: %.1f%%\n", rec.WinProbability*100)
	fmt.Fprintf(&b, "- Betting edge: %.1f%%\n", rec.Edge*100)
	fmt.Fprintf(&b, "- Expected value: $%.2f\n", rec.ExpectedValue)
	fmt.Fprintf(&b, "- Risk level: %s\n", rec.RiskTier)

	switch rec.RiskTier {
	case models.RiskHigh:
		b.WriteString("\nHIGH RISK: consider reducing to quarter Kelly for a more conservative approach.")
	case models.RiskMedium:
		b.WriteString("\nMEDIUM RISK: good value bet with moderate risk.")
	default:
		b.WriteString("\nLOW RISK: conservative bet with positive expected value.")
	}

	return b.String()
}
