package settlement

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/VinayJogani14/KellyBet-Analytics-Platform/pkg/models"
	"github.com/VinayJogani14/KellyBet-Analytics-Platform/pkg/oddsmath"
)

// Request carries everything needed to settle one bet: the placement
// details from a stake recommendation plus the realized outcome. The
// caller owns the bankroll; BankrollBefore is passed in and a new value
// comes back on the record.
type Request struct {
	Sport          string            `json:"sport"`
	Market         string            `json:"market"`
	Odds           int               `json:"odds"`
	Stake          float64           `json:"stake"`
	WinProbability float64           `json:"win_probability"`
	KellyFraction  float64           `json:"kelly_fraction"`
	ExpectedValue  float64           `json:"expected_value"`
	Edge           float64           `json:"edge"`
	Outcome        models.BetOutcome `json:"outcome"`
	CashoutPayout  float64           `json:"cashout_payout"`
	BankrollBefore float64           `json:"bankroll_before"`
	PlacedAt       time.Time         `json:"placed_at"`
}

// Settle builds the bookkeeping record for a realized bet outcome.
// Wins pay stake × decimal odds, losses pay nothing, and cashouts pay
// whatever the book returned. Money fields are rounded to cents and the
// resulting bankroll is floored at zero.
func Settle(req Request) (models.BetRecord, error) {
	if err := validate(req); err != nil {
		return models.BetRecord{}, err
	}

	dec, err := oddsmath.AmericanToDecimal(req.Odds)
	if err != nil {
		return models.BetRecord{}, fmt.Errorf("invalid odds: %w", err)
	}

	stake := decimal.NewFromFloat(req.Stake)

	var payout decimal.Decimal
	switch req.Outcome {
	case models.OutcomeWin:
		payout = stake.Mul(decimal.NewFromFloat(dec))
	case models.OutcomeLoss:
		payout = decimal.Zero
	case models.OutcomeCashout:
		payout = decimal.NewFromFloat(req.CashoutPayout)
	}
	payout = payout.Round(2)

	profitLoss := payout.Sub(stake).Round(2)

	after := decimal.NewFromFloat(req.BankrollBefore).Sub(stake).Add(payout).Round(2)
	if after.IsNegative() {
		after = decimal.Zero
	}

	placedAt := req.PlacedAt
	if placedAt.IsZero() {
		placedAt = time.Now().UTC()
	}

	payoutF, _ := payout.Float64()
	profitLossF, _ := profitLoss.Float64()
	afterF, _ := after.Float64()

	return models.BetRecord{
		ID:             uuid.NewString(),
		Timestamp:      placedAt,
		Sport:          req.Sport,
		Market:         req.Market,
		Odds:           req.Odds,
		Stake:          req.Stake,
		WinProbability: req.WinProbability,
		KellyFraction:  req.KellyFraction,
		ExpectedValue:  req.ExpectedValue,
		Edge:           req.Edge,
		Outcome:        req.Outcome,
		Payout:         payoutF,
		ProfitLoss:     profitLossF,
		BankrollBefore: req.BankrollBefore,
		BankrollAfter:  afterF,
	}, nil
}

func validate(req Request) error {
	if !oddsmath.ValidOdds(req.Odds) {
		return fmt.Errorf("American odds must be -100 or lower, or +100 or higher, got %d", req.Odds)
	}
	if req.Stake < 0 {
		return fmt.Errorf("stake cannot be negative, got %g", req.Stake)
	}
	if req.BankrollBefore < 0 {
		return fmt.Errorf("bankroll cannot be negative, got %g", req.BankrollBefore)
	}
	if req.Stake > req.BankrollBefore {
		return fmt.Errorf("stake %g exceeds bankroll %g", req.Stake, req.BankrollBefore)
	}

	switch req.Outcome {
	case models.OutcomeWin, models.OutcomeLoss:
	case models.OutcomeCashout:
		if req.CashoutPayout < 0 {
			return fmt.Errorf("cashout payout cannot be negative, got %g", req.CashoutPayout)
		}
	default:
		return fmt.Errorf("unknown outcome %q", req.Outcome)
	}

	return nil
}
