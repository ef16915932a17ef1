package settlement_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VinayJogani14/KellyBet-Analytics-Platform/internal/settlement"
	"github.com/VinayJogani14/KellyBet-Analytics-Platform/pkg/models"
)

func baseRequest() settlement.Request {
	return settlement.Request{
		Sport:          "soccer",
		Market:         "Moneyline",
		Odds:           -110,
		Stake:          110,
		WinProbability: 0.55,
		KellyFraction:  0.055,
		ExpectedValue:  5.5,
		Edge:           0.026,
		Outcome:        models.OutcomeWin,
		BankrollBefore: 5000,
	}
}

func TestSettle_Win(t *testing.T) {
	record, err := settlement.Settle(baseRequest())
	require.NoError(t, err)

	// -110 pays 100/110+1 decimal; 110 × 1.9090... = 210.
	assert.InDelta(t, 210.0, record.Payout, 0.001)
	assert.InDelta(t, 100.0, record.ProfitLoss, 0.001)
	assert.InDelta(t, 5100.0, record.BankrollAfter, 0.001)
	assert.Equal(t, models.OutcomeWin, record.Outcome)
	assert.NotEmpty(t, record.ID)
	assert.False(t, record.Timestamp.IsZero())
}

func TestSettle_Loss(t *testing.T) {
	req := baseRequest()
	req.Outcome = models.OutcomeLoss

	record, err := settlement.Settle(req)
	require.NoError(t, err)

	assert.Zero(t, record.Payout)
	assert.InDelta(t, -110.0, record.ProfitLoss, 0.001)
	assert.InDelta(t, 4890.0, record.BankrollAfter, 0.001)
}

func TestSettle_Cashout(t *testing.T) {
	req := baseRequest()
	req.Outcome = models.OutcomeCashout
	req.CashoutPayout = 150.555

	record, err := settlement.Settle(req)
	require.NoError(t, err)

	// Cashout payouts round to cents.
	assert.InDelta(t, 150.56, record.Payout, 0.001)
	assert.InDelta(t, 40.56, record.ProfitLoss, 0.001)
	assert.InDelta(t, 5040.56, record.BankrollAfter, 0.001)
}

func TestSettle_PayoutRoundsToCents(t *testing.T) {
	req := baseRequest()
	req.Odds = -150
	req.Stake = 100.10

	record, err := settlement.Settle(req)
	require.NoError(t, err)

	// 100.10 × (100/150 + 1) = 166.8333... → 166.83
	assert.InDelta(t, 166.83, record.Payout, 0.001)
}

func TestSettle_BankrollFloorsAtZero(t *testing.T) {
	req := baseRequest()
	req.Outcome = models.OutcomeLoss
	req.BankrollBefore = 110
	req.Stake = 110

	record, err := settlement.Settle(req)
	require.NoError(t, err)

	assert.Zero(t, record.BankrollAfter)
}

func TestSettle_PreservesPlacedAt(t *testing.T) {
	placed := time.Date(2026, 3, 14, 15, 9, 0, 0, time.UTC)
	req := baseRequest()
	req.PlacedAt = placed

	record, err := settlement.Settle(req)
	require.NoError(t, err)
	assert.Equal(t, placed, record.Timestamp)
}

func TestSettle_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*settlement.Request)
		wantErr string
	}{
		{"Invalid odds", func(r *settlement.Request) { r.Odds = 50 }, "American odds"},
		{"Zero odds", func(r *settlement.Request) { r.Odds = 0 }, "American odds"},
		{"Negative stake", func(r *settlement.Request) { r.Stake = -10 }, "stake"},
		{"Stake beyond bankroll", func(r *settlement.Request) { r.Stake = 6000 }, "exceeds bankroll"},
		{"Unknown outcome", func(r *settlement.Request) { r.Outcome = "push" }, "unknown outcome"},
		{"Negative cashout", func(r *settlement.Request) {
			r.Outcome = models.OutcomeCashout
			r.CashoutPayout = -5
		}, "cashout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mutate(&req)

			_, err := settlement.Settle(req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
