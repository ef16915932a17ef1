package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VinayJogani14/KellyBet-Analytics-Platform/internal/config"
	"github.com/VinayJogani14/KellyBet-Analytics-Platform/internal/handlers"
	"github.com/VinayJogani14/KellyBet-Analytics-Platform/internal/kelly"
	"github.com/VinayJogani14/KellyBet-Analytics-Platform/internal/simulation"
	"github.com/VinayJogani14/KellyBet-Analytics-Platform/pkg/models"
	"github.com/VinayJogani14/KellyBet-Analytics-Platform/sports"
)

func newTestHandler() *handlers.Handler {
	engine := kelly.NewEngine(kelly.DefaultThresholds)
	runner := simulation.NewRunner(engine, 2, nil)

	return handlers.NewHandler(
		engine,
		runner,
		sports.DefaultRegistry(),
		nil,
		config.KellyConfig{
			DefaultBankroll:     5000,
			DefaultModifier:     0.5,
			MaxBankrollFraction: 1.0,
			RiskLowThreshold:    0.05,
			RiskMediumThreshold: 0.15,
		},
		config.SimulationConfig{
			DefaultPaths: 20,
			DefaultBets:  25,
			MaxPaths:     100,
			MaxBets:      500,
			Workers:      2,
		},
		nil,
	)
}

func postJSON(t *testing.T, handlerFunc http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handlerFunc(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.HealthCheck(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestRecommend_HappyPath(t *testing.T) {
	h := newTestHandler()

	rec := postJSON(t, h.Recommend, models.RecommendRequest{
		Sport:          "soccer",
		Market:         "Moneyline",
		WinProbability: 0.55,
		Odds:           -110,
		Bankroll:       5000,
		Modifier:       0.5,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.RecommendResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.InDelta(t, 137.7, resp.Recommendation.RecommendedStake, 0.5)
	assert.Equal(t, models.RiskLow, resp.Recommendation.RiskTier)
	assert.Contains(t, resp.Summary, "Recommended bet")
}

func TestRecommend_UsesDefaults(t *testing.T) {
	h := newTestHandler()

	rec := postJSON(t, h.Recommend, models.RecommendRequest{
		WinProbability: 0.55,
		Odds:           -110,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.RecommendResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	// Default bankroll 5000 and modifier 0.5 produce the same stake as
	// the explicit request.
	assert.InDelta(t, 137.7, resp.Recommendation.RecommendedStake, 0.5)
}

func TestRecommend_ExplicitZeroCapFreezesBankroll(t *testing.T) {
	h := newTestHandler()

	// An explicit zero cap is a request to stake nothing; it must not be
	// mistaken for an omitted field and replaced with the default.
	zero := 0.0
	rec := postJSON(t, h.Recommend, models.RecommendRequest{
		WinProbability:      0.55,
		Odds:                -110,
		Bankroll:            5000,
		Modifier:            0.5,
		MaxBankrollFraction: &zero,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.RecommendResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Zero(t, resp.Recommendation.EligibleBankroll)
	assert.Zero(t, resp.Recommendation.RecommendedStake)
}

func TestRecommend_RejectsInvalidProbability(t *testing.T) {
	h := newTestHandler()

	for _, p := range []float64{-0.1, 1.0, 2.5} {
		rec := postJSON(t, h.Recommend, models.RecommendRequest{
			WinProbability: p,
			Odds:           -110,
			Bankroll:       5000,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "p=%f", p)
	}
}

func TestRecommend_RejectsInvalidOdds(t *testing.T) {
	h := newTestHandler()

	rec := postJSON(t, h.Recommend, models.RecommendRequest{
		WinProbability: 0.55,
		Odds:           50,
		Bankroll:       5000,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOptimize(t *testing.T) {
	h := newTestHandler()

	rec := postJSON(t, h.Optimize, models.OptimizeRequest{
		WinProbability: 0.55,
		Odds:           -110,
		Bankroll:       5000,
		RiskTolerance:  "low",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.RecommendResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	// Quarter Kelly: half the half-Kelly stake.
	assert.InDelta(t, 68.8, resp.Recommendation.RecommendedStake, 0.5)
}

func TestOptimize_RejectsUnknownTolerance(t *testing.T) {
	h := newTestHandler()

	rec := postJSON(t, h.Optimize, models.OptimizeRequest{
		WinProbability: 0.55,
		Odds:           -110,
		Bankroll:       5000,
		RiskTolerance:  "yolo",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScenarios_RankedByEV(t *testing.T) {
	h := newTestHandler()

	rec := postJSON(t, h.Scenarios, models.ScenariosRequest{
		Bankroll: 5000,
		Scenarios: []models.Scenario{
			{Name: "No edge", WinProbability: 0.40, Odds: -200},
			{Name: "Big edge", WinProbability: 0.60, Odds: 120},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var ranked []models.RankedScenario
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ranked))
	require.Len(t, ranked, 2)
	assert.Equal(t, "Big edge", ranked[0].Name)
}

func TestScenarios_RequiresScenarios(t *testing.T) {
	h := newTestHandler()

	rec := postJSON(t, h.Scenarios, models.ScenariosRequest{Bankroll: 5000})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSimulate(t *testing.T) {
	h := newTestHandler()

	rec := postJSON(t, h.Simulate, models.SimulateRequest{
		Sport:           "soccer",
		InitialBankroll: 1000,
		TargetBets:      20,
		NumPaths:        10,
		Modifier:        0.5,
		Seed:            42,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var result models.BatchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	assert.Equal(t, 10, result.NumPaths)
	assert.LessOrEqual(t, result.MeanBetsPerPath, 20.0)
	assert.Nil(t, result.Paths)
}

func TestSimulate_IncludePaths(t *testing.T) {
	h := newTestHandler()

	rec := postJSON(t, h.Simulate, models.SimulateRequest{
		InitialBankroll: 1000,
		TargetBets:      10,
		NumPaths:        5,
		Seed:            7,
		IncludePaths:    true,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var result models.BatchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Len(t, result.Paths, 5)
}

func TestSimulate_RejectsExcessivePaths(t *testing.T) {
	h := newTestHandler()

	rec := postJSON(t, h.Simulate, models.SimulateRequest{
		InitialBankroll: 1000,
		NumPaths:        10000,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSimulate_RejectsUnknownSport(t *testing.T) {
	h := newTestHandler()

	rec := postJSON(t, h.Simulate, models.SimulateRequest{
		Sport:           "esports",
		InitialBankroll: 1000,
		NumPaths:        5,
		TargetBets:      10,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSettleEndpoint(t *testing.T) {
	h := newTestHandler()

	rec := postJSON(t, h.Settle, map[string]interface{}{
		"sport":           "tennis",
		"market":          "Match Winner",
		"odds":            150,
		"stake":           100,
		"outcome":         "win",
		"bankroll_before": 1000,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var record models.BetRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))

	assert.InDelta(t, 250.0, record.Payout, 0.001)
	assert.InDelta(t, 1150.0, record.BankrollAfter, 0.001)
	assert.NotEmpty(t, record.ID)
}

func TestSettleEndpoint_RejectsBadOutcome(t *testing.T) {
	h := newTestHandler()

	rec := postJSON(t, h.Settle, map[string]interface{}{
		"odds":            150,
		"stake":           100,
		"outcome":         "void",
		"bankroll_before": 1000,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSports(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sports", nil)
	rec := httptest.NewRecorder()
	h.Sports(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var infos []models.SportInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &infos))
	require.Len(t, infos, 4)

	keys := make([]string, 0, len(infos))
	for _, info := range infos {
		keys = append(keys, info.Key)
	}
	assert.Contains(t, keys, "formula1")
}

func TestValidateOdds(t *testing.T) {
	h := newTestHandler()

	tests := []struct {
		raw   string
		valid bool
		odds  int
	}{
		{"-110", true, -110},
		{"+250", true, 250},
		{"50", false, 0},
		{"0", false, 0},
		{"abc", false, 0},
	}

	for _, tt := range tests {
		rec := postJSON(t, h.ValidateOdds, models.ValidateOddsRequest{Odds: tt.raw})
		require.Equal(t, http.StatusOK, rec.Code, "raw=%q", tt.raw)

		var resp models.ValidateOddsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

		assert.Equal(t, tt.valid, resp.Valid, "raw=%q", tt.raw)
		if tt.valid {
			assert.Equal(t, tt.odds, resp.Odds)
		} else {
			assert.NotEmpty(t, resp.Error)
		}
	}
}
