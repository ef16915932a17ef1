package models

import "time"

// RiskTier classifies a recommended stake by the share of bankroll it consumes.
type RiskTier string

const (
	RiskLow    RiskTier = "LOW"
	RiskMedium RiskTier = "MEDIUM"
	RiskHigh   RiskTier = "HIGH"
)

// StakeRecommendation is the result of a single Kelly sizing calculation.
// Probabilities, edge, and Kelly fractions are unit fractions in [0,1];
// StakePercentage is already multiplied by 100 for reporting.
type StakeRecommendation struct {
	WinProbability     float64  `json:"win_probability"`
	ImpliedProbability float64  `json:"implied_probability"`
	Edge               float64  `json:"edge"`
	KellyFraction      float64  `json:"kelly_fraction"`
	ModifiedKelly      float64  `json:"modified_kelly"`
	EligibleBankroll   float64  `json:"eligible_bankroll"`
	RecommendedStake   float64  `json:"recommended_stake"`
	StakePercentage    float64  `json:"stake_percentage"`
	ExpectedValue      float64  `json:"expected_value"`
	RiskTier           RiskTier `json:"risk_tier"`
}

// Scenario is one hypothetical bet to evaluate against a shared bankroll.
type Scenario struct {
	Name           string  `json:"name"`
	WinProbability float64 `json:"win_probability"`
	Odds           int     `json:"odds"`
}

// RankedScenario is a scenario's recommendation with its position after
// sorting by descending expected value.
type RankedScenario struct {
	ScenarioID int    `json:"scenario_id"`
	Name       string `json:"name"`
	StakeRecommendation
}

// BetOutcome is the realized result of a settled bet.
type BetOutcome string

const (
	OutcomeWin     BetOutcome = "win"
	OutcomeLoss    BetOutcome = "loss"
	OutcomeCashout BetOutcome = "cashout"
)

// BetRecord is the bookkeeping record produced at settlement time.
// The core produces these; persistence belongs to the caller.
type BetRecord struct {
	ID             string     `json:"id"`
	Timestamp      time.Time  `json:"timestamp"`
	Sport          string     `json:"sport"`
	Market         string     `json:"market"`
	Odds           int        `json:"odds"`
	Stake          float64    `json:"stake"`
	WinProbability float64    `json:"win_probability"`
	KellyFraction  float64    `json:"kelly_fraction"`
	ExpectedValue  float64    `json:"expected_value"`
	Edge           float64    `json:"edge"`
	Outcome        BetOutcome `json:"outcome"`
	Payout         float64    `json:"payout"`
	ProfitLoss     float64    `json:"profit_loss"`
	BankrollBefore float64    `json:"bankroll_before"`
	BankrollAfter  float64    `json:"bankroll_after"`
}

// SimulatedBet is one bet yielded by a bet generator. KnownOutcome, when
// non-nil, takes precedence over a random draw so the same settlement
// path can replay completed real matches.
type SimulatedBet struct {
	WinProbability float64 `json:"win_probability"`
	Odds           int     `json:"odds"`
	KnownOutcome   *bool   `json:"known_outcome,omitempty"`
}

// SimulationPath is the result of one simulated bankroll trajectory.
// ROI and MaxDrawdown are percentages; History holds the bankroll after
// each settled bet, starting with the initial bankroll.
type SimulationPath struct {
	InitialBankroll float64   `json:"initial_bankroll"`
	FinalBankroll   float64   `json:"final_bankroll"`
	History         []float64 `json:"history,omitempty"`
	BetsPlaced      int       `json:"bets_placed"`
	Wins            int       `json:"wins"`
	Losses          int       `json:"losses"`
	ROI             float64   `json:"roi"`
	MaxDrawdown     float64   `json:"max_drawdown"`
	Busted          bool      `json:"busted"`
}

// BatchResult aggregates statistics across independent simulation paths.
type BatchResult struct {
	NumPaths            int              `json:"num_paths"`
	SuccessRate         float64          `json:"success_rate"`
	MeanFinalBankroll   float64          `json:"mean_final_bankroll"`
	MedianFinalBankroll float64          `json:"median_final_bankroll"`
	P10FinalBankroll    float64          `json:"p10_final_bankroll"`
	P90FinalBankroll    float64          `json:"p90_final_bankroll"`
	MeanROI             float64          `json:"mean_roi"`
	MedianROI           float64          `json:"median_roi"`
	MeanBetsPerPath     float64          `json:"mean_bets_per_path"`
	Paths               []SimulationPath `json:"paths,omitempty"`
}
