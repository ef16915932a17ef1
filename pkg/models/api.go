package models

// RecommendRequest asks for a single stake recommendation. Bankroll and
// Modifier fall back to service defaults when zero; MaxBankrollFraction
// falls back when omitted, since an explicit 0 is a valid cap that
// freezes the whole bankroll. Sport, Market, and team names are optional
// reporting context.
type RecommendRequest struct {
	Sport               string   `json:"sport"`
	Market              string   `json:"market"`
	HomeTeam            string   `json:"home_team"`
	AwayTeam            string   `json:"away_team"`
	WinProbability      float64  `json:"win_probability"`
	Odds                int      `json:"odds"`
	Bankroll            float64  `json:"bankroll"`
	Modifier            float64  `json:"modifier"`
	MaxBankrollFraction *float64 `json:"max_bankroll_fraction"`
}

// RecommendResponse pairs the recommendation record with readable
// advice.
type RecommendResponse struct {
	Recommendation StakeRecommendation `json:"recommendation"`
	Summary        string              `json:"summary"`
}

// OptimizeRequest maps a named risk tolerance to a preset Kelly
// modifier.
type OptimizeRequest struct {
	WinProbability float64 `json:"win_probability"`
	Odds           int     `json:"odds"`
	Bankroll       float64 `json:"bankroll"`
	RiskTolerance  string  `json:"risk_tolerance"` // low, medium, high
}

// ScenariosRequest evaluates several hypothetical bets against one
// bankroll.
type ScenariosRequest struct {
	Bankroll            float64    `json:"bankroll"`
	Modifier            float64    `json:"modifier"`
	MaxBankrollFraction *float64   `json:"max_bankroll_fraction"`
	Scenarios           []Scenario `json:"scenarios"`
}

// SimulateRequest configures a Monte Carlo batch over synthetic bets.
type SimulateRequest struct {
	Sport               string   `json:"sport"`
	InitialBankroll     float64  `json:"initial_bankroll"`
	TargetBets          int      `json:"target_bets"`
	NumPaths            int      `json:"num_paths"`
	Modifier            float64  `json:"modifier"`
	MaxBankrollFraction *float64 `json:"max_bankroll_fraction"`
	MinEdge             float64  `json:"min_edge"`
	MinProbability      float64  `json:"min_probability"`
	Seed                int64    `json:"seed"`
	IncludePaths        bool     `json:"include_paths"`
}

// ValidateOddsRequest carries a raw odds string through the validation
// gate.
type ValidateOddsRequest struct {
	Odds string `json:"odds"`
}

// ValidateOddsResponse reports the parse result.
type ValidateOddsResponse struct {
	Valid bool   `json:"valid"`
	Odds  int    `json:"odds,omitempty"`
	Error string `json:"error,omitempty"`
}

// SportInfo is a catalog listing entry.
type SportInfo struct {
	Key         string   `json:"key"`
	DisplayName string   `json:"display_name"`
	Markets     []string `json:"markets"`
}
