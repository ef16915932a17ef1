package sports

// OddsProfile describes the shape of synthetic American odds a sport's
// markets tend to produce. The simulation generator draws from it.
type OddsProfile struct {
	// FavoriteMin/Max bound the magnitude of negative (favorite) odds.
	FavoriteMin int
	FavoriteMax int

	// UnderdogMin/Max bound positive (underdog) odds.
	UnderdogMin int
	UnderdogMax int

	// NearEven are the quotes drawn when the market is close to a coin
	// flip (e.g. -110 both sides).
	NearEven []int

	// SidedShare is the probability a draw lands on a clear
	// favorite/underdog pairing rather than a near-even quote.
	SidedShare float64
}

// Config contains a sport's catalog entry: its markets and the odds
// profile used when synthesizing bets for it.
type Config struct {
	Key         string
	DisplayName string
	Markets     []string
	Odds        OddsProfile
}

func defaultOddsProfile() OddsProfile {
	return OddsProfile{
		FavoriteMin: 150,
		FavoriteMax: 500,
		UnderdogMin: 120,
		UnderdogMax: 400,
		NearEven:    []int{-110, 100, -105, 105},
		SidedShare:  0.7,
	}
}

// Soccer returns the soccer catalog configuration.
func Soccer() *Config {
	return &Config{
		Key:         "soccer",
		DisplayName: "Soccer",
		Markets: []string{
			"Moneyline",
			"To Score or Assist",
			"Over/Under 1.5 Goals",
			"Over/Under 2.5 Goals",
			"Both Teams to Score",
		},
		Odds: defaultOddsProfile(),
	}
}

// Tennis returns the tennis catalog configuration.
func Tennis() *Config {
	return &Config{
		Key:         "tennis",
		DisplayName: "Tennis",
		Markets: []string{
			"Match Winner",
			"Set Betting",
			"Total Games Over/Under",
			"Total Aces Over/Under",
			"Exact Number of Sets",
			"Number of Tiebreaks",
			"Service Breaks",
		},
		Odds: defaultOddsProfile(),
	}
}

// Cricket returns the cricket catalog configuration.
func Cricket() *Config {
	return &Config{
		Key:         "cricket",
		DisplayName: "Cricket",
		Markets: []string{
			"Match Result",
			"First Innings Lead",
			"Total Match Runs Over/Under",
			"Individual Batsman Runs",
			"Individual Bowler Match Wickets",
			"Method of Dismissal",
			"Session Betting",
		},
		Odds: defaultOddsProfile(),
	}
}

// Formula1 returns the Formula 1 catalog configuration. Race-winner
// markets skew toward longshots, so the underdog range runs much wider.
func Formula1() *Config {
	return &Config{
		Key:         "formula1",
		DisplayName: "Formula 1",
		Markets: []string{
			"Race Winner",
			"Podium Finish",
			"Head-to-Head Battle",
			"Qualifying Position",
			"Points Finish",
			"Fastest Lap",
		},
		Odds: OddsProfile{
			FavoriteMin: 120,
			FavoriteMax: 300,
			UnderdogMin: 150,
			UnderdogMax: 1200,
			NearEven:    []int{-110, 100, -105, 105},
			SidedShare:  0.85,
		},
	}
}

// HasMarket reports whether the given market belongs to this sport.
func (c *Config) HasMarket(market string) bool {
	for _, m := range c.Markets {
		if m == market {
			return true
		}
	}
	return false
}
