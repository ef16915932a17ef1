package simulation

import (
	"math/rand"

	"github.com/VinayJogani14/KellyBet-Analytics-Platform/pkg/models"
	"github.com/VinayJogani14/KellyBet-Analytics-Platform/pkg/oddsmath"
	"github.com/VinayJogani14/KellyBet-Analytics-Platform/sports"
)

// BetGenerator yields the probability/odds pairs a simulation settles.
// Next returns false when no qualifying bet remains; the path stops
// early and reports fewer bets than the target.
type BetGenerator interface {
	Next() (models.SimulatedBet, bool)
}

// SyntheticGenerator produces random bets shaped by a sport's odds
// profile, redrawing until one passes the configured filters. It is the
// stand-in for a real odds feed plus probability model.
type SyntheticGenerator struct {
	sport          *sports.Config
	minEdge        float64 // unit fraction, 0 disables
	minProbability float64 // unit fraction, 0 disables
	maxRedraws     int
	rng            *rand.Rand
}

// NewSyntheticGenerator creates a generator for the given sport. A nil
// sport falls back to the generic soccer odds profile.
func NewSyntheticGenerator(sport *sports.Config, minEdge, minProbability float64, rng *rand.Rand) *SyntheticGenerator {
	if sport == nil {
		sport = sports.Soccer()
	}
	return &SyntheticGenerator{
		sport:          sport,
		minEdge:        minEdge,
		minProbability: minProbability,
		maxRedraws:     1000,
		rng:            rng,
	}
}

// Next draws bets until one clears the edge and probability filters.
// It gives up after the redraw budget so an impossible filter can't
// spin forever; the simulation treats that as generator exhaustion.
func (g *SyntheticGenerator) Next() (models.SimulatedBet, bool) {
	for i := 0; i < g.maxRedraws; i++ {
		odds := g.randomOdds()
		p := g.randomProbability()

		edge, err := oddsmath.Edge(p, odds)
		if err != nil || edge <= 0 {
			continue
		}
		if edge < g.minEdge || p < g.minProbability {
			continue
		}

		return models.SimulatedBet{WinProbability: p, Odds: odds}, true
	}

	return models.SimulatedBet{}, false
}

// randomOdds mirrors a realistic book: mostly clear favorite/underdog
// pairings with the occasional near-even quote.
func (g *SyntheticGenerator) randomOdds() int {
	profile := g.sport.Odds

	if g.rng.Float64() < profile.SidedShare {
		if g.rng.Float64() < 0.5 {
			// Favorite
			return -(profile.FavoriteMin + g.rng.Intn(profile.FavoriteMax-profile.FavoriteMin+1))
		}
		// Underdog
		return profile.UnderdogMin + g.rng.Intn(profile.UnderdogMax-profile.UnderdogMin+1)
	}

	return profile.NearEven[g.rng.Intn(len(profile.NearEven))]
}

func (g *SyntheticGenerator) randomProbability() float64 {
	// Uniform over (0.05, 0.95); the edge filter does the shaping.
	return 0.05 + g.rng.Float64()*0.90
}

// FixedGenerator replays a single probability/odds pair, optionally a
// bounded number of times. Remaining < 0 means unbounded.
type FixedGenerator struct {
	Bet       models.SimulatedBet
	Remaining int
}

func (g *FixedGenerator) Next() (models.SimulatedBet, bool) {
	if g.Remaining == 0 {
		return models.SimulatedBet{}, false
	}
	if g.Remaining > 0 {
		g.Remaining--
	}
	return g.Bet, true
}

// HistoryGenerator replays a recorded sequence of bets, typically with
// known outcomes attached, so real results run through the same
// settlement path as synthetic draws.
type HistoryGenerator struct {
	Bets []models.SimulatedBet
	next int
}

func (g *HistoryGenerator) Next() (models.SimulatedBet, bool) {
	if g.next >= len(g.Bets) {
		return models.SimulatedBet{}, false
	}
	bet := g.Bets[g.next]
	g.next++
	return bet, true
}
