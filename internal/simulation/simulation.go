package simulation

import (
	"context"
	"math/rand"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/VinayJogani14/KellyBet-Analytics-Platform/internal/kelly"
	"github.com/VinayJogani14/KellyBet-Analytics-Platform/pkg/models"
	"github.com/VinayJogani14/KellyBet-Analytics-Platform/pkg/oddsmath"
)

// Config fixes the staking policy a simulation applies to every bet.
type Config struct {
	InitialBankroll     float64
	TargetBets          int
	Modifier            float64
	MaxBankrollFraction float64
}

// Runner executes Monte Carlo bankroll simulations against a Kelly
// engine. Paths are independent; batches fan out across a bounded
// worker pool with no shared mutable state.
type Runner struct {
	engine  *kelly.Engine
	workers int
	log     *zap.Logger
}

// NewRunner creates a simulation runner. workers bounds batch
// parallelism; values below 1 fall back to 4.
func NewRunner(engine *kelly.Engine, workers int, log *zap.Logger) *Runner {
	if workers < 1 {
		workers = 4
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{engine: engine, workers: workers, log: log}
}

// RunPath simulates one bankroll trajectory: repeated application of
// the fixed Kelly policy to bets from gen until the target bet count is
// reached, the bankroll is exhausted, or the generator runs dry.
// Exhaustion is a normal terminal state, not an error.
func (r *Runner) RunPath(cfg Config, gen BetGenerator, rng *rand.Rand) models.SimulationPath {
	bankroll := cfg.InitialBankroll
	history := []float64{bankroll}

	var wins, losses int
	peak := bankroll
	maxDrawdown := 0.0

	for placed := 0; placed < cfg.TargetBets && bankroll > 0; {
		bet, ok := gen.Next()
		if !ok {
			break
		}

		decimal, err := oddsmath.AmericanToDecimal(bet.Odds)
		if err != nil {
			// A generator emitting unusable odds cannot be trusted to
			// recover; treat it as exhausted rather than spin on it.
			break
		}

		rec := r.engine.Recommend(bet.WinProbability, bet.Odds, bankroll, cfg.Modifier, cfg.MaxBankrollFraction)
		stake := rec.RecommendedStake

		if resolveOutcome(bet, rng) {
			bankroll = bankroll - stake + stake*decimal
			wins++
		} else {
			bankroll -= stake
			losses++
		}

		history = append(history, bankroll)
		placed++

		if bankroll > peak {
			peak = bankroll
		}
		if peak > 0 {
			if dd := (peak - bankroll) / peak; dd > maxDrawdown {
				maxDrawdown = dd
			}
		}
	}

	roi := 0.0
	if cfg.InitialBankroll > 0 {
		roi = (bankroll - cfg.InitialBankroll) / cfg.InitialBankroll * 100.0
	}

	return models.SimulationPath{
		InitialBankroll: cfg.InitialBankroll,
		FinalBankroll:   bankroll,
		History:         history,
		BetsPlaced:      wins + losses,
		Wins:            wins,
		Losses:          losses,
		ROI:             roi,
		MaxDrawdown:     maxDrawdown * 100.0,
		Busted:          bankroll <= 0,
	}
}

// resolveOutcome settles a bet: a known real outcome takes precedence
// over the Bernoulli draw, letting back-tests of completed matches share
// this code path with synthetic data.
func resolveOutcome(bet models.SimulatedBet, rng *rand.Rand) bool {
	if bet.KnownOutcome != nil {
		return *bet.KnownOutcome
	}
	return rng.Float64() < bet.WinProbability
}

// RunBatch executes numPaths independent simulation paths and
// aggregates their statistics. newGen builds a fresh generator per path
// from a per-path seed, keeping paths reproducible and isolated.
func (r *Runner) RunBatch(ctx context.Context, cfg Config, numPaths int, seed int64, newGen func(rng *rand.Rand) BetGenerator) models.BatchResult {
	if numPaths < 1 {
		numPaths = 1
	}

	paths := make([]models.SimulationPath, numPaths)

	workers := r.workers
	if workers > numPaths {
		workers = numPaths
	}

	indexes := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				rng := rand.New(rand.NewSource(seed + int64(i)))
				paths[i] = r.RunPath(cfg, newGen(rng), rng)
			}
		}()
	}

	dispatched := 0
dispatch:
	for i := 0; i < numPaths; i++ {
		select {
		case indexes <- i:
			dispatched++
		case <-ctx.Done():
			r.log.Warn("simulation batch cancelled",
				zap.Int("dispatched", dispatched),
				zap.Int("requested", numPaths))
			break dispatch
		}
	}
	close(indexes)
	wg.Wait()

	return summarize(paths[:dispatched])
}

// summarize computes batch statistics over completed paths.
func summarize(paths []models.SimulationPath) models.BatchResult {
	result := models.BatchResult{
		NumPaths: len(paths),
		Paths:    paths,
	}
	if len(paths) == 0 {
		return result
	}

	finals := make([]float64, len(paths))
	rois := make([]float64, len(paths))

	var survived int
	var sumFinal, sumROI, sumBets float64
	for i, p := range paths {
		finals[i] = p.FinalBankroll
		rois[i] = p.ROI
		sumFinal += p.FinalBankroll
		sumROI += p.ROI
		sumBets += float64(p.BetsPlaced)
		if p.FinalBankroll > 0 {
			survived++
		}
	}

	sort.Float64s(finals)
	sort.Float64s(rois)

	n := float64(len(paths))
	result.SuccessRate = float64(survived) / n
	result.MeanFinalBankroll = sumFinal / n
	result.MedianFinalBankroll = percentile(finals, 0.50)
	result.P10FinalBankroll = percentile(finals, 0.10)
	result.P90FinalBankroll = percentile(finals, 0.90)
	result.MeanROI = sumROI / n
	result.MedianROI = percentile(rois, 0.50)
	result.MeanBetsPerPath = sumBets / n

	return result
}

// percentile returns the nearest-rank percentile of a sorted slice.
func percentile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(q * float64(len(sorted)-1))
	return sorted[idx]
}
