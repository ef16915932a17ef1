package handlers

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/VinayJogani14/KellyBet-Analytics-Platform/internal/config"
	"github.com/VinayJogani14/KellyBet-Analytics-Platform/internal/kelly"
	"github.com/VinayJogani14/KellyBet-Analytics-Platform/internal/publisher"
	"github.com/VinayJogani14/KellyBet-Analytics-Platform/internal/settlement"
	"github.com/VinayJogani14/KellyBet-Analytics-Platform/internal/simulation"
	"github.com/VinayJogani14/KellyBet-Analytics-Platform/pkg/models"
	"github.com/VinayJogani14/KellyBet-Analytics-Platform/pkg/oddsmath"
	"github.com/VinayJogani14/KellyBet-Analytics-Platform/sports"
)

// Handler contains dependencies for HTTP handlers.
type Handler struct {
	engine   *kelly.Engine
	runner   *simulation.Runner
	registry *sports.Registry
	pub      *publisher.StreamPublisher // nil when publishing is disabled
	kellyCfg config.KellyConfig
	simCfg   config.SimulationConfig
	log      *zap.Logger
}

// NewHandler creates a new handler. pub may be nil.
func NewHandler(
	engine *kelly.Engine,
	runner *simulation.Runner,
	registry *sports.Registry,
	pub *publisher.StreamPublisher,
	kellyCfg config.KellyConfig,
	simCfg config.SimulationConfig,
	log *zap.Logger,
) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		engine:   engine,
		runner:   runner,
		registry: registry,
		pub:      pub,
		kellyCfg: kellyCfg,
		simCfg:   simCfg,
		log:      log,
	}
}

// HealthCheck returns service health.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "kellybet",
	})
}

// Recommend calculates a single stake recommendation.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req models.RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	h.applyDefaults(&req.Bankroll, &req.Modifier)
	maxFraction := h.maxBankrollFraction(req.MaxBankrollFraction)

	if err := kelly.ValidateInputs(req.WinProbability, req.Odds, req.Bankroll); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Modifier <= 0 || req.Modifier > 1 {
		respondError(w, http.StatusBadRequest, "modifier must be between 0 and 1")
		return
	}
	if maxFraction < 0 || maxFraction > 1 {
		respondError(w, http.StatusBadRequest, "max_bankroll_fraction must be between 0 and 1")
		return
	}

	rec := h.engine.Recommend(req.WinProbability, req.Odds, req.Bankroll, req.Modifier, maxFraction)

	if h.pub != nil {
		h.pub.PublishBestEffort(r.Context(), req.Sport, rec)
	}

	respondJSON(w, http.StatusOK, models.RecommendResponse{
		Recommendation: rec,
		Summary:        kelly.Summary(rec, req.Market, req.HomeTeam, req.AwayTeam),
	})
}

// Optimize maps a named risk tolerance onto a preset Kelly modifier.
func (h *Handler) Optimize(w http.ResponseWriter, r *http.Request) {
	var req models.OptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	if req.Bankroll == 0 {
		req.Bankroll = h.kellyCfg.DefaultBankroll
	}
	if err := kelly.ValidateInputs(req.WinProbability, req.Odds, req.Bankroll); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch req.RiskTolerance {
	case "", "low", "medium", "high":
	default:
		respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown risk tolerance: %s", req.RiskTolerance))
		return
	}

	rec := h.engine.Optimize(req.WinProbability, req.Odds, req.Bankroll, req.RiskTolerance)
	respondJSON(w, http.StatusOK, models.RecommendResponse{
		Recommendation: rec,
		Summary:        kelly.Summary(rec, "", "", ""),
	})
}

// Scenarios ranks hypothetical bets by expected value.
func (h *Handler) Scenarios(w http.ResponseWriter, r *http.Request) {
	var req models.ScenariosRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	h.applyDefaults(&req.Bankroll, &req.Modifier)
	maxFraction := h.maxBankrollFraction(req.MaxBankrollFraction)

	if len(req.Scenarios) == 0 {
		respondError(w, http.StatusBadRequest, "at least one scenario is required")
		return
	}
	if req.Bankroll <= 0 {
		respondError(w, http.StatusBadRequest, "bankroll must be positive")
		return
	}

	ranked := h.engine.RankScenarios(req.Scenarios, req.Bankroll, req.Modifier, maxFraction)
	respondJSON(w, http.StatusOK, ranked)
}

// Simulate runs a Monte Carlo batch over synthetic bets.
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req models.SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	h.applyDefaults(&req.InitialBankroll, &req.Modifier)
	maxFraction := h.maxBankrollFraction(req.MaxBankrollFraction)
	if req.TargetBets == 0 {
		req.TargetBets = h.simCfg.DefaultBets
	}
	if req.NumPaths == 0 {
		req.NumPaths = h.simCfg.DefaultPaths
	}
	if req.MinEdge == 0 {
		req.MinEdge = h.simCfg.MinEdge
	}
	if req.MinProbability == 0 {
		req.MinProbability = h.simCfg.MinProbability
	}
	if req.Seed == 0 {
		req.Seed = time.Now().UnixNano()
	}

	if req.InitialBankroll <= 0 {
		respondError(w, http.StatusBadRequest, "initial_bankroll must be positive")
		return
	}
	if req.TargetBets < 1 || req.TargetBets > h.simCfg.MaxBets {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("target_bets must be between 1 and %d", h.simCfg.MaxBets))
		return
	}
	if req.NumPaths < 1 || req.NumPaths > h.simCfg.MaxPaths {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("num_paths must be between 1 and %d", h.simCfg.MaxPaths))
		return
	}

	var sport *sports.Config
	if req.Sport != "" {
		var ok bool
		sport, ok = h.registry.Get(req.Sport)
		if !ok {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown sport: %s", req.Sport))
			return
		}
	}

	cfg := simulation.Config{
		InitialBankroll:     req.InitialBankroll,
		TargetBets:          req.TargetBets,
		Modifier:            req.Modifier,
		MaxBankrollFraction: maxFraction,
	}

	started := time.Now()
	result := h.runner.RunBatch(r.Context(), cfg, req.NumPaths, req.Seed, func(rng *rand.Rand) simulation.BetGenerator {
		return simulation.NewSyntheticGenerator(sport, req.MinEdge, req.MinProbability, rng)
	})

	h.log.Info("simulation batch complete",
		zap.Int("paths", result.NumPaths),
		zap.Int("target_bets", req.TargetBets),
		zap.Float64("success_rate", result.SuccessRate),
		zap.Duration("elapsed", time.Since(started)))

	if !req.IncludePaths {
		result.Paths = nil
	} else {
		// Histories can be large; strip them unless explicitly wanted.
		for i := range result.Paths {
			if len(result.Paths[i].History) > req.TargetBets+1 {
				result.Paths[i].History = result.Paths[i].History[:req.TargetBets+1]
			}
		}
	}

	respondJSON(w, http.StatusOK, result)
}

// Settle produces the bookkeeping record for a realized bet outcome.
func (h *Handler) Settle(w http.ResponseWriter, r *http.Request) {
	var req settlement.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	record, err := settlement.Settle(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, record)
}

// Sports lists the sport/market catalog.
func (h *Handler) Sports(w http.ResponseWriter, r *http.Request) {
	configs := h.registry.All()
	infos := make([]models.SportInfo, 0, len(configs))
	for _, cfg := range configs {
		infos = append(infos, models.SportInfo{
			Key:         cfg.Key,
			DisplayName: cfg.DisplayName,
			Markets:     cfg.Markets,
		})
	}
	respondJSON(w, http.StatusOK, infos)
}

// ValidateOdds runs a raw odds string through the validation gate.
func (h *Handler) ValidateOdds(w http.ResponseWriter, r *http.Request) {
	var req models.ValidateOddsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	odds, err := oddsmath.ValidateAmerican(req.Odds)
	if err != nil {
		respondJSON(w, http.StatusOK, models.ValidateOddsResponse{Valid: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, models.ValidateOddsResponse{Valid: true, Odds: odds})
}

// applyDefaults fills zero-valued bankroll/modifier fields from service
// configuration.
func (h *Handler) applyDefaults(bankroll, modifier *float64) {
	if *bankroll == 0 {
		*bankroll = h.kellyCfg.DefaultBankroll
	}
	if *modifier == 0 {
		*modifier = h.kellyCfg.DefaultModifier
	}
}

// maxBankrollFraction resolves the optional eligible-bankroll cap. An
// explicit 0 is a valid cap that freezes the bankroll, so only a nil
// pointer means "use the configured default".
func (h *Handler) maxBankrollFraction(req *float64) float64 {
	if req == nil {
		return h.kellyCfg.MaxBankrollFraction
	}
	return *req
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}
