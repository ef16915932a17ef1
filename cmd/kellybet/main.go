package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/VinayJogani14/KellyBet-Analytics-Platform/internal/config"
	"github.com/VinayJogani14/KellyBet-Analytics-Platform/internal/handlers"
	"github.com/VinayJogani14/KellyBet-Analytics-Platform/internal/kelly"
	"github.com/VinayJogani14/KellyBet-Analytics-Platform/internal/publisher"
	"github.com/VinayJogani14/KellyBet-Analytics-Platform/internal/simulation"
	"github.com/VinayJogani14/KellyBet-Analytics-Platform/sports"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("failed to load config", zap.Error(err))
	}

	log := newLogger(cfg.Log)
	defer log.Sync()

	engine := kelly.NewEngine(kelly.Thresholds{
		Low:    cfg.Kelly.RiskLowThreshold,
		Medium: cfg.Kelly.RiskMediumThreshold,
	})
	runner := simulation.NewRunner(engine, cfg.Simulation.Workers, log)
	registry := sports.DefaultRegistry()

	pub := newPublisher(cfg.Redis, log)

	handler := handlers.NewHandler(engine, runner, registry, pub, cfg.Kelly, cfg.Simulation, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", handler.HealthCheck)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/recommend", handler.Recommend)
		r.Post("/recommend/optimize", handler.Optimize)
		r.Post("/scenarios", handler.Scenarios)
		r.Post("/simulate", handler.Simulate)
		r.Post("/settle", handler.Settle)
		r.Get("/sports", handler.Sports)
		r.Post("/odds/validate", handler.ValidateOdds)
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("kellybet started",
			zap.String("addr", cfg.Server.Addr),
			zap.Float64("default_bankroll", cfg.Kelly.DefaultBankroll),
			zap.Float64("default_modifier", cfg.Kelly.DefaultModifier),
			zap.Float64("max_bankroll_fraction", cfg.Kelly.MaxBankrollFraction))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}

	log.Info("kellybet stopped")
}

// newLogger builds the service logger from config.
func newLogger(cfg config.LogConfig) *zap.Logger {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zc zap.Config
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	log, err := zc.Build()
	if err != nil {
		return zap.NewExample()
	}
	return log
}

// newPublisher connects the optional recommendation stream. Returns nil
// when no Redis URL is configured or the server is unreachable; the
// service serves recommendations either way.
func newPublisher(cfg config.RedisConfig, log *zap.Logger) *publisher.StreamPublisher {
	if cfg.URL == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.URL,
		Password: cfg.Password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, recommendation publishing disabled",
			zap.String("url", cfg.URL), zap.Error(err))
		return nil
	}

	log.Info("recommendation publishing enabled",
		zap.String("url", cfg.URL), zap.String("stream", cfg.Stream))
	return publisher.NewStreamPublisher(client, cfg.Stream, log)
}
