package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// KellyConfig holds staking defaults applied when a request omits them.
type KellyConfig struct {
	DefaultBankroll     float64 `mapstructure:"default_bankroll"`
	DefaultModifier     float64 `mapstructure:"default_modifier"`
	MaxBankrollFraction float64 `mapstructure:"max_bankroll_fraction"`

	// Risk tier boundaries as unit fractions of bankroll.
	RiskLowThreshold    float64 `mapstructure:"risk_low_threshold"`
	RiskMediumThreshold float64 `mapstructure:"risk_medium_threshold"`
}

// SimulationConfig bounds and seeds Monte Carlo runs.
type SimulationConfig struct {
	DefaultPaths   int     `mapstructure:"default_paths"`
	DefaultBets    int     `mapstructure:"default_bets"`
	MaxPaths       int     `mapstructure:"max_paths"`
	MaxBets        int     `mapstructure:"max_bets"`
	Workers        int     `mapstructure:"workers"`
	MinEdge        float64 `mapstructure:"min_edge"`
	MinProbability float64 `mapstructure:"min_probability"`
}

// RedisConfig holds the optional recommendation stream target. An empty
// URL disables publishing entirely.
type RedisConfig struct {
	URL      string `mapstructure:"url"`
	Password string `mapstructure:"password"`
	Stream   string `mapstructure:"stream"`
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Kelly      KellyConfig      `mapstructure:"kelly"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Log        LogConfig        `mapstructure:"log"`
}

// Load reads configuration from KELLYBET_-prefixed environment
// variables over built-in defaults, e.g. KELLYBET_SERVER_ADDR=:9090.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("KELLYBET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8084")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("kelly.default_bankroll", 5000.0)
	v.SetDefault("kelly.default_modifier", 0.5)
	v.SetDefault("kelly.max_bankroll_fraction", 1.0)
	v.SetDefault("kelly.risk_low_threshold", 0.05)
	v.SetDefault("kelly.risk_medium_threshold", 0.15)

	v.SetDefault("simulation.default_paths", 100)
	v.SetDefault("simulation.default_bets", 100)
	v.SetDefault("simulation.max_paths", 5000)
	v.SetDefault("simulation.max_bets", 10000)
	v.SetDefault("simulation.workers", 8)
	v.SetDefault("simulation.min_edge", 0.0)
	v.SetDefault("simulation.min_probability", 0.0)

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.stream", "stakes.recommended")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

func (c *Config) validate() error {
	if c.Kelly.DefaultModifier <= 0 || c.Kelly.DefaultModifier > 1 {
		return fmt.Errorf("kelly.default_modifier must be in (0, 1], got %g", c.Kelly.DefaultModifier)
	}
	if c.Kelly.MaxBankrollFraction < 0 || c.Kelly.MaxBankrollFraction > 1 {
		return fmt.Errorf("kelly.max_bankroll_fraction must be in [0, 1], got %g", c.Kelly.MaxBankrollFraction)
	}
	if c.Kelly.DefaultBankroll <= 0 {
		return fmt.Errorf("kelly.default_bankroll must be positive, got %g", c.Kelly.DefaultBankroll)
	}
	if c.Kelly.RiskLowThreshold <= 0 || c.Kelly.RiskMediumThreshold <= c.Kelly.RiskLowThreshold {
		return fmt.Errorf("risk thresholds must satisfy 0 < low < medium, got low=%g medium=%g",
			c.Kelly.RiskLowThreshold, c.Kelly.RiskMediumThreshold)
	}
	if c.Simulation.MaxPaths < 1 || c.Simulation.MaxBets < 1 {
		return fmt.Errorf("simulation.max_paths and simulation.max_bets must be at least 1")
	}
	return nil
}
