package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"cryptolens/internal/market"
)

// Config represents the complete application configuration.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Paths      PathsConfig      `yaml:"paths" envconfig:"PATHS"`
	Generation GenerationConfig `yaml:"generation" envconfig:"GENERATION"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=text json"`
}

// PathsConfig contains file system paths configuration.
type PathsConfig struct {
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" validate:"required"`
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
}

// GenerationConfig holds the synthetic series parameters.
type GenerationConfig struct {
	Days        int     `yaml:"days" envconfig:"DAYS" validate:"gt=0"`
	BasePrice   float64 `yaml:"base_price" envconfig:"BASE_PRICE" validate:"gt=0"`
	TrendTotal  float64 `yaml:"trend_total" envconfig:"TREND_TOTAL" validate:"gte=0"`
	Volatility  float64 `yaml:"volatility" envconfig:"VOLATILITY" validate:"gte=0"`
	VolumeMu    float64 `yaml:"volume_mu" envconfig:"VOLUME_MU"`
	VolumeSigma float64 `yaml:"volume_sigma" envconfig:"VOLUME_SIGMA" validate:"gt=0"`
	Seed        uint64  `yaml:"seed" envconfig:"SEED"`
}

// MarketConfig converts the generation settings into generator parameters.
func (g GenerationConfig) MarketConfig() market.GenerateConfig {
	return market.GenerateConfig{
		Days:        g.Days,
		BasePrice:   g.BasePrice,
		TrendTotal:  g.TrendTotal,
		Volatility:  g.Volatility,
		VolumeMu:    g.VolumeMu,
		VolumeSigma: g.VolumeSigma,
		Seed:        g.Seed,
	}
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Paths:   PathsConfig{ReportsDir: "reports", DataDir: "data"},
		Generation: GenerationConfig{
			Days:        365,
			BasePrice:   20000,
			TrendTotal:  10000,
			Volatility:  1000,
			VolumeMu:    10,
			VolumeSigma: 1,
		},
	}
}

// Load builds the configuration in three layers: built-in defaults, then an
// optional YAML file, then CRYPTOLENS_* environment variables on top.
func Load() (*Config, error) {
	cfg := Default()

	configFile := configFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = overlay(cfg, *fileCfg)
	}

	if err := envconfig.Process("CRYPTOLENS", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// configFilePath returns the YAML config location, overridable via
// CRYPTOLENS_CONFIG.
func configFilePath() string {
	if path := os.Getenv("CRYPTOLENS_CONFIG"); path != "" {
		return path
	}
	return "config.yaml"
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// overlay applies the non-zero fields of file config over the base config.
func overlay(base, file Config) Config {
	if file.Logging.Level != "" {
		base.Logging.Level = file.Logging.Level
	}
	if file.Logging.Format != "" {
		base.Logging.Format = file.Logging.Format
	}
	if file.Paths.ReportsDir != "" {
		base.Paths.ReportsDir = file.Paths.ReportsDir
	}
	if file.Paths.DataDir != "" {
		base.Paths.DataDir = file.Paths.DataDir
	}
	if file.Generation.Days != 0 {
		base.Generation.Days = file.Generation.Days
	}
	if file.Generation.BasePrice != 0 {
		base.Generation.BasePrice = file.Generation.BasePrice
	}
	if file.Generation.TrendTotal != 0 {
		base.Generation.TrendTotal = file.Generation.TrendTotal
	}
	if file.Generation.Volatility != 0 {
		base.Generation.Volatility = file.Generation.Volatility
	}
	if file.Generation.VolumeMu != 0 {
		base.Generation.VolumeMu = file.Generation.VolumeMu
	}
	if file.Generation.VolumeSigma != 0 {
		base.Generation.VolumeSigma = file.Generation.VolumeSigma
	}
	if file.Generation.Seed != 0 {
		base.Generation.Seed = file.Generation.Seed
	}
	return base
}

func (c *Config) validate() error {
	return validator.New().Struct(c)
}

// SetupLogger builds a slog logger per the logging config, writing to w,
// and installs it as the process default.
func (c *Config) SetupLogger(w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Level
	switch strings.ToLower(c.Logging.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if c.Logging.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
