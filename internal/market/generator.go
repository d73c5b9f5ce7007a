package market

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// GenerateConfig controls synthetic series generation.
//
// The simulated price is BasePrice plus a linear trend rising to TrendTotal
// over the series, plus gaussian noise with standard deviation Volatility.
// Base volume is drawn from a log-normal distribution with parameters
// VolumeMu and VolumeSigma, which keeps it strictly positive.
type GenerateConfig struct {
	Days        int     `validate:"gt=0"`
	BasePrice   float64 `validate:"gt=0"`
	TrendTotal  float64 `validate:"gte=0"`
	Volatility  float64 `validate:"gte=0"`
	VolumeMu    float64
	VolumeSigma float64 `validate:"gt=0"`
	Seed        uint64  // 0 means time-based
}

// DefaultGenerateConfig returns the standard simulation parameters.
func DefaultGenerateConfig() GenerateConfig {
	return GenerateConfig{
		Days:        365,
		BasePrice:   20000,
		TrendTotal:  10000,
		Volatility:  1000,
		VolumeMu:    10,
		VolumeSigma: 1,
	}
}

// Generator produces synthetic daily market data series.
type Generator struct {
	cfg    GenerateConfig
	logger *slog.Logger
}

// NewGenerator validates cfg and creates a generator.
func NewGenerator(cfg GenerateConfig, logger *slog.Logger) (*Generator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid generate config: %w", err)
	}
	return &Generator{cfg: cfg, logger: logger}, nil
}

// Generate builds a synthetic daily series for symbol covering cfg.Days days
// up to and including today. Market cap and USD trading volume are derived
// from price and base volume.
func (g *Generator) Generate(symbol string) *Series {
	seed := g.cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	src := rand.NewSource(seed)

	noise := distuv.Normal{Mu: 0, Sigma: g.cfg.Volatility, Src: src}
	volume := distuv.LogNormal{Mu: g.cfg.VolumeMu, Sigma: g.cfg.VolumeSigma, Src: src}

	// Inclusive date range, so a 365-day request yields 366 points,
	// matching a daily range from start to end.
	n := g.cfg.Days + 1
	end := time.Now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -g.cfg.Days)

	g.logger.Info("generating synthetic series",
		"symbol", symbol,
		"days", g.cfg.Days,
		"points", n,
		"base_price", g.cfg.BasePrice,
		"seed", seed,
	)

	points := make([]Point, n)
	for i := 0; i < n; i++ {
		trend := g.cfg.TrendTotal * float64(i) / float64(n-1)
		price := g.cfg.BasePrice + trend + noise.Rand()
		vol := volume.Rand()

		points[i] = Point{
			Date:          start.AddDate(0, 0, i),
			Price:         price,
			Volume:        vol,
			MarketCap:     price * vol * 1000,
			TradingVolume: price * vol,
		}
	}

	return &Series{Symbol: symbol, Points: points}
}
