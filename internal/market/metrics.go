package market

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// ErrNoData is returned when metrics are requested before any data exists.
var ErrNoData = errors.New("no series data: generate or load data first")

// Metrics holds the descriptive statistics of a series.
type Metrics struct {
	CurrentPrice     float64 `json:"current_price"`
	MaxPrice         float64 `json:"max_price"`
	MinPrice         float64 `json:"min_price"`
	AvgVolume        float64 `json:"avg_volume"`
	Volatility       float64 `json:"volatility"`        // Sample standard deviation of price
	TotalReturnPct   float64 `json:"total_return_pct"`  // Percent change from first to last price
	CurrentMarketCap float64 `json:"current_market_cap"`
}

// MetricRow is a named metric value, used for stable-order report output.
type MetricRow struct {
	Name  string
	Value float64
}

// Rows returns the metrics in report order.
func (m Metrics) Rows() []MetricRow {
	return []MetricRow{
		{"current_price", m.CurrentPrice},
		{"max_price", m.MaxPrice},
		{"min_price", m.MinPrice},
		{"avg_volume", m.AvgVolume},
		{"volatility", m.Volatility},
		{"total_return_pct", m.TotalReturnPct},
		{"current_market_cap", m.CurrentMarketCap},
	}
}

// Summarize computes descriptive statistics over a series.
func Summarize(s *Series) (Metrics, error) {
	if s == nil || len(s.Points) == 0 {
		return Metrics{}, fmt.Errorf("summarize: %w", ErrNoData)
	}

	prices := s.Prices()
	first := prices[0]
	last := prices[len(prices)-1]

	minP, maxP := prices[0], prices[0]
	for _, p := range prices[1:] {
		if p < minP {
			minP = p
		}
		if p > maxP {
			maxP = p
		}
	}

	var volatility float64
	if len(prices) > 1 {
		volatility = stat.StdDev(prices, nil)
	}

	var totalReturn float64
	if first != 0 {
		totalReturn = (last/first - 1) * 100
	}

	return Metrics{
		CurrentPrice:     last,
		MaxPrice:         maxP,
		MinPrice:         minP,
		AvgVolume:        stat.Mean(s.Volumes(), nil),
		Volatility:       volatility,
		TotalReturnPct:   totalReturn,
		CurrentMarketCap: s.Points[len(s.Points)-1].MarketCap,
	}, nil
}
