package market

import (
	"time"
)

// Point represents a single day's simulated market data for a coin.
type Point struct {
	Date          time.Time `json:"date"`
	Price         float64   `json:"price"`
	Volume        float64   `json:"volume"`         // Base volume in coin units
	MarketCap     float64   `json:"market_cap"`     // Simulated market capitalization in USD
	TradingVolume float64   `json:"trading_volume"` // Trading volume in USD
}

// IsValid checks if the data point is internally consistent.
func (p Point) IsValid() bool {
	return !p.Date.IsZero() && p.Volume > 0
}

// Series holds a daily time series for a single symbol. Points are ordered
// by date, strictly increasing, one per day.
type Series struct {
	Symbol string  `json:"symbol"`
	Points []Point `json:"points"`
}

// Len returns the number of data points in the series.
func (s *Series) Len() int {
	return len(s.Points)
}

// Dates returns the date of every point in order.
func (s *Series) Dates() []time.Time {
	out := make([]time.Time, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Date
	}
	return out
}

// Prices returns the price column.
func (s *Series) Prices() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Price
	}
	return out
}

// Volumes returns the base volume column.
func (s *Series) Volumes() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Volume
	}
	return out
}

// MarketCaps returns the market capitalization column.
func (s *Series) MarketCaps() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.MarketCap
	}
	return out
}

// TradingVolumes returns the USD trading volume column.
func (s *Series) TradingVolumes() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.TradingVolume
	}
	return out
}
