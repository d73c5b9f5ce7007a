package chart

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"

	"cryptolens/internal/market"
)

// ErrNoData is returned when a render function is given nothing to plot.
var ErrNoData = errors.New("no data to plot")

const (
	defaultWidth  = 1200
	defaultHeight = 600
)

// writeChartPNG renders into a buffer first so a failed render never leaves
// a truncated file behind, then writes the PNG creating parent directories.
func writeChartPNG(path string, render func(w io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create chart directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write chart %s: %w", path, err)
	}
	return nil
}

func dateFormatter() chart.ValueFormatter {
	return chart.TimeValueFormatterWithFormat("2006-01-02")
}

func gridStyle() chart.Style {
	return chart.Style{
		StrokeColor: chart.ColorAlternateGray.WithAlpha(90),
		StrokeWidth: 1.0,
	}
}

// paddedRange returns an explicit axis range when the data has no spread,
// which would otherwise fail to render.
func paddedRange(values []float64) chart.Range {
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min != max {
		return nil
	}
	return &chart.ContinuousRange{Min: min - 1, Max: max + 1}
}

// PriceHistory renders the price-over-time line chart for a series.
func PriceHistory(s *market.Series, path string) error {
	if s == nil || len(s.Points) == 0 {
		return fmt.Errorf("price history: %w", ErrNoData)
	}

	ch := chart.Chart{
		Title:  fmt.Sprintf("Price History - %s", s.Symbol),
		Width:  defaultWidth,
		Height: defaultHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 32},
		},
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: dateFormatter(),
			GridMajorStyle: gridStyle(),
		},
		YAxis: chart.YAxis{
			Name:           "Price (USD)",
			Range:          paddedRange(s.Prices()),
			GridMajorStyle: gridStyle(),
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    s.Symbol,
				XValues: s.Dates(),
				YValues: s.Prices(),
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 1.5,
				},
			},
		},
	}

	return writeChartPNG(path, func(w io.Writer) error {
		return ch.Render(chart.PNG, w)
	})
}

// TradingVolume renders the USD trading volume over time as a filled series,
// which reads like a dense bar chart at daily resolution.
func TradingVolume(s *market.Series, path string) error {
	if s == nil || len(s.Points) == 0 {
		return fmt.Errorf("trading volume: %w", ErrNoData)
	}

	ch := chart.Chart{
		Title:  fmt.Sprintf("Trading Volume - %s", s.Symbol),
		Width:  defaultWidth,
		Height: defaultHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 32},
		},
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: dateFormatter(),
			GridMajorStyle: gridStyle(),
		},
		YAxis: chart.YAxis{
			Name:           "Volume (USD)",
			Range:          paddedRange(s.TradingVolumes()),
			GridMajorStyle: gridStyle(),
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    s.Symbol,
				XValues: s.Dates(),
				YValues: s.TradingVolumes(),
				Style: chart.Style{
					StrokeColor: chart.ColorGreen,
					StrokeWidth: 1.0,
					FillColor:   chart.ColorGreen.WithAlpha(80),
				},
			},
		},
	}

	return writeChartPNG(path, func(w io.Writer) error {
		return ch.Render(chart.PNG, w)
	})
}

// MarketCap renders the market capitalization line chart for a series.
func MarketCap(s *market.Series, path string) error {
	if s == nil || len(s.Points) == 0 {
		return fmt.Errorf("market cap: %w", ErrNoData)
	}

	ch := chart.Chart{
		Title:  fmt.Sprintf("Market Capitalization - %s", s.Symbol),
		Width:  defaultWidth,
		Height: defaultHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 32},
		},
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: dateFormatter(),
			GridMajorStyle: gridStyle(),
		},
		YAxis: chart.YAxis{
			Name:           "Market Cap (USD)",
			Range:          paddedRange(s.MarketCaps()),
			GridMajorStyle: gridStyle(),
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    s.Symbol,
				XValues: s.Dates(),
				YValues: s.MarketCaps(),
				Style: chart.Style{
					StrokeColor: chart.ColorOrange,
					StrokeWidth: 1.5,
				},
			},
		},
	}

	return writeChartPNG(path, func(w io.Writer) error {
		return ch.Render(chart.PNG, w)
	})
}

// PriceDistribution renders a histogram of prices with a density overlay.
func PriceDistribution(s *market.Series, path string) error {
	if s == nil || len(s.Points) == 0 {
		return fmt.Errorf("price distribution: %w", ErrNoData)
	}
	return renderHistogram(s.Prices(), histogramOptions{
		Title:   fmt.Sprintf("Price Distribution - %s", s.Symbol),
		XLabel:  "Price (USD)",
		Bins:    30,
		Density: true,
	}, path)
}
