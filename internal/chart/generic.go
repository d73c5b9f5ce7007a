package chart

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"cryptolens/internal/dataset"
)

// CategoricalCounts renders a bar chart of value frequencies in a column,
// most frequent first. With topN > 0 only the leading categories are shown.
func CategoricalCounts(t *dataset.Table, column string, topN int, path string) error {
	values, err := t.Column(column)
	if err != nil {
		return fmt.Errorf("categorical counts: %w", err)
	}
	if len(values) == 0 {
		return fmt.Errorf("categorical counts: %w", ErrNoData)
	}

	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}

	type pair struct {
		label string
		count int
	}
	pairs := make([]pair, 0, len(counts))
	for label, count := range counts {
		pairs = append(pairs, pair{label, count})
	}
	sort.Slice(pairs, func(a, b int) bool {
		if pairs[a].count != pairs[b].count {
			return pairs[a].count > pairs[b].count
		}
		return pairs[a].label < pairs[b].label
	})
	if topN > 0 && len(pairs) > topN {
		pairs = pairs[:topN]
	}

	bars := make([]chart.Value, len(pairs))
	for i, p := range pairs {
		bars[i] = chart.Value{Label: p.label, Value: float64(p.count)}
	}

	ch := chart.BarChart{
		Title:  fmt.Sprintf("Counts of %s", column),
		Width:  defaultWidth,
		Height: defaultHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 48},
		},
		BarWidth: 48,
		XAxis:    chart.Shown(),
		YAxis: chart.YAxis{
			Name:           "Count",
			GridMajorStyle: gridStyle(),
		},
		Bars: bars,
	}

	return writeChartPNG(path, func(w io.Writer) error {
		return ch.Render(chart.PNG, w)
	})
}

// Resample frequencies accepted by TimeSeries.
const (
	FreqDaily   = "D"
	FreqWeekly  = "W"
	FreqMonthly = "M"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// TimeSeries renders a value column over a date column, resampled to the
// given frequency with the mean taken per bucket.
func TimeSeries(t *dataset.Table, dateColumn, valueColumn, freq, path string) error {
	rawDates, err := t.Column(dateColumn)
	if err != nil {
		return fmt.Errorf("time series: %w", err)
	}
	values, ok := t.Numeric(valueColumn)
	if !ok {
		return fmt.Errorf("time series: column %q is not numeric", valueColumn)
	}
	if len(rawDates) == 0 {
		return fmt.Errorf("time series: %w", ErrNoData)
	}

	type bucket struct {
		sum   float64
		count int
	}
	buckets := make(map[time.Time]*bucket)
	for i, raw := range rawDates {
		ts, err := parseDate(raw)
		if err != nil {
			return fmt.Errorf("time series: row %d: %w", i, err)
		}
		key, err := truncateToFreq(ts, freq)
		if err != nil {
			return fmt.Errorf("time series: %w", err)
		}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.sum += values[i]
		b.count++
	}

	keys := make([]time.Time, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool { return keys[a].Before(keys[b]) })

	xs := make([]time.Time, len(keys))
	ys := make([]float64, len(keys))
	for i, k := range keys {
		xs[i] = k
		ys[i] = buckets[k].sum / float64(buckets[k].count)
	}
	if len(xs) == 1 {
		// A lone bucket has no x-range; extend it into a flat segment.
		xs = append(xs, xs[0].AddDate(0, 0, 1))
		ys = append(ys, ys[0])
	}

	ch := chart.Chart{
		Title:  fmt.Sprintf("Time Series of %s", valueColumn),
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
			Name:           valueColumn,
			Range:          paddedRange(ys),
			GridMajorStyle: gridStyle(),
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    valueColumn,
				XValues: xs,
				YValues: ys,
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

// truncateToFreq maps a timestamp to its resample bucket: the day itself,
// the Monday of its week, or the first of its month.
func truncateToFreq(ts time.Time, freq string) (time.Time, error) {
	day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
	switch freq {
	case FreqDaily, "":
		return day, nil
	case FreqWeekly:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset), nil
	case FreqMonthly:
		return time.Date(ts.Year(), ts.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	default:
		return time.Time{}, fmt.Errorf("unknown resample frequency %q", freq)
	}
}
