package chart

import (
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/gonum/stat"
)

type histogramOptions struct {
	Title   string
	XLabel  string
	Bins    int
	Density bool // overlay a gaussian kernel density curve
}

// Histogram renders a binned distribution of values with a density overlay,
// the standard numeric-distribution plot.
func Histogram(values []float64, title, xlabel string, bins int, path string) error {
	if len(values) == 0 {
		return fmt.Errorf("histogram: %w", ErrNoData)
	}
	if bins <= 0 {
		bins = 30
	}
	return renderHistogram(values, histogramOptions{
		Title:   title,
		XLabel:  xlabel,
		Bins:    bins,
		Density: true,
	}, path)
}

func renderHistogram(values []float64, opts histogramOptions, path string) error {
	centers, counts, binWidth := bin(values, opts.Bins)
	centers, counts = padSingleBin(centers, counts)

	series := []chart.Series{
		chart.HistogramSeries{
			Name: "Frequency",
			Style: chart.Style{
				StrokeColor: chart.ColorBlue,
				StrokeWidth: 1.0,
				FillColor:   chart.ColorBlue.WithAlpha(120),
			},
			InnerSeries: chart.ContinuousSeries{
				XValues: centers,
				YValues: counts,
			},
		},
	}

	if opts.Density && len(values) > 1 {
		xs, ys := kde(values, 120)
		// Scale the density to the count axis so both series share a scale.
		for i := range ys {
			ys[i] *= float64(len(values)) * binWidth
		}
		series = append(series, chart.ContinuousSeries{
			Name:    "Density",
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: chart.ColorRed,
				StrokeWidth: 2.0,
			},
		})
	}

	ch := chart.Chart{
		Title:  opts.Title,
		Width:  1000,
		Height: defaultHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 32},
		},
		XAxis: chart.XAxis{
			Name:           opts.XLabel,
			GridMajorStyle: gridStyle(),
		},
		YAxis: chart.YAxis{
			Name:           "Frequency",
			GridMajorStyle: gridStyle(),
		},
		Series: series,
	}

	return writeChartPNG(path, func(w io.Writer) error {
		return ch.Render(chart.PNG, w)
	})
}

// bin splits values into equal-width bins and returns the bin centers,
// counts and the bin width. Degenerate input (all values equal) collapses
// to a single bin of unit width.
func bin(values []float64, bins int) (centers, counts []float64, width float64) {
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if min == max {
		return []float64{min}, []float64{float64(len(values))}, 1
	}

	width = (max - min) / float64(bins)
	centers = make([]float64, bins)
	counts = make([]float64, bins)
	for i := 0; i < bins; i++ {
		centers[i] = min + (float64(i)+0.5)*width
	}
	for _, v := range values {
		i := int((v - min) / width)
		if i == bins { // max value lands in the last bin
			i = bins - 1
		}
		counts[i]++
	}
	return centers, counts, width
}

// padSingleBin duplicates a lone bin across a unit interval; go-chart cannot
// render a series whose x-range is zero.
func padSingleBin(centers, counts []float64) ([]float64, []float64) {
	if len(centers) != 1 {
		return centers, counts
	}
	c, n := centers[0], counts[0]
	return []float64{c - 0.5, c + 0.5}, []float64{n, n}
}

// kde evaluates a gaussian kernel density estimate over the value range
// using Silverman's rule-of-thumb bandwidth.
func kde(values []float64, points int) (xs, ys []float64) {
	n := float64(len(values))
	sigma := stat.StdDev(values, nil)
	if sigma == 0 {
		sigma = 1
	}
	h := 1.06 * sigma * math.Pow(n, -0.2)

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	// Extend the grid past the data so the curve tails off visibly.
	lo, hi := min-2*h, max+2*h
	step := (hi - lo) / float64(points-1)

	xs = make([]float64, points)
	ys = make([]float64, points)
	norm := 1 / (n * h * math.Sqrt(2*math.Pi))
	for i := 0; i < points; i++ {
		x := lo + float64(i)*step
		var sum float64
		for _, v := range values {
			z := (x - v) / h
			sum += math.Exp(-0.5 * z * z)
		}
		xs[i] = x
		ys[i] = norm * sum
	}
	return xs, ys
}
