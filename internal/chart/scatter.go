package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"

	"cryptolens/internal/dataset"
)

const scatterCellSize = 320

// ScatterMatrix renders the pairwise scatter matrix of the given numeric
// columns as a single PNG: one scatter cell per column pair and a histogram
// of each column on the diagonal.
func ScatterMatrix(t *dataset.Table, columns []string, path string) error {
	if len(columns) == 0 {
		columns = t.NumericColumns()
	}
	if len(columns) == 0 {
		return fmt.Errorf("scatter matrix: %w", ErrNoData)
	}

	data := make([][]float64, len(columns))
	for i, name := range columns {
		values, ok := t.Numeric(name)
		if !ok {
			return fmt.Errorf("scatter matrix: column %q is not numeric", name)
		}
		if len(values) == 0 {
			return fmt.Errorf("scatter matrix: %w", ErrNoData)
		}
		data[i] = values
	}

	n := len(columns)
	grid := image.NewRGBA(image.Rect(0, 0, n*scatterCellSize, n*scatterCellSize))

	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			var cell image.Image
			var err error
			if row == col {
				cell, err = renderHistogramCell(columns[row], data[row])
			} else {
				cell, err = renderScatterCell(columns[col], columns[row], data[col], data[row])
			}
			if err != nil {
				return fmt.Errorf("scatter matrix cell (%d,%d): %w", row, col, err)
			}
			target := image.Rect(
				col*scatterCellSize, row*scatterCellSize,
				(col+1)*scatterCellSize, (row+1)*scatterCellSize,
			)
			draw.Draw(grid, target, cell, image.Point{}, draw.Src)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create chart directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()
	if err := png.Encode(file, grid); err != nil {
		return fmt.Errorf("encode scatter matrix: %w", err)
	}
	return nil
}

func renderScatterCell(xName, yName string, xs, ys []float64) (image.Image, error) {
	if len(xs) == 1 {
		// Zero x-range does not render; nudge a lone point into a segment.
		xs = []float64{xs[0] - 0.5, xs[0] + 0.5}
		ys = []float64{ys[0], ys[0]}
	}
	ch := chart.Chart{
		Width:  scatterCellSize,
		Height: scatterCellSize,
		Background: chart.Style{
			Padding: chart.Box{Top: 8, Left: 8, Right: 8, Bottom: 8},
		},
		XAxis: chart.XAxis{Name: xName, Range: paddedRange(xs)},
		YAxis: chart.YAxis{Name: yName, Range: paddedRange(ys)},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    2,
					DotColor:    chart.ColorBlue,
				},
			},
		},
	}
	return renderToImage(&ch)
}

func renderHistogramCell(name string, values []float64) (image.Image, error) {
	centers, counts, _ := bin(values, 20)
	centers, counts = padSingleBin(centers, counts)
	ch := chart.Chart{
		Width:  scatterCellSize,
		Height: scatterCellSize,
		Background: chart.Style{
			Padding: chart.Box{Top: 8, Left: 8, Right: 8, Bottom: 8},
		},
		XAxis: chart.XAxis{Name: name},
		Series: []chart.Series{
			chart.HistogramSeries{
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
		},
	}
	return renderToImage(&ch)
}

func renderToImage(ch *chart.Chart) (image.Image, error) {
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}
