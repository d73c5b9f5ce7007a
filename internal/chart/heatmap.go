package chart

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"cryptolens/internal/dataset"
)

// corrGrid adapts a correlation matrix to gonum/plot's heat map input.
// Rows are flipped so the first column reads top-to-bottom like a table.
type corrGrid struct {
	m dataset.Matrix
}

func (g corrGrid) Dims() (c, r int) {
	return len(g.m.Columns), len(g.m.Columns)
}

func (g corrGrid) X(c int) float64 { return float64(c) }
func (g corrGrid) Y(r int) float64 { return float64(r) }

func (g corrGrid) Z(c, r int) float64 {
	v := g.m.Values[len(g.m.Columns)-1-r][c]
	if math.IsNaN(v) {
		// NaN cells (zero-variance columns) draw as neutral.
		return 0
	}
	return v
}

// CorrelationHeatmap renders a correlation matrix as an annotated heat map
// on a diverging blue-red palette centered at zero.
func CorrelationHeatmap(m dataset.Matrix, path string) error {
	n := len(m.Columns)
	if n == 0 {
		return fmt.Errorf("correlation heatmap: %w", ErrNoData)
	}

	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)

	p := plot.New()
	p.Title.Text = "Correlation Matrix"
	p.Add(plotter.NewHeatMap(corrGrid{m: m}, cm.Palette(255)))

	ticks := make([]plot.Tick, n)
	for i, name := range m.Columns {
		ticks[i] = plot.Tick{Value: float64(i), Label: name}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)

	yTicks := make([]plot.Tick, n)
	for i, name := range m.Columns {
		yTicks[i] = plot.Tick{Value: float64(n - 1 - i), Label: name}
	}
	p.Y.Tick.Marker = plot.ConstantTicks(yTicks)

	labels, err := cellLabels(m)
	if err != nil {
		return fmt.Errorf("correlation heatmap: %w", err)
	}
	p.Add(labels)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create chart directory: %w", err)
	}
	if err := p.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("save heatmap: %w", err)
	}
	return nil
}

// formatCell trims a float for use as an annotation label.
func formatCell(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// cellLabels annotates each cell with its coefficient, NaN cells excepted.
func cellLabels(m dataset.Matrix) (*plotter.Labels, error) {
	n := len(m.Columns)
	xy := plotter.XYLabels{}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := m.Values[i][j]
			if math.IsNaN(v) {
				continue
			}
			xy.XYs = append(xy.XYs, plotter.XY{X: float64(j), Y: float64(n - 1 - i)})
			xy.Labels = append(xy.Labels, formatCell(v))
		}
	}
	return plotter.NewLabels(xy)
}
