package chart

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"cryptolens/internal/dataset"
)

// Boxplot renders one box per distinct value of the x column, showing the
// distribution of the numeric y column within each group. go-chart has no
// box primitive, so this chart uses gonum/plot.
func Boxplot(t *dataset.Table, xColumn, yColumn, path string) error {
	categories, err := t.Column(xColumn)
	if err != nil {
		return fmt.Errorf("boxplot: %w", err)
	}
	values, ok := t.Numeric(yColumn)
	if !ok {
		return fmt.Errorf("boxplot: column %q is not numeric", yColumn)
	}
	if len(categories) == 0 {
		return fmt.Errorf("boxplot: %w", ErrNoData)
	}

	groups := make(map[string][]float64)
	for i, cat := range categories {
		groups[cat] = append(groups[cat], values[i])
	}
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Boxplot of %s by %s", yColumn, xColumn)
	p.X.Label.Text = xColumn
	p.Y.Label.Text = yColumn

	for i, name := range names {
		box, err := plotter.NewBoxPlot(vg.Points(30), float64(i), plotter.Values(groups[name]))
		if err != nil {
			return fmt.Errorf("boxplot group %q: %w", name, err)
		}
		p.Add(box)
	}
	p.NominalX(names...)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create chart directory: %w", err)
	}
	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save boxplot: %w", err)
	}
	return nil
}
