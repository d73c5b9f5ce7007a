package dataset

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ColumnStats holds the describe-style statistics of one numeric column.
type ColumnStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// Summary describes a table: its shape, columns and per-numeric-column stats.
type Summary struct {
	Rows    int                    `json:"rows"`
	Cols    int                    `json:"cols"`
	Columns []string               `json:"columns"`
	Numeric map[string]ColumnStats `json:"numeric"`
}

// Describe computes basic statistics over every numeric column.
func Describe(t *Table) Summary {
	rows, cols := t.Shape()
	s := Summary{
		Rows:    rows,
		Cols:    cols,
		Columns: append([]string(nil), t.Columns...),
		Numeric: make(map[string]ColumnStats),
	}

	for _, name := range t.NumericColumns() {
		values, _ := t.Numeric(name)
		s.Numeric[name] = describeColumn(values)
	}
	return s
}

func describeColumn(values []float64) ColumnStats {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	cs := ColumnStats{
		Count:  len(values),
		Mean:   stat.Mean(values, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Q1:     quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q3:     quantile(sorted, 0.75),
	}
	if len(values) > 1 {
		cs.Std = stat.StdDev(values, nil)
	}
	return cs
}

// quantile interpolates linearly at position p*(n-1) of a sorted slice, the
// convention pandas and numpy use for their default quantiles.
func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	lo := int(pos)
	frac := pos - float64(lo)
	if frac == 0 {
		return sorted[lo]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// CorrelationMethod selects how pairwise correlation is computed.
type CorrelationMethod string

const (
	Pearson  CorrelationMethod = "pearson"
	Kendall  CorrelationMethod = "kendall"
	Spearman CorrelationMethod = "spearman"
)

// Matrix is a square correlation matrix over named columns.
// Values[i][j] is the correlation between Columns[i] and Columns[j].
type Matrix struct {
	Columns []string
	Values  [][]float64
}

// Correlation computes the pairwise correlation matrix over all numeric
// columns of the table. Columns with zero variance yield NaN entries, the
// same way pandas reports them.
func Correlation(t *Table, method CorrelationMethod) (Matrix, error) {
	var corr func(x, y []float64) float64
	switch method {
	case Pearson, "":
		corr = func(x, y []float64) float64 { return stat.Correlation(x, y, nil) }
	case Kendall:
		corr = func(x, y []float64) float64 { return stat.Kendall(x, y, nil) }
	case Spearman:
		corr = func(x, y []float64) float64 {
			return stat.Correlation(rank(x), rank(y), nil)
		}
	default:
		return Matrix{}, fmt.Errorf("unknown correlation method %q", method)
	}

	names := t.NumericColumns()
	columns := make([][]float64, len(names))
	for i, name := range names {
		columns[i], _ = t.Numeric(name)
	}

	m := Matrix{Columns: names, Values: make([][]float64, len(names))}
	for i := range names {
		m.Values[i] = make([]float64, len(names))
		for j := range names {
			if j < i {
				m.Values[i][j] = m.Values[j][i]
				continue
			}
			m.Values[i][j] = corr(columns[i], columns[j])
		}
	}
	return m, nil
}

// rank converts values to their fractional ranks, averaging ties, which
// turns Pearson correlation into Spearman.
func rank(values []float64) []float64 {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })

	ranks := make([]float64, len(values))
	for i := 0; i < len(idx); {
		j := i
		for j+1 < len(idx) && values[idx[j+1]] == values[idx[i]] {
			j++
		}
		// Average rank across the tie group, 1-based.
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranks[idx[k]] = avg
		}
		i = j + 1
	}
	return ranks
}
