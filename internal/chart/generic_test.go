package chart

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptolens/internal/dataset"
)

func genericTable() *dataset.Table {
	return &dataset.Table{
		Columns: []string{"date", "exchange", "price", "volume"},
		Rows: [][]string{
			{"2025-01-01", "binance", "100", "10"},
			{"2025-01-02", "binance", "105", "12"},
			{"2025-01-03", "kraken", "103", "9"},
			{"2025-01-08", "kraken", "110", "15"},
			{"2025-01-09", "binance", "108", "11"},
			{"2025-02-01", "coinbase", "120", "20"},
		},
	}
}

func TestCategoricalCounts(t *testing.T) {
	t.Run("renders", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "counts.png")
		require.NoError(t, CategoricalCounts(genericTable(), "exchange", 0, path))
		assertPNG(t, path)
	})

	t.Run("top-n limited", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "counts.png")
		require.NoError(t, CategoricalCounts(genericTable(), "exchange", 2, path))
		assertPNG(t, path)
	})

	t.Run("unknown column", func(t *testing.T) {
		err := CategoricalCounts(genericTable(), "missing", 0, filepath.Join(t.TempDir(), "c.png"))
		assert.Error(t, err)
	})

	t.Run("empty table", func(t *testing.T) {
		tbl := &dataset.Table{Columns: []string{"a"}}
		err := CategoricalCounts(tbl, "a", 0, filepath.Join(t.TempDir(), "c.png"))
		assert.ErrorIs(t, err, ErrNoData)
	})
}

func TestTimeSeries(t *testing.T) {
	freqs := []string{FreqDaily, FreqWeekly, FreqMonthly}
	for _, freq := range freqs {
		t.Run("freq "+freq, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "ts.png")
			require.NoError(t, TimeSeries(genericTable(), "date", "price", freq, path))
			assertPNG(t, path)
		})
	}

	t.Run("empty frequency defaults to daily", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ts.png")
		require.NoError(t, TimeSeries(genericTable(), "date", "price", "", path))
		assertPNG(t, path)
	})

	t.Run("unknown frequency", func(t *testing.T) {
		err := TimeSeries(genericTable(), "date", "price", "Q", filepath.Join(t.TempDir(), "ts.png"))
		assert.Error(t, err)
	})

	t.Run("unknown date column", func(t *testing.T) {
		err := TimeSeries(genericTable(), "missing", "price", FreqDaily, filepath.Join(t.TempDir(), "ts.png"))
		assert.Error(t, err)
	})

	t.Run("non-numeric value column", func(t *testing.T) {
		err := TimeSeries(genericTable(), "date", "exchange", FreqDaily, filepath.Join(t.TempDir(), "ts.png"))
		assert.Error(t, err)
	})

	t.Run("unparseable date", func(t *testing.T) {
		tbl := &dataset.Table{
			Columns: []string{"date", "v"},
			Rows:    [][]string{{"not-a-date", "1"}},
		}
		err := TimeSeries(tbl, "date", "v", FreqDaily, filepath.Join(t.TempDir(), "ts.png"))
		assert.Error(t, err)
	})
}

func TestTruncateToFreq(t *testing.T) {
	ts := time.Date(2025, 1, 15, 13, 45, 0, 0, time.UTC) // a Wednesday

	tests := []struct {
		name string
		freq string
		want time.Time
	}{
		{"daily", FreqDaily, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"weekly to monday", FreqWeekly, time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)},
		{"monthly to first", FreqMonthly, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := truncateToFreq(ts, tt.freq)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("monday stays monday", func(t *testing.T) {
		monday := time.Date(2025, 1, 13, 8, 0, 0, 0, time.UTC)
		got, err := truncateToFreq(monday, FreqWeekly)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC), got)
	})
}

func TestScatterMatrix(t *testing.T) {
	t.Run("explicit columns", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scatter.png")
		require.NoError(t, ScatterMatrix(genericTable(), []string{"price", "volume"}, path))
		assertPNG(t, path)
	})

	t.Run("defaults to numeric columns", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scatter.png")
		require.NoError(t, ScatterMatrix(genericTable(), nil, path))
		assertPNG(t, path)
	})

	t.Run("non-numeric column", func(t *testing.T) {
		err := ScatterMatrix(genericTable(), []string{"exchange"}, filepath.Join(t.TempDir(), "s.png"))
		assert.Error(t, err)
	})

	t.Run("no numeric columns", func(t *testing.T) {
		tbl := &dataset.Table{Columns: []string{"name"}, Rows: [][]string{{"x"}}}
		err := ScatterMatrix(tbl, nil, filepath.Join(t.TempDir(), "s.png"))
		assert.ErrorIs(t, err, ErrNoData)
	})
}

func TestBoxplot(t *testing.T) {
	t.Run("renders", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "box.png")
		require.NoError(t, Boxplot(genericTable(), "exchange", "price", path))
		assertPNG(t, path)
	})

	t.Run("unknown x column", func(t *testing.T) {
		err := Boxplot(genericTable(), "missing", "price", filepath.Join(t.TempDir(), "b.png"))
		assert.Error(t, err)
	})

	t.Run("non-numeric y column", func(t *testing.T) {
		err := Boxplot(genericTable(), "exchange", "date", filepath.Join(t.TempDir(), "b.png"))
		assert.Error(t, err)
	})

	t.Run("empty table", func(t *testing.T) {
		tbl := &dataset.Table{Columns: []string{"x", "y"}}
		err := Boxplot(tbl, "x", "y", filepath.Join(t.TempDir(), "b.png"))
		assert.ErrorIs(t, err, ErrNoData)
	})
}

func TestCorrelationHeatmap(t *testing.T) {
	t.Run("renders", func(t *testing.T) {
		m, err := dataset.Correlation(genericTable(), dataset.Pearson)
		require.NoError(t, err)

		path := filepath.Join(t.TempDir(), "heatmap.png")
		require.NoError(t, CorrelationHeatmap(m, path))
		assertPNG(t, path)
	})

	t.Run("matrix with NaN cells renders", func(t *testing.T) {
		tbl := &dataset.Table{
			Columns: []string{"x", "y"},
			Rows:    [][]string{{"1", "5"}, {"2", "5"}, {"3", "5"}},
		}
		m, err := dataset.Correlation(tbl, dataset.Pearson)
		require.NoError(t, err)

		path := filepath.Join(t.TempDir(), "heatmap.png")
		require.NoError(t, CorrelationHeatmap(m, path))
		assertPNG(t, path)
	})

	t.Run("empty matrix", func(t *testing.T) {
		err := CorrelationHeatmap(dataset.Matrix{}, filepath.Join(t.TempDir(), "h.png"))
		assert.ErrorIs(t, err, ErrNoData)
	})
}
