package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transformTable() *Table {
	return &Table{
		Columns: []string{"symbol", "exchange", "price", "volume"},
		Rows: [][]string{
			{"BTC", "binance", "100", "1"},
			{"BTC", "kraken", "102", "2"},
			{"ETH", "binance", "10", "3"},
			{"ETH", "kraken", "12", "4"},
			{"ETH", "binance", "14", "5"},
		},
	}
}

func TestGroupBy(t *testing.T) {
	t.Run("mean by single key", func(t *testing.T) {
		got, err := GroupBy(transformTable(), []string{"symbol"}, []Aggregate{
			{Column: "price", Func: AggMean},
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"symbol", "price_mean"}, got.Columns)
		require.Len(t, got.Rows, 2)
		// Groups sorted by key.
		assert.Equal(t, []string{"BTC", "101"}, got.Rows[0])
		assert.Equal(t, []string{"ETH", "12"}, got.Rows[1])
	})

	t.Run("multiple aggregates", func(t *testing.T) {
		got, err := GroupBy(transformTable(), []string{"symbol"}, []Aggregate{
			{Column: "price", Func: AggMin},
			{Column: "price", Func: AggMax},
			{Column: "volume", Func: AggSum},
			{Column: "exchange", Func: AggCount},
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"symbol", "price_min", "price_max", "volume_sum", "exchange_count"}, got.Columns)
		assert.Equal(t, []string{"BTC", "100", "102", "3", "2"}, got.Rows[0])
		assert.Equal(t, []string{"ETH", "10", "14", "12", "3"}, got.Rows[1])
	})

	t.Run("multiple keys", func(t *testing.T) {
		got, err := GroupBy(transformTable(), []string{"symbol", "exchange"}, []Aggregate{
			{Column: "volume", Func: AggSum},
		})
		require.NoError(t, err)

		require.Len(t, got.Rows, 4)
		assert.Equal(t, []string{"ETH", "binance", "8"}, got.Rows[2])
	})

	t.Run("unknown key column", func(t *testing.T) {
		_, err := GroupBy(transformTable(), []string{"missing"}, []Aggregate{{Column: "price", Func: AggSum}})
		assert.Error(t, err)
	})

	t.Run("unknown value column", func(t *testing.T) {
		_, err := GroupBy(transformTable(), []string{"symbol"}, []Aggregate{{Column: "missing", Func: AggSum}})
		assert.Error(t, err)
	})

	t.Run("unknown aggregation", func(t *testing.T) {
		_, err := GroupBy(transformTable(), []string{"symbol"}, []Aggregate{{Column: "price", Func: "median"}})
		assert.Error(t, err)
	})

	t.Run("non-numeric value column", func(t *testing.T) {
		_, err := GroupBy(transformTable(), []string{"symbol"}, []Aggregate{{Column: "exchange", Func: AggSum}})
		assert.Error(t, err)
	})

	t.Run("count does not require numeric", func(t *testing.T) {
		got, err := GroupBy(transformTable(), []string{"symbol"}, []Aggregate{{Column: "exchange", Func: AggCount}})
		require.NoError(t, err)
		assert.Equal(t, []string{"BTC", "2"}, got.Rows[0])
	})

	t.Run("no keys", func(t *testing.T) {
		_, err := GroupBy(transformTable(), nil, []Aggregate{{Column: "price", Func: AggSum}})
		assert.Error(t, err)
	})
}

func TestFilter(t *testing.T) {
	t.Run("single condition", func(t *testing.T) {
		got, err := Filter(transformTable(), map[string]string{"symbol": "ETH"})
		require.NoError(t, err)
		assert.Len(t, got.Rows, 3)
	})

	t.Run("multiple conditions", func(t *testing.T) {
		got, err := Filter(transformTable(), map[string]string{
			"symbol":   "ETH",
			"exchange": "kraken",
		})
		require.NoError(t, err)
		require.Len(t, got.Rows, 1)
		assert.Equal(t, []string{"ETH", "kraken", "12", "4"}, got.Rows[0])
	})

	t.Run("no matches", func(t *testing.T) {
		got, err := Filter(transformTable(), map[string]string{"symbol": "DOGE"})
		require.NoError(t, err)
		assert.Empty(t, got.Rows)
		assert.Equal(t, transformTable().Columns, got.Columns)
	})

	t.Run("unknown column", func(t *testing.T) {
		_, err := Filter(transformTable(), map[string]string{"missing": "x"})
		assert.Error(t, err)
	})

	t.Run("empty conditions returns all rows", func(t *testing.T) {
		got, err := Filter(transformTable(), nil)
		require.NoError(t, err)
		assert.Len(t, got.Rows, 5)
	})
}
