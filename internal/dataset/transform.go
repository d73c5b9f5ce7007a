package dataset

import (
	"fmt"
	"sort"
	"strconv"
)

// Aggregation names accepted by GroupBy.
const (
	AggSum   = "sum"
	AggMean  = "mean"
	AggMin   = "min"
	AggMax   = "max"
	AggCount = "count"
)

// Aggregate pairs a value column with an aggregation function name.
type Aggregate struct {
	Column string
	Func   string
}

// GroupBy groups the table rows by the key columns and applies the given
// aggregations. The result has one row per distinct key combination, sorted
// by key, with the key columns first followed by one column per aggregate.
// All aggregations except count require the value column to be numeric.
func GroupBy(t *Table, keys []string, aggs []Aggregate) (*Table, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("groupby: no key columns")
	}
	if len(aggs) == 0 {
		return nil, fmt.Errorf("groupby: no aggregations")
	}

	keyIdx := make([]int, len(keys))
	for i, k := range keys {
		idx := t.ColumnIndex(k)
		if idx < 0 {
			return nil, fmt.Errorf("groupby: unknown key column %q", k)
		}
		keyIdx[i] = idx
	}

	aggIdx := make([]int, len(aggs))
	for i, a := range aggs {
		idx := t.ColumnIndex(a.Column)
		if idx < 0 {
			return nil, fmt.Errorf("groupby: unknown value column %q", a.Column)
		}
		switch a.Func {
		case AggSum, AggMean, AggMin, AggMax, AggCount:
		default:
			return nil, fmt.Errorf("groupby: unknown aggregation %q", a.Func)
		}
		aggIdx[i] = idx
	}

	type group struct {
		key    []string
		values [][]float64 // one slice per aggregate
		count  int
	}

	groups := make(map[string]*group)
	for _, row := range t.Rows {
		key := make([]string, len(keyIdx))
		for i, idx := range keyIdx {
			key[i] = row[idx]
		}
		mapKey := joinKey(key)

		g, ok := groups[mapKey]
		if !ok {
			g = &group{key: key, values: make([][]float64, len(aggs))}
			groups[mapKey] = g
		}
		g.count++

		for i, a := range aggs {
			if a.Func == AggCount {
				continue
			}
			v, err := strconv.ParseFloat(row[aggIdx[i]], 64)
			if err != nil {
				return nil, fmt.Errorf("groupby: column %q is not numeric: %w", a.Column, err)
			}
			g.values[i] = append(g.values[i], v)
		}
	}

	mapKeys := make([]string, 0, len(groups))
	for k := range groups {
		mapKeys = append(mapKeys, k)
	}
	sort.Strings(mapKeys)

	columns := append([]string(nil), keys...)
	for _, a := range aggs {
		columns = append(columns, a.Column+"_"+a.Func)
	}

	out := &Table{Columns: columns}
	for _, mk := range mapKeys {
		g := groups[mk]
		row := append([]string(nil), g.key...)
		for i, a := range aggs {
			row = append(row, formatFloat(aggregate(a.Func, g.values[i], g.count)))
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

func aggregate(fn string, values []float64, count int) float64 {
	if fn == AggCount {
		return float64(count)
	}
	switch fn {
	case AggSum:
		var sum float64
		for _, v := range values {
			sum += v
		}
		return sum
	case AggMean:
		var sum float64
		for _, v := range values {
			sum += v
		}
		return sum / float64(len(values))
	case AggMin:
		min := values[0]
		for _, v := range values[1:] {
			if v < min {
				min = v
			}
		}
		return min
	case AggMax:
		max := values[0]
		for _, v := range values[1:] {
			if v > max {
				max = v
			}
		}
		return max
	}
	return 0
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func joinKey(parts []string) string {
	key := ""
	for i, p := range parts {
		if i > 0 {
			key += "\x1f"
		}
		key += p
	}
	return key
}

// Filter returns the rows where every condition column equals its value.
// Unknown columns are an error rather than an empty result.
func Filter(t *Table, conditions map[string]string) (*Table, error) {
	type cond struct {
		idx   int
		value string
	}
	conds := make([]cond, 0, len(conditions))
	for col, val := range conditions {
		idx := t.ColumnIndex(col)
		if idx < 0 {
			return nil, fmt.Errorf("filter: unknown column %q", col)
		}
		conds = append(conds, cond{idx: idx, value: val})
	}

	out := &Table{Columns: append([]string(nil), t.Columns...)}
	for _, row := range t.Rows {
		match := true
		for _, c := range conds {
			if row[c.idx] != c.value {
				match = false
				break
			}
		}
		if match {
			out.Rows = append(out.Rows, append([]string(nil), row...))
		}
	}
	return out, nil
}
