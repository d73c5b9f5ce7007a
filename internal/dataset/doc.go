// Package dataset provides generic tabular-data helpers: CSV loading with
// cleanup, describe-style statistics, correlation matrices, grouping and
// filtering. Tables hold string cells with a typed numeric view on demand.
package dataset
