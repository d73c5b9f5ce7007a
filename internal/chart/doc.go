// Package chart renders analysis charts to PNG files.
//
// Series charts (price history, trading volume, price distribution, market
// cap) and the generic helpers (histogram, categorical counts, time series,
// scatter matrix) are built on go-chart. Boxplots and correlation heat maps
// use gonum/plot, which provides the box and heat map primitives go-chart
// lacks. Every render function writes a complete PNG or returns an error;
// empty input is ErrNoData, never a blank file.
package chart
