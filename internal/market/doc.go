// Package market generates and summarizes synthetic cryptocurrency market data.
//
// A Series is one row per day: price, base volume, market capitalization and
// USD trading volume. Generation combines a configurable base price, a linear
// upward trend and gaussian noise; base volume is a log-normal draw so it is
// always positive. Market cap and USD trading volume are derived from price
// and volume, never stored independently.
//
// Summarize computes the descriptive statistics used by report generation:
// current/max/min price, average volume, price volatility (sample standard
// deviation), total return percent and current market cap. Calling it on an
// empty series returns ErrNoData.
package market
