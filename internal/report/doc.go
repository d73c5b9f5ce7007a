// Package report assembles full analysis reports: the four standard charts
// rendered concurrently, a metrics text file and an Excel workbook, all
// tagged with a unique run ID.
package report
