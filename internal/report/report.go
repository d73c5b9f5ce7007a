package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"cryptolens/internal/chart"
	"cryptolens/internal/market"
)

// Standard file names within a report directory.
const (
	PriceHistoryFile      = "price_history.png"
	VolumeFile            = "volume.png"
	PriceDistributionFile = "price_distribution.png"
	MarketCapFile         = "market_cap.png"
	MetricsTextFile       = "metrics.txt"
	MetricsWorkbookFile   = "metrics.xlsx"
)

// Report describes one generated analysis report.
type Report struct {
	RunID       string         `json:"run_id"`
	Symbol      string         `json:"symbol"`
	GeneratedAt time.Time      `json:"generated_at"`
	OutputDir   string         `json:"output_dir"`
	Metrics     market.Metrics `json:"metrics"`
	Files       []string       `json:"files"`
}

// Generator writes full analysis reports: charts plus metric summaries.
type Generator struct {
	logger *slog.Logger
}

// NewGenerator creates a report generator.
func NewGenerator(logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{logger: logger}
}

// Generate renders the four standard charts and the metric summaries for a
// series into outDir, creating it as needed. Charts render concurrently; any
// failure aborts the whole report.
func (g *Generator) Generate(ctx context.Context, s *market.Series, outDir string) (*Report, error) {
	metrics, err := market.Summarize(s)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("report: create output dir: %w", err)
	}

	runID := uuid.New().String()
	g.logger.InfoContext(ctx, "generating report",
		"run_id", runID,
		"symbol", s.Symbol,
		"points", s.Len(),
		"output_dir", outDir,
	)

	charts := []struct {
		name   string
		render func(*market.Series, string) error
	}{
		{PriceHistoryFile, chart.PriceHistory},
		{VolumeFile, chart.TradingVolume},
		{PriceDistributionFile, chart.PriceDistribution},
		{MarketCapFile, chart.MarketCap},
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for _, c := range charts {
		c := c
		eg.Go(func() error {
			select {
			case <-egCtx.Done():
				return egCtx.Err()
			default:
			}
			if err := c.render(s, filepath.Join(outDir, c.name)); err != nil {
				return fmt.Errorf("%s: %w", c.name, err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("report: render charts: %w", err)
	}

	if err := writeMetricsText(filepath.Join(outDir, MetricsTextFile), s.Symbol, metrics); err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	if err := writeMetricsWorkbook(filepath.Join(outDir, MetricsWorkbookFile), s.Symbol, metrics); err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}

	rep := &Report{
		RunID:       runID,
		Symbol:      s.Symbol,
		GeneratedAt: time.Now(),
		OutputDir:   outDir,
		Metrics:     metrics,
		Files: []string{
			PriceHistoryFile, VolumeFile, PriceDistributionFile,
			MarketCapFile, MetricsTextFile, MetricsWorkbookFile,
		},
	}

	g.logger.InfoContext(ctx, "report complete",
		"run_id", runID,
		"symbol", s.Symbol,
		"files", len(rep.Files),
	)
	return rep, nil
}

// writeMetricsText writes the metrics in stable order as a small text report.
func writeMetricsText(path, symbol string, m market.Metrics) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Analysis Report - %s\n", symbol)
	b.WriteString(strings.Repeat("=", 50))
	b.WriteString("\n\n")
	for _, row := range m.Rows() {
		fmt.Fprintf(&b, "%s: %.2f\n", row.Name, row.Value)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write metrics text: %w", err)
	}
	return nil
}
