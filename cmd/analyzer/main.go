package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cryptolens/internal/config"
	"cryptolens/internal/market"
	"cryptolens/internal/report"
)

func main() {
	outDir := flag.String("out", "", "output directory for reports (defaults to configured reports dir)")
	symbols := flag.String("symbols", "BTC,ETH", "comma-separated list of symbols to analyze")
	days := flag.Int("days", 0, "days of data to generate (defaults to configured value)")
	seed := flag.Uint64("seed", 0, "random seed, 0 means time-based")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	cfg.SetupLogger(os.Stderr)

	if *outDir == "" {
		*outDir = cfg.Paths.ReportsDir
	}
	if *days > 0 {
		cfg.Generation.Days = *days
	}
	if *seed != 0 {
		cfg.Generation.Seed = *seed
	}

	gen, err := market.NewGenerator(cfg.Generation.MarketConfig(), slog.Default())
	if err != nil {
		slog.Error("Failed to create generator", "error", err)
		os.Exit(1)
	}
	reporter := report.NewGenerator(slog.Default())

	ctx := context.Background()
	for _, symbol := range strings.Split(*symbols, ",") {
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if symbol == "" {
			continue
		}

		fmt.Printf("\n=== %s Analysis ===\n", symbol)

		series := gen.Generate(symbol)
		metrics, err := market.Summarize(series)
		if err != nil {
			slog.Error("Failed to summarize series", "symbol", symbol, "error", err)
			os.Exit(1)
		}

		fmt.Printf("\n%s metrics:\n", symbol)
		for _, row := range metrics.Rows() {
			fmt.Printf("%s: %.2f\n", row.Name, row.Value)
		}

		symbolDir := filepath.Join(*outDir, strings.ToLower(symbol))
		rep, err := reporter.Generate(ctx, series, symbolDir)
		if err != nil {
			slog.Error("Failed to generate report", "symbol", symbol, "error", err)
			os.Exit(1)
		}
		slog.Info("Report generated",
			"symbol", symbol,
			"run_id", rep.RunID,
			"output_dir", rep.OutputDir,
		)
	}

	fmt.Printf("\nAnalysis complete. Reports written to %s\n", *outDir)
}
