// contender-report entrypoint.
//
// Batch pipeline over a contender run export: load transaction inclusion
// records (CSV or the run database directly), compute summary statistics,
// render the chart catalogue, and write report.md referencing it.
//
// The summarizer runs first and is load-bearing: any failure there aborts the
// run before a single chart is rendered. The renderer then walks the full
// catalogue; by default its first failure aborts too (continue_on_chart_error
// in the YAML config trades that for skip-and-warn).
package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/flashbots/contender-report/src/dataset"
	"github.com/flashbots/contender-report/src/report"
	"github.com/flashbots/contender-report/src/stats"
)

func main() {
	csvPath := flag.String("csv", "", "Path to a contender report CSV")
	dbPath := flag.String("db", "", "Path to a contender run database (alternative to -csv)")
	runID := flag.Uint64("run", 0, "Run ID inside -db; 0 selects the latest run")
	outDir := flag.String("out", "", "Output directory for charts and report.md (created if missing)")
	blockTime := flag.Float64("block-time", 2, "Block time in seconds, used to normalize latency into blocks")
	configPath := flag.String("config", "", "Optional YAML config file")
	logLevel := flag.String("log-level", "info", "Log level (debug|info|warn|error)")
	flag.Parse()

	dataset.SetLogLevel(*logLevel)

	if *outDir == "" {
		dataset.Errorf("-out is required")
		os.Exit(1)
	}
	if (*csvPath == "") == (*dbPath == "") {
		dataset.Errorf("exactly one of -csv or -db is required")
		os.Exit(1)
	}

	cfg := report.Config{Title: report.DefaultTitle}
	if *configPath != "" {
		var err error
		cfg, err = report.LoadConfig(*configPath)
		if err != nil {
			dataset.Errorf("%v", err)
			os.Exit(1)
		}
	}
	// The config file's block time wins when set; the flag covers the rest.
	bt := *blockTime
	if cfg.BlockTime > 0 {
		bt = cfg.BlockTime
	}
	if bt <= 0 {
		dataset.Errorf("block time must be positive, got %v", bt)
		os.Exit(1)
	}

	var (
		records []dataset.TransactionRecord
		err     error
	)
	if *csvPath != "" {
		records, err = dataset.LoadCSV(*csvPath)
	} else {
		records, err = dataset.LoadRunTxs(*dbPath, *runID)
	}
	if err != nil {
		dataset.Errorf("load input: %v", err)
		os.Exit(1)
	}
	dataset.Infof("loaded %d transaction records", len(records))

	dataset.Derive(records, bt)

	summary, err := stats.Summarize(records)
	if err != nil {
		dataset.Errorf("summarize: %v", err)
		os.Exit(1)
	}
	statsText := summary.Format()
	dataset.Infof("%s", statsText)

	charts, err := report.Render(records, *outDir, report.Options{ContinueOnChartError: cfg.ContinueOnChartError})
	if err != nil {
		dataset.Errorf("render charts: %v", err)
		os.Exit(1)
	}

	reportPath := filepath.Join(*outDir, "report.md")
	if err := report.WriteMarkdown(reportPath, cfg.Title, statsText, charts); err != nil {
		dataset.Errorf("%v", err)
		os.Exit(1)
	}
	dataset.Infof("charts saved to %s", *outDir)
	dataset.Infof("markdown report written to %s", reportPath)
}
