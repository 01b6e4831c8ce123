// runstats prints the summary statistics block for a contender run export
// without rendering any charts. Useful for a quick look at a run from a
// terminal.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/flashbots/contender-report/src/dataset"
	"github.com/flashbots/contender-report/src/stats"
)

func main() {
	var (
		csvPath   string
		dbPath    string
		runID     uint64
		blockTime float64
	)
	flag.StringVar(&csvPath, "csv", "", "Path to a contender report CSV")
	flag.StringVar(&dbPath, "db", "", "Path to a contender run database")
	flag.Uint64Var(&runID, "run", 0, "Run ID inside -db; 0 selects the latest run")
	flag.Float64Var(&blockTime, "block-time", 2, "Block time in seconds")
	flag.Parse()

	if (csvPath == "") == (dbPath == "") {
		fmt.Fprintln(os.Stderr, "exactly one of -csv or -db is required")
		os.Exit(1)
	}

	var (
		records []dataset.TransactionRecord
		err     error
	)
	if csvPath != "" {
		records, err = dataset.LoadCSV(csvPath)
	} else {
		records, err = dataset.LoadRunTxs(dbPath, runID)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	dataset.Derive(records, blockTime)
	summary, err := stats.Summarize(records)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(summary.Format())
}
