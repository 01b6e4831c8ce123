// Package report renders the fixed chart catalogue over a loaded dataset and
// assembles the Markdown report that references it.
//
// The catalogue order and numbering are part of the output contract: the
// report body lists charts in emission order, and filenames are sequentially
// numbered starting at 1.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flashbots/contender-report/src/dataset"
)

// ChartRef names one rendered chart for report assembly.
type ChartRef struct {
	Filename string
	Title    string
}

// Options controls rendering behavior.
type Options struct {
	// ContinueOnChartError downgrades a chart failure to a warning and a
	// shorter report. Default is the strict mode: first failure aborts.
	ContinueOnChartError bool
}

type chartSpec struct {
	slug   string
	title  string
	render func([]dataset.TransactionRecord, string) error
}

func ttiMs(r dataset.TransactionRecord) float64     { return r.TimeToIncludeMs }
func ttiBlocks(r dataset.TransactionRecord) float64 { return r.TimeToIncludeBlocks }

// catalogue is the full ordered chart set. Every entry projects the same
// immutable record slice; none mutates it.
var catalogue = []chartSpec{
	{
		slug:  "histogram_confirmation_times",
		title: "Histogram of Transaction Confirmation Times",
		render: func(recs []dataset.TransactionRecord, path string) error {
			return renderHistogram(values(recs, ttiMs), "Histogram of Transaction Confirmation Times", path)
		},
	},
	{
		slug:  "histogram_confirmation_blocks",
		title: "Histogram of Transaction Confirmation Times (in blocks)",
		render: func(recs []dataset.TransactionRecord, path string) error {
			return renderHistogram(values(recs, ttiBlocks), "Histogram of Transaction Confirmation Times (in blocks)", path)
		},
	},
	{
		slug:  "time_series_confirmation_times",
		title: "Time Series of Confirmation Times",
		render: func(recs []dataset.TransactionRecord, path string) error {
			return renderTimeScatter(recs, ttiMs, "Time Series of Confirmation Times", "Time to Include (ms)", path)
		},
	},
	{
		slug:  "time_series_confirmation_times_in_blocks",
		title: "Time Series of Confirmation Times in blocks",
		render: func(recs []dataset.TransactionRecord, path string) error {
			return renderTimeScatter(recs, ttiBlocks, "Time Series of Confirmation Times in blocks", "Time to Include (blocks)", path)
		},
	},
	{
		slug:  "boxplot_confirmation_times",
		title: "Confirmation Times by Transaction Type",
		render: func(recs []dataset.TransactionRecord, path string) error {
			return renderKindBoxPlot(recs, ttiMs, "Time to Include (ms)", path)
		},
	},
	{
		slug:  "boxplot_confirmation_times_in_blocks",
		title: "Confirmation Times by Transaction Type",
		render: func(recs []dataset.TransactionRecord, path string) error {
			return renderKindBoxPlot(recs, ttiBlocks, "Time to Include (blocks)", path)
		},
	},
	{
		slug:  "histogram_gas_used",
		title: "Histogram of Gas Used",
		render: func(recs []dataset.TransactionRecord, path string) error {
			return renderHistogram(values(recs, func(r dataset.TransactionRecord) float64 { return r.GasUsed }), "Histogram of Gas Used", path)
		},
	},
	{
		slug:   "bar_chart_avg_gas_used",
		title:  "Average Gas Used per Transaction Type",
		render: renderKindMeanGasBars,
	},
	{
		slug:   "scatter_gas_vs_confirmation_time",
		title:  "Gas Used vs. Confirmation Time",
		render: renderGasScatter,
	},
	{
		slug:   "transaction_count_over_time",
		title:  "Transaction Count Over Time",
		render: renderTxCountOverTime,
	},
	{
		slug:   "pie_chart_transaction_types",
		title:  "Distribution of Transaction Types",
		render: renderKindPie,
	},
	{
		slug:   "cumulative_gas_over_time",
		title:  "Cumulative Gas Used Over Time",
		render: renderCumulativeGas,
	},
	{
		slug:   "avg_confirmation_time_per_block",
		title:  "Average Confirmation Time per Block",
		render: renderAvgTTIPerBlock,
	},
	{
		slug:   "transactions_per_block",
		title:  "Transactions per Block",
		render: renderTxPerBlockBars,
	},
	{
		slug:   "gas_used_over_time",
		title:  "Gas Used Over Time",
		render: renderGasOverTime,
	},
}

// CatalogueSize is the number of charts a fully successful run emits.
const CatalogueSize = 15

func values(records []dataset.TransactionRecord, sel func(dataset.TransactionRecord) float64) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = sel(r)
	}
	return out
}

// Render writes every catalogue chart into outDir and returns the ordered
// (filename, title) list for report assembly. The output directory is created
// if absent. With Options.ContinueOnChartError a failing chart is skipped with
// a warning; otherwise the first failure aborts and no list is returned.
func Render(records []dataset.TransactionRecord, outDir string, opts Options) ([]ChartRef, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", outDir, err)
	}
	var refs []ChartRef
	for i, spec := range catalogue {
		filename := fmt.Sprintf("plot_%d_%s.png", i+1, spec.slug)
		if err := spec.render(records, filepath.Join(outDir, filename)); err != nil {
			if opts.ContinueOnChartError {
				dataset.Warnf("skipping chart %s: %v", filename, err)
				continue
			}
			return nil, fmt.Errorf("chart %s: %w", filename, err)
		}
		dataset.Infof("wrote %s", filename)
		refs = append(refs, ChartRef{Filename: filename, Title: spec.title})
	}
	return refs, nil
}

// BuildMarkdown assembles the report text: title heading, the statistics block
// verbatim, then one section per chart in emission order. Deterministic for a
// given input: rerunning the pipeline reproduces the bytes exactly.
func BuildMarkdown(title, statsText string, charts []ChartRef) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	b.WriteString(statsText)
	for _, c := range charts {
		fmt.Fprintf(&b, "## %s\n\n", c.Title)
		fmt.Fprintf(&b, "![%s](%s)\n\n", c.Title, c.Filename)
	}
	return b.String()
}

// WriteMarkdown writes the assembled report to path.
func WriteMarkdown(path, title, statsText string, charts []ChartRef) error {
	if err := os.WriteFile(path, []byte(BuildMarkdown(title, statsText, charts)), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
