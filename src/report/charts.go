package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/flashbots/contender-report/src/dataset"
)

// Raster geometry: 10x6in at 300 DPI, pie 8x8in.
const (
	chartWidth  = 3000
	chartHeight = 1800
	pieSize     = 2400
	chartDPI    = 300
)

var (
	scatterBlue = drawing.Color{R: 0, G: 116, B: 217, A: 153}
	lineBlue    = drawing.Color{R: 0, G: 116, B: 217, A: 255}
	lineGreen   = drawing.Color{R: 0, G: 217, B: 101, A: 255}
	lineRed     = drawing.Color{R: 217, G: 83, B: 79, A: 255}
	barOrange   = drawing.Color{R: 255, G: 165, B: 0, A: 255}
)

// pointStyle returns a style that renders points only (no connecting line).
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		DotWidth:    4,
		DotColor:    col,
	}
}

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{StrokeWidth: 2, StrokeColor: col}
}

func linePointStyle(col drawing.Color) chart.Style {
	return chart.Style{StrokeWidth: 2, StrokeColor: col, DotWidth: 3, DotColor: col}
}

// timeFormatter formats go-chart X values carrying epoch nanoseconds.
func timeFormatter(v interface{}) string {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format("15:04:05")
	case float64:
		return time.Unix(0, int64(t)).UTC().Format("15:04:05")
	}
	return ""
}

// Pad to at least two distinct X values; go-chart rejects a zero-width X range.
func padTimeSeries(xs []time.Time, ys []float64) ([]time.Time, []float64) {
	if len(xs) == 0 {
		return xs, ys
	}
	for _, x := range xs[1:] {
		if !x.Equal(xs[0]) {
			return xs, ys
		}
	}
	xs = append(xs, xs[0].Add(time.Millisecond))
	ys = append(ys, ys[len(ys)-1])
	return xs, ys
}

func padSeries(xs, ys []float64) ([]float64, []float64) {
	if len(xs) == 0 {
		return xs, ys
	}
	for _, x := range xs[1:] {
		if x != xs[0] {
			return xs, ys
		}
	}
	xs = append(xs, xs[0]+1)
	ys = append(ys, ys[len(ys)-1])
	return xs, ys
}

// flatYRange returns an explicit axis range when every value is identical,
// which would otherwise leave go-chart with a zero-delta Y domain.
func flatYRange(ys []float64) chart.Range {
	if len(ys) == 0 {
		return nil
	}
	for _, y := range ys[1:] {
		if y != ys[0] {
			return nil
		}
	}
	return &chart.ContinuousRange{Min: ys[0] - 1, Max: ys[0] + 1}
}

// barYRange pins bar chart Y domains to [0, 1.25*max] so flat bar sets still
// have a drawable range.
func barYRange(values []float64) chart.Range {
	var max float64
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	if max <= 0 {
		max = 1
	}
	return &chart.ContinuousRange{Min: 0, Max: max * 1.25}
}

type pngChart interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

func writeChart(c pngChart, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := c.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return nil
}

func binLabel(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// renderHistogram buckets values into 20 bins and draws them as bars labeled
// with each bin's lower edge.
func renderHistogram(values []float64, title, path string) error {
	bins := histogram(values, 20)
	if len(bins) == 0 {
		return errors.New("no values to bin")
	}
	bars := make([]chart.Value, len(bins))
	counts := make([]float64, len(bins))
	for i, b := range bins {
		bars[i] = chart.Value{Value: float64(b.Count), Label: binLabel(b.Lo)}
		counts[i] = float64(b.Count)
	}
	return writeChart(&chart.BarChart{
		Title:      title,
		Width:      chartWidth,
		Height:     chartHeight,
		DPI:        chartDPI,
		BarWidth:   110,
		BarSpacing: 28,
		XAxis:      chart.Style{TextRotationDegrees: 45},
		YAxis:      chart.YAxis{Name: "Frequency", Range: barYRange(counts)},
		Bars:       bars,
	}, path)
}

func renderTimeScatter(records []dataset.TransactionRecord, sel func(dataset.TransactionRecord) float64, title, yLabel, path string) error {
	if len(records) == 0 {
		return errors.New("no records to plot")
	}
	xs := make([]time.Time, len(records))
	ys := make([]float64, len(records))
	for i, r := range records {
		xs[i] = r.StartTime
		ys[i] = sel(r)
	}
	xs, ys = padTimeSeries(xs, ys)
	return writeChart(&chart.Chart{
		Title:  title,
		Width:  chartWidth,
		Height: chartHeight,
		DPI:    chartDPI,
		XAxis:  chart.XAxis{Name: "Start Time", ValueFormatter: timeFormatter},
		YAxis:  chart.YAxis{Name: yLabel, Range: flatYRange(ys)},
		Series: []chart.Series{
			chart.TimeSeries{XValues: xs, YValues: ys, Style: pointStyle(scatterBlue)},
		},
	}, path)
}

func renderGasScatter(records []dataset.TransactionRecord, path string) error {
	if len(records) == 0 {
		return errors.New("no records to plot")
	}
	xs := make([]float64, len(records))
	ys := make([]float64, len(records))
	for i, r := range records {
		xs[i] = r.GasUsed
		ys[i] = r.TimeToIncludeMs
	}
	xs, ys = padSeries(xs, ys)
	return writeChart(&chart.Chart{
		Title:  "Gas Used vs. Confirmation Time",
		Width:  chartWidth,
		Height: chartHeight,
		DPI:    chartDPI,
		XAxis:  chart.XAxis{Name: "Gas Used"},
		YAxis:  chart.YAxis{Name: "Time to Include (ms)", Range: flatYRange(ys)},
		Series: []chart.Series{
			chart.ContinuousSeries{XValues: xs, YValues: ys, Style: pointStyle(scatterBlue)},
		},
	}, path)
}

func renderKindMeanGasBars(records []dataset.TransactionRecord, path string) error {
	kinds, means := kindMeans(records, func(r dataset.TransactionRecord) float64 { return r.GasUsed })
	if len(kinds) == 0 {
		return errors.New("no records to plot")
	}
	bars := make([]chart.Value, len(kinds))
	for i := range kinds {
		bars[i] = chart.Value{Value: means[i], Label: kinds[i]}
	}
	return writeChart(&chart.BarChart{
		Title:      "Average Gas Used per Transaction Type",
		Width:      chartWidth,
		Height:     chartHeight,
		DPI:        chartDPI,
		BarWidth:   140,
		BarSpacing: 40,
		XAxis:      chart.Style{TextRotationDegrees: 45},
		YAxis:      chart.YAxis{Name: "Average Gas Used", Range: barYRange(means)},
		Bars:       bars,
	}, path)
}

func renderTxCountOverTime(records []dataset.TransactionRecord, path string) error {
	secs, counts := secondBuckets(records)
	if len(secs) == 0 {
		return errors.New("no records to plot")
	}
	secs, counts = padSeries(secs, counts)
	return writeChart(&chart.Chart{
		Title:  "Transaction Count Over Time",
		Width:  chartWidth,
		Height: chartHeight,
		DPI:    chartDPI,
		XAxis:  chart.XAxis{Name: "Seconds from Start Time"},
		YAxis:  chart.YAxis{Name: "Number of Transactions", Range: flatYRange(counts)},
		Series: []chart.Series{
			chart.ContinuousSeries{XValues: secs, YValues: counts, Style: linePointStyle(lineBlue)},
		},
	}, path)
}

func renderKindPie(records []dataset.TransactionRecord, path string) error {
	kinds, counts := kindCounts(records)
	if len(kinds) == 0 {
		return errors.New("no records to plot")
	}
	total := float64(len(records))
	values := make([]chart.Value, len(kinds))
	for i := range kinds {
		pct := 100 * float64(counts[i]) / total
		values[i] = chart.Value{
			Value: float64(counts[i]),
			Label: fmt.Sprintf("%s (%.1f%%)", kinds[i], pct),
		}
	}
	return writeChart(&chart.PieChart{
		Title:  "Distribution of Transaction Types",
		Width:  pieSize,
		Height: pieSize,
		DPI:    chartDPI,
		Values: values,
	}, path)
}

func renderCumulativeGas(records []dataset.TransactionRecord, path string) error {
	if len(records) == 0 {
		return errors.New("no records to plot")
	}
	ordered := sortedByEndTime(records)
	xs := make([]time.Time, len(ordered))
	ys := make([]float64, len(ordered))
	var cum float64
	for i, r := range ordered {
		cum += r.GasUsed
		xs[i] = r.EndTime
		ys[i] = cum
	}
	xs, ys = padTimeSeries(xs, ys)
	return writeChart(&chart.Chart{
		Title:  "Cumulative Gas Used Over Time",
		Width:  chartWidth,
		Height: chartHeight,
		DPI:    chartDPI,
		XAxis:  chart.XAxis{Name: "End Time", ValueFormatter: timeFormatter},
		YAxis:  chart.YAxis{Name: "Cumulative Gas Used", Range: flatYRange(ys)},
		Series: []chart.Series{
			chart.TimeSeries{XValues: xs, YValues: ys, Style: lineStyle(lineBlue)},
		},
	}, path)
}

func renderAvgTTIPerBlock(records []dataset.TransactionRecord, path string) error {
	blocks, meanTTI, _ := blockSeries(records)
	if len(blocks) == 0 {
		return errors.New("no records to plot")
	}
	blocks, meanTTI = padSeries(blocks, meanTTI)
	return writeChart(&chart.Chart{
		Title:  "Average Confirmation Time per Block",
		Width:  chartWidth,
		Height: chartHeight,
		DPI:    chartDPI,
		XAxis:  chart.XAxis{Name: "Block Number"},
		YAxis:  chart.YAxis{Name: "Average Time to Include (ms)", Range: flatYRange(meanTTI)},
		Series: []chart.Series{
			chart.ContinuousSeries{XValues: blocks, YValues: meanTTI, Style: linePointStyle(lineGreen)},
		},
	}, path)
}

func renderTxPerBlockBars(records []dataset.TransactionRecord, path string) error {
	blocks, _, counts := blockSeries(records)
	if len(blocks) == 0 {
		return errors.New("no records to plot")
	}
	bars := make([]chart.Value, len(blocks))
	for i := range blocks {
		bars[i] = chart.Value{
			Value: counts[i],
			Label: strconv.FormatUint(uint64(blocks[i]), 10),
			Style: chart.Style{FillColor: barOrange, StrokeColor: barOrange},
		}
	}
	return writeChart(&chart.BarChart{
		Title:      "Transactions per Block",
		Width:      chartWidth,
		Height:     chartHeight,
		DPI:        chartDPI,
		BarWidth:   100,
		BarSpacing: 30,
		XAxis:      chart.Style{},
		YAxis:      chart.YAxis{Name: "Number of Transactions", Range: barYRange(counts)},
		Bars:       bars,
	}, path)
}

func renderGasOverTime(records []dataset.TransactionRecord, path string) error {
	if len(records) == 0 {
		return errors.New("no records to plot")
	}
	ordered := sortedByEndTime(records)
	xs := make([]time.Time, len(ordered))
	ys := make([]float64, len(ordered))
	for i, r := range ordered {
		xs[i] = r.EndTime
		ys[i] = r.GasUsed
	}
	xs, ys = padTimeSeries(xs, ys)
	return writeChart(&chart.Chart{
		Title:  "Gas Used Over Time",
		Width:  chartWidth,
		Height: chartHeight,
		DPI:    chartDPI,
		XAxis:  chart.XAxis{Name: "End Time", ValueFormatter: timeFormatter},
		YAxis:  chart.YAxis{Name: "Gas Used", Range: flatYRange(ys)},
		Series: []chart.Series{
			chart.TimeSeries{XValues: xs, YValues: ys, Style: linePointStyle(lineRed)},
		},
	}, path)
}
