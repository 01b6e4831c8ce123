// Package stats reduces a loaded dataset into the aggregate throughput and
// latency figures the report opens with.
package stats

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/flashbots/contender-report/src/dataset"
)

// Summary holds every aggregate statistic the report prints, computed once
// over the full in-memory dataset.
type Summary struct {
	StartTime         time.Time
	EndTime           time.Time
	TotalTransactions int
	TotalGas          float64
	TotalTimeSeconds  float64
	TxPerSecond       float64
	GasPerSecond      float64

	MedianTimeToIncludeMs     float64
	MeanTimeToIncludeMs       float64
	MedianTimeToIncludeBlocks float64
	MeanTimeToIncludeBlocks   float64
	MaxTimeToIncludeBlocks    float64
}

// Summarize computes the aggregate statistics. Records must already carry the
// derived latency fields (dataset.Derive). A zero or negative observed span,
// including the empty dataset, fails with DegenerateTimeRangeError: there is
// nothing meaningful to divide by.
func Summarize(records []dataset.TransactionRecord) (*Summary, error) {
	if len(records) == 0 {
		return nil, &dataset.DegenerateTimeRangeError{SpanSeconds: 0}
	}

	start := records[0].StartTime
	end := records[0].EndTime
	var totalGas float64
	ttiMs := make([]float64, len(records))
	ttiBlocks := make([]float64, len(records))
	for i, r := range records {
		if r.StartTime.Before(start) {
			start = r.StartTime
		}
		if r.EndTime.After(end) {
			end = r.EndTime
		}
		totalGas += r.GasUsed
		ttiMs[i] = r.TimeToIncludeMs
		ttiBlocks[i] = r.TimeToIncludeBlocks
	}

	span := end.Sub(start).Seconds()
	if span <= 0 {
		return nil, &dataset.DegenerateTimeRangeError{SpanSeconds: span}
	}

	return &Summary{
		StartTime:                 start,
		EndTime:                   end,
		TotalTransactions:         len(records),
		TotalGas:                  totalGas,
		TotalTimeSeconds:          span,
		TxPerSecond:               float64(len(records)) / span,
		GasPerSecond:              totalGas / span,
		MedianTimeToIncludeMs:     median(ttiMs),
		MeanTimeToIncludeMs:       mean(ttiMs),
		MedianTimeToIncludeBlocks: median(ttiBlocks),
		MeanTimeToIncludeBlocks:   mean(ttiBlocks),
		MaxTimeToIncludeBlocks:    maxVal(ttiBlocks),
	}, nil
}

// Format renders the fixed statistics block included verbatim in the report.
// Label text and ordering are stable; fractional values round to two decimals.
func (s *Summary) Format() string {
	var b strings.Builder
	b.WriteString("\n===== Ethereum Transaction Metrics =====\n")
	fmt.Fprintf(&b, "Start Time: %s\n", s.StartTime.UTC().Format("2006-01-02 15:04:05.000"))
	fmt.Fprintf(&b, "End Time: %s\n", s.EndTime.UTC().Format("2006-01-02 15:04:05.000"))
	fmt.Fprintf(&b, "Total Time Period: %.2f seconds\n", s.TotalTimeSeconds)
	fmt.Fprintf(&b, "Total Number of Transactions: %d\n", s.TotalTransactions)
	fmt.Fprintf(&b, "Total Gas Used: %s\n", strconv.FormatFloat(s.TotalGas, 'f', -1, 64))
	fmt.Fprintf(&b, "Transactions Per Second (TPS): %.2f tx/s\n", s.TxPerSecond)
	fmt.Fprintf(&b, "Gas Used Per Second: %.2f gas/s\n", s.GasPerSecond)
	fmt.Fprintf(&b, "Median Time to Inclusion: %.2f ms\n", s.MedianTimeToIncludeMs)
	fmt.Fprintf(&b, "Mean Time to Inclusion: %.2f ms\n", s.MeanTimeToIncludeMs)
	fmt.Fprintf(&b, "Median Time to Inclusion (in blocks): %.2f blocks\n", s.MedianTimeToIncludeBlocks)
	fmt.Fprintf(&b, "Mean Time to Inclusion (in blocks): %.2f blocks\n", s.MeanTimeToIncludeBlocks)
	fmt.Fprintf(&b, "Max Time to Inclusion (in blocks): %.2f blocks\n", s.MaxTimeToIncludeBlocks)
	b.WriteString("=========================================\n")
	return b.String()
}

func mean(a []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	var s float64
	for _, v := range a {
		s += v
	}
	return s / float64(len(a))
}

// median returns the upper-middle element of the sorted values.
func median(a []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	cp := append([]float64(nil), a...)
	sort.Float64s(cp)
	return cp[len(cp)/2]
}

func maxVal(a []float64) float64 {
	m := math.Inf(-1)
	for _, v := range a {
		if v > m {
			m = v
		}
	}
	if math.IsInf(m, -1) {
		return 0
	}
	return m
}
