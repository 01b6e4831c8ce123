package report

import (
	"testing"
	"time"

	"github.com/flashbots/contender-report/src/dataset"
)

func rec(startMs, endMs int64, gas float64, kind string, block uint64) dataset.TransactionRecord {
	return dataset.TransactionRecord{
		StartTime:   time.UnixMilli(startMs).UTC(),
		EndTime:     time.UnixMilli(endMs).UTC(),
		GasUsed:     gas,
		Kind:        kind,
		BlockNumber: block,
	}
}

func TestHistogram(t *testing.T) {
	vals := make([]float64, 20)
	for i := range vals {
		vals[i] = float64(i)
	}
	bins := histogram(vals, 20)
	if len(bins) != 20 {
		t.Fatalf("expected 20 bins got %d", len(bins))
	}
	total := 0
	for i, b := range bins {
		if b.Count != 1 {
			t.Fatalf("bin %d: count %d want 1", i, b.Count)
		}
		total += b.Count
	}
	if total != len(vals) {
		t.Fatalf("bin counts %d do not cover %d values", total, len(vals))
	}
	// The maximum value must land in the last bin, not fall off the edge.
	if bins[19].Count != 1 {
		t.Fatalf("max value missing from last bin")
	}
}

func TestHistogramConstantValues(t *testing.T) {
	bins := histogram([]float64{5, 5, 5}, 20)
	if len(bins) != 1 || bins[0].Count != 3 {
		t.Fatalf("expected one bin with 3 values got %+v", bins)
	}
}

func TestHistogramEmpty(t *testing.T) {
	if bins := histogram(nil, 20); bins != nil {
		t.Fatalf("expected nil bins got %+v", bins)
	}
}

func TestSecondBucketsZeroFillsGaps(t *testing.T) {
	recs := []dataset.TransactionRecord{
		rec(0, 100, 1, "a", 1),
		rec(200, 300, 1, "a", 1),
		rec(3400, 3500, 1, "a", 1),
	}
	secs, counts := secondBuckets(recs)
	if len(secs) != 4 || len(counts) != 4 {
		t.Fatalf("expected 4 buckets got %d", len(secs))
	}
	want := []float64{2, 0, 0, 1}
	for i := range want {
		if secs[i] != float64(i) {
			t.Fatalf("bucket %d: x %v want %d", i, secs[i], i)
		}
		if counts[i] != want[i] {
			t.Fatalf("bucket %d: count %v want %v", i, counts[i], want[i])
		}
	}
}

func TestKindMeans(t *testing.T) {
	recs := []dataset.TransactionRecord{
		rec(0, 100, 21000, "transfer", 1),
		rec(0, 100, 23000, "transfer", 1),
		rec(0, 100, 50000, "swap", 1),
	}
	kinds, means := kindMeans(recs, func(r dataset.TransactionRecord) float64 { return r.GasUsed })
	if len(kinds) != 2 || kinds[0] != "swap" || kinds[1] != "transfer" {
		t.Fatalf("unexpected kind order: %v", kinds)
	}
	if means[0] != 50000 || means[1] != 22000 {
		t.Fatalf("unexpected means: %v", means)
	}
}

func TestBlockSeries(t *testing.T) {
	recs := []dataset.TransactionRecord{
		rec(0, 400, 1, "a", 7),
		rec(0, 200, 1, "a", 3),
		rec(0, 600, 1, "a", 7),
	}
	dataset.Derive(recs, 2)
	blocks, meanTTI, counts := blockSeries(recs)
	if len(blocks) != 2 || blocks[0] != 3 || blocks[1] != 7 {
		t.Fatalf("blocks not ascending distinct: %v", blocks)
	}
	if meanTTI[0] != 200 || meanTTI[1] != 500 {
		t.Fatalf("unexpected per-block means: %v", meanTTI)
	}
	if counts[0] != 1 || counts[1] != 2 {
		t.Fatalf("unexpected per-block counts: %v", counts)
	}
}

// The cumulative gas series must be non-decreasing for any input ordering.
func TestCumulativeGasMonotonic(t *testing.T) {
	recs := []dataset.TransactionRecord{
		rec(0, 5000, 30000, "a", 1),
		rec(0, 1000, 21000, "a", 1),
		rec(0, 3000, 45000, "a", 1),
		rec(0, 2000, 9000, "a", 1),
	}
	ordered := sortedByEndTime(recs)
	var cum, prev float64
	for i, r := range ordered {
		cum += r.GasUsed
		if cum < prev {
			t.Fatalf("cumulative gas decreased at index %d", i)
		}
		prev = cum
	}
	if ordered[0].EndTime.After(ordered[1].EndTime) {
		t.Fatalf("records not sorted by end time")
	}
}
