package report

import (
	"sort"
	"time"

	"github.com/flashbots/contender-report/src/dataset"
)

// histBin is one histogram bucket over [Lo, Hi). The last bucket is closed on
// both ends so the maximum value lands in it.
type histBin struct {
	Lo, Hi float64
	Count  int
}

// histogram buckets values into equal-width bins spanning [min, max].
// When all values are equal everything lands in a single bucket.
func histogram(values []float64, bins int) []histBin {
	if len(values) == 0 || bins <= 0 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	width := (hi - lo) / float64(bins)
	if width <= 0 {
		return []histBin{{Lo: lo, Hi: hi, Count: len(values)}}
	}
	out := make([]histBin, bins)
	for i := range out {
		out[i].Lo = lo + float64(i)*width
		out[i].Hi = lo + float64(i+1)*width
	}
	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Count++
	}
	return out
}

// kindGroups returns per-kind value groups in sorted kind order.
func kindGroups(records []dataset.TransactionRecord, sel func(dataset.TransactionRecord) float64) ([]string, [][]float64) {
	byKind := map[string][]float64{}
	for _, r := range records {
		byKind[r.Kind] = append(byKind[r.Kind], sel(r))
	}
	kinds := make([]string, 0, len(byKind))
	for k := range byKind {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	groups := make([][]float64, len(kinds))
	for i, k := range kinds {
		groups[i] = byKind[k]
	}
	return kinds, groups
}

// kindCounts returns the number of records per kind in sorted kind order.
func kindCounts(records []dataset.TransactionRecord) ([]string, []int) {
	kinds, groups := kindGroups(records, func(r dataset.TransactionRecord) float64 { return 0 })
	counts := make([]int, len(groups))
	for i, g := range groups {
		counts[i] = len(g)
	}
	return kinds, counts
}

// kindMeans returns the per-kind mean of sel in sorted kind order.
func kindMeans(records []dataset.TransactionRecord, sel func(dataset.TransactionRecord) float64) ([]string, []float64) {
	kinds, groups := kindGroups(records, sel)
	means := make([]float64, len(groups))
	for i, g := range groups {
		var sum float64
		for _, v := range g {
			sum += v
		}
		means[i] = sum / float64(len(g))
	}
	return kinds, means
}

// blockSeries returns distinct block numbers ascending with the per-block mean
// time-to-include (ms) and transaction count.
func blockSeries(records []dataset.TransactionRecord) (blocks, meanTTI, counts []float64) {
	sums := map[uint64]float64{}
	ns := map[uint64]int{}
	for _, r := range records {
		sums[r.BlockNumber] += r.TimeToIncludeMs
		ns[r.BlockNumber]++
	}
	ordered := make([]uint64, 0, len(sums))
	for b := range sums {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })
	for _, b := range ordered {
		blocks = append(blocks, float64(b))
		meanTTI = append(meanTTI, sums[b]/float64(ns[b]))
		counts = append(counts, float64(ns[b]))
	}
	return blocks, meanTTI, counts
}

// sortedByEndTime returns a copy of records ordered by inclusion time
// ascending. The cumulative gas series is non-decreasing by construction
// because it accumulates over this order.
func sortedByEndTime(records []dataset.TransactionRecord) []dataset.TransactionRecord {
	cp := append([]dataset.TransactionRecord(nil), records...)
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].EndTime.Before(cp[j].EndTime) })
	return cp
}

// secondBuckets resamples records into fixed 1-second buckets keyed on seconds
// elapsed since the earliest start time. Gaps are zero-filled.
func secondBuckets(records []dataset.TransactionRecord) (secs, counts []float64) {
	if len(records) == 0 {
		return nil, nil
	}
	minStart := records[0].StartTime
	for _, r := range records[1:] {
		if r.StartTime.Before(minStart) {
			minStart = r.StartTime
		}
	}
	maxIdx := 0
	idxs := make([]int, len(records))
	for i, r := range records {
		idx := int(r.StartTime.Sub(minStart) / time.Second)
		idxs[i] = idx
		if idx > maxIdx {
			maxIdx = idx
		}
	}
	counts = make([]float64, maxIdx+1)
	for _, idx := range idxs {
		counts[idx]++
	}
	secs = make([]float64, maxIdx+1)
	for i := range secs {
		secs[i] = float64(i)
	}
	return secs, counts
}
