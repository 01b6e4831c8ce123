// Package dataset loads contender transaction inclusion records from a CSV
// export or directly from a contender run database, and attaches the derived
// latency fields every downstream consumer reads.
//
// Records are loaded fully into memory once; after Derive runs the slice is
// treated as read-only by the summarizer and every chart.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Required CSV columns. block_number is read when present (it always is in a
// contender export) but a file without it still summarizes; per-block charts
// then collapse onto block 0.
var requiredColumns = []string{"start_time", "end_time", "gas_used", "tx_hash", "kind"}

// TransactionRecord is one transaction inclusion observation.
type TransactionRecord struct {
	TxHash      string
	StartTime   time.Time
	EndTime     time.Time
	GasUsed     float64
	Kind        string
	BlockNumber uint64

	// Derived by Derive; zero until then.
	TimeToIncludeMs     float64
	TimeToIncludeBlocks float64
}

// LoadCSV reads a contender report CSV. Column order is free; unknown columns
// are ignored. Times are integer milliseconds since epoch.
func LoadCSV(path string) ([]TransactionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &InputNotFoundError{Path: path, Err: err}
	}
	defer f.Close()
	return parseCSV(f)
}

func parseCSV(r io.Reader) ([]TransactionRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, &MissingFieldError{Fields: append([]string(nil), requiredColumns...)}
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingFieldError{Fields: missing}
	}
	blockCol, hasBlock := cols["block_number"]
	if !hasBlock {
		Warnf("input has no block_number column; per-block charts will be degenerate")
	}

	var records []TransactionRecord
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", row, err)
		}
		startMs, err := parseEpochMs(rec[cols["start_time"]])
		if err != nil {
			return nil, &MalformedTimestampError{Column: "start_time", Value: rec[cols["start_time"]], Row: row}
		}
		endMs, err := parseEpochMs(rec[cols["end_time"]])
		if err != nil {
			return nil, &MalformedTimestampError{Column: "end_time", Value: rec[cols["end_time"]], Row: row}
		}
		gas, err := strconv.ParseFloat(strings.TrimSpace(rec[cols["gas_used"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: column gas_used: %q is not numeric", row, rec[cols["gas_used"]])
		}
		var block uint64
		if hasBlock {
			block, err = strconv.ParseUint(strings.TrimSpace(rec[blockCol]), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: column block_number: %q is not an integer", row, rec[blockCol])
			}
		}
		records = append(records, TransactionRecord{
			TxHash:      strings.TrimSpace(rec[cols["tx_hash"]]),
			StartTime:   time.UnixMilli(startMs).UTC(),
			EndTime:     time.UnixMilli(endMs).UTC(),
			GasUsed:     gas,
			Kind:        strings.TrimSpace(rec[cols["kind"]]),
			BlockNumber: block,
		})
	}
	return records, nil
}

func parseEpochMs(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

// Derive attaches the latency fields to every record. blockTimeSeconds is the
// nominal block production interval used to normalize latency into blocks.
// Records are never mutated again after this returns.
func Derive(records []TransactionRecord, blockTimeSeconds float64) {
	for i := range records {
		ms := float64(records[i].EndTime.Sub(records[i].StartTime)) / float64(time.Millisecond)
		records[i].TimeToIncludeMs = ms
		records[i].TimeToIncludeBlocks = ms / (blockTimeSeconds * 1000)
	}
}
