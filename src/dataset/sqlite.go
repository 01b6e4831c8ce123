package dataset

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

// LoadRunTxs reads transaction records straight out of a contender run
// database, bypassing the CSV export. runID 0 selects the latest run.
//
// Schema (contender): run_txs(run_id, tx_hash, start_timestamp, end_timestamp,
// block_number, gas_used TEXT, kind), runs(id INTEGER PRIMARY KEY, ...).
// Timestamps are stored as integer milliseconds, same as the CSV export.
func LoadRunTxs(path string, runID uint64) ([]TransactionRecord, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &InputNotFoundError{Path: path, Err: err}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &InputNotFoundError{Path: path, Err: err}
	}
	defer db.Close()

	if runID == 0 {
		// Latest run id equals the run count; ids are assigned sequentially.
		if err := db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&runID); err != nil {
			return nil, fmt.Errorf("count runs: %w", err)
		}
		if runID == 0 {
			return nil, fmt.Errorf("no runs recorded in %s", path)
		}
		Infof("no run id provided; using latest run id %d", runID)
	}

	rows, err := db.Query(
		"SELECT tx_hash, start_timestamp, end_timestamp, block_number, gas_used, kind FROM run_txs WHERE run_id = ?",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query run %d: %w", runID, err)
	}
	defer rows.Close()

	var records []TransactionRecord
	for rows.Next() {
		var (
			hash, gasText, kind string
			startMs, endMs      int64
			block               uint64
		)
		if err := rows.Scan(&hash, &startMs, &endMs, &block, &gasText, &kind); err != nil {
			return nil, fmt.Errorf("scan run_txs row: %w", err)
		}
		gas, err := strconv.ParseFloat(gasText, 64)
		if err != nil {
			return nil, fmt.Errorf("run %d tx %s: gas_used %q is not numeric", runID, hash, gasText)
		}
		records = append(records, TransactionRecord{
			TxHash:      hash,
			StartTime:   time.UnixMilli(startMs).UTC(),
			EndTime:     time.UnixMilli(endMs).UTC(),
			GasUsed:     gas,
			Kind:        kind,
			BlockNumber: block,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run_txs: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("run %d has no transactions", runID)
	}
	return records, nil
}
