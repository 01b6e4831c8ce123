package dataset

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func seedRunDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contender.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	stmts := []string{
		"CREATE TABLE runs (id INTEGER PRIMARY KEY, timestamp TEXT NOT NULL, tx_count INTEGER NOT NULL)",
		`CREATE TABLE run_txs (
			id INTEGER PRIMARY KEY,
			run_id INTEGER NOT NULL,
			tx_hash TEXT NOT NULL,
			start_timestamp INTEGER NOT NULL,
			end_timestamp INTEGER NOT NULL,
			block_number INTEGER NOT NULL,
			gas_used TEXT NOT NULL,
			kind TEXT NOT NULL
		)`,
		"INSERT INTO runs (timestamp, tx_count) VALUES ('t0', 1)",
		"INSERT INTO runs (timestamp, tx_count) VALUES ('t1', 2)",
		"INSERT INTO run_txs (run_id, tx_hash, start_timestamp, end_timestamp, block_number, gas_used, kind) VALUES (1, '0xold', 0, 100, 1, '21000', 'transfer')",
		"INSERT INTO run_txs (run_id, tx_hash, start_timestamp, end_timestamp, block_number, gas_used, kind) VALUES (2, '0xaaa', 0, 500, 1, '21000', 'transfer')",
		"INSERT INTO run_txs (run_id, tx_hash, start_timestamp, end_timestamp, block_number, gas_used, kind) VALUES (2, '0xbbb', 1000, 1800, 1, '50000', 'swap')",
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("exec %q: %v", s, err)
		}
	}
	return path
}

func TestLoadRunTxsLatestRun(t *testing.T) {
	path := seedRunDB(t)
	recs, err := LoadRunTxs(path, 0)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records from latest run got %d", len(recs))
	}
	if recs[0].TxHash != "0xaaa" || recs[1].TxHash != "0xbbb" {
		t.Fatalf("unexpected hashes: %+v", recs)
	}
	if recs[1].GasUsed != 50000 {
		t.Fatalf("gas_used text not parsed: %v", recs[1].GasUsed)
	}
	if recs[1].Kind != "swap" || recs[1].BlockNumber != 1 {
		t.Fatalf("unexpected record: %+v", recs[1])
	}
}

func TestLoadRunTxsExplicitRun(t *testing.T) {
	path := seedRunDB(t)
	recs, err := LoadRunTxs(path, 1)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(recs) != 1 || recs[0].TxHash != "0xold" {
		t.Fatalf("expected run 1 records got %+v", recs)
	}
}

func TestLoadRunTxsEmptyRun(t *testing.T) {
	path := seedRunDB(t)
	if _, err := LoadRunTxs(path, 99); err == nil {
		t.Fatalf("expected error for run with no transactions")
	}
}

func TestLoadRunTxsMissingFile(t *testing.T) {
	_, err := LoadRunTxs(filepath.Join(t.TempDir(), "nope.db"), 0)
	var nfe *InputNotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("expected InputNotFoundError got %v", err)
	}
}
