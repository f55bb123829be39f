package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	"MarketFetch/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external readers don't block the writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at  INTEGER NOT NULL,
			finished_at INTEGER NOT NULL,
			succeeded   INTEGER NOT NULL,
			total       INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at)`,

		`CREATE TABLE IF NOT EXISTS fetch_results (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id  INTEGER NOT NULL,
			symbol  TEXT NOT NULL,
			outcome TEXT NOT NULL,
			message TEXT,
			path    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_run ON fetch_results(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_results_symbol ON fetch_results(symbol)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun stores one runs row plus one fetch_results row per symbol.
func (r *SQLiteRecorder) RecordRun(sum *model.Summary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.Exec(`INSERT INTO runs (started_at, finished_at, succeeded, total)
		VALUES (?,?,?,?)`,
		sum.StartedAt.Unix(), sum.FinishedAt.Unix(), sum.Succeeded(), sum.Total,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	for _, fr := range sum.Results {
		if _, err := r.db.Exec(`INSERT INTO fetch_results (run_id, symbol, outcome, message, path)
			VALUES (?,?,?,?,?)`,
			runID, fr.Symbol, string(fr.Outcome), fr.Message, fr.Path,
		); err != nil {
			return fmt.Errorf("insert result for %s: %w", fr.Symbol, err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
