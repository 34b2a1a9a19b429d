package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists render cycles to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs
// migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the service writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS render_cycles (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp         INTEGER NOT NULL,
			symbol            TEXT,
			pattern           TEXT,
			candles           INTEGER,
			markers           INTEGER,
			pattern_instances INTEGER,
			range_segments    INTEGER,
			point_markers     INTEGER,
			duration_ms       REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_render_ts ON render_cycles(timestamp)`,
	}
	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRender inserts one render-cycle row.
func (r *SQLiteRecorder) RecordRender(cycle *RenderCycle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO render_cycles
		(timestamp, symbol, pattern, candles, markers,
		 pattern_instances, range_segments, point_markers, duration_ms)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), cycle.Symbol, cycle.Pattern,
		cycle.Candles, cycle.Markers,
		cycle.PatternInstances, cycle.RangeSegments, cycle.PointMarkers,
		float64(cycle.Duration)/float64(time.Millisecond),
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
