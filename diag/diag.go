// Package diag implements the optional run-diagnostics store: a small
// libsql-backed table recording one row of metadata per run (query-file
// path or PARAM invocation, per-type query counts, wall-clock duration,
// final task-graph node count). This is explicitly not index persistence
// — it never round-trips a FileIndexes, only the shape of a run — and is
// only opened when the CLI's --diag flag names a path. Grounded on
// vvfs/db/centraldbprovider.go's sql.Open + CREATE TABLE IF NOT EXISTS
// shape.
package diag

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/tursodatabase/go-libsql"
)

// Store owns the run-diagnostics database connection.
type Store struct {
	db *sql.DB
}

// Open connects to (creating if absent) the libsql-compatible database at
// path and ensures the runs table exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("libsql", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("diag: open %s: %w", path, err)
	}
	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		invocation TEXT NOT NULL,
		q1_count INTEGER NOT NULL,
		q2_count INTEGER NOT NULL,
		q3_count INTEGER NOT NULL,
		q4_count INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		graph_nodes INTEGER NOT NULL,
		recorded_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return fmt.Errorf("diag: create runs table: %w", err)
	}
	return nil
}

// Run summarises one completed pipeline execution.
type Run struct {
	Invocation string
	Q1Count    int
	Q2Count    int
	Q3Count    int
	Q4Count    int
	Duration   time.Duration
	GraphNodes int
}

// Record inserts one run row, stamped with a fresh run id.
func (s *Store) Record(r Run) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.db.Exec(
		`INSERT INTO runs (id, invocation, q1_count, q2_count, q3_count, q4_count, duration_ms, graph_nodes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id.String(), r.Invocation, r.Q1Count, r.Q2Count, r.Q3Count, r.Q4Count,
		r.Duration.Milliseconds(), r.GraphNodes,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("diag: record run: %w", err)
	}
	return id, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
