// Package storage persists run history in sqlite. The scoring core itself is
// persistence-free; this store only keeps finished reports so past runs can
// be listed and re-examined.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/shizukutanaka/Hayate/internal/report"
)

// ErrNotFound is returned when a run ID has no stored report.
var ErrNotFound = errors.New("run not found")

// Store is a sqlite-backed run-history store.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// RunSummary is one row of the history listing.
type RunSummary struct {
	ID             string    `json:"id"`
	GeneratedAt    time.Time `json:"generated_at"`
	Tier           string    `json:"tier"`
	SingleScore    float64   `json:"single_core_score"`
	MultiScore     float64   `json:"multi_core_score"`
	CoreRatio      float64   `json:"core_ratio"`
	CompositeScore float64   `json:"composite_score"`
	Rating         string    `json:"rating"`
}

// Open opens (and if needed creates) the history database at path.
func Open(logger *zap.Logger, path string) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	s := &Store{db: db, logger: logger.Named("storage")}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id               TEXT PRIMARY KEY,
	generated_at     TIMESTAMP NOT NULL,
	tier             TEXT NOT NULL,
	single_score     REAL NOT NULL,
	multi_score      REAL NOT NULL,
	core_ratio       REAL NOT NULL,
	composite_score  REAL NOT NULL,
	rating           TEXT NOT NULL,
	report_json      BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_generated_at ON runs(generated_at DESC);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate history schema: %w", err)
	}
	return nil
}

// Save stores a finished report.
func (s *Store) Save(r *report.Report) error {
	blob, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO runs (id, generated_at, tier, single_score, multi_score, core_ratio, composite_score, rating, report_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.GeneratedAt, r.Tier,
		r.SingleCoreScore, r.MultiCoreScore, r.CoreRatio,
		r.CompositeScore, r.Rating.String(), blob,
	)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", r.ID, err)
	}
	s.logger.Debug("Run saved", zap.String("id", r.ID))
	return nil
}

// List returns the most recent runs, newest first.
func (s *Store) List(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, generated_at, tier, single_score, multi_score, core_ratio, composite_score, rating
		 FROM runs ORDER BY generated_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var rs RunSummary
		if err := rows.Scan(&rs.ID, &rs.GeneratedAt, &rs.Tier,
			&rs.SingleScore, &rs.MultiScore, &rs.CoreRatio,
			&rs.CompositeScore, &rs.Rating); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		out = append(out, rs)
	}
	return out, rows.Err()
}

// Get loads the full report for one run.
func (s *Store) Get(id string) (*report.Report, error) {
	var blob []byte
	err := s.db.QueryRow(`SELECT report_json FROM runs WHERE id = ?`, id).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", id, err)
	}
	var r report.Report
	if err := json.Unmarshal(blob, &r); err != nil {
		return nil, fmt.Errorf("failed to decode run %s: %w", id, err)
	}
	return &r, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
