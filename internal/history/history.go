// Package history provides SQLite-backed storage of past analysis
// reports.
//
// The store keeps finished reports only. It is never consulted by the
// analysis pipeline itself: every analysis rescans its input and
// recomputes function records from scratch, so history has no effect on
// results.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/seekr-dev/seekr/internal/report"

	_ "modernc.org/sqlite"
)

// Store manages the history.db SQLite database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Entry is one recorded analysis.
type Entry struct {
	ID            string
	CreatedAt     time.Time
	Requirement   string
	ProjectType   string
	FeatureCount  int
	LocationCount int
	Report        *report.AnalysisReport
}

// Open opens or creates the history database in the given .seekr
// directory, initializing the schema if the database is new.
func Open(seekrDir string) (*Store, error) {
	dbPath := filepath.Join(seekrDir, "history.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	// WAL mode for better concurrent access from the API server.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	store := &Store{db: db, dbPath: dbPath}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS analyses (
    id TEXT PRIMARY KEY,
    created_at TEXT NOT NULL,
    requirement TEXT NOT NULL,
    project_type TEXT NOT NULL,
    feature_count INTEGER NOT NULL DEFAULT 0,
    location_count INTEGER NOT NULL DEFAULT 0,
    report_json TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at DESC);
`

func (s *Store) initSchema() error {
	_, err := s.db.Exec(schemaSQL)
	return err
}

// Record stores a finished analysis report and returns its generated ID.
func (s *Store) Record(requirement, projectType string, r *report.AnalysisReport) (string, error) {
	reportJSON, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	id := uuid.New().String()
	_, err = s.db.Exec(`
		INSERT INTO analyses (id, created_at, requirement, project_type, feature_count, location_count, report_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, time.Now().UTC().Format(time.RFC3339), requirement, projectType,
		r.FeatureCount(), r.LocationCount(), string(reportJSON),
	)
	if err != nil {
		return "", fmt.Errorf("record analysis: %w", err)
	}
	return id, nil
}

// List returns the most recent entries, newest first, without the full
// report payload. limit <= 0 means no limit.
func (s *Store) List(limit int) ([]Entry, error) {
	query := `
		SELECT id, created_at, requirement, project_type, feature_count, location_count
		FROM analyses ORDER BY created_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt string
		if err := rows.Scan(&e.ID, &createdAt, &e.Requirement, &e.ProjectType,
			&e.FeatureCount, &e.LocationCount); err != nil {
			return nil, fmt.Errorf("scan analysis row: %w", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get retrieves one entry including its full report.
// Returns sql.ErrNoRows if the ID is unknown.
func (s *Store) Get(id string) (*Entry, error) {
	var e Entry
	var createdAt, reportJSON string
	err := s.db.QueryRow(`
		SELECT id, created_at, requirement, project_type, feature_count, location_count, report_json
		FROM analyses WHERE id = ?`, id).
		Scan(&e.ID, &createdAt, &e.Requirement, &e.ProjectType,
			&e.FeatureCount, &e.LocationCount, &reportJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get analysis %s: %w", id, err)
	}

	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	e.Report = &report.AnalysisReport{}
	if err := json.Unmarshal([]byte(reportJSON), e.Report); err != nil {
		return nil, fmt.Errorf("unmarshal report %s: %w", id, err)
	}
	return &e, nil
}

// Clear removes all recorded analyses.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM analyses"); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
