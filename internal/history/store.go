// Package history persists scoring runs to a local SQLite database so past
// recommendations can be listed and replayed.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/archadvisor/archadvisor/internal/engine"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Run is one persisted scoring run with its full result payload.
type Run struct {
	ID        string          `json:"id"`
	AppName   string          `json:"app_name"`
	Treatment string          `json:"treatment"`
	Primary   string          `json:"primary_recommendation"`
	TopScore  float64         `json:"top_score"`
	CreatedAt string          `json:"created_at"`
	Result    json.RawMessage `json:"result"`
}

// RunSummary is the compact listing view of a run, without the payload.
type RunSummary struct {
	ID        string  `json:"id"`
	AppName   string  `json:"app_name"`
	Treatment string  `json:"treatment"`
	Primary   string  `json:"primary_recommendation"`
	TopScore  float64 `json:"top_score"`
	CreatedAt string  `json:"created_at"`
}

// Store is the run archive backed by SQLite.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the history database at path and runs migrations.
func New(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("history: create data dir: %w", err)
		}
	}

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("history: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("history: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id         TEXT PRIMARY KEY,
			app_name   TEXT NOT NULL,
			treatment  TEXT NOT NULL,
			primary_rec TEXT,
			top_score  REAL NOT NULL DEFAULT 0,
			result     TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE INDEX IF NOT EXISTS idx_runs_app     ON runs(app_name);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveRun archives a scoring result and returns the generated run id.
func (s *Store) SaveRun(result *engine.ScoringResult) (string, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("history: encode result: %w", err)
	}

	id := uuid.NewString()
	topScore := 0.0
	if len(result.Recommendations) > 0 {
		topScore = result.Recommendations[0].Score
	}

	_, err = s.db.Exec(
		`INSERT INTO runs (id, app_name, treatment, primary_rec, top_score, result) VALUES (?, ?, ?, ?, ?, ?)`,
		id, result.AppName, result.Intent.Treatment.Value, result.Summary.Primary, topScore, string(payload),
	)
	if err != nil {
		return "", fmt.Errorf("history: save run: %w", err)
	}
	return id, nil
}

// ListRuns returns recent runs, optionally filtered by application name.
func (s *Store) ListRuns(appName string, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, app_name, treatment, COALESCE(primary_rec, ''), top_score, created_at FROM runs`
	args := []any{}

	if appName != "" {
		query += " WHERE app_name = ?"
		args = append(args, appName)
	}

	query += " ORDER BY created_at DESC, id LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("history: list runs: %w", err)
	}
	defer rows.Close()

	var results []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.AppName, &r.Treatment, &r.Primary, &r.TopScore, &r.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// GetRun retrieves a single run by id, including the stored result payload.
func (s *Store) GetRun(id string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT id, app_name, treatment, COALESCE(primary_rec, ''), top_score, result, created_at FROM runs WHERE id = ?`, id,
	)

	var r Run
	var payload string
	if err := row.Scan(&r.ID, &r.AppName, &r.Treatment, &r.Primary, &r.TopScore, &payload, &r.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("history: run %q not found", id)
		}
		return nil, err
	}
	r.Result = json.RawMessage(payload)
	return &r, nil
}

// DecodeResult unmarshals the stored payload back into a scoring result.
func (r *Run) DecodeResult() (*engine.ScoringResult, error) {
	var result engine.ScoringResult
	if err := json.Unmarshal(r.Result, &result); err != nil {
		return nil, fmt.Errorf("history: decode run %s: %w", r.ID, err)
	}
	return &result, nil
}

// Clear deletes all archived runs and returns the number removed.
func (s *Store) Clear() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM runs`)
	if err != nil {
		return 0, fmt.Errorf("history: clear: %w", err)
	}
	return res.RowsAffected()
}
