package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"nichefeed/internal/assemble"
	"nichefeed/internal/filter"
)

// SQLiteSource reads candidate records from a SQLite database written by the
// ingestion pipeline. Per-group attributes are stored as JSON columns;
// populations load in rowid order, which the pipeline keeps stable.
type SQLiteSource struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) a candidate database.
func OpenSQLite(path string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open candidate database: %w", err)
	}
	s := &SQLiteSource{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init candidate schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

func (s *SQLiteSource) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS candidates (
		product_id TEXT PRIMARY KEY,
		startup_json TEXT,
		selection_json TEXT,
		judgments_json TEXT,
		landing_page_json TEXT
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Insert writes one candidate record, replacing any previous record with
// the same product ID.
func (s *SQLiteSource) Insert(ctx context.Context, rec CandidateRecord) error {
	encode := func(v any) (string, error) {
		if v == nil {
			return "", nil
		}
		b, err := json.Marshal(v)
		return string(b), err
	}

	startup, err := encode(rec.Startup)
	if err != nil {
		return fmt.Errorf("encode startup attrs: %w", err)
	}
	selection, err := encode(rec.Selection)
	if err != nil {
		return fmt.Errorf("encode selection attrs: %w", err)
	}
	judgments, err := encode(rec.Judgments)
	if err != nil {
		return fmt.Errorf("encode judgments: %w", err)
	}
	landing, err := encode(rec.LandingPage)
	if err != nil {
		return fmt.Errorf("encode landing page attrs: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO candidates
			(product_id, startup_json, selection_json, judgments_json, landing_page_json)
		VALUES (?, ?, ?, ?, ?)`,
		rec.ProductID, startup, selection, judgments, landing)
	if err != nil {
		return fmt.Errorf("insert candidate %s: %w", rec.ProductID, err)
	}
	return nil
}

// LoadPopulation reads every candidate in rowid order and assembles the
// evaluator snapshots.
func (s *SQLiteSource) LoadPopulation(ctx context.Context) ([]assemble.Candidate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product_id, startup_json, selection_json, judgments_json, landing_page_json
		FROM candidates ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer rows.Close()

	var population []assemble.Candidate
	for rows.Next() {
		var (
			rec                                   CandidateRecord
			startup, selection, judgments, landing string
		)
		if err := rows.Scan(&rec.ProductID, &startup, &selection, &judgments, &landing); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		decode := func(raw string, into any) error {
			if raw == "" {
				return nil
			}
			return json.Unmarshal([]byte(raw), into)
		}
		if err := decode(startup, &rec.Startup); err != nil {
			return nil, fmt.Errorf("candidate %s: decode startup attrs: %w", rec.ProductID, err)
		}
		if err := decode(selection, &rec.Selection); err != nil {
			return nil, fmt.Errorf("candidate %s: decode selection attrs: %w", rec.ProductID, err)
		}
		if err := decode(judgments, &rec.Judgments); err != nil {
			return nil, fmt.Errorf("candidate %s: decode judgments: %w", rec.ProductID, err)
		}
		if err := decode(landing, &rec.LandingPage); err != nil {
			return nil, fmt.Errorf("candidate %s: decode landing page attrs: %w", rec.ProductID, err)
		}

		population = append(population, assemble.Candidate{
			ProductID: rec.ProductID,
			Snapshot:  filter.BuildSnapshot(rec.Startup, rec.Selection, rec.ProductJudgments(), rec.LandingPage),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}
	return population, nil
}
