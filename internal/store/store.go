// Package store handles SQLite persistence of worksheet and drill history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/mathsheet/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout is fixed width so stored timestamps order correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for history data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS worksheets (
			id INTEGER PRIMARY KEY,
			created_at TEXT NOT NULL,
			kind TEXT NOT NULL,
			title TEXT NOT NULL,
			variant TEXT NOT NULL,
			problems INTEGER NOT NULL,
			pages INTEGER NOT NULL,
			answer_key INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			number INTEGER NOT NULL,
			path TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS drill_sessions (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			kind TEXT NOT NULL,
			variant TEXT NOT NULL,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_worksheets_created_at ON worksheets(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_drill_sessions_ended_at ON drill_sessions(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertWorksheet records a generated worksheet.
func (s *Store) InsertWorksheet(ctx context.Context, rec model.WorksheetRecord) (int64, error) {
	answerKey := 0
	if rec.AnswerKey {
		answerKey = 1
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO worksheets (created_at, kind, title, variant, problems, pages, answer_key, seed, number, path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.CreatedAt.UTC().Format(timeLayout),
		string(rec.Kind),
		rec.Title,
		rec.Variant,
		rec.Problems,
		rec.Pages,
		answerKey,
		rec.Seed,
		rec.Number,
		rec.Path,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListWorksheets returns worksheets oldest first, limited by the filter.
func (s *Store) ListWorksheets(ctx context.Context, filter model.HistoryFilter) ([]model.WorksheetRecord, error) {
	where, args := historyClauses(filter, "created_at")
	query := fmt.Sprintf(`SELECT id, created_at, kind, title, variant, problems, pages, answer_key, seed, number, path
		FROM worksheets
		WHERE %s
		ORDER BY created_at ASC, id ASC`, where)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.WorksheetRecord
	for rows.Next() {
		var rec model.WorksheetRecord
		var createdAt, kind string
		var answerKey int
		if err := rows.Scan(&rec.ID, &createdAt, &kind, &rec.Title, &rec.Variant, &rec.Problems, &rec.Pages, &answerKey, &rec.Seed, &rec.Number, &rec.Path); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, err
		}
		rec.CreatedAt = parsed
		rec.Kind = model.SheetKind(kind)
		rec.AnswerKey = answerKey != 0
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lastN(result, filter.Last), nil
}

// InsertDrillSession stores a completed drill.
func (s *Store) InsertDrillSession(ctx context.Context, session model.DrillSession) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO drill_sessions (started_at, ended_at, kind, variant, correct, incorrect, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		session.StartedAt.UTC().Format(timeLayout),
		session.EndedAt.UTC().Format(timeLayout),
		string(session.Kind),
		session.Variant,
		session.Correct,
		session.Incorrect,
		session.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListDrillSessions returns drill aggregates oldest first, limited by the filter.
func (s *Store) ListDrillSessions(ctx context.Context, filter model.HistoryFilter) ([]model.DrillAggregate, error) {
	where, args := historyClauses(filter, "ended_at")
	query := fmt.Sprintf(`SELECT id, ended_at, kind, variant, correct, incorrect, duration_ms
		FROM drill_sessions
		WHERE %s
		ORDER BY ended_at ASC, id ASC`, where)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.DrillAggregate
	for rows.Next() {
		var agg model.DrillAggregate
		var endedAt, kind string
		if err := rows.Scan(&agg.SessionID, &endedAt, &kind, &agg.Variant, &agg.Correct, &agg.Incorrect, &agg.DurationMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		agg.Kind = model.SheetKind(kind)
		sessions = append(sessions, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lastN(sessions, filter.Last), nil
}

func historyClauses(filter model.HistoryFilter, timeCol string) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Kind != "" {
		clauses = append(clauses, "kind = ?")
		args = append(args, string(filter.Kind))
	}
	if filter.Since != nil {
		clauses = append(clauses, timeCol+" >= ?")
		args = append(args, filter.Since.UTC().Format(timeLayout))
	}
	return strings.Join(clauses, " AND "), args
}

func lastN[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[len(items)-n:]
	}
	return items
}
