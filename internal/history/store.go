// Package history keeps an append-only log of terminal screening records in a
// local SQLite database. It is a collaborator of the workflow, not part of it:
// the workflow produces terminal records, the store persists and reports them.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"hr-screener/internal/screening"
)

const excerptLen = 100

const schema = `
CREATE TABLE IF NOT EXISTS screenings (
	id                  TEXT PRIMARY KEY,
	created_at          TEXT NOT NULL,
	excerpt             TEXT NOT NULL,
	experience_level    TEXT NOT NULL,
	skill_match         TEXT NOT NULL,
	skill_justification TEXT NOT NULL,
	decision            TEXT NOT NULL,
	decision_rationale  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_screenings_created_at ON screenings (created_at);
`

// Store is the SQLite-backed screening log. The pool is capped at a single
// connection so appends are serialized through one writer.
type Store struct {
	pool *sql.DB
}

// Entry is one persisted screening.
type Entry struct {
	ID                 string
	CreatedAt          time.Time
	Excerpt            string
	ExperienceLevel    string
	SkillMatch         string
	SkillJustification string
	Decision           string
	DecisionRationale  string
}

// Stats aggregates decisions over the whole log.
type Stats struct {
	Total       int
	Shortlisted int
	Escalated   int
	Rejected    int
}

// Open opens (creating if needed) the screening log at the given path.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	pool.SetMaxOpenConns(1)
	pool.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, err
	}

	if _, err := pool.ExecContext(ctx, schema); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("migrate screenings schema: %w", err)
	}

	return &Store{pool: pool}, nil
}

func (s *Store) Close() error {
	if s == nil || s.pool == nil {
		return nil
	}
	return s.pool.Close()
}

// Append persists one terminal screening record. Non-terminal records are
// refused: history must never contain a partial or ambiguous decision.
func (s *Store) Append(ctx context.Context, state *screening.State) error {
	if state == nil || !state.Terminal() {
		return fmt.Errorf("only terminal screening records may be appended to history")
	}

	_, err := s.pool.ExecContext(ctx, `
INSERT INTO screenings (id, created_at, excerpt, experience_level, skill_match, skill_justification, decision, decision_rationale)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);`,
		state.ID,
		state.CreatedAt.UTC().Format(time.RFC3339),
		excerpt(state.ApplicationText),
		string(state.ExperienceLevel),
		string(state.SkillMatch),
		state.SkillJustification,
		string(state.Decision),
		state.DecisionRationale,
	)
	if err != nil {
		return fmt.Errorf("append screening %s: %w", state.ID, err)
	}

	return nil
}

// Recent returns up to limit screenings, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 5
	}

	rows, err := s.pool.QueryContext(ctx, `
SELECT id, created_at, excerpt, experience_level, skill_match, skill_justification, decision, decision_rationale
FROM screenings ORDER BY created_at DESC, id DESC LIMIT ?;`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent screenings: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var createdAt string
		if err := rows.Scan(
			&entry.ID,
			&createdAt,
			&entry.Excerpt,
			&entry.ExperienceLevel,
			&entry.SkillMatch,
			&entry.SkillJustification,
			&entry.Decision,
			&entry.DecisionRationale,
		); err != nil {
			return nil, fmt.Errorf("scan screening row: %w", err)
		}

		entry.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at for %s: %w", entry.ID, err)
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Stats aggregates the log into decision totals.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats

	err := s.pool.QueryRowContext(ctx, `
SELECT
	COUNT(*),
	COALESCE(SUM(decision = 'shortlist'), 0),
	COALESCE(SUM(decision = 'escalate'), 0),
	COALESCE(SUM(decision = 'reject'), 0)
FROM screenings;`).Scan(&stats.Total, &stats.Shortlisted, &stats.Escalated, &stats.Rejected)
	if err != nil {
		return Stats{}, fmt.Errorf("query screening stats: %w", err)
	}

	return stats, nil
}

func excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= excerptLen {
		return text
	}
	return string(runes[:excerptLen]) + "..."
}
