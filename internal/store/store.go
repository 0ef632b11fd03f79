// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists the canonical content model in SQLite: levels,
// subjects, topics, notes, plus the flat lab/question-bank/routine/result
// collections. It is the only component that touches the database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/triptoafsin/notebot-engine/pkg/types"
)

// Store manages the canonical SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the canonical database at path and creates the
// schema if it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("store: database path not configured")
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS levels (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			display_name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			sort_order INTEGER NOT NULL DEFAULT 0,
			metadata TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS subjects (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id INTEGER NOT NULL REFERENCES levels(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			display_name TEXT NOT NULL,
			slug TEXT NOT NULL,
			sort_order INTEGER NOT NULL DEFAULT 0,
			metadata TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(level_id, slug)
		)`,
		`CREATE TABLE IF NOT EXISTS topics (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			subject_id INTEGER NOT NULL REFERENCES subjects(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			display_name TEXT NOT NULL,
			slug TEXT NOT NULL,
			sort_order INTEGER NOT NULL DEFAULT 0,
			metadata TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS notes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			topic_id INTEGER NOT NULL REFERENCES topics(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			url TEXT NOT NULL,
			sort_order INTEGER NOT NULL DEFAULT 0,
			metadata TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS lab_reports (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id INTEGER NOT NULL REFERENCES levels(id) ON DELETE CASCADE,
			subject_slug TEXT NOT NULL,
			topic_name TEXT NOT NULL,
			title TEXT NOT NULL,
			url TEXT NOT NULL,
			sort_order INTEGER NOT NULL DEFAULT 0,
			metadata TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS question_banks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id INTEGER NOT NULL REFERENCES levels(id) ON DELETE CASCADE,
			subject_slug TEXT NOT NULL,
			title TEXT NOT NULL,
			url TEXT NOT NULL,
			sort_order INTEGER NOT NULL DEFAULT 0,
			metadata TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS routines (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id INTEGER NOT NULL REFERENCES levels(id) ON DELETE CASCADE,
			term TEXT,
			title TEXT NOT NULL,
			url TEXT NOT NULL,
			sort_order INTEGER NOT NULL DEFAULT 0,
			metadata TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			url TEXT NOT NULL,
			category TEXT,
			sort_order INTEGER NOT NULL DEFAULT 0,
			metadata TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_subjects_level_id ON subjects(level_id)`,
		`CREATE INDEX IF NOT EXISTS idx_topics_subject_id ON topics(subject_id)`,
		`CREATE INDEX IF NOT EXISTS idx_notes_topic_id ON notes(topic_id)`,
		`CREATE INDEX IF NOT EXISTS idx_lab_reports_level ON lab_reports(level_id, subject_slug)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Wipe deletes every row of every canonical table, children before parents.
// Migration is wipe-then-reinsert, never incremental.
func (s *Store) Wipe(ctx context.Context) error {
	tables := []string{
		"notes", "topics", "subjects", "lab_reports",
		"question_banks", "routines", "results", "levels",
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning wipe transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range tables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("wiping %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// Counts reports the row count of every canonical table, keyed by table name.
func (s *Store) Counts(ctx context.Context) (map[string]int, error) {
	tables := []string{
		"levels", "subjects", "topics", "notes",
		"lab_reports", "question_banks", "routines", "results",
	}
	counts := make(map[string]int, len(tables))
	for _, table := range tables {
		var n int
		if err := s.db.QueryRowContext(ctx, "SELECT count(*) FROM "+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("counting %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}

// --- metadata helpers ---

// marshalMeta serializes a metadata bag for storage. Empty bags store as
// NULL so absence stays distinguishable from an empty object.
func marshalMeta(meta types.Metadata) (any, error) {
	if len(meta) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("marshaling metadata: %w", err)
	}
	return string(data), nil
}

func unmarshalMeta(raw sql.NullString) (types.Metadata, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var meta types.Metadata
	if err := json.Unmarshal([]byte(raw.String), &meta); err != nil {
		return nil, fmt.Errorf("unmarshaling metadata: %w", err)
	}
	return meta, nil
}

// mergeMetadata merges patch into the metadata column of one row. Existing
// keys absent from patch are preserved; the bag is an append-only union,
// replaced wholesale only by a full re-migration.
func (s *Store) mergeMetadata(ctx context.Context, table string, id int64, patch types.Metadata) error {
	if len(patch) == 0 {
		return nil
	}

	var raw sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT metadata FROM "+table+" WHERE id = ?", id,
	).Scan(&raw)
	if err != nil {
		return fmt.Errorf("reading %s metadata: %w", table, err)
	}

	existing, err := unmarshalMeta(raw)
	if err != nil {
		return err
	}
	if existing == nil {
		existing = types.Metadata{}
	}
	for k, v := range patch {
		existing[k] = v
	}

	data, err := json.Marshal(existing)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		"UPDATE "+table+" SET metadata = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		string(data), id,
	)
	if err != nil {
		return fmt.Errorf("updating %s metadata: %w", table, err)
	}
	return nil
}

// MergeLevelMetadata merges patch into a level's metadata bag.
func (s *Store) MergeLevelMetadata(ctx context.Context, id int64, patch types.Metadata) error {
	return s.mergeMetadata(ctx, "levels", id, patch)
}

// MergeSubjectMetadata merges patch into a subject's metadata bag.
func (s *Store) MergeSubjectMetadata(ctx context.Context, id int64, patch types.Metadata) error {
	return s.mergeMetadata(ctx, "subjects", id, patch)
}

// MergeTopicMetadata merges patch into a topic's metadata bag.
func (s *Store) MergeTopicMetadata(ctx context.Context, id int64, patch types.Metadata) error {
	return s.mergeMetadata(ctx, "topics", id, patch)
}
