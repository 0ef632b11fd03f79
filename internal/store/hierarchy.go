// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/triptoafsin/notebot-engine/pkg/types"
)

// CreateLevel inserts a level and returns its id.
func (s *Store) CreateLevel(ctx context.Context, l types.Level) (int64, error) {
	meta, err := marshalMeta(l.Metadata)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO levels (name, display_name, slug, sort_order, metadata)
		 VALUES (?, ?, ?, ?, ?)`,
		l.Name, l.DisplayName, l.Slug, l.SortOrder, meta,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting level %q: %w", l.Slug, err)
	}
	return res.LastInsertId()
}

// CreateSubject inserts a subject and returns its id.
func (s *Store) CreateSubject(ctx context.Context, sub types.Subject) (int64, error) {
	meta, err := marshalMeta(sub.Metadata)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO subjects (level_id, name, display_name, slug, sort_order, metadata)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sub.LevelID, sub.Name, sub.DisplayName, sub.Slug, sub.SortOrder, meta,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting subject %q: %w", sub.Slug, err)
	}
	return res.LastInsertId()
}

// CreateTopic inserts a topic and returns its id.
func (s *Store) CreateTopic(ctx context.Context, t types.Topic) (int64, error) {
	meta, err := marshalMeta(t.Metadata)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO topics (subject_id, name, display_name, slug, sort_order, metadata)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.SubjectID, t.Name, t.DisplayName, t.Slug, t.SortOrder, meta,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting topic %q: %w", t.Slug, err)
	}
	return res.LastInsertId()
}

// CreateNote inserts a note and returns its id.
func (s *Store) CreateNote(ctx context.Context, n types.Note) (int64, error) {
	meta, err := marshalMeta(n.Metadata)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (topic_id, title, url, sort_order, metadata)
		 VALUES (?, ?, ?, ?, ?)`,
		n.TopicID, n.Title, n.URL, n.SortOrder, meta,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting note %q: %w", n.Title, err)
	}
	return res.LastInsertId()
}

const levelCols = `id, name, display_name, slug, sort_order, metadata, created_at, updated_at`

func scanLevel(row interface{ Scan(...any) error }) (types.Level, error) {
	var l types.Level
	var rawMeta sql.NullString
	err := row.Scan(&l.ID, &l.Name, &l.DisplayName, &l.Slug, &l.SortOrder,
		&rawMeta, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return types.Level{}, err
	}
	l.Metadata, err = unmarshalMeta(rawMeta)
	return l, err
}

// Levels returns all levels in presentation order.
func (s *Store) Levels(ctx context.Context) ([]types.Level, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+levelCols+` FROM levels ORDER BY sort_order ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying levels: %w", err)
	}
	defer rows.Close()

	var levels []types.Level
	for rows.Next() {
		l, err := scanLevel(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning level: %w", err)
		}
		levels = append(levels, l)
	}
	return levels, rows.Err()
}

// LevelBySlug returns the level with the given route slug, or nil when no
// such level exists.
func (s *Store) LevelBySlug(ctx context.Context, slug string) (*types.Level, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+levelCols+` FROM levels WHERE slug = ?`, slug)
	l, err := scanLevel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying level %q: %w", slug, err)
	}
	return &l, nil
}

const subjectCols = `id, level_id, name, display_name, slug, sort_order, metadata, created_at, updated_at`

func scanSubject(row interface{ Scan(...any) error }) (types.Subject, error) {
	var sub types.Subject
	var rawMeta sql.NullString
	err := row.Scan(&sub.ID, &sub.LevelID, &sub.Name, &sub.DisplayName, &sub.Slug,
		&sub.SortOrder, &rawMeta, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return types.Subject{}, err
	}
	sub.Metadata, err = unmarshalMeta(rawMeta)
	return sub, err
}

// SubjectsByLevel returns a level's subjects in presentation order.
func (s *Store) SubjectsByLevel(ctx context.Context, levelID int64) ([]types.Subject, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+subjectCols+` FROM subjects WHERE level_id = ? ORDER BY sort_order ASC`,
		levelID)
	if err != nil {
		return nil, fmt.Errorf("querying subjects for level %d: %w", levelID, err)
	}
	defer rows.Close()

	var subs []types.Subject
	for rows.Next() {
		sub, err := scanSubject(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning subject: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// SubjectBySlug returns the subject with the given slug within a level, or
// nil when absent.
func (s *Store) SubjectBySlug(ctx context.Context, levelID int64, slug string) (*types.Subject, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+subjectCols+` FROM subjects WHERE level_id = ? AND slug = ?`,
		levelID, slug)
	sub, err := scanSubject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying subject %q: %w", slug, err)
	}
	return &sub, nil
}

// SubjectByDisplayName returns the subject with the given display name
// within a level, or nil when absent. Used by the fixup pass, which keys
// legacy direct-link items by their display label.
func (s *Store) SubjectByDisplayName(ctx context.Context, levelID int64, displayName string) (*types.Subject, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+subjectCols+` FROM subjects WHERE level_id = ? AND display_name = ?`,
		levelID, displayName)
	sub, err := scanSubject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying subject by display name %q: %w", displayName, err)
	}
	return &sub, nil
}

const topicCols = `id, subject_id, name, display_name, slug, sort_order, metadata, created_at, updated_at`

func scanTopic(row interface{ Scan(...any) error }) (types.Topic, error) {
	var t types.Topic
	var rawMeta sql.NullString
	err := row.Scan(&t.ID, &t.SubjectID, &t.Name, &t.DisplayName, &t.Slug,
		&t.SortOrder, &rawMeta, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return types.Topic{}, err
	}
	t.Metadata, err = unmarshalMeta(rawMeta)
	return t, err
}

// TopicsBySubject returns a subject's topics in presentation order.
func (s *Store) TopicsBySubject(ctx context.Context, subjectID int64) ([]types.Topic, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+topicCols+` FROM topics WHERE subject_id = ? ORDER BY sort_order ASC`,
		subjectID)
	if err != nil {
		return nil, fmt.Errorf("querying topics for subject %d: %w", subjectID, err)
	}
	defer rows.Close()

	var out []types.Topic
	for rows.Next() {
		t, err := scanTopic(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning topic: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// NotesByTopic returns a topic's notes in presentation order.
func (s *Store) NotesByTopic(ctx context.Context, topicID int64) ([]types.Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, topic_id, title, url, sort_order, metadata, created_at, updated_at
		 FROM notes WHERE topic_id = ? ORDER BY sort_order ASC`,
		topicID)
	if err != nil {
		return nil, fmt.Errorf("querying notes for topic %d: %w", topicID, err)
	}
	defer rows.Close()

	var out []types.Note
	for rows.Next() {
		var n types.Note
		var rawMeta sql.NullString
		if err := rows.Scan(&n.ID, &n.TopicID, &n.Title, &n.URL, &n.SortOrder,
			&rawMeta, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		if n.Metadata, err = unmarshalMeta(rawMeta); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
