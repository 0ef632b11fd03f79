// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/triptoafsin/notebot-engine/pkg/types"
)

// CreateLabReport inserts a lab report row and returns its id.
func (s *Store) CreateLabReport(ctx context.Context, r types.LabReport) (int64, error) {
	meta, err := marshalMeta(r.Metadata)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO lab_reports (level_id, subject_slug, topic_name, title, url, sort_order, metadata)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.LevelID, r.SubjectSlug, r.TopicName, r.Title, r.URL, r.SortOrder, meta,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting lab report %q: %w", r.Title, err)
	}
	return res.LastInsertId()
}

// CreateQuestionBank inserts a question bank row and returns its id.
func (s *Store) CreateQuestionBank(ctx context.Context, qb types.QuestionBank) (int64, error) {
	meta, err := marshalMeta(qb.Metadata)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO question_banks (level_id, subject_slug, title, url, sort_order, metadata)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		qb.LevelID, qb.SubjectSlug, qb.Title, qb.URL, qb.SortOrder, meta,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting question bank %q: %w", qb.Title, err)
	}
	return res.LastInsertId()
}

// CreateRoutine inserts a routine row and returns its id.
func (s *Store) CreateRoutine(ctx context.Context, r types.Routine) (int64, error) {
	meta, err := marshalMeta(r.Metadata)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO routines (level_id, term, title, url, sort_order, metadata)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.LevelID, r.Term, r.Title, r.URL, r.SortOrder, meta,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting routine %q: %w", r.Title, err)
	}
	return res.LastInsertId()
}

// CreateResult inserts a result row and returns its id.
func (s *Store) CreateResult(ctx context.Context, r types.Result) (int64, error) {
	meta, err := marshalMeta(r.Metadata)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO results (title, url, category, sort_order, metadata)
		 VALUES (?, ?, ?, ?, ?)`,
		r.Title, r.URL, r.Category, r.SortOrder, meta,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting result %q: %w", r.Title, err)
	}
	return res.LastInsertId()
}

// LabSubjectSlugs returns the distinct lab subject slugs for a level,
// ordered by first appearance in presentation order.
func (s *Store) LabSubjectSlugs(ctx context.Context, levelID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT subject_slug FROM lab_reports WHERE level_id = ?
		 GROUP BY subject_slug ORDER BY min(sort_order) ASC`,
		levelID)
	if err != nil {
		return nil, fmt.Errorf("querying lab subjects for level %d: %w", levelID, err)
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, fmt.Errorf("scanning lab subject slug: %w", err)
		}
		slugs = append(slugs, slug)
	}
	return slugs, rows.Err()
}

// LabTopicNames returns the distinct topic names for a lab subject within a
// level, ordered by first appearance.
func (s *Store) LabTopicNames(ctx context.Context, levelID int64, subjectSlug string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT topic_name FROM lab_reports WHERE level_id = ? AND subject_slug = ?
		 GROUP BY topic_name ORDER BY min(sort_order) ASC`,
		levelID, subjectSlug)
	if err != nil {
		return nil, fmt.Errorf("querying lab topics for %q: %w", subjectSlug, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning lab topic name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

const labCols = `id, level_id, subject_slug, topic_name, title, url, sort_order, metadata, created_at, updated_at`

// LabItems returns the lab reports for one level/subject/topic triple in
// presentation order.
func (s *Store) LabItems(ctx context.Context, levelID int64, subjectSlug, topicName string) ([]types.LabReport, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+labCols+` FROM lab_reports
		 WHERE level_id = ? AND subject_slug = ? AND topic_name = ?
		 ORDER BY sort_order ASC`,
		levelID, subjectSlug, topicName)
	if err != nil {
		return nil, fmt.Errorf("querying lab items: %w", err)
	}
	defer rows.Close()

	var out []types.LabReport
	for rows.Next() {
		var r types.LabReport
		var rawMeta sql.NullString
		if err := rows.Scan(&r.ID, &r.LevelID, &r.SubjectSlug, &r.TopicName,
			&r.Title, &r.URL, &r.SortOrder, &rawMeta, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning lab report: %w", err)
		}
		if r.Metadata, err = unmarshalMeta(rawMeta); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// MergeLabMetadata merges patch into every lab report row of a subject
// within a level. Used by the fixup pass to attach display names.
func (s *Store) MergeLabMetadata(ctx context.Context, levelID int64, subjectSlug string, patch types.Metadata) (int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM lab_reports WHERE level_id = ? AND subject_slug = ?`,
		levelID, subjectSlug)
	if err != nil {
		return 0, fmt.Errorf("querying lab rows for %q: %w", subjectSlug, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("scanning lab row id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for _, id := range ids {
		if err := s.mergeMetadata(ctx, "lab_reports", id, patch); err != nil {
			return 0, err
		}
	}
	return int64(len(ids)), nil
}

// QuestionBanksByLevel returns a level's question banks in presentation order.
func (s *Store) QuestionBanksByLevel(ctx context.Context, levelID int64) ([]types.QuestionBank, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, level_id, subject_slug, title, url, sort_order, metadata, created_at, updated_at
		 FROM question_banks WHERE level_id = ? ORDER BY sort_order ASC`,
		levelID)
	if err != nil {
		return nil, fmt.Errorf("querying question banks for level %d: %w", levelID, err)
	}
	defer rows.Close()

	var out []types.QuestionBank
	for rows.Next() {
		var qb types.QuestionBank
		var rawMeta sql.NullString
		if err := rows.Scan(&qb.ID, &qb.LevelID, &qb.SubjectSlug, &qb.Title, &qb.URL,
			&qb.SortOrder, &rawMeta, &qb.CreatedAt, &qb.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning question bank: %w", err)
		}
		if qb.Metadata, err = unmarshalMeta(rawMeta); err != nil {
			return nil, err
		}
		out = append(out, qb)
	}
	return out, rows.Err()
}

// Routines returns every routine in presentation order.
func (s *Store) Routines(ctx context.Context) ([]types.Routine, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, level_id, term, title, url, sort_order, metadata, created_at, updated_at
		 FROM routines ORDER BY sort_order ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying routines: %w", err)
	}
	defer rows.Close()

	var out []types.Routine
	for rows.Next() {
		var r types.Routine
		var term sql.NullString
		var rawMeta sql.NullString
		if err := rows.Scan(&r.ID, &r.LevelID, &term, &r.Title, &r.URL,
			&r.SortOrder, &rawMeta, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning routine: %w", err)
		}
		r.Term = term.String
		if r.Metadata, err = unmarshalMeta(rawMeta); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Results returns every result row in presentation order.
func (s *Store) Results(ctx context.Context) ([]types.Result, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, url, category, sort_order, metadata, created_at, updated_at
		 FROM results ORDER BY sort_order ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying results: %w", err)
	}
	defer rows.Close()

	var out []types.Result
	for rows.Next() {
		var r types.Result
		var category sql.NullString
		var rawMeta sql.NullString
		if err := rows.Scan(&r.ID, &r.Title, &r.URL, &category,
			&r.SortOrder, &rawMeta, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		r.Category = category.String
		if r.Metadata, err = unmarshalMeta(rawMeta); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
