// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the canonical entities, configuration, and legacy
// wire shapes shared across the engine's stages.
package types

import "time"

// Metadata is the open-ended attribute bag attached to every canonical
// entity. Extracted attributes (year, author, contentType, ...) and
// snapshot overrides (directUrl, v1Topics, v1Leaves, ...) both live here.
type Metadata map[string]any

// Level is an ordinal academic tier, the root of all hierarchies.
type Level struct {
	ID          int64
	Name        string
	DisplayName string
	Slug        string
	SortOrder   int
	Metadata    Metadata
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Subject belongs to exactly one Level. A subject is either a branching
// node (topics beneath it) or a terminal link (metadata directUrl), never
// both.
type Subject struct {
	ID          int64
	LevelID     int64
	Name        string
	DisplayName string
	Slug        string
	SortOrder   int
	Metadata    Metadata
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Topic belongs to exactly one Subject.
type Topic struct {
	ID          int64
	SubjectID   int64
	Name        string
	DisplayName string
	Slug        string
	SortOrder   int
	Metadata    Metadata
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Note is a leaf content item under a Topic.
type Note struct {
	ID        int64
	TopicID   int64
	Title     string
	URL       string
	SortOrder int
	Metadata  Metadata
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LabReport is a leaf item in the parallel lab hierarchy. The legacy lab
// tree is two flat string dimensions (subject slug, topic name) rather than
// nested entities, so only the level is a real foreign key.
type LabReport struct {
	ID          int64
	LevelID     int64
	SubjectSlug string
	TopicName   string
	Title       string
	URL         string
	SortOrder   int
	Metadata    Metadata
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// QuestionBank is a flat per-level collection of direct links.
type QuestionBank struct {
	ID          int64
	LevelID     int64
	SubjectSlug string
	Title       string
	URL         string
	SortOrder   int
	Metadata    Metadata
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Routine is a flat per-level collection of class/exam routines.
type Routine struct {
	ID        int64
	LevelID   int64
	Term      string
	Title     string
	URL       string
	SortOrder int
	Metadata  Metadata
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Result is a global flat collection of published result links.
type Result struct {
	ID        int64
	Title     string
	URL       string
	Category  string
	SortOrder int
	Metadata  Metadata
	CreatedAt time.Time
	UpdatedAt time.Time
}
