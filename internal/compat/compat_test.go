// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compat

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triptoafsin/notebot-engine/internal/cache"
	"github.com/triptoafsin/notebot-engine/internal/store"
	"github.com/triptoafsin/notebot-engine/pkg/types"
)

// memCache is an in-memory Cache for asserting read-through behavior.
type memCache struct {
	entries map[string][]byte
	hits    int
}

func newMemCache() *memCache { return &memCache{entries: map[string][]byte{}} }

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool) {
	data, ok := m.entries[key]
	if ok {
		m.hits++
	}
	return data, ok
}
func (m *memCache) Set(_ context.Context, key string, val []byte, _ time.Duration) {
	m.entries[key] = val
}
func (m *memCache) Del(_ context.Context, key string)     { delete(m.entries, key) }
func (m *memCache) DelPattern(_ context.Context, _ string) {}
func (m *memCache) Close() error                           { return nil }

// seed builds a level "1" with subjects math1 (two topics with notes),
// a direct-URL subject, and an override subject, plus lab rows.
func seed(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(types.StoreConfig{Path: filepath.Join(t.TempDir(), "engine.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	ctx := context.Background()

	levelID, err := s.CreateLevel(ctx, types.Level{Name: "level_1", DisplayName: "Level 1", Slug: "1", SortOrder: 1})
	require.NoError(t, err)

	mathID, err := s.CreateSubject(ctx, types.Subject{
		LevelID: levelID, Name: "math1", DisplayName: "Math-I", Slug: "math1", SortOrder: 1,
	})
	require.NoError(t, err)
	_, err = s.CreateSubject(ctx, types.Subject{
		LevelID: levelID, Name: "all-qb", DisplayName: "All QB", Slug: "all-qb", SortOrder: 2,
		Metadata: types.Metadata{types.MetaDirectURL: "http://z"},
	})
	require.NoError(t, err)
	_, err = s.CreateSubject(ctx, types.Subject{
		LevelID: levelID, Name: "hrm", DisplayName: "HRM", Slug: "hrm", SortOrder: 3,
		Metadata: types.Metadata{types.MetaV1RouteOverride: "app/notes/4/hrm"},
	})
	require.NoError(t, err)

	booksID, err := s.CreateTopic(ctx, types.Topic{
		SubjectID: mathID, Name: "math1_books", DisplayName: "Books", Slug: "books", SortOrder: 1,
		Metadata: types.Metadata{types.MetaV1RouteSlug: "math1_books_flow"},
	})
	require.NoError(t, err)
	_, err = s.CreateTopic(ctx, types.Topic{
		SubjectID: mathID, Name: "math1_syllabus", DisplayName: "Syllabus", Slug: "syllabus", SortOrder: 2,
		Metadata: types.Metadata{types.MetaDirectURL: "http://syllabus"},
	})
	require.NoError(t, err)

	_, err = s.CreateNote(ctx, types.Note{TopicID: booksID, Title: "Calculus", URL: "http://calc", SortOrder: 1})
	require.NoError(t, err)

	_, err = s.CreateLabReport(ctx, types.LabReport{
		LevelID: levelID, SubjectSlug: "che_1", TopicName: "che1LabExp",
		Title: "Expt 1", URL: "http://lab1", SortOrder: 1,
	})
	require.NoError(t, err)
	_, err = s.CreateQuestionBank(ctx, types.QuestionBank{
		LevelID: levelID, SubjectSlug: "all-qb", Title: "All QB", URL: "http://qb", SortOrder: 1,
	})
	require.NoError(t, err)

	return s
}

func newResolver(t *testing.T) (*Resolver, *store.Store) {
	s := seed(t)
	return New(s, cache.Nop{}, zerolog.Nop()), s
}

func TestNoteLevelsListing(t *testing.T) {
	r, _ := newResolver(t)
	listing, err := r.NoteLevels(context.Background())
	require.NoError(t, err)
	require.Len(t, listing.NoteLevels, 1)
	assert.Equal(t, 1, listing.NoteLevels[0].NoteLevel)
	assert.Equal(t, "app/notes/1", listing.NoteLevels[0].Route)
}

func TestSubjectsComputedRoute(t *testing.T) {
	r, _ := newResolver(t)
	items, err := r.Subjects(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, types.V1SubjectItem{SubName: "Math-I", Route: "app/notes/1/math1"}, items[0])
}

func TestSubjectsDirectURLWinsOverRoute(t *testing.T) {
	r, _ := newResolver(t)
	items, err := r.Subjects(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, types.V1SubjectItem{SubName: "All QB", URL: "http://z"}, items[1])
	assert.Empty(t, items[1].Route)
}

func TestSubjectsRouteOverride(t *testing.T) {
	r, _ := newResolver(t)
	items, err := r.Subjects(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "app/notes/4/hrm", items[2].Route)
}

func TestTopicsDerived(t *testing.T) {
	r, _ := newResolver(t)
	items, err := r.Topics(context.Background(), "1", "math1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, types.V1TopicItem{Topic: "Books", Route: "app/notes/1/math1/books"}, items[0])
	assert.Equal(t, types.V1TopicItem{Topic: "Syllabus", URL: "http://syllabus"}, items[1])
}

func TestTopicsSnapshotWinsOverDerivation(t *testing.T) {
	r, s := newResolver(t)
	ctx := context.Background()

	level, err := s.LevelBySlug(ctx, "1")
	require.NoError(t, err)
	sub, err := s.SubjectBySlug(ctx, level.ID, "math1")
	require.NoError(t, err)

	snapshot := []types.V1TopicItem{{Topic: "📚 Books", Route: "app/notes/1/math1/math1_books_flow"}}
	require.NoError(t, s.MergeSubjectMetadata(ctx, sub.ID, types.Metadata{types.MetaV1Topics: snapshot}))

	items, err := r.Topics(ctx, "1", "math1")
	require.NoError(t, err)
	assert.Equal(t, snapshot, items)
}

func TestLeavesSnapshotVerbatim(t *testing.T) {
	r, s := newResolver(t)
	ctx := context.Background()

	level, err := s.LevelBySlug(ctx, "1")
	require.NoError(t, err)
	sub, err := s.SubjectBySlug(ctx, level.ID, "math1")
	require.NoError(t, err)

	// Snapshot differs from canonical notes and must win anyway.
	leafMap := map[string][]types.V1LeafItem{"books": {{Title: "X", URL: "http://y"}}}
	require.NoError(t, s.MergeSubjectMetadata(ctx, sub.ID, types.Metadata{types.MetaV1Leaves: leafMap}))

	items, err := r.Leaves(ctx, "1", "math1", "books")
	require.NoError(t, err)
	assert.Equal(t, []types.V1LeafItem{{Title: "X", URL: "http://y"}}, items)
}

func TestSnapshotReplayKeepsUnknownMembers(t *testing.T) {
	r, s := newResolver(t)
	ctx := context.Background()

	level, err := s.LevelBySlug(ctx, "1")
	require.NoError(t, err)
	sub, err := s.SubjectBySlug(ctx, level.ID, "math1")
	require.NoError(t, err)

	// Members outside the known item shapes must survive storage and replay.
	require.NoError(t, s.MergeSubjectMetadata(ctx, sub.ID, types.Metadata{
		types.MetaV1Topics: []map[string]any{
			{"topic": "📚 Books", "route": "app/notes/1/math1/math1_books_flow", "badge": "new"},
		},
		types.MetaV1Leaves: map[string]any{
			"books": []map[string]any{
				{"title": "X", "url": "http://y", "author": "Akib"},
			},
		},
	}))

	topics, err := r.Topics(ctx, "1", "math1")
	require.NoError(t, err)
	out, err := json.Marshal(topics)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"topic":"📚 Books","route":"app/notes/1/math1/math1_books_flow","badge":"new"}]`, string(out))

	leaves, err := r.Leaves(ctx, "1", "math1", "books")
	require.NoError(t, err)
	out, err = json.Marshal(leaves)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"title":"X","url":"http://y","author":"Akib"}]`, string(out))
}

func TestLeavesFallbackResolution(t *testing.T) {
	r, _ := newResolver(t)
	ctx := context.Background()

	want := []types.V1LeafItem{{Title: "Calculus", URL: "http://calc"}}

	// v1RouteSlug metadata match.
	items, err := r.Leaves(ctx, "1", "math1", "math1_books_flow")
	require.NoError(t, err)
	assert.Equal(t, want, items)

	// Slug match.
	items, err = r.Leaves(ctx, "1", "math1", "books")
	require.NoError(t, err)
	assert.Equal(t, want, items)

	// Raw name match.
	items, err = r.Leaves(ctx, "1", "math1", "math1_books")
	require.NoError(t, err)
	assert.Equal(t, want, items)
}

func TestNotFoundSegments(t *testing.T) {
	r, _ := newResolver(t)
	ctx := context.Background()

	_, err := r.Subjects(ctx, "9")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Level", nf.Segment)
	assert.Equal(t, "Level not found", err.Error())

	_, err = r.Topics(ctx, "1", "nope")
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Subject", nf.Segment)

	_, err = r.Leaves(ctx, "1", "math1", "nope")
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Topic", nf.Segment)
	assert.True(t, IsNotFound(err))
}

func TestLabSubjectsFromAliasTable(t *testing.T) {
	r, s := newResolver(t)
	ctx := context.Background()

	level, err := s.LevelBySlug(ctx, "1")
	require.NoError(t, err)
	require.NoError(t, s.MergeLevelMetadata(ctx, level.ID, types.Metadata{
		types.MetaLabSubjects: []types.LabSubjectAlias{
			{DBSlug: "che_1", DisplayName: "Chem-I", V1RouteSlug: "chem1"},
		},
	}))

	items, err := r.LabSubjects(ctx, "1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, types.V1SubjectItem{SubName: "Chem-I", Route: "app/labs/1/chem1"}, items[0])
}

func TestLabSubjectsFallbackToStoredSlugs(t *testing.T) {
	r, _ := newResolver(t)
	items, err := r.LabSubjects(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "che_1", items[0].SubName)
}

func TestLabLeavesAliasTranslation(t *testing.T) {
	r, s := newResolver(t)
	ctx := context.Background()

	level, err := s.LevelBySlug(ctx, "1")
	require.NoError(t, err)
	require.NoError(t, s.MergeLevelMetadata(ctx, level.ID, types.Metadata{
		types.MetaLabSubjects: []types.LabSubjectAlias{
			{DBSlug: "che_1", DisplayName: "Chem-I", V1RouteSlug: "chem1"},
		},
	}))

	// Legacy slug chem1 resolves to stored rows under che_1.
	items, err := r.LabLeaves(ctx, "1", "chem1", "che1LabExp")
	require.NoError(t, err)
	assert.Equal(t, []types.V1LeafItem{{Title: "Expt 1", URL: "http://lab1"}}, items)
}

func TestLabTopicsSnapshotWins(t *testing.T) {
	r, s := newResolver(t)
	ctx := context.Background()

	level, err := s.LevelBySlug(ctx, "1")
	require.NoError(t, err)
	snapshot := map[string][]types.V1TopicItem{
		"chem1": {{Topic: "Experiments", Route: "app/labs/1/chem1/che1LabExp"}},
	}
	require.NoError(t, s.MergeLevelMetadata(ctx, level.ID, types.Metadata{types.MetaV1LabTopics: snapshot}))

	items, err := r.LabTopics(ctx, "1", "chem1")
	require.NoError(t, err)
	assert.Equal(t, snapshot["chem1"], items)
}

func TestQuestionBanks(t *testing.T) {
	r, _ := newResolver(t)
	items, err := r.QuestionBanks(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, []types.V1LeafItem{{Title: "All QB", URL: "http://qb"}}, items)
}

func TestResolveCacheReadThrough(t *testing.T) {
	s := seed(t)
	mc := newMemCache()
	r := New(s, mc, zerolog.Nop())
	ctx := context.Background()

	first, err := r.Resolve(ctx, "app/notes/1")
	require.NoError(t, err)
	assert.Zero(t, mc.hits)

	second, err := r.Resolve(ctx, "app/notes/1")
	require.NoError(t, err)
	assert.Equal(t, 1, mc.hits)
	assert.Equal(t, first, second)

	var items []types.V1SubjectItem
	require.NoError(t, json.Unmarshal(second, &items))
	assert.Len(t, items, 3)
}

func TestResolveNotFoundIsNotCached(t *testing.T) {
	s := seed(t)
	mc := newMemCache()
	r := New(s, mc, zerolog.Nop())

	_, err := r.Resolve(context.Background(), "app/notes/9")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Empty(t, mc.entries)
}

func TestResolveUnknownPath(t *testing.T) {
	r, _ := newResolver(t)
	_, err := r.Resolve(context.Background(), "app/bogus")
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
}

func TestSyllabus(t *testing.T) {
	batches := SyllabusBatches()
	require.Len(t, batches, 2)
	assert.Equal(t, "45", batches[0].Batch)

	depts, err := SyllabusDepts("45")
	require.NoError(t, err)
	assert.Len(t, depts, 10)

	_, err = SyllabusDepts("44")
	assert.True(t, IsNotFound(err))

	topics, err := SyllabusTopics("45", "AE")
	require.NoError(t, err)
	list, ok := topics.([]SyllabusTopic)
	require.True(t, ok)
	assert.Len(t, list, 8)

	// Batch 46 "all" collapses to a single object.
	single, err := SyllabusTopics("46", "all")
	require.NoError(t, err)
	one, ok := single.(SyllabusTopic)
	require.True(t, ok)
	assert.Equal(t, "Download", one.Topic)
}

func TestNotFoundBody(t *testing.T) {
	body := NotFoundBody(&NotFoundError{Segment: "Level"})
	assert.JSONEq(t, `{"error":"Level not found"}`, string(body))
}
