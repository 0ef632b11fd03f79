// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triptoafsin/notebot-engine/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.StoreConfig{Path: filepath.Join(t.TempDir(), "engine.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(types.StoreConfig{})
	require.Error(t, err)
}

func TestHierarchyRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	levelID, err := s.CreateLevel(ctx, types.Level{
		Name: "level_1", DisplayName: "Level 1", Slug: "1", SortOrder: 1,
	})
	require.NoError(t, err)

	subID, err := s.CreateSubject(ctx, types.Subject{
		LevelID: levelID, Name: "math1", DisplayName: "Math-I", Slug: "math1", SortOrder: 1,
	})
	require.NoError(t, err)

	topicID, err := s.CreateTopic(ctx, types.Topic{
		SubjectID: subID, Name: "math1_books_flow", DisplayName: "Books",
		Slug: "math1-books-flow", SortOrder: 1,
	})
	require.NoError(t, err)

	_, err = s.CreateNote(ctx, types.Note{
		TopicID: topicID, Title: "Hand Note(Akib, 2018)",
		URL: "https://example.com/n", SortOrder: 1,
		Metadata: types.Metadata{"author": "Akib", "year": 2018},
	})
	require.NoError(t, err)

	level, err := s.LevelBySlug(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, level)
	assert.Equal(t, "Level 1", level.DisplayName)

	missing, err := s.LevelBySlug(ctx, "9")
	require.NoError(t, err)
	assert.Nil(t, missing)

	subs, err := s.SubjectsByLevel(ctx, levelID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "math1", subs[0].Slug)

	topics, err := s.TopicsBySubject(ctx, subID)
	require.NoError(t, err)
	require.Len(t, topics, 1)

	notes, err := s.NotesByTopic(ctx, topicID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Akib", notes[0].Metadata["author"])
	// JSON numbers come back as float64.
	assert.EqualValues(t, 2018, notes[0].Metadata["year"])
}

func TestSortOrderControlsListing(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	levelID, err := s.CreateLevel(ctx, types.Level{Name: "level_1", DisplayName: "Level 1", Slug: "1", SortOrder: 1})
	require.NoError(t, err)

	_, err = s.CreateSubject(ctx, types.Subject{LevelID: levelID, Name: "b", DisplayName: "B", Slug: "b", SortOrder: 2})
	require.NoError(t, err)
	_, err = s.CreateSubject(ctx, types.Subject{LevelID: levelID, Name: "a", DisplayName: "A", Slug: "a", SortOrder: 1})
	require.NoError(t, err)

	subs, err := s.SubjectsByLevel(ctx, levelID)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "a", subs[0].Slug)
	assert.Equal(t, "b", subs[1].Slug)
}

func TestMergeMetadataIsAppendOnlyUnion(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	levelID, err := s.CreateLevel(ctx, types.Level{
		Name: "level_1", DisplayName: "Level 1", Slug: "1", SortOrder: 1,
	})
	require.NoError(t, err)
	subID, err := s.CreateSubject(ctx, types.Subject{
		LevelID: levelID, Name: "math1", DisplayName: "Math-I", Slug: "math1", SortOrder: 1,
		Metadata: types.Metadata{"directUrl": "https://example.com/d"},
	})
	require.NoError(t, err)

	require.NoError(t, s.MergeSubjectMetadata(ctx, subID, types.Metadata{
		"v1RouteOverride": "app/notes/4/math1",
	}))

	sub, err := s.SubjectBySlug(ctx, levelID, "math1")
	require.NoError(t, err)
	require.NotNil(t, sub)
	// Distinct keys from earlier writes survive later merges.
	assert.Equal(t, "https://example.com/d", sub.Metadata["directUrl"])
	assert.Equal(t, "app/notes/4/math1", sub.Metadata["v1RouteOverride"])
}

func TestWipeClearsEverything(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	levelID, err := s.CreateLevel(ctx, types.Level{Name: "level_1", DisplayName: "Level 1", Slug: "1", SortOrder: 1})
	require.NoError(t, err)
	_, err = s.CreateLabReport(ctx, types.LabReport{
		LevelID: levelID, SubjectSlug: "che_1", TopicName: "titration",
		Title: "Acid-Base Titration", URL: "https://example.com/l", SortOrder: 1,
	})
	require.NoError(t, err)
	_, err = s.CreateResult(ctx, types.Result{Title: "Portal", URL: "https://example.com/r", SortOrder: 1})
	require.NoError(t, err)

	require.NoError(t, s.Wipe(ctx))

	counts, err := s.Counts(ctx)
	require.NoError(t, err)
	for table, n := range counts {
		assert.Zerof(t, n, "table %s not empty after wipe", table)
	}
}

func TestLabDimensions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	levelID, err := s.CreateLevel(ctx, types.Level{Name: "level_1", DisplayName: "Level 1", Slug: "1", SortOrder: 1})
	require.NoError(t, err)

	rows := []types.LabReport{
		{LevelID: levelID, SubjectSlug: "che_1", TopicName: "titration", Title: "T1", URL: "u1", SortOrder: 1},
		{LevelID: levelID, SubjectSlug: "che_1", TopicName: "salts", Title: "T2", URL: "u2", SortOrder: 2},
		{LevelID: levelID, SubjectSlug: "phy_1", TopicName: "pendulum", Title: "T3", URL: "u3", SortOrder: 3},
	}
	for _, r := range rows {
		_, err := s.CreateLabReport(ctx, r)
		require.NoError(t, err)
	}

	slugs, err := s.LabSubjectSlugs(ctx, levelID)
	require.NoError(t, err)
	assert.Equal(t, []string{"che_1", "phy_1"}, slugs)

	names, err := s.LabTopicNames(ctx, levelID, "che_1")
	require.NoError(t, err)
	assert.Equal(t, []string{"titration", "salts"}, names)

	items, err := s.LabItems(ctx, levelID, "che_1", "salts")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "T2", items[0].Title)

	updated, err := s.MergeLabMetadata(ctx, levelID, "che_1", types.Metadata{"displayName": "Chem-I"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, updated)

	items, err = s.LabItems(ctx, levelID, "che_1", "titration")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Chem-I", items[0].Metadata["displayName"])
}
