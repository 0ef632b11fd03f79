// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compat

import (
	"context"
	"fmt"

	"github.com/triptoafsin/notebot-engine/pkg/types"
)

// The lab path mirrors the note path but resolves against the flat
// subjectSlug/topicName dimensions and the level-scoped lab metadata maps
// instead of relational subject/topic rows. Legacy lab route slugs differ
// from the stored ones; the per-level labSubjects alias table translates
// between them.

// LabSubjects returns the legacy lab subject listing for a level. The
// alias table drives the listing when present; otherwise the stored slugs
// are served directly.
func (r *Resolver) LabSubjects(ctx context.Context, levelSlug string) ([]types.V1SubjectItem, error) {
	level, err := r.level(ctx, levelSlug)
	if err != nil {
		return nil, err
	}

	if aliases := labAliases(level.Metadata); len(aliases) > 0 {
		items := make([]types.V1SubjectItem, 0, len(aliases))
		for _, a := range aliases {
			items = append(items, types.V1SubjectItem{
				SubName: a.DisplayName,
				Route:   fmt.Sprintf("app/labs/%s/%s", levelSlug, a.V1RouteSlug),
			})
		}
		return items, nil
	}

	slugs, err := r.store.LabSubjectSlugs(ctx, level.ID)
	if err != nil {
		return nil, err
	}
	items := make([]types.V1SubjectItem, 0, len(slugs))
	for _, s := range slugs {
		items = append(items, types.V1SubjectItem{
			SubName: s,
			Route:   fmt.Sprintf("app/labs/%s/%s", levelSlug, s),
		})
	}
	return items, nil
}

// LabTopics returns the legacy lab topic listing under a lab subject. A
// stored v1LabTopics snapshot is replayed verbatim; otherwise the listing
// is derived from the lab rows after alias translation.
func (r *Resolver) LabTopics(ctx context.Context, levelSlug, v1SubjectSlug string) ([]types.V1TopicItem, error) {
	level, err := r.level(ctx, levelSlug)
	if err != nil {
		return nil, err
	}

	if raw, ok := level.Metadata[types.MetaV1LabTopics]; ok {
		var topicsMap map[string][]types.V1TopicItem
		if err := remarshal(raw, &topicsMap); err == nil {
			if topics, ok := topicsMap[v1SubjectSlug]; ok {
				return topics, nil
			}
		}
	}

	dbSlug := labDBSlug(level.Metadata, v1SubjectSlug)
	names, err := r.store.LabTopicNames(ctx, level.ID, dbSlug)
	if err != nil {
		return nil, err
	}
	items := make([]types.V1TopicItem, 0, len(names))
	for _, name := range names {
		items = append(items, types.V1TopicItem{
			Topic: name,
			Route: fmt.Sprintf("app/labs/%s/%s/%s", levelSlug, v1SubjectSlug, name),
		})
	}
	return items, nil
}

// LabLeaves returns the legacy lab leaf listing for a lab topic, snapshot
// first, derived from lab rows otherwise.
func (r *Resolver) LabLeaves(ctx context.Context, levelSlug, v1SubjectSlug, topicSlug string) ([]types.V1LeafItem, error) {
	level, err := r.level(ctx, levelSlug)
	if err != nil {
		return nil, err
	}

	if raw, ok := level.Metadata[types.MetaV1LabLeaves]; ok {
		var leavesMap map[string]map[string][]types.V1LeafItem
		if err := remarshal(raw, &leavesMap); err == nil {
			if leaf, ok := leavesMap[v1SubjectSlug][topicSlug]; ok {
				return leaf, nil
			}
		}
	}

	dbSlug := labDBSlug(level.Metadata, v1SubjectSlug)
	rows, err := r.store.LabItems(ctx, level.ID, dbSlug, topicSlug)
	if err != nil {
		return nil, err
	}
	items := make([]types.V1LeafItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, types.V1LeafItem{Title: row.Title, URL: row.URL})
	}
	return items, nil
}

// labAliases decodes the per-level lab alias table, if any.
func labAliases(meta types.Metadata) []types.LabSubjectAlias {
	raw, ok := meta[types.MetaLabSubjects]
	if !ok {
		return nil
	}
	var aliases []types.LabSubjectAlias
	if err := remarshal(raw, &aliases); err != nil {
		return nil
	}
	return aliases
}

// labDBSlug translates a legacy lab route slug to the stored slug via the
// alias table, falling back to the slug itself when no alias matches.
func labDBSlug(meta types.Metadata, v1Slug string) string {
	for _, a := range labAliases(meta) {
		if a.V1RouteSlug == v1Slug {
			return a.DBSlug
		}
	}
	return v1Slug
}
