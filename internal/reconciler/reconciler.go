// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reconciler captures the running legacy API's exact responses and
// attaches them to canonical rows, so the compat layer can replay them
// bit-for-bit instead of recomputing a possibly divergent reconstruction.
package reconciler

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/triptoafsin/notebot-engine/internal/slug"
	"github.com/triptoafsin/notebot-engine/internal/store"
	"github.com/triptoafsin/notebot-engine/internal/v1client"
	"github.com/triptoafsin/notebot-engine/pkg/types"
)

// MatchThreshold is the fraction of the smaller URL set that must overlap
// for a legacy topic to be paired with a canonical one. Kept as a named
// constant so the matcher can be tuned and tested independently.
const MatchThreshold = 0.5

// MatchByOverlap reports whether two URL sets describe the same topic:
// the overlap must be positive and cover at least threshold of the
// smaller set.
func MatchByOverlap(v1URLs, v2URLs []string, threshold float64) bool {
	if len(v1URLs) == 0 || len(v2URLs) == 0 {
		return false
	}
	seen := make(map[string]struct{}, len(v1URLs))
	for _, u := range v1URLs {
		seen[u] = struct{}{}
	}
	set2 := make(map[string]struct{}, len(v2URLs))
	overlap := 0
	for _, u := range v2URLs {
		if _, dup := set2[u]; dup {
			continue
		}
		set2[u] = struct{}{}
		if _, ok := seen[u]; ok {
			overlap++
		}
	}
	smaller := len(seen)
	if len(set2) < smaller {
		smaller = len(set2)
	}
	return overlap > 0 && float64(overlap) >= float64(smaller)*threshold
}

// Reconciler runs the snapshot capture passes against one store and one
// legacy instance.
type Reconciler struct {
	store *store.Store
	v1    *v1client.Client
	log   zerolog.Logger
}

// New returns a Reconciler.
func New(s *store.Store, v1 *v1client.Client, log zerolog.Logger) *Reconciler {
	return &Reconciler{store: s, v1: v1, log: log}
}

// Run executes the three capture passes: note topic listings, note leaf
// listings, and the lab maps. An unreachable legacy instance is fatal;
// missing data for an individual node is logged and skipped.
func (r *Reconciler) Run(ctx context.Context, w io.Writer) error {
	if err := r.v1.Ping(ctx); err != nil {
		return err
	}

	levels, err := r.store.Levels(ctx)
	if err != nil {
		return fmt.Errorf("loading levels: %w", err)
	}

	for _, level := range levels {
		if err := r.syncNoteTopics(ctx, w, level); err != nil {
			return err
		}
	}
	for _, level := range levels {
		if err := r.syncNoteLeaves(ctx, w, level); err != nil {
			return err
		}
	}
	for _, level := range levels {
		if err := r.syncLabs(ctx, w, level); err != nil {
			return err
		}
	}
	return nil
}

// syncNoteTopics captures each subject's legacy topic listing verbatim and
// pairs route-bearing legacy topics with canonical ones by URL overlap.
func (r *Reconciler) syncNoteTopics(ctx context.Context, w io.Writer, level types.Level) error {
	v1Subjects, ok := r.v1.Subjects(ctx, level.Slug)
	if !ok {
		r.log.Info().Str("level", level.Slug).Msg("no legacy subject listing")
		return nil
	}

	for _, v1Sub := range v1Subjects {
		// Direct-URL subjects have no sub-tree to capture.
		if v1Sub.Route == "" {
			continue
		}
		subSlug := slug.RouteTail(v1Sub.Route)

		v2Sub, err := r.store.SubjectBySlug(ctx, level.ID, subSlug)
		if err != nil {
			return err
		}
		if v2Sub == nil {
			r.log.Warn().Str("level", level.Slug).Str("subject", subSlug).Msg("no canonical subject for legacy slug")
			continue
		}

		v1Topics, ok := r.v1.Topics(ctx, level.Slug, subSlug)
		if !ok {
			r.log.Warn().Str("subject", subSlug).Msg("no legacy topic listing")
			continue
		}

		v2Topics, err := r.store.TopicsBySubject(ctx, v2Sub.ID)
		if err != nil {
			return err
		}

		routeMapping := map[string]int64{}
		mapped, routed := 0, 0
		for _, v1Topic := range v1Topics {
			if v1Topic.Route == "" {
				continue
			}
			routed++
			v1Slug := slug.RouteTail(v1Topic.Route)

			v1Leaf, ok := r.v1.Leaves(ctx, level.Slug, subSlug, v1Slug)
			if !ok || len(v1Leaf) == 0 {
				r.log.Warn().Str("topic", v1Topic.Topic).Msg("no legacy leaves, topic left unmapped")
				continue
			}
			v1URLs := make([]string, 0, len(v1Leaf))
			for _, item := range v1Leaf {
				v1URLs = append(v1URLs, item.URL)
			}

			matchedTopic, err := r.matchTopic(ctx, v1URLs, v2Topics)
			if err != nil {
				return err
			}
			if matchedTopic == nil {
				r.log.Warn().
					Str("topic", v1Topic.Topic).
					Str("slug", v1Slug).
					Str("subject", subSlug).
					Msg("unmatched legacy topic")
				continue
			}

			routeMapping[v1Slug] = matchedTopic.ID
			if err := r.store.MergeTopicMetadata(ctx, matchedTopic.ID, types.Metadata{
				types.MetaV1RouteSlug:   v1Slug,
				types.MetaV1DisplayName: v1Topic.Topic,
			}); err != nil {
				return err
			}
			mapped++
		}

		if err := r.store.MergeSubjectMetadata(ctx, v2Sub.ID, types.Metadata{
			types.MetaV1Topics:       v1Topics,
			types.MetaV1RouteMapping: routeMapping,
		}); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s/%s: %d topics, mapped %d/%d\n",
			level.Slug, subSlug, len(v1Topics), mapped, routed)
	}
	return nil
}

// matchTopic returns the first canonical topic, in sort order, whose note
// URLs overlap the legacy leaf set above the threshold.
func (r *Reconciler) matchTopic(ctx context.Context, v1URLs []string, candidates []types.Topic) (*types.Topic, error) {
	for i := range candidates {
		notes, err := r.store.NotesByTopic(ctx, candidates[i].ID)
		if err != nil {
			return nil, err
		}
		if len(notes) == 0 {
			continue
		}
		v2URLs := make([]string, 0, len(notes))
		for _, n := range notes {
			v2URLs = append(v2URLs, n.URL)
		}
		if MatchByOverlap(v1URLs, v2URLs, MatchThreshold) {
			return &candidates[i], nil
		}
	}
	return nil, nil
}

// syncNoteLeaves captures each subject's complete legacy leaf responses,
// keyed by legacy topic slug.
func (r *Reconciler) syncNoteLeaves(ctx context.Context, w io.Writer, level types.Level) error {
	v1Subjects, ok := r.v1.Subjects(ctx, level.Slug)
	if !ok {
		return nil
	}

	for _, v1Sub := range v1Subjects {
		if v1Sub.Route == "" {
			continue
		}
		subSlug := slug.RouteTail(v1Sub.Route)

		v1Topics, ok := r.v1.Topics(ctx, level.Slug, subSlug)
		if !ok {
			continue
		}

		leafMap := map[string][]types.V1LeafItem{}
		for _, t := range v1Topics {
			if t.Route == "" {
				continue
			}
			topicSlug := slug.RouteTail(t.Route)
			if leaf, ok := r.v1.Leaves(ctx, level.Slug, subSlug, topicSlug); ok {
				leafMap[topicSlug] = leaf
			}
		}

		v2Sub, err := r.store.SubjectBySlug(ctx, level.ID, subSlug)
		if err != nil {
			return err
		}
		if v2Sub == nil {
			continue
		}
		if err := r.store.MergeSubjectMetadata(ctx, v2Sub.ID, types.Metadata{
			types.MetaV1Leaves: leafMap,
		}); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s/%s: %d leaf endpoints cached\n", level.Slug, subSlug, len(leafMap))
	}
	return nil
}

// syncLabs captures the legacy lab topic and leaf maps onto the owning
// level's metadata. Lab identifiers are flat strings, so no matching is
// needed; the maps are stored directly keyed by subject and topic slug.
func (r *Reconciler) syncLabs(ctx context.Context, w io.Writer, level types.Level) error {
	v1LabSubs, ok := r.v1.LabSubjects(ctx, level.Slug)
	if !ok {
		r.log.Info().Str("level", level.Slug).Msg("no legacy lab listing")
		return nil
	}

	topicsMap := map[string][]types.V1TopicItem{}
	leavesMap := map[string]map[string][]types.V1LeafItem{}

	for _, v1Sub := range v1LabSubs {
		if v1Sub.Route == "" {
			continue
		}
		subSlug := slug.RouteTail(v1Sub.Route)

		v1Topics, ok := r.v1.LabTopics(ctx, level.Slug, subSlug)
		if !ok {
			continue
		}
		topicsMap[subSlug] = v1Topics

		leafMap := map[string][]types.V1LeafItem{}
		for _, t := range v1Topics {
			if t.Route == "" {
				continue
			}
			topicSlug := slug.RouteTail(t.Route)
			if leaf, ok := r.v1.LabLeaves(ctx, level.Slug, subSlug, topicSlug); ok {
				leafMap[topicSlug] = leaf
			}
		}
		leavesMap[subSlug] = leafMap
	}

	if len(topicsMap) == 0 {
		return nil
	}
	if err := r.store.MergeLevelMetadata(ctx, level.ID, types.Metadata{
		types.MetaV1LabTopics: topicsMap,
		types.MetaV1LabLeaves: leavesMap,
	}); err != nil {
		return err
	}
	fmt.Fprintf(w, "level %s labs: %d subjects captured\n", level.Slug, len(topicsMap))
	return nil
}
