// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compat synthesizes the legacy API's exact JSON shapes from
// canonical rows and reconciler snapshots. Snapshots win over derivation:
// when a verbatim legacy payload is attached to an entity it is replayed
// as-is, so responses stay bit-identical to the retired implementation.
package compat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/triptoafsin/notebot-engine/internal/cache"
	"github.com/triptoafsin/notebot-engine/internal/store"
	"github.com/triptoafsin/notebot-engine/pkg/types"
)

// NotFoundError reports which path segment failed to resolve. It maps to
// the legacy 404 payload {"error": "<Segment> not found"}.
type NotFoundError struct {
	Segment string
}

func (e *NotFoundError) Error() string {
	return e.Segment + " not found"
}

// IsNotFound reports whether err is a segment resolution failure.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// Resolver answers legacy-style requests from the store, preferring
// snapshots, with an optional read-through cache in front.
type Resolver struct {
	store *store.Store
	cache cache.Cache
	log   zerolog.Logger
}

// New returns a Resolver. Pass cache.Nop{} when caching is disabled.
func New(s *store.Store, c cache.Cache, log zerolog.Logger) *Resolver {
	return &Resolver{store: s, cache: c, log: log}
}

// NoteLevels returns the legacy level listing. Level slugs are numeric
// strings in this corpus; a non-numeric slug yields noteLevel 0 and is
// logged, matching the legacy parseInt behavior.
func (r *Resolver) NoteLevels(ctx context.Context) (types.V1LevelListing, error) {
	levels, err := r.store.Levels(ctx)
	if err != nil {
		return types.V1LevelListing{}, err
	}
	listing := types.V1LevelListing{NoteLevels: make([]types.V1LevelItem, 0, len(levels))}
	for _, l := range levels {
		n, err := strconv.Atoi(l.Slug)
		if err != nil {
			r.log.Warn().Str("slug", l.Slug).Msg("non-numeric level slug in listing")
		}
		listing.NoteLevels = append(listing.NoteLevels, types.V1LevelItem{
			NoteLevel: n,
			Route:     "app/notes/" + l.Slug,
		})
	}
	return listing, nil
}

// LabLevels returns the legacy lab level listing.
func (r *Resolver) LabLevels(ctx context.Context) (types.V1LabLevelListing, error) {
	levels, err := r.store.Levels(ctx)
	if err != nil {
		return types.V1LabLevelListing{}, err
	}
	listing := types.V1LabLevelListing{LabLevels: make([]types.V1LabLevelItem, 0, len(levels))}
	for _, l := range levels {
		n, _ := strconv.Atoi(l.Slug)
		listing.LabLevels = append(listing.LabLevels, types.V1LabLevelItem{
			LabLevel: n,
			Route:    "app/labs/" + l.Slug,
		})
	}
	return listing, nil
}

// Subjects returns the legacy subject listing for a level. A subject with
// a directUrl is a terminal link; a v1RouteOverride redirects it under a
// different level; everything else gets the computed route.
func (r *Resolver) Subjects(ctx context.Context, levelSlug string) ([]types.V1SubjectItem, error) {
	level, err := r.level(ctx, levelSlug)
	if err != nil {
		return nil, err
	}

	subjects, err := r.store.SubjectsByLevel(ctx, level.ID)
	if err != nil {
		return nil, err
	}

	items := make([]types.V1SubjectItem, 0, len(subjects))
	for _, s := range subjects {
		item := types.V1SubjectItem{SubName: s.DisplayName}
		if u, ok := metaString(s.Metadata, types.MetaDirectURL); ok {
			item.URL = u
		} else if route, ok := metaString(s.Metadata, types.MetaV1RouteOverride); ok {
			item.Route = route
		} else {
			item.Route = fmt.Sprintf("app/notes/%s/%s", levelSlug, s.Slug)
		}
		items = append(items, item)
	}
	return items, nil
}

// Topics returns the legacy topic listing for a subject. A stored
// v1Topics snapshot is replayed verbatim; otherwise the listing is derived
// from canonical topics.
func (r *Resolver) Topics(ctx context.Context, levelSlug, subjectSlug string) ([]types.V1TopicItem, error) {
	level, err := r.level(ctx, levelSlug)
	if err != nil {
		return nil, err
	}
	subject, err := r.subject(ctx, level.ID, subjectSlug)
	if err != nil {
		return nil, err
	}

	if raw, ok := subject.Metadata[types.MetaV1Topics]; ok {
		var snapshot []types.V1TopicItem
		if err := remarshal(raw, &snapshot); err == nil && len(snapshot) > 0 {
			return snapshot, nil
		}
	}

	topics, err := r.store.TopicsBySubject(ctx, subject.ID)
	if err != nil {
		return nil, err
	}
	items := make([]types.V1TopicItem, 0, len(topics))
	for _, t := range topics {
		item := types.V1TopicItem{Topic: t.DisplayName}
		if u, ok := metaString(t.Metadata, types.MetaDirectURL); ok {
			item.URL = u
		} else {
			item.Route = fmt.Sprintf("app/notes/%s/%s/%s", levelSlug, subjectSlug, t.Slug)
		}
		items = append(items, item)
	}
	return items, nil
}

// Leaves returns the legacy leaf listing for a topic. A stored
// v1Leaves[topicToken] snapshot is replayed verbatim; otherwise the topic
// is resolved by trying, in order, its v1RouteSlug metadata, its slug, and
// its raw name against the requested legacy token, and its notes are
// rendered as {title, url} pairs.
func (r *Resolver) Leaves(ctx context.Context, levelSlug, subjectSlug, topicToken string) ([]types.V1LeafItem, error) {
	level, err := r.level(ctx, levelSlug)
	if err != nil {
		return nil, err
	}
	subject, err := r.subject(ctx, level.ID, subjectSlug)
	if err != nil {
		return nil, err
	}

	if raw, ok := subject.Metadata[types.MetaV1Leaves]; ok {
		var leafMap map[string][]types.V1LeafItem
		if err := remarshal(raw, &leafMap); err == nil {
			if leaf, ok := leafMap[topicToken]; ok {
				return leaf, nil
			}
		}
	}

	topics, err := r.store.TopicsBySubject(ctx, subject.ID)
	if err != nil {
		return nil, err
	}
	topic := matchTopicToken(topics, topicToken)
	if topic == nil {
		return nil, &NotFoundError{Segment: "Topic"}
	}

	notes, err := r.store.NotesByTopic(ctx, topic.ID)
	if err != nil {
		return nil, err
	}
	items := make([]types.V1LeafItem, 0, len(notes))
	for _, n := range notes {
		items = append(items, types.V1LeafItem{Title: n.Title, URL: n.URL})
	}
	return items, nil
}

// matchTopicToken resolves a legacy topic token against canonical topics:
// v1RouteSlug match first, then slug, then raw name.
func matchTopicToken(topics []types.Topic, token string) *types.Topic {
	for i := range topics {
		if v1Slug, ok := metaString(topics[i].Metadata, types.MetaV1RouteSlug); ok && v1Slug == token {
			return &topics[i]
		}
	}
	for i := range topics {
		if topics[i].Slug == token || topics[i].Name == token {
			return &topics[i]
		}
	}
	return nil
}

func (r *Resolver) level(ctx context.Context, slug string) (*types.Level, error) {
	level, err := r.store.LevelBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, &NotFoundError{Segment: "Level"}
	}
	return level, nil
}

func (r *Resolver) subject(ctx context.Context, levelID int64, slug string) (*types.Subject, error) {
	subject, err := r.store.SubjectBySlug(ctx, levelID, slug)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, &NotFoundError{Segment: "Subject"}
	}
	return subject, nil
}

// metaString reads a non-empty string value out of a metadata bag.
func metaString(meta types.Metadata, key string) (string, bool) {
	if meta == nil {
		return "", false
	}
	s, ok := meta[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// remarshal converts a decoded metadata value back into a typed shape.
// Snapshot payloads live in metadata bags as generic JSON values; going
// through json keeps the replayed bytes identical to what was captured.
func remarshal(raw any, v any) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
