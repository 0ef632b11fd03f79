// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Resolve answers one legacy-style path and returns the response JSON.
// Successful responses go through the cache read-through: a hit is served
// as stored, a miss is computed from the store and written back. Cache
// failures degrade to store reads; not-found errors are never cached.
func (r *Resolver) Resolve(ctx context.Context, path string) ([]byte, error) {
	key := strings.Trim(path, "/")

	if data, ok := r.cache.Get(ctx, key); ok {
		return data, nil
	}

	v, err := r.resolve(ctx, key)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	r.cache.Set(ctx, key, data, 0)
	return data, nil
}

func (r *Resolver) resolve(ctx context.Context, key string) (any, error) {
	segs := strings.Split(key, "/")
	if segs[0] == "app" {
		segs = segs[1:]
	}
	if len(segs) == 0 || segs[0] == "" {
		return nil, fmt.Errorf("empty compat path")
	}

	wrap := func(v any, err error) (any, error) {
		if err != nil {
			return nil, err
		}
		return v, nil
	}

	switch segs[0] {
	case "notes":
		switch len(segs) {
		case 1:
			return wrap(r.NoteLevels(ctx))
		case 2:
			return wrap(r.Subjects(ctx, segs[1]))
		case 3:
			return wrap(r.Topics(ctx, segs[1], segs[2]))
		case 4:
			return wrap(r.Leaves(ctx, segs[1], segs[2], segs[3]))
		}
	case "labs":
		switch len(segs) {
		case 1:
			return wrap(r.LabLevels(ctx))
		case 2:
			return wrap(r.LabSubjects(ctx, segs[1]))
		case 3:
			return wrap(r.LabTopics(ctx, segs[1], segs[2]))
		case 4:
			return wrap(r.LabLeaves(ctx, segs[1], segs[2], segs[3]))
		}
	case "syllabus":
		switch len(segs) {
		case 1:
			return SyllabusBatches(), nil
		case 2:
			return wrap(SyllabusDepts(segs[1]))
		case 3:
			return SyllabusTopics(segs[1], segs[2])
		}
	}
	return nil, fmt.Errorf("unrecognized compat path %q", key)
}

// NotFoundBody renders the legacy 404 payload for a not-found error.
func NotFoundBody(err error) []byte {
	data, _ := json.Marshal(map[string]string{"error": err.Error()})
	return data
}
