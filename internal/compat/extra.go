// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compat

import (
	"context"

	"github.com/triptoafsin/notebot-engine/pkg/types"
)

// Flat collection accessors. These serve the leaf shape directly since the
// legacy API exposed question banks, routines and results as plain
// {title, url} lists with no nesting.

// QuestionBanks returns a level's question banks as leaf items.
func (r *Resolver) QuestionBanks(ctx context.Context, levelSlug string) ([]types.V1LeafItem, error) {
	level, err := r.level(ctx, levelSlug)
	if err != nil {
		return nil, err
	}
	rows, err := r.store.QuestionBanksByLevel(ctx, level.ID)
	if err != nil {
		return nil, err
	}
	items := make([]types.V1LeafItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, types.V1LeafItem{Title: row.Title, URL: row.URL})
	}
	return items, nil
}

// Routines returns every routine row as leaf items.
func (r *Resolver) Routines(ctx context.Context) ([]types.V1LeafItem, error) {
	rows, err := r.store.Routines(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]types.V1LeafItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, types.V1LeafItem{Title: row.Title, URL: row.URL})
	}
	return items, nil
}

// Results returns every stored result row as leaf items.
func (r *Resolver) Results(ctx context.Context) ([]types.V1LeafItem, error) {
	rows, err := r.store.Results(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]types.V1LeafItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, types.V1LeafItem{Title: row.Title, URL: row.URL})
	}
	return items, nil
}
