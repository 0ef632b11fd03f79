// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package v1client reads the running legacy API. The reconciler treats it
// as ground truth: every listing is fetched verbatim and stored as a
// snapshot. A non-200 status or an unparseable body means "no data for
// this node", never an error that aborts the sync.
package v1client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/triptoafsin/notebot-engine/internal/httputil"
	"github.com/triptoafsin/notebot-engine/pkg/types"
)

// Client talks to one legacy API instance.
type Client struct {
	base   string
	client *http.Client
	log    zerolog.Logger
}

// New builds a Client from the sync configuration.
func New(cfg types.SyncConfig, log zerolog.Logger) *Client {
	return &Client{
		base:   cfg.V1BaseURL,
		client: httputil.NewClient(cfg.HTTPConfig),
		log:    log,
	}
}

// Ping verifies the legacy API answers at all. Reconciliation against an
// unreachable instance would wipe nothing but capture nothing either, so
// the sync stage aborts up front instead.
func (c *Client) Ping(ctx context.Context) error {
	var listing types.V1LevelListing
	if ok := c.getJSON(ctx, "/app/notes", &listing); !ok {
		return fmt.Errorf("legacy API not reachable at %s", c.base)
	}
	return nil
}

// Subjects fetches the legacy subject listing for a level.
func (c *Client) Subjects(ctx context.Context, levelSlug string) ([]types.V1SubjectItem, bool) {
	var items []types.V1SubjectItem
	ok := c.getJSON(ctx, "/app/notes/"+levelSlug, &items)
	return items, ok
}

// Topics fetches the legacy topic listing under a subject.
func (c *Client) Topics(ctx context.Context, levelSlug, subjectSlug string) ([]types.V1TopicItem, bool) {
	var items []types.V1TopicItem
	ok := c.getJSON(ctx, "/app/notes/"+levelSlug+"/"+subjectSlug, &items)
	return items, ok
}

// Leaves fetches the legacy leaf listing for a topic.
func (c *Client) Leaves(ctx context.Context, levelSlug, subjectSlug, topicSlug string) ([]types.V1LeafItem, bool) {
	var items []types.V1LeafItem
	ok := c.getJSON(ctx, "/app/notes/"+levelSlug+"/"+subjectSlug+"/"+topicSlug, &items)
	return items, ok
}

// LabSubjects fetches the legacy lab subject listing for a level.
func (c *Client) LabSubjects(ctx context.Context, levelSlug string) ([]types.V1SubjectItem, bool) {
	var items []types.V1SubjectItem
	ok := c.getJSON(ctx, "/app/labs/"+levelSlug, &items)
	return items, ok
}

// LabTopics fetches the legacy lab topic listing under a lab subject.
func (c *Client) LabTopics(ctx context.Context, levelSlug, subjectSlug string) ([]types.V1TopicItem, bool) {
	var items []types.V1TopicItem
	ok := c.getJSON(ctx, "/app/labs/"+levelSlug+"/"+subjectSlug, &items)
	return items, ok
}

// LabLeaves fetches the legacy lab leaf listing for a lab topic.
func (c *Client) LabLeaves(ctx context.Context, levelSlug, subjectSlug, topicSlug string) ([]types.V1LeafItem, bool) {
	var items []types.V1LeafItem
	ok := c.getJSON(ctx, "/app/labs/"+levelSlug+"/"+subjectSlug+"/"+topicSlug, &items)
	return items, ok
}

// getJSON fetches one legacy endpoint into v. It reports false on any
// transport failure, non-200 status, or parse failure; the caller treats
// all three identically.
func (c *Client) getJSON(ctx context.Context, path string, v any) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		c.log.Debug().Err(err).Str("path", path).Msg("building legacy request")
		return false
	}

	resp, err := httputil.DoWithRetry(ctx, c.client, req, 0)
	if err != nil {
		c.log.Debug().Err(err).Str("path", path).Msg("legacy request failed")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		c.log.Debug().Int("status", resp.StatusCode).Str("path", path).Msg("legacy endpoint returned no data")
		return false
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		c.log.Debug().Err(err).Str("path", path).Msg("unparseable legacy response")
		return false
	}
	return true
}
