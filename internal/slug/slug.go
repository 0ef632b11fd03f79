// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package slug normalizes free-form names and legacy route strings into
// the identifiers used as database slugs and cache keys.
package slug

import (
	"regexp"
	"strings"
)

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s, collapses every run of characters outside [a-z0-9]
// into a single "-", and trims leading/trailing dashes. The result is either
// empty or matches ^[a-z0-9]+(-[a-z0-9]+)*$. Slugify is idempotent.
func Slugify(s string) string {
	out := nonAlnumRe.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(out, "-")
}

// RouteTail returns the final "/"-delimited segment of a legacy route string,
// e.g. "app/notes/1/math1" -> "math1". This segment is the legacy node's
// local identifier, used both as a slug candidate and as the lookup key into
// per-node snapshot maps. An empty route yields an empty string.
func RouteTail(route string) string {
	route = strings.TrimRight(route, "/")
	if i := strings.LastIndexByte(route, '/'); i >= 0 {
		return route[i+1:]
	}
	return route
}
