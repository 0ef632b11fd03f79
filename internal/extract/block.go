// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns raw legacy content blocks into structured records.
// block.go splits a free-text block into a cleaned title and a URL;
// metadata.go derives structured attributes from the cleaned title.
package extract

import (
	"regexp"
	"strings"
)

// urlRe matches the first http(s) URL token in a block: a greedy run of
// non-whitespace after the scheme, mirroring the legacy UrlCatcher.
var urlRe = regexp.MustCompile(`https?://\S*`)

// trailingDashRe strips the decorative " -" separator legacy authors left
// between a title and its link.
var trailingDashRe = regexp.MustCompile(`-\s*$`)

// leadingGlyphsRe strips the run of decorative glyphs and whitespace that
// prefixes most legacy blocks.
var leadingGlyphsRe = regexp.MustCompile(`^[\s🔷⚡📌🔴🔰💡📗📙]+`)

// Block is a parsed legacy content block.
type Block struct {
	Title string
	URL   string
}

// ParseBlock splits a raw legacy text fragment into a title and a URL.
// The first URL token wins when a block carries more than one. Blocks with
// no URL are placeholders left by legacy authoring and are reported as not
// parseable (ok=false); callers skip them rather than fail.
//
// The title is what remains after removing the URL, embedded newlines, a
// trailing " -" separator, and any leading glyph run. A block whose title
// collapses to nothing gets the literal "Untitled".
func ParseBlock(text string) (Block, bool) {
	loc := urlRe.FindStringIndex(text)
	if loc == nil {
		return Block{}, false
	}
	url := text[loc[0]:loc[1]]

	title := text[:loc[0]] + text[loc[1]:]
	title = strings.ReplaceAll(title, "\n", "")
	title = trailingDashRe.ReplaceAllString(title, "")
	title = leadingGlyphsRe.ReplaceAllString(title, "")
	title = strings.TrimSpace(title)
	if title == "" {
		title = "Untitled"
	}
	return Block{Title: title, URL: url}, true
}
