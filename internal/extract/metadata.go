// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Parenthetical annotation patterns, tried in order per group. Earlier
// matches consume the whole group; only the final comma-split rule looks at
// individual parts. Legacy title shapes:
//
//	"String Hand Note(Akib, 2018)"                -> author, year
//	"Hand Note(Mustafiz Sir, BA Group, 2018)"     -> author, group, year
//	"Questions(2012 - 18)"                        -> yearRange
//	"All Department Routine(L1,1)(2020)"          -> level, term, year
//	"Report(AE-44)"                               -> batch, department
var (
	parenGroupRe = regexp.MustCompile(`\(([^)]+)\)`)
	yearRangeRe  = regexp.MustCompile(`^(\d{4})\s*-\s*(\d{2,4})$`)
	singleYearRe = regexp.MustCompile(`^(\d{4})$`)
	levelTermRe  = regexp.MustCompile(`(?i)^L\s*(\d),\s*(\d)$`)
	batchRe      = regexp.MustCompile(`^[A-Z]{2,4}-\d{2,3}$`)
	groupRe      = regexp.MustCompile(`(?i)group$`)
	newFlagRe    = regexp.MustCompile(`(?i)^new$`)
	authorRe     = regexp.MustCompile(`^[A-Za-z.\s]+$`)
)

// contentTypes is the legacy content-type vocabulary, in priority order.
// The first case-insensitive substring hit against the pre-parenthesis
// title prefix wins.
var contentTypes = []string{
	"Hand Note", "Handnote", "Book", "Questions", "Suggestion",
	"With Data", "Lab Report", "Routine", "Syllabus", "Sheet",
}

// Metadata derives structured attributes from a cleaned title. The result
// may be empty; extraction failure is not an error, unrecognized shapes are
// simply left absent. Output is deterministic for identical input: rule
// order is the complete tie-break policy.
func Metadata(title string) map[string]any {
	meta := map[string]any{}

	for _, m := range parenGroupRe.FindAllStringSubmatch(title, -1) {
		content := strings.TrimSpace(m[1])

		if ym := yearRangeRe.FindStringSubmatch(content); ym != nil {
			start, end := ym[1], ym[2]
			if len(end) == 2 {
				end = start[:2] + end
			}
			meta["yearRange"] = start + "-" + end
			continue
		}

		if ym := singleYearRe.FindStringSubmatch(content); ym != nil {
			meta["year"], _ = strconv.Atoi(ym[1])
			continue
		}

		if lt := levelTermRe.FindStringSubmatch(content); lt != nil {
			meta["level"], _ = strconv.Atoi(lt[1])
			meta["term"], _ = strconv.Atoi(lt[2])
			continue
		}

		for _, part := range strings.Split(content, ",") {
			part = strings.TrimSpace(part)

			if singleYearRe.MatchString(part) {
				meta["year"], _ = strconv.Atoi(part)
				continue
			}

			if batchRe.MatchString(part) {
				meta["batch"] = part
				meta["department"] = part[:strings.IndexByte(part, '-')]
				continue
			}

			if groupRe.MatchString(part) {
				meta["group"] = part
				continue
			}

			if newFlagRe.MatchString(part) {
				meta["isNew"] = true
				continue
			}

			// First remaining alphabetic part is the author.
			if _, ok := meta["author"]; !ok && len(part) > 1 && authorRe.MatchString(part) {
				meta["author"] = part
			}
		}
	}

	prefix := strings.TrimSpace(parenGroupRe.ReplaceAllString(title, ""))
	if prefix != "" {
		lower := strings.ToLower(prefix)
		for _, ct := range contentTypes {
			if strings.Contains(lower, strings.ToLower(ct)) {
				meta["contentType"] = ct
				break
			}
		}
	}

	return meta
}

// ParseAndExtract combines ParseBlock and Metadata: the common per-leaf
// operation during import. ok is false when the block carries no URL.
func ParseAndExtract(text string) (Block, map[string]any, bool) {
	block, ok := ParseBlock(text)
	if !ok {
		return Block{}, nil, false
	}
	return block, Metadata(block.Title), true
}
