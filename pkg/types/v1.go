// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Legacy (V1) wire shapes. The compat layer must reproduce these
// bit-for-bit; the reconciler stores them verbatim as snapshots.
// Snapshot item types (topics, leaves) keep object members outside the
// known shape in Extra, so a legacy payload with fields this code never
// heard of still replays complete.

// V1LevelItem is one entry of the level listing.
type V1LevelItem struct {
	NoteLevel int    `json:"noteLevel"`
	Route     string `json:"route"`
}

// V1LevelListing wraps the level listing, keyed noteLevels.
type V1LevelListing struct {
	NoteLevels []V1LevelItem `json:"noteLevels"`
}

// V1LabLevelItem is one entry of the lab level listing.
type V1LabLevelItem struct {
	LabLevel int    `json:"labLevel"`
	Route    string `json:"route"`
}

// V1LabLevelListing wraps the lab level listing.
type V1LabLevelListing struct {
	LabLevels []V1LabLevelItem `json:"labLevels"`
}

// V1SubjectItem is one subject listing entry: either a nested route or a
// terminal url, never both.
type V1SubjectItem struct {
	SubName string `json:"subName"`
	Route   string `json:"route,omitempty"`
	URL     string `json:"url,omitempty"`
}

// V1TopicItem is one topic listing entry, same route/url duality.
type V1TopicItem struct {
	Topic string `json:"topic"`
	Route string `json:"route,omitempty"`
	URL   string `json:"url,omitempty"`

	// Extra holds members beyond the known shape, captured at decode time.
	Extra map[string]json.RawMessage `json:"-"`
}

func (it *V1TopicItem) UnmarshalJSON(data []byte) error {
	type plain V1TopicItem
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*it = V1TopicItem(p)
	it.Extra = extraMembers(data, "topic", "route", "url")
	return nil
}

func (it V1TopicItem) MarshalJSON() ([]byte, error) {
	type plain V1TopicItem
	base, err := json.Marshal(plain(it))
	if err != nil || len(it.Extra) == 0 {
		return base, err
	}
	return appendMembers(base, it.Extra)
}

// V1LeafItem is one leaf listing entry. This deployment serves the
// {title,url} generation of the leaf shape; the older {text} generation is
// not produced.
type V1LeafItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`

	// Extra holds members beyond the known shape, captured at decode time.
	Extra map[string]json.RawMessage `json:"-"`
}

func (it *V1LeafItem) UnmarshalJSON(data []byte) error {
	type plain V1LeafItem
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*it = V1LeafItem(p)
	it.Extra = extraMembers(data, "title", "url")
	return nil
}

func (it V1LeafItem) MarshalJSON() ([]byte, error) {
	type plain V1LeafItem
	base, err := json.Marshal(plain(it))
	if err != nil || len(it.Extra) == 0 {
		return base, err
	}
	return appendMembers(base, it.Extra)
}

// extraMembers returns the object members of data outside known, or nil
// when there are none (the common case, keeping items comparable).
func extraMembers(data []byte, known ...string) map[string]json.RawMessage {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil
	}
	for _, k := range known {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil
	}
	return all
}

// appendMembers splices extra members into an already-marshaled object,
// after the known fields, in sorted key order.
func appendMembers(base []byte, extra map[string]json.RawMessage) ([]byte, error) {
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(base[:len(base)-1])
	for _, k := range keys {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(extra[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Metadata keys written by the reconciler and fixup passes and read by the
// compat layer.
const (
	MetaDirectURL       = "directUrl"
	MetaV1RouteOverride = "v1RouteOverride"
	MetaV1RouteSlug     = "v1RouteSlug"
	MetaV1DisplayName   = "v1DisplayName"
	MetaV1Topics        = "v1Topics"
	MetaV1RouteMapping  = "v1RouteMapping"
	MetaV1Leaves        = "v1Leaves"
	MetaV1LabTopics     = "v1LabTopics"
	MetaV1LabLeaves     = "v1LabLeaves"
	MetaLabSubjects     = "labSubjects"
)

// LabSubjectAlias maps a legacy lab route slug to the canonical storage
// slug and display name; stored per level under the labSubjects key.
type LabSubjectAlias struct {
	DBSlug      string `json:"dbSlug" yaml:"dbSlug"`
	DisplayName string `json:"displayName" yaml:"displayName"`
	V1RouteSlug string `json:"v1RouteSlug" yaml:"v1RouteSlug"`
}
