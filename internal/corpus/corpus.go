// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus reads the legacy content tree from its exported snapshot
// form: a directory of JSON documents, one per legacy node. The legacy data
// was always static literals, so the export is declarative; nothing is
// evaluated at import time.
//
// Layout:
//
//	corpus.yaml                               optional manifest {version}
//	notes/level_<N>/subjects.json             [{subName, route|url}]
//	notes/level_<N>/<subject>/<topic>.json    leaf documents
//	labs/level_<N>/<subject>/<topic>.json     leaf documents
//	routines/<name>.json                      leaf documents
//	results.json                              leaf document
//
// A leaf document is an array whose items are text blocks {"text": "..."},
// bare strings, or button-style {"title", "url"} pairs; all three normalize
// through Item.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// manifestVersion is the snapshot format this reader understands.
const manifestVersion = 1

// Corpus is a handle on one exported legacy tree.
type Corpus struct {
	root string
}

// manifest is the optional corpus.yaml document at the snapshot root.
type manifest struct {
	Version    int    `yaml:"version"`
	ExportedAt string `yaml:"exported_at"`
}

// Open validates dir as a corpus snapshot root. A missing manifest is
// accepted (early exports predate it); a manifest with an unknown version
// is rejected.
func Open(dir string) (*Corpus, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("corpus root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("corpus root %s is not a directory", dir)
	}

	data, err := os.ReadFile(filepath.Join(dir, "corpus.yaml"))
	if err == nil {
		var m manifest
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parsing corpus manifest: %w", err)
		}
		if m.Version != manifestVersion {
			return nil, fmt.Errorf("unsupported corpus version %d (want %d)", m.Version, manifestVersion)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading corpus manifest: %w", err)
	}

	return &Corpus{root: dir}, nil
}

// SubjectEntry is one row of a level's subject listing: a nested route or a
// terminal url, exactly as legacy authored it.
type SubjectEntry struct {
	SubName string `json:"subName"`
	Route   string `json:"route"`
	URL     string `json:"url"`
}

// Item is one entry of a leaf document after normalization. Exactly one of
// Text or the Title/URL pair is populated.
type Item struct {
	Text  string
	Title string
	URL   string
}

// UnmarshalJSON accepts the three legacy item encodings.
func (it *Item) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		it.Text = s
		return nil
	}
	var obj struct {
		Text  string `json:"text"`
		Title string `json:"title"`
		URL   string `json:"url"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	it.Text = obj.Text
	it.Title = obj.Title
	it.URL = obj.URL
	return nil
}

// Subjects reads a level's subject listing. A missing listing returns
// os.ErrNotExist; callers treat that as a level with no exported data.
func (c *Corpus) Subjects(level int) ([]SubjectEntry, error) {
	path := filepath.Join(c.root, "notes", fmt.Sprintf("level_%d", level), "subjects.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var subs []SubjectEntry
	if err := json.Unmarshal(data, &subs); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return subs, nil
}

// TopicFiles lists the leaf document names (without extension) under a
// subject, in lexical order. The names are the legacy topic identifiers,
// e.g. "math1_books_flow".
func (c *Corpus) TopicFiles(level int, subjectSlug string) ([]string, error) {
	dir := filepath.Join(c.root, "notes", fmt.Sprintf("level_%d", level), subjectSlug)
	return jsonNames(dir)
}

// Leaves reads the leaf document for one note topic.
func (c *Corpus) Leaves(level int, subjectSlug, topic string) ([]Item, error) {
	path := filepath.Join(c.root, "notes", fmt.Sprintf("level_%d", level), subjectSlug, topic+".json")
	return readLeafDoc(path)
}

// LabSubjects lists the lab subject directories for a level, in lexical
// order. Missing levels return an empty list.
func (c *Corpus) LabSubjects(level int) ([]string, error) {
	dir := filepath.Join(c.root, "labs", fmt.Sprintf("level_%d", level))
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading lab directory %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// LabTopicFiles lists the leaf document names under one lab subject.
// Legacy flow files define navigation rather than data and are skipped.
func (c *Corpus) LabTopicFiles(level int, subjectSlug string) ([]string, error) {
	dir := filepath.Join(c.root, "labs", fmt.Sprintf("level_%d", level), subjectSlug)
	names, err := jsonNames(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), "_flow") || strings.Contains(name, "Flow") {
			continue
		}
		out = append(out, name)
	}
	return out, nil
}

// LabLeaves reads the leaf document for one lab topic.
func (c *Corpus) LabLeaves(level int, subjectSlug, topic string) ([]Item, error) {
	path := filepath.Join(c.root, "labs", fmt.Sprintf("level_%d", level), subjectSlug, topic+".json")
	return readLeafDoc(path)
}

// RoutineFiles lists the routine leaf document names, in lexical order.
func (c *Corpus) RoutineFiles() ([]string, error) {
	names, err := jsonNames(filepath.Join(c.root, "routines"))
	if err != nil {
		return nil, err
	}
	return names, nil
}

// RoutineLeaves reads one routine leaf document.
func (c *Corpus) RoutineLeaves(name string) ([]Item, error) {
	return readLeafDoc(filepath.Join(c.root, "routines", name+".json"))
}

// Results reads the global results leaf document. A missing file returns an
// empty list.
func (c *Corpus) Results() ([]Item, error) {
	items, err := readLeafDoc(filepath.Join(c.root, "results.json"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	return items, err
}

func readLeafDoc(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return items, nil
}

// jsonNames lists the ".json" files of dir without their extension, in
// lexical order. A missing directory yields an empty list.
func jsonNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	return names, nil
}
