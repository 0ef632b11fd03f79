// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package importer

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/triptoafsin/notebot-engine/internal/slug"
	"github.com/triptoafsin/notebot-engine/internal/store"
	"github.com/triptoafsin/notebot-engine/pkg/types"
)

// The fixup pass adds what the structural walk cannot infer: legacy
// "shortcut" subjects that are bare links with no topics beneath them, and
// the display-name/alias tables for lab subjects, whose legacy route slugs
// differ from the stored ones. The data is a declarative YAML document;
// the embedded copy matches the legacy deployment and can be overridden
// with an external file.

//go:embed fixup.yaml
var defaultFixupDoc []byte

// DirectSubject is one legacy direct-link subject to ensure per level.
type DirectSubject struct {
	SubName   string `yaml:"subName"`
	URL       string `yaml:"url"`
	SortOrder int    `yaml:"sortOrder"`
}

// FixupDoc is the supplementary migration document.
type FixupDoc struct {
	// DirectURLSubjects lists per level slug the subjects that are
	// terminal links.
	DirectURLSubjects map[string][]DirectSubject `yaml:"direct_url_subjects"`

	// LabSubjects lists per level slug the lab alias table: canonical
	// storage slug, display name, and the slug legacy routes used.
	LabSubjects map[string][]types.LabSubjectAlias `yaml:"lab_subjects"`
}

// LoadFixupDoc parses the fixup document at path, or the embedded default
// when path is empty.
func LoadFixupDoc(path string) (*FixupDoc, error) {
	data := defaultFixupDoc
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading fixup document: %w", err)
		}
	}
	var doc FixupDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing fixup document: %w", err)
	}
	return &doc, nil
}

// Fixup applies the supplementary document to an already-migrated store:
// it inserts or annotates direct-URL subjects, stamps lab rows with their
// display names, and merges the lab alias table into each level's metadata.
func Fixup(ctx context.Context, s *store.Store, doc *FixupDoc, w io.Writer) error {
	levels, err := s.Levels(ctx)
	if err != nil {
		return err
	}
	levelIDs := make(map[string]int64, len(levels))
	for _, l := range levels {
		levelIDs[l.Slug] = l.ID
	}

	added, updated := 0, 0
	for levelSlug, items := range doc.DirectURLSubjects {
		levelID, ok := levelIDs[levelSlug]
		if !ok {
			fmt.Fprintf(w, "level %s not found, skipping its direct subjects\n", levelSlug)
			continue
		}
		for _, item := range items {
			existing, err := s.SubjectByDisplayName(ctx, levelID, item.SubName)
			if err != nil {
				return err
			}
			if existing != nil {
				if err := s.MergeSubjectMetadata(ctx, existing.ID, types.Metadata{
					types.MetaDirectURL: item.URL,
				}); err != nil {
					return err
				}
				updated++
				continue
			}
			subSlug := slug.Slugify(item.SubName)
			if _, err := s.CreateSubject(ctx, types.Subject{
				LevelID:     levelID,
				Name:        subSlug,
				DisplayName: item.SubName,
				Slug:        subSlug,
				SortOrder:   item.SortOrder,
				Metadata:    types.Metadata{types.MetaDirectURL: item.URL},
			}); err != nil {
				return err
			}
			added++
		}
	}
	fmt.Fprintf(w, "direct-url subjects: %d added, %d updated\n", added, updated)

	labRows := int64(0)
	for levelSlug, aliases := range doc.LabSubjects {
		levelID, ok := levelIDs[levelSlug]
		if !ok {
			continue
		}
		for _, alias := range aliases {
			n, err := s.MergeLabMetadata(ctx, levelID, alias.DBSlug, types.Metadata{
				"displayName":         alias.DisplayName,
				types.MetaV1RouteSlug: alias.V1RouteSlug,
			})
			if err != nil {
				return err
			}
			labRows += n
		}
		if err := s.MergeLevelMetadata(ctx, levelID, types.Metadata{
			types.MetaLabSubjects: aliases,
		}); err != nil {
			return err
		}
	}
	fmt.Fprintf(w, "lab rows annotated: %d\n", labRows)
	return nil
}
