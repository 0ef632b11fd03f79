// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package importer performs the one-shot migration of the legacy corpus
// into canonical rows. The run is idempotent by construction: it wipes
// every canonical table first and replays the whole corpus, so re-running
// always produces the same state. A parse failure on one node is logged
// and skips that node only.
package importer

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/triptoafsin/notebot-engine/internal/corpus"
	"github.com/triptoafsin/notebot-engine/internal/extract"
	"github.com/triptoafsin/notebot-engine/internal/slug"
	"github.com/triptoafsin/notebot-engine/internal/store"
	"github.com/triptoafsin/notebot-engine/pkg/types"
)

// levelSpecs are the academic tiers created at migration start. The walk
// below generalizes to any count; this domain has four.
var levelSpecs = []types.Level{
	{Name: "level_1", DisplayName: "Level 1", Slug: "1", SortOrder: 1},
	{Name: "level_2", DisplayName: "Level 2", Slug: "2", SortOrder: 2},
	{Name: "level_3", DisplayName: "Level 3", Slug: "3", SortOrder: 3},
	{Name: "level_4", DisplayName: "Level 4", Slug: "4", SortOrder: 4},
}

// Importer walks one corpus snapshot into one store.
type Importer struct {
	store  *store.Store
	corpus *corpus.Corpus
	log    zerolog.Logger
}

// New returns an Importer over the given store and corpus.
func New(s *store.Store, c *corpus.Corpus, log zerolog.Logger) *Importer {
	return &Importer{store: s, corpus: c, log: log}
}

// Summary holds per-entity row counts from a migration run.
type Summary struct {
	Levels        int
	Subjects      int
	Topics        int
	Notes         int
	LabReports    int
	QuestionBanks int
	Routines      int
	Results       int
	Skipped       int
}

// Run wipes the canonical tables and replays the whole corpus. Progress
// lines go to w; per-node skips are logged and never abort the run.
func (imp *Importer) Run(ctx context.Context, w io.Writer) (Summary, error) {
	var sum Summary

	if err := imp.store.Wipe(ctx); err != nil {
		return sum, fmt.Errorf("wiping canonical tables: %w", err)
	}

	// Levels come first; everything else hangs off their ids.
	levelIDs := make(map[string]int64, len(levelSpecs))
	for _, spec := range levelSpecs {
		id, err := imp.store.CreateLevel(ctx, spec)
		if err != nil {
			return sum, fmt.Errorf("creating level %q: %w", spec.Slug, err)
		}
		levelIDs[spec.Slug] = id
		sum.Levels++
	}
	fmt.Fprintf(w, "created %d levels\n", sum.Levels)

	for i, spec := range levelSpecs {
		levelNum := i + 1
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		imp.importNotes(ctx, w, levelNum, levelIDs[spec.Slug], &sum)
		imp.importLabs(ctx, w, levelNum, levelIDs[spec.Slug], &sum)
	}

	imp.importRoutines(ctx, w, levelIDs[levelSpecs[0].Slug], &sum)
	imp.importResults(ctx, w, &sum)

	fmt.Fprintf(w,
		"\nlevels: %d, subjects: %d, topics: %d, notes: %d, labs: %d, qbs: %d, routines: %d, results: %d, skipped: %d\n",
		sum.Levels, sum.Subjects, sum.Topics, sum.Notes,
		sum.LabReports, sum.QuestionBanks, sum.Routines, sum.Results, sum.Skipped)
	return sum, nil
}

func (imp *Importer) importNotes(ctx context.Context, w io.Writer, levelNum int, levelID int64, sum *Summary) {
	subs, err := imp.corpus.Subjects(levelNum)
	if err != nil {
		if os.IsNotExist(err) {
			imp.log.Info().Int("level", levelNum).Msg("no subject listing, skipping level")
		} else {
			imp.log.Warn().Err(err).Int("level", levelNum).Msg("unreadable subject listing, skipping level")
			sum.Skipped++
		}
		return
	}

	fmt.Fprintf(w, "level %d: %d subjects\n", levelNum, len(subs))
	subjectOrder := 0

	for _, sub := range subs {
		subjectOrder++
		subName := sub.SubName
		if subName == "" {
			subName = "Unknown"
		}

		// Direct links without a nested route are question banks.
		if sub.URL != "" && sub.Route == "" {
			_, err := imp.store.CreateQuestionBank(ctx, types.QuestionBank{
				LevelID:     levelID,
				SubjectSlug: slug.Slugify(subName),
				Title:       subName,
				URL:         sub.URL,
				SortOrder:   subjectOrder,
				Metadata:    extract.Metadata(subName),
			})
			if err != nil {
				imp.log.Warn().Err(err).Str("subject", subName).Msg("question bank insert failed")
				sum.Skipped++
				continue
			}
			sum.QuestionBanks++
			continue
		}
		if sub.Route == "" {
			continue
		}

		subjectSlug := slug.RouteTail(sub.Route)
		subjectID, err := imp.store.CreateSubject(ctx, types.Subject{
			LevelID:     levelID,
			Name:        subjectSlug,
			DisplayName: subName,
			Slug:        subjectSlug,
			SortOrder:   subjectOrder,
		})
		if err != nil {
			imp.log.Warn().Err(err).Str("subject", subjectSlug).Msg("subject insert failed")
			sum.Skipped++
			continue
		}
		sum.Subjects++

		topicNames, err := imp.corpus.TopicFiles(levelNum, subjectSlug)
		if err != nil {
			imp.log.Warn().Err(err).Str("subject", subjectSlug).Msg("topic listing failed")
			sum.Skipped++
			continue
		}
		if len(topicNames) == 0 {
			imp.log.Info().Str("subject", subjectSlug).Msg("no topics under subject")
		}

		topicOrder := 0
		for _, topicName := range topicNames {
			topicOrder++
			topicID, err := imp.store.CreateTopic(ctx, types.Topic{
				SubjectID:   subjectID,
				Name:        topicName,
				DisplayName: humanizeTopic(topicName),
				Slug:        slug.Slugify(topicName),
				SortOrder:   topicOrder,
			})
			if err != nil {
				imp.log.Warn().Err(err).Str("topic", topicName).Msg("topic insert failed")
				sum.Skipped++
				continue
			}
			sum.Topics++

			items, err := imp.corpus.Leaves(levelNum, subjectSlug, topicName)
			if err != nil {
				imp.log.Warn().Err(err).Str("topic", topicName).Msg("leaf document unreadable, topic left empty")
				sum.Skipped++
				continue
			}

			noteOrder := 0
			for _, item := range items {
				title, url, meta, ok := normalizeItem(item)
				if !ok {
					imp.log.Debug().Str("topic", topicName).Msg("leaf block without url skipped")
					continue
				}
				noteOrder++
				if _, err := imp.store.CreateNote(ctx, types.Note{
					TopicID:   topicID,
					Title:     title,
					URL:       url,
					SortOrder: noteOrder,
					Metadata:  meta,
				}); err != nil {
					imp.log.Warn().Err(err).Str("topic", topicName).Msg("note insert failed")
					sum.Skipped++
					noteOrder--
					continue
				}
				sum.Notes++
			}
			fmt.Fprintf(w, "  %s/%s: %d notes\n", subjectSlug, topicName, noteOrder)
		}
	}
}

func (imp *Importer) importLabs(ctx context.Context, w io.Writer, levelNum int, levelID int64, sum *Summary) {
	labSubjects, err := imp.corpus.LabSubjects(levelNum)
	if err != nil {
		imp.log.Warn().Err(err).Int("level", levelNum).Msg("lab listing failed, skipping level labs")
		sum.Skipped++
		return
	}
	if len(labSubjects) == 0 {
		return
	}
	fmt.Fprintf(w, "level %d: %d lab subjects\n", levelNum, len(labSubjects))

	for _, labSubject := range labSubjects {
		topicNames, err := imp.corpus.LabTopicFiles(levelNum, labSubject)
		if err != nil {
			imp.log.Warn().Err(err).Str("subject", labSubject).Msg("lab topic listing failed")
			sum.Skipped++
			continue
		}

		labOrder := 0
		for _, topicName := range topicNames {
			items, err := imp.corpus.LabLeaves(levelNum, labSubject, topicName)
			if err != nil {
				imp.log.Warn().Err(err).Str("topic", topicName).Msg("lab leaf document unreadable, skipped")
				sum.Skipped++
				continue
			}
			for _, item := range items {
				title, url, meta, ok := normalizeItem(item)
				if !ok {
					continue
				}
				labOrder++
				if _, err := imp.store.CreateLabReport(ctx, types.LabReport{
					LevelID:     levelID,
					SubjectSlug: labSubject,
					TopicName:   topicName,
					Title:       title,
					URL:         url,
					SortOrder:   labOrder,
					Metadata:    meta,
				}); err != nil {
					imp.log.Warn().Err(err).Str("topic", topicName).Msg("lab insert failed")
					sum.Skipped++
					labOrder--
					continue
				}
				sum.LabReports++
			}
		}
		fmt.Fprintf(w, "  lab %s: %d items\n", labSubject, labOrder)
	}
}

func (imp *Importer) importRoutines(ctx context.Context, w io.Writer, levelID int64, sum *Summary) {
	names, err := imp.corpus.RoutineFiles()
	if err != nil {
		imp.log.Warn().Err(err).Msg("routine listing failed, skipping routines")
		sum.Skipped++
		return
	}

	for _, name := range names {
		items, err := imp.corpus.RoutineLeaves(name)
		if err != nil {
			imp.log.Warn().Err(err).Str("file", name).Msg("routine document unreadable, skipped")
			sum.Skipped++
			continue
		}
		routineOrder := 0
		for _, item := range items {
			title, url, meta, ok := normalizeItem(item)
			if !ok {
				continue
			}
			if title == "Untitled" && item.Text == "" {
				title = "Routine"
			}
			routineOrder++
			if _, err := imp.store.CreateRoutine(ctx, types.Routine{
				LevelID:   levelID,
				Title:     title,
				URL:       url,
				SortOrder: routineOrder,
				Metadata:  meta,
			}); err != nil {
				imp.log.Warn().Err(err).Str("file", name).Msg("routine insert failed")
				sum.Skipped++
				routineOrder--
				continue
			}
			sum.Routines++
		}
		if routineOrder > 0 {
			fmt.Fprintf(w, "routines from %s: %d items\n", name, routineOrder)
		}
	}
}

func (imp *Importer) importResults(ctx context.Context, w io.Writer, sum *Summary) {
	items, err := imp.corpus.Results()
	if err != nil {
		imp.log.Warn().Err(err).Msg("results document unreadable, skipping results")
		sum.Skipped++
		return
	}

	resultOrder := 0
	for _, item := range items {
		title, url, meta, ok := normalizeItem(item)
		if !ok {
			continue
		}
		if title == "Untitled" && item.Text == "" {
			title = "Result"
		}
		resultOrder++
		if _, err := imp.store.CreateResult(ctx, types.Result{
			Title:     title,
			URL:       url,
			SortOrder: resultOrder,
			Metadata:  meta,
		}); err != nil {
			imp.log.Warn().Err(err).Msg("result insert failed")
			sum.Skipped++
			resultOrder--
			continue
		}
		sum.Results++
	}
	if resultOrder > 0 {
		fmt.Fprintf(w, "results: %d items\n", resultOrder)
	}
}

// normalizeItem reduces the legacy item encodings to one (title, url,
// metadata) triple. Text blocks run through the block parser; button-style
// pairs already carry a url, so only metadata extraction applies. Items
// with no url are placeholders and report ok=false.
func normalizeItem(item corpus.Item) (string, string, types.Metadata, bool) {
	if item.Text != "" {
		block, meta, ok := extract.ParseAndExtract(item.Text)
		if !ok {
			return "", "", nil, false
		}
		return block.Title, block.URL, meta, true
	}
	if item.URL == "" {
		return "", "", nil, false
	}
	title := strings.TrimSpace(item.Title)
	if title == "" {
		title = "Untitled"
	}
	return title, item.URL, extract.Metadata(title), true
}

var camelBoundaryRe = regexp.MustCompile(`([A-Z])`)

// humanizeTopic turns a legacy topic identifier into a display name:
// "math1_books_flow" -> "math1 books flow", "chem1LabExp" -> "chem1 Lab Exp".
// Interior runs of spaces are kept: legacy derived "math1_Books" as
// "math1  Books" and the compat fallback responses must agree.
func humanizeTopic(name string) string {
	out := camelBoundaryRe.ReplaceAllString(name, " $1")
	out = strings.ReplaceAll(out, "_", " ")
	return strings.TrimSpace(out)
}
