// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/triptoafsin/notebot-engine/internal/store"
	"github.com/triptoafsin/notebot-engine/pkg/types"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the store with sample data for testing",
	Long: `seed wipes the store and inserts a small sample dataset: four levels, a
few first-level subjects with topics and notes, one lab report, one question
bank, one routine, and one result. Useful for exercising the compat surface
without a corpus snapshot.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().String("db", "", "SQLite database path")

	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg := engineConfig()

	s, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	if err := s.Wipe(ctx); err != nil {
		return err
	}

	var levelIDs [4]int64
	for i := range levelIDs {
		n := i + 1
		id, err := s.CreateLevel(ctx, types.Level{
			Name:        fmt.Sprintf("level_%d", n),
			DisplayName: fmt.Sprintf("Level %d", n),
			Slug:        fmt.Sprintf("%d", n),
			SortOrder:   n,
		})
		if err != nil {
			return err
		}
		levelIDs[i] = id
	}
	l1 := levelIDs[0]

	mathID, err := seedSubject(ctx, s, l1, "math1", "Math-I", 1)
	if err != nil {
		return err
	}
	if _, err := seedSubject(ctx, s, l1, "chem1", "Chemistry-I", 2); err != nil {
		return err
	}
	if _, err := seedSubject(ctx, s, l1, "phy1", "Physics-I", 3); err != nil {
		return err
	}

	booksID, err := s.CreateTopic(ctx, types.Topic{
		SubjectID:   mathID,
		Name:        "math1_books_flow",
		DisplayName: "Books",
		Slug:        "math1-books-flow",
		SortOrder:   1,
	})
	if err != nil {
		return err
	}
	if _, err := s.CreateTopic(ctx, types.Topic{
		SubjectID:   mathID,
		Name:        "math1_ques_flow",
		DisplayName: "Questions",
		Slug:        "math1-ques-flow",
		SortOrder:   2,
	}); err != nil {
		return err
	}

	sampleNotes := []types.Note{
		{TopicID: booksID, Title: "Higher Engineering Mathematics (B.S. Grewal)", URL: "https://drive.google.com/file/d/example1/view", SortOrder: 1},
		{TopicID: booksID, Title: "Advanced Engineering Mathematics (Erwin Kreyszig)", URL: "https://drive.google.com/file/d/example2/view", SortOrder: 2},
	}
	for _, n := range sampleNotes {
		if _, err := s.CreateNote(ctx, n); err != nil {
			return err
		}
	}

	if _, err := s.CreateLabReport(ctx, types.LabReport{
		LevelID:     l1,
		SubjectSlug: "chem1",
		TopicName:   "chem1LabExperiment1",
		Title:       "Acid-Base Titration",
		URL:         "https://drive.google.com/file/d/example3/view",
		SortOrder:   1,
	}); err != nil {
		return err
	}
	if _, err := s.CreateQuestionBank(ctx, types.QuestionBank{
		LevelID:     l1,
		SubjectSlug: "math1",
		Title:       "All Level 1 QBs",
		URL:         "https://drive.google.com/drive/folders/example4",
		SortOrder:   1,
	}); err != nil {
		return err
	}
	if _, err := s.CreateRoutine(ctx, types.Routine{
		LevelID:   l1,
		Term:      "1st",
		Title:     "Level 1 Routine 2024",
		URL:       "https://drive.google.com/file/d/example5/view",
		SortOrder: 1,
	}); err != nil {
		return err
	}
	if _, err := s.CreateResult(ctx, types.Result{
		Title:     "BUTEX Result Portal",
		URL:       "https://result.butex.edu.bd",
		Category:  "portal",
		SortOrder: 1,
	}); err != nil {
		return err
	}

	counts, err := s.Counts(ctx)
	if err != nil {
		return err
	}
	fmt.Println("Seeded:")
	for _, table := range []string{"levels", "subjects", "topics", "notes", "lab_reports", "question_banks", "routines", "results"} {
		fmt.Printf("  %-15s %d\n", table, counts[table])
	}
	return nil
}

func seedSubject(ctx context.Context, s *store.Store, levelID int64, slug, display string, order int) (int64, error) {
	return s.CreateSubject(ctx, types.Subject{
		LevelID:     levelID,
		Name:        slug,
		DisplayName: display,
		Slug:        slug,
		SortOrder:   order,
	})
}
