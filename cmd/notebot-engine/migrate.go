// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/triptoafsin/notebot-engine/internal/corpus"
	"github.com/triptoafsin/notebot-engine/internal/importer"
	"github.com/triptoafsin/notebot-engine/internal/store"
	"github.com/triptoafsin/notebot-engine/pkg/types"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Import a legacy corpus snapshot into the canonical store",
	Long: `migrate walks a legacy corpus snapshot directory and imports every
level, subject, topic, note, lab report, question bank, routine, and result
into the SQLite store. The walk is idempotent: rerunning against the same
snapshot changes nothing.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().String("db", "", "SQLite database path")
	migrateCmd.Flags().String("corpus-dir", "", "legacy corpus snapshot directory")
	migrateCmd.Flags().Bool("fixup", true, "apply the embedded fixup document after the walk")

	rootCmd.AddCommand(migrateCmd)
}

// openStore opens the canonical store, preferring the flag over config.
// A missing path is a hard error for every batch stage.
func openStore(cmd *cobra.Command, cfg types.EngineConfig) (*store.Store, error) {
	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		path = cfg.Store.Path
	}
	if path == "" {
		return nil, fmt.Errorf("no database path: set --db, store.path in config, or a db-path secret")
	}
	return store.Open(types.StoreConfig{Path: path})
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg := engineConfig()

	dir, _ := cmd.Flags().GetString("corpus-dir")
	if dir == "" {
		dir = cfg.Import.CorpusDir
	}
	if dir == "" {
		return fmt.Errorf("no corpus directory: set --corpus-dir or import.corpus_dir in config")
	}

	s, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	c, err := corpus.Open(dir)
	if err != nil {
		return err
	}

	imp := importer.New(s, c, newLogger())
	sum, err := imp.Run(cmd.Context(), os.Stdout)
	if err != nil {
		return err
	}
	fmt.Printf("Migrated %d levels, %d subjects, %d topics, %d notes\n",
		sum.Levels, sum.Subjects, sum.Topics, sum.Notes)
	fmt.Printf("         %d lab reports, %d question banks, %d routines, %d results\n",
		sum.LabReports, sum.QuestionBanks, sum.Routines, sum.Results)

	if apply, _ := cmd.Flags().GetBool("fixup"); apply {
		doc, err := importer.LoadFixupDoc("")
		if err != nil {
			return err
		}
		if err := importer.Fixup(cmd.Context(), s, doc, os.Stdout); err != nil {
			return err
		}
	}
	return nil
}
