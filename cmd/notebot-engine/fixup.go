// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/triptoafsin/notebot-engine/internal/importer"
)

var fixupCmd = &cobra.Command{
	Use:   "fixup",
	Short: "Apply the supplementary migration document to the store",
	Long: `fixup upserts direct-link subjects, stamps lab rows with their legacy
display names, and merges the lab alias table into each level's metadata.
With no --fixup-file the embedded document matching the legacy deployment
is used. The pass is idempotent.`,
	RunE: runFixup,
}

func init() {
	fixupCmd.Flags().String("db", "", "SQLite database path")
	fixupCmd.Flags().String("fixup-file", "", "external fixup document (YAML)")

	rootCmd.AddCommand(fixupCmd)
}

func runFixup(cmd *cobra.Command, args []string) error {
	cfg := engineConfig()

	s, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	path, _ := cmd.Flags().GetString("fixup-file")
	doc, err := importer.LoadFixupDoc(path)
	if err != nil {
		return err
	}
	return importer.Fixup(cmd.Context(), s, doc, os.Stdout)
}
