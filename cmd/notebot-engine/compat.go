// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/triptoafsin/notebot-engine/internal/cache"
	"github.com/triptoafsin/notebot-engine/internal/compat"
)

var compatCmd = &cobra.Command{
	Use:   "compat <path>",
	Short: "Resolve a legacy route against the canonical store",
	Long: `compat resolves one legacy route path (for example "app/notes/1/math1")
from the canonical store and prints the response body the old API would
have produced. Resolutions go through the Redis cache when one is
configured.

Unknown levels, subjects, and topics print the legacy error body and exit
non-zero.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompat,
}

func init() {
	compatCmd.Flags().String("db", "", "SQLite database path")
	compatCmd.Flags().String("redis-url", "", "Redis connection URL (empty disables caching)")
	compatCmd.Flags().Bool("compact", false, "print the body without indentation")

	rootCmd.AddCommand(compatCmd)
}

func runCompat(cmd *cobra.Command, args []string) error {
	cfg := engineConfig()
	if url, _ := cmd.Flags().GetString("redis-url"); url != "" {
		cfg.Cache.URL = url
	}

	s, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	log := newLogger()
	c, err := cache.FromConfig(cfg.Cache, log)
	if err != nil {
		return err
	}
	defer c.Close()

	body, err := compat.New(s, c, log).Resolve(cmd.Context(), args[0])
	if err != nil {
		if compat.IsNotFound(err) {
			printJSON(cmd, compat.NotFoundBody(err))
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
		}
		return err
	}
	printJSON(cmd, body)
	return nil
}

func printJSON(cmd *cobra.Command, body []byte) {
	if compact, _ := cmd.Flags().GetBool("compact"); compact {
		fmt.Println(string(body))
		return
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(buf.String())
}
