// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/triptoafsin/notebot-engine/internal/reconciler"
	"github.com/triptoafsin/notebot-engine/internal/v1client"
)

const defaultSyncTimeout = 30 * time.Second

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Capture route snapshots from the running legacy API",
	Long: `sync walks the running legacy API and reconciles its routes against the
canonical store: topics are matched by link overlap, matched topics learn
their legacy route slugs and display names, and the legacy listings are
stored verbatim as snapshots so the compat surface can replay them.

The legacy API must be reachable; sync aborts immediately when it is not.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().String("db", "", "SQLite database path")
	syncCmd.Flags().String("v1-base-url", "", "base URL of the running legacy API")
	syncCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")

	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg := engineConfig()

	if base, _ := cmd.Flags().GetString("v1-base-url"); base != "" {
		cfg.Sync.V1BaseURL = base
	}
	if cfg.Sync.V1BaseURL == "" {
		return fmt.Errorf("no legacy API base URL: set --v1-base-url, sync.v1_base_url in config, or a v1-base-url secret")
	}
	if timeout, _ := cmd.Flags().GetDuration("timeout"); timeout != 0 {
		cfg.Sync.Timeout = timeout
	}
	if cfg.Sync.Timeout == 0 {
		cfg.Sync.Timeout = defaultSyncTimeout
	}

	s, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	log := newLogger()
	rec := reconciler.New(s, v1client.New(cfg.Sync, log), log)
	return rec.Run(cmd.Context(), os.Stdout)
}
