// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/triptoafsin/notebot-engine/internal/cache"
	"github.com/triptoafsin/notebot-engine/internal/scrape"
)

const defaultScrapeTimeout = 30 * time.Second

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Scrape the published-results page",
	Long: `results fetches the published-results page, extracts the result entries,
and prints them as JSON. Scrapes are cached for thirty minutes when a Redis
cache is configured.`,
	RunE: runResults,
}

func init() {
	resultsCmd.Flags().Int("limit", 0, "maximum entries to print (default 10)")
	resultsCmd.Flags().String("results-url", "", "published-results page URL")
	resultsCmd.Flags().String("redis-url", "", "Redis connection URL (empty disables caching)")
	resultsCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")

	rootCmd.AddCommand(resultsCmd)
}

func runResults(cmd *cobra.Command, args []string) error {
	cfg := engineConfig()

	if url, _ := cmd.Flags().GetString("results-url"); url != "" {
		cfg.Scrape.ResultsURL = url
	}
	if url, _ := cmd.Flags().GetString("redis-url"); url != "" {
		cfg.Cache.URL = url
	}
	if timeout, _ := cmd.Flags().GetDuration("timeout"); timeout != 0 {
		cfg.Scrape.Timeout = timeout
	}
	if cfg.Scrape.Timeout == 0 {
		cfg.Scrape.Timeout = defaultScrapeTimeout
	}

	log := newLogger()
	c, err := cache.FromConfig(cfg.Cache, log)
	if err != nil {
		return err
	}
	defer c.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := scrape.New(cfg.Scrape, c, log).Results(cmd.Context(), limit)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
