// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/triptoafsin/notebot-engine/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Cache operations",
}

var cacheFlushCmd = &cobra.Command{
	Use:   "flush [pattern]",
	Short: "Delete cached entries matching a pattern (default: all)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCacheFlush,
}

func init() {
	cacheCmd.PersistentFlags().String("redis-url", "", "Redis connection URL")

	cacheCmd.AddCommand(cacheFlushCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheFlush(cmd *cobra.Command, args []string) error {
	cfg := engineConfig()
	if url, _ := cmd.Flags().GetString("redis-url"); url != "" {
		cfg.Cache.URL = url
	}
	if cfg.Cache.URL == "" {
		return fmt.Errorf("no Redis URL: set --redis-url, cache.url in config, or a redis-url secret")
	}

	c, err := cache.FromConfig(cfg.Cache, newLogger())
	if err != nil {
		return err
	}
	defer c.Close()

	pattern := "*"
	if len(args) == 1 {
		pattern = args[0]
	}
	c.DelPattern(cmd.Context(), pattern)
	fmt.Printf("Flushed cache entries matching %q\n", pattern)
	return nil
}
