// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the notebot-engine CLI.
//
// Each stage of the migration pipeline is a subcommand: migrate walks the
// legacy corpus snapshot into SQLite, fixup applies the supplementary
// document, sync reconciles against the running legacy API, compat resolves
// legacy routes from the canonical store, and results scrapes the published
// results page. seed and cache are operational helpers.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/triptoafsin/notebot-engine/internal/secrets"
	"github.com/triptoafsin/notebot-engine/pkg/types"
)

const defaultUserAgent = "notebot-engine/2.0"

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds deployment credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the notebot-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "notebot-engine",
	Short: "Migration and compatibility engine for the notebot corpus",
	Long: `notebot-engine migrates the legacy notebot content corpus into a canonical
SQLite store and keeps the old route surface alive on top of it.

The batch stages are subcommands: migrate imports a corpus snapshot, fixup
applies the supplementary document, and sync captures route snapshots from
the running legacy API. compat resolves a legacy path against the canonical
store, and results scrapes the published-results page.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./notebot-engine.yaml or ~/.config/notebot-engine/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("notebot-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "notebot-engine"))
		}
	}

	viper.SetEnvPrefix("NOTEBOT_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// engineConfig assembles the configuration for the current invocation:
// config file and environment first, then secrets filling any gaps.
func engineConfig() types.EngineConfig {
	cfg := types.EngineConfig{
		Store: types.StoreConfig{
			Path: viper.GetString("store.path"),
		},
		Cache: types.CacheConfig{
			URL: viper.GetString("cache.url"),
			TTL: viper.GetDuration("cache.ttl"),
		},
		Import: types.ImportConfig{
			CorpusDir: viper.GetString("import.corpus_dir"),
		},
		Sync: types.SyncConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("sync.timeout"),
				UserAgent: defaultUserAgent,
			},
			V1BaseURL: viper.GetString("sync.v1_base_url"),
		},
		Scrape: types.ScrapeConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("scrape.timeout"),
				UserAgent: defaultUserAgent,
			},
			ResultsURL: viper.GetString("scrape.results_url"),
		},
	}
	secrets.Apply(&cfg, loadedSecrets)
	return cfg
}

// newLogger builds the CLI logger. Stage progress goes to stdout; the
// structured log carries diagnostics on stderr.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if v, _ := rootCmd.PersistentFlags().GetBool("verbose"); v {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
