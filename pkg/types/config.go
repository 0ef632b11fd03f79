// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network
// requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Expiry is treated as "source
	// unavailable", not as a crash.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "notebot-engine/2.0").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// StoreConfig holds settings for the canonical SQLite store.
type StoreConfig struct {
	// Path is the SQLite database file. Required for every batch job;
	// missing configuration aborts with a non-zero exit.
	Path string `json:"path" yaml:"path"`
}

// CacheConfig holds settings for the optional Redis cache. An empty URL
// disables caching; read paths then go straight to the store.
type CacheConfig struct {
	// URL is the Redis connection URL (e.g. "redis://localhost:6379").
	URL string `json:"url" yaml:"url"`

	// TTL is the default entry lifetime (default 1h).
	TTL time.Duration `json:"ttl" yaml:"ttl"`
}

// ImportConfig holds settings for the migrate stage.
type ImportConfig struct {
	// CorpusDir is the root of the legacy corpus snapshot directory.
	CorpusDir string `json:"corpus_dir" yaml:"corpus_dir"`
}

// SyncConfig holds settings for the sync (snapshot reconciliation) stage.
type SyncConfig struct {
	HTTPConfig `yaml:",inline"`

	// V1BaseURL is the base URL of the running legacy API
	// (e.g. "http://localhost:6969").
	V1BaseURL string `json:"v1_base_url" yaml:"v1_base_url"`
}

// ScrapeConfig holds settings for the results scraper.
type ScrapeConfig struct {
	HTTPConfig `yaml:",inline"`

	// ResultsURL is the published-results page to scrape.
	ResultsURL string `json:"results_url" yaml:"results_url"`
}

// EngineConfig groups all stage configurations.
type EngineConfig struct {
	Store  StoreConfig  `json:"store" yaml:"store"`
	Cache  CacheConfig  `json:"cache" yaml:"cache"`
	Import ImportConfig `json:"import" yaml:"import"`
	Sync   SyncConfig   `json:"sync" yaml:"sync"`
	Scrape ScrapeConfig `json:"scrape" yaml:"scrape"`
}
