// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads deployment credentials from a directory of
// plain-text files. Each file is one secret: the filename is the key and
// the trimmed contents are the value.
//
// Supported key files: db-path, redis-url, v1-base-url.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/triptoafsin/notebot-engine/pkg/types"
)

// Key names recognized by Apply.
const (
	KeyDBPath    = "db-path"
	KeyRedisURL  = "redis-url"
	KeyV1BaseURL = "v1-base-url"
)

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory is not an error; Load returns an empty
// map. Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Apply fills empty engine configuration fields from loaded secrets.
// Explicit configuration always wins over a secret file.
func Apply(cfg *types.EngineConfig, secrets map[string]string) {
	if cfg.Store.Path == "" {
		cfg.Store.Path = secrets[KeyDBPath]
	}
	if cfg.Cache.URL == "" {
		cfg.Cache.URL = secrets[KeyRedisURL]
	}
	if cfg.Sync.V1BaseURL == "" {
		cfg.Sync.V1BaseURL = secrets[KeyV1BaseURL]
	}
}
