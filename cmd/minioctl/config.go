package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailscale/hujson"

	"github.com/gustrain/minio/pkg/cache"
)

// fileConfig mirrors cache.Config's fields as they appear in a JSONC config
// file (comments and trailing commas allowed, standardized to plain JSON
// before decoding).
type fileConfig struct {
	CapacityBytes uint64 `json:"capacity_bytes"`
	MaxItemSize   uint64 `json:"max_item_size"`
	AvgItemSize   uint64 `json:"avg_item_size"`
	FlushLockPath string `json:"flush_lock_path"`
}

// loadConfigFile reads and parses a JSONC config file. A missing file is
// not an error — it just means every setting comes from flags instead.
func loadConfigFile(path string) (fileConfig, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fileConfig{}, false, nil
		}

		return fileConfig{}, false, fmt.Errorf("reading %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fileConfig{}, false, fmt.Errorf("invalid JSONC in %s: %w", path, err)
	}

	var cfg fileConfig
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return fileConfig{}, false, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}

	return cfg, true, nil
}

// toCacheConfig merges a loaded file config with flag overrides; a
// non-zero flag value always wins over the file.
func (fc fileConfig) toCacheConfig(flags cacheFlags) cache.Config {
	cfg := cache.Config{
		CapacityBytes: fc.CapacityBytes,
		MaxItemSize:   fc.MaxItemSize,
		AvgItemSize:   fc.AvgItemSize,
		Policy:        cache.PolicyMinIO,
		FlushLockPath: fc.FlushLockPath,
	}

	if flags.capacityBytes != 0 {
		cfg.CapacityBytes = flags.capacityBytes
	}
	if flags.maxItemSize != 0 {
		cfg.MaxItemSize = flags.maxItemSize
	}
	if flags.avgItemSize != 0 {
		cfg.AvgItemSize = flags.avgItemSize
	}
	if flags.flushLockPath != "" {
		cfg.FlushLockPath = flags.flushLockPath
	}

	return cfg
}
