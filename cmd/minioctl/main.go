// minioctl is an interactive CLI for exercising a shared-memory file
// cache.
//
// Usage:
//
//	minioctl [opts]
//
// Options:
//
//	-c, --capacity       Total cache capacity in bytes (required, or via config)
//	-m, --max-item-size  Maximum single-item size in bytes (0 = unlimited)
//	-a, --avg-item-size  Expected average item size, for entry-table sizing
//	    --config         Path to a JSONC config file (default: ./minioctl.jsonc)
//	    --flush-lock     Path to an advisory cross-process flush lock file
//
// Commands (in REPL):
//
//	read <path>              Read a file through the cache
//	store <path> <file>      Admit <file>'s contents into the cache under <path>
//	load <path>              Print a cached entry's contents
//	contains <path>          Report whether <path> has a live entry
//	flush                    Evict every entry
//	stats                    Show access counters
//	export <file>            Atomically write a JSON stats snapshot to <file>
//	help                     Show this help
//	exit / quit / q          Exit
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/gustrain/minio/pkg/cache"
)

type cacheFlags struct {
	capacityBytes uint64
	maxItemSize   uint64
	avgItemSize   uint64
	flushLockPath string
	configPath    string
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "minioctl: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var flags cacheFlags

	pflag.Uint64VarP(&flags.capacityBytes, "capacity", "c", 0, "total cache capacity in bytes")
	pflag.Uint64VarP(&flags.maxItemSize, "max-item-size", "m", 0, "maximum single-item size in bytes (0 = unlimited)")
	pflag.Uint64VarP(&flags.avgItemSize, "avg-item-size", "a", 0, "expected average item size, for entry-table sizing")
	pflag.StringVar(&flags.flushLockPath, "flush-lock", "", "advisory cross-process flush lock file")
	pflag.StringVar(&flags.configPath, "config", "minioctl.jsonc", "path to a JSONC config file")
	pflag.Parse()

	fc, _, err := loadConfigFile(flags.configPath)
	if err != nil {
		return err
	}

	cfg := fc.toCacheConfig(flags)
	if cfg.CapacityBytes == 0 {
		pflag.Usage()
		return fmt.Errorf("capacity_bytes must be set via --capacity or %s", flags.configPath)
	}

	c, err := cache.Init(cfg)
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer c.Destroy()

	repl := &REPL{cache: c, capacityBytes: cfg.CapacityBytes}

	return repl.Run()
}
