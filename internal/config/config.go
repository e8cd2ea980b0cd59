// Package config reads the command-line tool's settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds the settings shared by every command. Flags override the
// environment.
type Config struct {
	DatabasePath  string        // GONBC_DB
	LookupTimeout time.Duration // GONBC_LOOKUP_TIMEOUT
	CacheSize     int           // GONBC_CACHE_SIZE, climate lookups kept in memory
	Workers       int           // GONBC_WORKERS, parallel batch members
	Debug         bool          // GONBC_DEBUG
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	timeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("GONBC_LOOKUP_TIMEOUT", "5s"))
	if err != nil || timeout <= 0 {
		return nil, errors.New("invalid GONBC_LOOKUP_TIMEOUT")
	}

	cacheSize, err := parsePositiveInt("GONBC_CACHE_SIZE", 256)
	if err != nil {
		return nil, err
	}

	workers, err := parsePositiveInt("GONBC_WORKERS", runtime.GOMAXPROCS(0))
	if err != nil {
		return nil, err
	}

	debug := false
	if v := os.Getenv("GONBC_DEBUG"); v != "" {
		debug, err = strconv.ParseBool(v)
		if err != nil {
			return nil, errors.New("invalid GONBC_DEBUG")
		}
	}

	cfg := &Config{
		DatabasePath:  sharedcfg.EnvOrDefault("GONBC_DB", "loads.db"),
		LookupTimeout: timeout,
		CacheSize:     cacheSize,
		Workers:       workers,
		Debug:         debug,
	}

	if cfg.DatabasePath == "" {
		return nil, errors.New("GONBC_DB is required")
	}

	return cfg, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", key)
	}
	return n, nil
}
