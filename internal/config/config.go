/* Copyright (c) 2025 FuturesLab <https://futureslab.github.io>
 * SPDX-License-Identifier: BSD-3-Clause */
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppEnv   string
	TZ       string
	HTTPAddr string

	PublicBaseURL string

	// Bug table data sources. BugsBaseURL is the location the per-contributor
	// JSON documents are served from; BugsSources is the fixed ordered list of
	// document names. Merge order follows this list, not fetch completion.
	BugsBaseURL string
	BugsSources []string

	HTTPTimeout  time.Duration
	FetchTimeout time.Duration
	CacheTTL     time.Duration

	MaxConcurrency int
	ProbeCron      string

	StaticDir string
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoi(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func dur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func parseStrings(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func Load() Config {
	cfg := Config{
		AppEnv:   getenv("APP_ENV", "dev"),
		TZ:       getenv("APP_TZ", "UTC"),
		HTTPAddr: getenv("HTTP_ADDR", ":8080"),

		PublicBaseURL: getenv("PUBLIC_BASE_URL", "http://localhost:8080"),

		BugsBaseURL: getenv("BUGS_BASE_URL", ""),
		BugsSources: parseStrings(getenv("BUGS_SOURCES", "")),

		HTTPTimeout:  dur("HTTP_TIMEOUT", 15*time.Second),
		FetchTimeout: dur("FETCH_TIMEOUT", 30*time.Second),
		CacheTTL:     dur("CACHE_TTL", 0),

		MaxConcurrency: atoi("MAX_CONCURRENCY", 8),
		ProbeCron:      getenv("PROBE_CRON", "@every 15m"),

		StaticDir: getenv("STATIC_DIR", "static"),
	}

	// set global timezone if available
	if loc, err := time.LoadLocation(cfg.TZ); err == nil {
		time.Local = loc
	} else {
		log.Printf("warning: cannot load TZ %s: %v", cfg.TZ, err)
	}

	return cfg
}
