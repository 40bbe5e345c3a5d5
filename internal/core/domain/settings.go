package domain

import "time"

// Settings is the resolved tool configuration, after defaults, the optional
// config file, environment overrides, and flags have been merged.
type Settings struct {
	// IndexURL is the package index base URL (e.g., "https://pypi.org").
	IndexURL string

	// Timeout bounds a single index request.
	Timeout time.Duration

	// CacheTTL is how long cached index responses stay fresh.
	CacheTTL time.Duration

	// CacheDir is the index response cache directory.
	CacheDir string

	// AllowPrereleases lets resolution pick pre-release versions even when
	// no specifier clause mentions one.
	AllowPrereleases bool

	// Concurrency caps parallel index lookups. Zero means one per CPU.
	Concurrency int
}
