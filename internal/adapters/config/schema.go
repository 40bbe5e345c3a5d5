package config

import "time"

// File represents the structure of the pinset.yaml configuration file.
type File struct {
	Index   IndexSection   `mapstructure:"index"`
	Cache   CacheSection   `mapstructure:"cache"`
	Resolve ResolveSection `mapstructure:"resolve"`
}

// IndexSection configures the package index endpoint.
type IndexSection struct {
	// URL is the package index base URL.
	URL string `mapstructure:"url"`
	// Timeout bounds a single index request.
	Timeout time.Duration `mapstructure:"timeout"`
}

// CacheSection configures the index response cache.
type CacheSection struct {
	// Dir is the cache directory. Empty means the user cache directory.
	Dir string `mapstructure:"dir"`
	// TTL is how long cached responses stay fresh. Zero disables caching.
	TTL time.Duration `mapstructure:"ttl"`
}

// ResolveSection configures resolution behavior.
type ResolveSection struct {
	// AllowPrereleases lets resolution pick pre-release versions even when
	// no specifier clause mentions one.
	AllowPrereleases bool `mapstructure:"allow_prereleases"`
	// Concurrency caps parallel index lookups. Zero means one per CPU.
	Concurrency int `mapstructure:"concurrency"`
}
