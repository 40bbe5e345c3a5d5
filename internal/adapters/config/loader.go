// Package config provides the configuration loader for pinset.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"go.trai.ch/zerr"

	"github.com/pinset/pinset/internal/core/domain"
	"github.com/pinset/pinset/internal/core/ports"
)

const (
	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "PINSET"

	// DefaultIndexURL is the public PyPI endpoint.
	DefaultIndexURL = "https://pypi.org"

	// DefaultTimeout bounds a single index request.
	DefaultTimeout = 30 * time.Second

	// DefaultCacheTTL is how long cached index responses stay fresh.
	DefaultCacheTTL = 24 * time.Hour
)

// Loader implements ports.ConfigLoader backed by viper.
// Settings merge in order: defaults, the nearest pinset.yaml walking up
// from the working directory, then PINSET_* environment overrides.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load returns the merged settings for this run.
func (l *Loader) Load() (*domain.Settings, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("index.url", DefaultIndexURL)
	v.SetDefault("index.timeout", DefaultTimeout)
	v.SetDefault("cache.dir", "")
	v.SetDefault("cache.ttl", DefaultCacheTTL)
	v.SetDefault("resolve.allow_prereleases", false)
	v.SetDefault("resolve.concurrency", 0)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cwd, err := os.Getwd()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to determine working directory")
	}

	if path := findConfigFile(cwd); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, zerr.With(zerr.With(domain.ErrConfigInvalid, "path", path), "reason", err.Error())
		}
		l.logger.Debug(fmt.Sprintf("using configuration from %s", path))
	}

	// Durations arrive as strings from both the config file and the
	// environment.
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))

	var file File
	if err := v.Unmarshal(&file, hook); err != nil {
		return nil, zerr.With(domain.ErrConfigInvalid, "reason", err.Error())
	}

	settings := &domain.Settings{
		IndexURL:         strings.TrimRight(file.Index.URL, "/"),
		Timeout:          file.Index.Timeout,
		CacheTTL:         file.Cache.TTL,
		CacheDir:         file.Cache.Dir,
		AllowPrereleases: file.Resolve.AllowPrereleases,
		Concurrency:      file.Resolve.Concurrency,
	}

	if settings.CacheDir == "" {
		userCache, err := os.UserCacheDir()
		if err != nil {
			// Without a resolvable user cache dir, caching is off for this run.
			settings.CacheTTL = 0
		} else {
			settings.CacheDir = domain.DefaultCachePath(userCache)
		}
	}

	if err := validate(settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// findConfigFile walks from dir up to the filesystem root looking for the
// configuration file. An empty result means defaults apply.
func findConfigFile(dir string) string {
	current := dir
	for {
		path := filepath.Join(current, domain.ConfigFileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}

		parent := filepath.Dir(current)
		if parent == current {
			// Reached root
			return ""
		}
		current = parent
	}
}

func validate(s *domain.Settings) error {
	u, err := url.Parse(s.IndexURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return zerr.With(domain.ErrConfigInvalid, "index_url", s.IndexURL)
	}

	if s.Timeout < 0 {
		return zerr.With(domain.ErrConfigInvalid, "timeout", s.Timeout.String())
	}

	if s.CacheTTL < 0 {
		return zerr.With(domain.ErrConfigInvalid, "cache_ttl", s.CacheTTL.String())
	}

	if s.Concurrency < 0 {
		return zerr.With(domain.ErrConfigInvalid, "concurrency", s.Concurrency)
	}

	return nil
}
