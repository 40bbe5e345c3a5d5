// Package index implements the PackageIndex port against the PyPI JSON
// API with local response caching.
package index

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.trai.ch/zerr"

	"github.com/pinset/pinset/internal/core/domain"
	"github.com/pinset/pinset/internal/core/ports"
	"github.com/pinset/pinset/internal/pep440"
)

// requestTimeout bounds one index request when the settings carry no timeout.
const requestTimeout = 30 * time.Second

// Client implements ports.PackageIndex using the PyPI JSON API with a
// file-based response cache.
type Client struct {
	baseURL    string
	cacheDir   string
	cacheTTL   time.Duration
	httpClient *http.Client
	logger     ports.Logger
}

// NewClient creates a package index client for the configured index.
// A zero cache TTL disables response caching.
func NewClient(settings *domain.Settings, logger ports.Logger) (*Client, error) {
	timeout := settings.Timeout
	if timeout <= 0 {
		timeout = requestTimeout
	}
	return newClientWithHTTP(settings, logger, &http.Client{Timeout: timeout})
}

// newClientWithHTTP creates a Client with a custom http client (used for testing).
func newClientWithHTTP(settings *domain.Settings, logger ports.Logger, httpClient *http.Client) (*Client, error) {
	cacheDir := filepath.Clean(settings.CacheDir)
	if settings.CacheTTL > 0 {
		if err := os.MkdirAll(cacheDir, domain.DirPerm); err != nil {
			return nil, zerr.Wrap(err, "failed to create index cache directory")
		}
	}

	return &Client{
		baseURL:    strings.TrimSuffix(settings.IndexURL, "/"),
		cacheDir:   cacheDir,
		cacheTTL:   settings.CacheTTL,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// Releases lists the published versions of a package in ascending
// version order. It serves from the cache when a fresh entry exists,
// otherwise it queries the index and refreshes the cache.
func (c *Client) Releases(ctx context.Context, name string) ([]domain.Release, error) {
	canonical := pep440.CanonicalName(name)

	cachePath := c.cachePath(canonical)
	if releases, ok := c.loadFromCache(cachePath); ok {
		return releases, nil
	}

	project, err := c.queryIndex(ctx, canonical)
	if err != nil {
		return nil, err
	}

	releases := c.collectReleases(canonical, project)
	if len(releases) == 0 {
		return nil, zerr.With(domain.ErrPackageNotFound, "package", canonical)
	}

	if err := c.saveToCache(cachePath, canonical, releases); err != nil {
		// A cache write failure never fails the lookup.
		c.logger.Warn(fmt.Sprintf("failed to cache index response for %s: %v", canonical, err))
	}

	return releases, nil
}

// cachePath hashes the index URL together with the package name so
// different indexes never share cache entries.
func (c *Client) cachePath(name string) string {
	sum := sha256.Sum256([]byte(c.baseURL + "/" + name))
	return filepath.Join(c.cacheDir, hex.EncodeToString(sum[:])+".json")
}

// loadFromCache returns the cached release list when the entry exists
// and is younger than the TTL.
func (c *Client) loadFromCache(path string) ([]domain.Release, bool) {
	if c.cacheTTL <= 0 {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	if time.Since(entry.FetchedAt) > c.cacheTTL {
		return nil, false
	}

	releases := make([]domain.Release, len(entry.Releases))
	for i, r := range entry.Releases {
		releases[i] = domain.Release{Version: r.Version, Yanked: r.Yanked, YankedReason: r.YankedReason}
	}
	return releases, true
}

// saveToCache writes the release list atomically so a crashed run never
// leaves a truncated entry behind.
func (c *Client) saveToCache(path, name string, releases []domain.Release) error {
	if c.cacheTTL <= 0 {
		return nil
	}

	records := make([]releaseRecord, len(releases))
	for i, r := range releases {
		records[i] = releaseRecord{Version: r.Version, Yanked: r.Yanked, YankedReason: r.YankedReason}
	}
	entry := cacheEntry{
		Package:   name,
		FetchedAt: time.Now().UTC(),
		Releases:  records,
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(path, data)
}

// atomicWriteFile writes data to a file atomically by writing to a temp
// file and renaming it.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, "index-cache-*.json")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// queryIndex fetches the project document for one package.
func (c *Client) queryIndex(ctx context.Context, name string) (*projectResponse, error) {
	url := fmt.Sprintf("%s/pypi/%s/json", c.baseURL, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrIndexUnavailable.Error())
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrIndexUnavailable.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, zerr.With(domain.ErrPackageNotFound, "package", name)
	}
	if resp.StatusCode != http.StatusOK {
		unavailableErr := zerr.With(domain.ErrIndexUnavailable, "status_code", resp.StatusCode)
		return nil, zerr.With(unavailableErr, "package", name)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrIndexUnavailable.Error())
	}

	var project projectResponse
	if err := json.Unmarshal(body, &project); err != nil {
		return nil, zerr.Wrap(err, "failed to decode index response")
	}
	return &project, nil
}

// collectReleases flattens the releases map into ascending version
// order. Version spellings PEP 440 cannot parse are skipped the way pip
// skips them, and a release counts as yanked only when every one of its
// files is yanked.
func (c *Client) collectReleases(name string, project *projectResponse) []domain.Release {
	type candidate struct {
		release domain.Release
		version pep440.Version
	}

	candidates := make([]candidate, 0, len(project.Releases))
	for raw, files := range project.Releases {
		if len(files) == 0 {
			continue
		}
		v, err := pep440.Parse(raw)
		if err != nil {
			c.logger.Debug(fmt.Sprintf("skipping unparseable version %q of %s", raw, name))
			continue
		}

		yanked := true
		reason := ""
		for _, f := range files {
			if !f.Yanked {
				yanked = false
				break
			}
			if reason == "" {
				reason = f.YankedReason
			}
		}
		if !yanked {
			reason = ""
		}

		candidates = append(candidates, candidate{
			release: domain.Release{Version: raw, Yanked: yanked, YankedReason: reason},
			version: v,
		})
	}

	slices.SortStableFunc(candidates, func(a, b candidate) int {
		if cmp := a.version.Compare(b.version); cmp != 0 {
			return cmp
		}
		return strings.Compare(a.release.Version, b.release.Version)
	})

	releases := make([]domain.Release, len(candidates))
	for i, cand := range candidates {
		releases[i] = cand.release
	}
	return releases
}
