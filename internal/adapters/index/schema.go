package index

import "time"

// projectResponse is the JSON API document for one project
// (GET <index>/pypi/<name>/json).
type projectResponse struct {
	Info     projectInfo               `json:"info"`
	Releases map[string][]fileResponse `json:"releases"`
}

// projectInfo carries the project-level fields the client reads.
type projectInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// fileResponse is one distribution file of a release. A release counts
// as yanked only when every one of its files is yanked.
type fileResponse struct {
	Filename     string `json:"filename"`
	Yanked       bool   `json:"yanked"`
	YankedReason string `json:"yanked_reason"`
}

// cacheEntry is the on-disk cache format for one project's release list.
type cacheEntry struct {
	Package   string          `json:"package"`
	FetchedAt time.Time       `json:"fetched_at"`
	Releases  []releaseRecord `json:"releases"`
}

// releaseRecord mirrors domain.Release with JSON tags for the cache file.
type releaseRecord struct {
	Version      string `json:"version"`
	Yanked       bool   `json:"yanked,omitzero"`
	YankedReason string `json:"yanked_reason,omitzero"`
}
