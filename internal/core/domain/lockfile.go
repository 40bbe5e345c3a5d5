package domain

import "time"

// LockfileVersion is the current lockfile schema version.
const LockfileVersion = 1

// Lockfile is a reproducible snapshot of a resolved manifest.
type Lockfile struct {
	// Version is the lockfile format version. It allows future schema
	// migrations and backward compatibility.
	Version int `json:"version"`

	// CreatedAt is when the lockfile was written.
	CreatedAt time.Time `json:"created_at"`

	// ManifestPath is the manifest the lockfile was generated from,
	// relative to the lockfile location where possible.
	ManifestPath string `json:"manifest"`

	// ManifestDigest is the digest of the manifest bytes at lock time.
	// Verification compares it against the current manifest.
	ManifestDigest string `json:"manifest_digest"`

	// IndexURL is the package index the resolution ran against.
	IndexURL string `json:"index_url"`

	// Requirements lists the locked entries in manifest order.
	Requirements []LockedRequirement `json:"requirements"`
}

// LockedRequirement is one locked manifest entry.
type LockedRequirement struct {
	// Name is the canonical distribution name.
	Name string `json:"name"`

	// Requested is the specifier set as declared in the manifest,
	// empty for an unconstrained entry.
	Requested string `json:"requested,omitzero"`

	// Resolved is the version resolution chose.
	Resolved string `json:"resolved"`

	// Yanked records that the locked release was yanked at lock time.
	Yanked bool `json:"yanked,omitzero"`
}

// NewLockfile builds a lockfile from a resolution.
func NewLockfile(res *Resolution, now time.Time) *Lockfile {
	lock := &Lockfile{
		Version:        LockfileVersion,
		CreatedAt:      now.UTC(),
		ManifestPath:   res.ManifestPath,
		ManifestDigest: res.ManifestDigest,
		IndexURL:       res.IndexURL,
		Requirements:   make([]LockedRequirement, 0, len(res.Requirements)),
	}
	for _, rr := range res.Requirements {
		lock.Requirements = append(lock.Requirements, LockedRequirement{
			Name:      rr.Requirement.Name,
			Requested: rr.Requirement.Specifiers.String(),
			Resolved:  rr.Version,
			Yanked:    rr.Yanked,
		})
	}
	return lock
}

// Entry returns the locked entry for a canonical name.
// Returns nil when the name is not locked.
func (l *Lockfile) Entry(name string) *LockedRequirement {
	for i := range l.Requirements {
		if l.Requirements[i].Name == name {
			return &l.Requirements[i]
		}
	}
	return nil
}
