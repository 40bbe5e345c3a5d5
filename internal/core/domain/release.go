package domain

// Release is one published version of a distribution on a package index.
type Release struct {
	// Version is the version string as published.
	Version string

	// Yanked marks a release withdrawn from normal selection (PEP 592).
	Yanked bool

	// YankedReason is the optional reason the publisher gave for the yank.
	YankedReason string
}

// ResolvedRequirement pairs a requirement with the release chosen for it.
// The manifest declaration is embedded, so its fields read directly.
type ResolvedRequirement struct {
	Requirement

	// Version is the chosen release version.
	Version string

	// Yanked reports whether the chosen release was yanked. A yanked
	// release is only ever chosen through an exact pin.
	Yanked bool
}

// Resolution is the outcome of resolving a whole manifest against an index.
// Requirements appear in manifest order regardless of completion order.
type Resolution struct {
	// ManifestPath is the manifest the resolution was computed from.
	ManifestPath string

	// ManifestDigest is the digest of the manifest bytes at resolution time.
	ManifestDigest string

	// IndexURL is the index the releases came from.
	IndexURL string

	// Requirements lists the resolved entries in manifest order.
	Requirements []ResolvedRequirement
}
