package domain

import "go.trai.ch/zerr"

var (
	// ErrManifestNotFound is returned when the requirements file does not exist.
	ErrManifestNotFound = zerr.New("requirements file not found")

	// ErrManifestEmpty is returned when a manifest declares no requirements.
	ErrManifestEmpty = zerr.New("no requirements in manifest")

	// ErrUnsupportedManifest is returned when no parser accepts the manifest file.
	ErrUnsupportedManifest = zerr.New("unsupported manifest format")

	// ErrInvalidRequirement is returned when a requirement line cannot be parsed.
	ErrInvalidRequirement = zerr.New("invalid requirement")

	// ErrInvalidName is returned when a distribution name violates the PEP 508 name grammar.
	ErrInvalidName = zerr.New("invalid distribution name")

	// ErrInvalidSpecifier is returned when a version specifier clause cannot be parsed.
	ErrInvalidSpecifier = zerr.New("invalid version specifier")

	// ErrInvalidVersion is returned when a version string does not follow PEP 440.
	ErrInvalidVersion = zerr.New("invalid version")

	// ErrPackageNotFound is returned when the index has no project with the requested name.
	ErrPackageNotFound = zerr.New("package not found in index")

	// ErrVersionNotFound is returned when no published release satisfies a requirement.
	ErrVersionNotFound = zerr.New("no release satisfies requirement")

	// ErrVersionYanked is returned when the only acceptable release was yanked
	// and the requirement does not pin it with == or ===.
	ErrVersionYanked = zerr.New("matching release was yanked")

	// ErrIndexUnavailable is returned when the package index cannot be reached
	// or answers with a server error.
	ErrIndexUnavailable = zerr.New("package index unavailable")

	// ErrLockfileNotFound is returned when the lockfile does not exist.
	ErrLockfileNotFound = zerr.New("lockfile not found")

	// ErrLockfileInvalid is returned when the lockfile cannot be decoded or
	// carries an unknown schema version.
	ErrLockfileInvalid = zerr.New("invalid lockfile")

	// ErrLockfileStale is returned when the lockfile no longer matches its manifest.
	ErrLockfileStale = zerr.New("lockfile out of date with manifest")

	// ErrConfigInvalid is returned when the tool configuration fails validation.
	ErrConfigInvalid = zerr.New("invalid configuration")
)
