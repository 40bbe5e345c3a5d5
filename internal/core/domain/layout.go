package domain

import "path/filepath"

const (
	// DefaultManifestName is the conventional name of a pip requirements manifest.
	DefaultManifestName = "requirements.txt"

	// PyprojectFileName is the name of a PEP 621 project manifest.
	PyprojectFileName = "pyproject.toml"

	// LockFileName is the name of the lockfile written next to the manifest.
	LockFileName = "pinset.lock"

	// ConfigFileName is the name of the optional tool configuration file.
	ConfigFileName = "pinset.yaml"

	// CacheDirName is the name of the index response cache directory
	// under the user cache root.
	CacheDirName = "pinset"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultLockPath returns the lockfile path for a manifest.
// The lockfile sits in the same directory as the manifest.
func DefaultLockPath(manifestPath string) string {
	return filepath.Join(filepath.Dir(manifestPath), LockFileName)
}

// DefaultCachePath returns the index cache directory under the given
// user cache root (e.g., os.UserCacheDir).
func DefaultCachePath(userCacheDir string) string {
	return filepath.Join(userCacheDir, CacheDirName)
}
