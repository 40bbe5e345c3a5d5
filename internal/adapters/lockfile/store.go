// Package lockfile persists resolved requirement sets as JSON lockfiles.
package lockfile

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"

	"github.com/pinset/pinset/internal/core/domain"
)

// Store implements ports.LockStore using one JSON file per lockfile.
type Store struct{}

// NewStore creates a lockfile store.
func NewStore() *Store {
	return &Store{}
}

// Read loads and validates the lockfile at path.
func (s *Store) Read(path string) (*domain.Lockfile, error) {
	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrLockfileNotFound, "path", path)
		}
		return nil, zerr.Wrap(err, "failed to read lockfile")
	}

	var lock domain.Lockfile
	if err := json.Unmarshal(data, &lock); err != nil {
		invalidErr := zerr.With(domain.ErrLockfileInvalid, "path", path)
		return nil, zerr.With(invalidErr, "reason", err.Error())
	}

	if lock.Version != domain.LockfileVersion {
		invalidErr := zerr.With(domain.ErrLockfileInvalid, "path", path)
		invalidErr = zerr.With(invalidErr, "lockfile_version", lock.Version)
		return nil, zerr.With(invalidErr, "supported_version", domain.LockfileVersion)
	}

	return &lock, nil
}

// Write persists the lockfile at path. The write goes through a temp
// file and a rename so readers never observe a truncated lockfile.
func (s *Store) Write(path string, lock *domain.Lockfile) error {
	data, err := json.MarshalIndent(lock, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal lockfile")
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create directory for lockfile")
	}

	tmpFile, err := os.CreateTemp(dir, domain.LockFileName+".*.tmp")
	if err != nil {
		return zerr.Wrap(err, "failed to create temporary lockfile")
	}
	tmpName := tmpFile.Name()

	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return zerr.Wrap(err, "failed to write lockfile")
	}
	if err := tmpFile.Close(); err != nil {
		return zerr.Wrap(err, "failed to write lockfile")
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.Wrap(err, "failed to write lockfile")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return zerr.Wrap(err, "failed to write lockfile")
	}
	return nil
}
