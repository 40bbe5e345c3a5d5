package ports

import "github.com/pinset/pinset/internal/core/domain"

// LockStore defines the interface for reading and writing lockfiles.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type LockStore interface {
	// Read loads the lockfile at path.
	// Returns domain.ErrLockfileNotFound when no lockfile exists there.
	Read(path string) (*domain.Lockfile, error)

	// Write stores the lockfile at path, replacing it atomically.
	Write(path string, lock *domain.Lockfile) error
}
