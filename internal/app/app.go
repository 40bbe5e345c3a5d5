// Package app implements the application layer for pinset.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/zerr"

	"github.com/pinset/pinset/internal/core/domain"
	"github.com/pinset/pinset/internal/core/ports"
	"github.com/pinset/pinset/internal/engine/resolver"
	"github.com/pinset/pinset/internal/pep440"
)

// ReporterRegistry returns the reporter for an output format name.
type ReporterRegistry func(format string) (ports.Reporter, error)

// App represents the main application logic.
type App struct {
	parsers   []ports.ManifestParser
	resolver  *resolver.Resolver
	lockStore ports.LockStore
	reporters ReporterRegistry
	logger    ports.Logger
	settings  *domain.Settings
	out       io.Writer
}

// New creates a new App instance.
// Parsers are tried in order; the first one accepting a manifest wins.
func New(
	parsers []ports.ManifestParser,
	res *resolver.Resolver,
	lockStore ports.LockStore,
	reporters ReporterRegistry,
	log ports.Logger,
	settings *domain.Settings,
) *App {
	return &App{
		parsers:   parsers,
		resolver:  res,
		lockStore: lockStore,
		reporters: reporters,
		logger:    log,
		settings:  settings,
		out:       os.Stdout,
	}
}

// WithOutput redirects report output.
// This is primarily used for testing and by the CLI layer.
func (a *App) WithOutput(w io.Writer) *App {
	if w != nil {
		a.out = w
	}
	return a
}

// CheckOptions configuration for the Check method.
type CheckOptions struct {
	File string
}

// Check parses and validates a manifest without touching the network.
// Installer option lines and duplicate declarations are surfaced; an
// empty manifest is valid and only warned about.
func (a *App) Check(_ context.Context, opts CheckOptions) error {
	manifest, err := a.parse(opts.File)
	if err != nil {
		return err
	}

	for _, opt := range manifest.Options {
		a.logger.Info(fmt.Sprintf("line %d: installer option %q is recorded but never resolved", opt.Line, opt.Raw))
	}

	for _, name := range manifest.Duplicates() {
		a.logger.Warn(fmt.Sprintf("%s is declared more than once; each declaration resolves on its own", name))
	}

	if len(manifest.Requirements) == 0 {
		a.logger.Warn(fmt.Sprintf("%s declares no requirements", manifest.Path))
		return nil
	}

	a.logger.Info(fmt.Sprintf("%s: %d requirements, %d groups", manifest.Path, len(manifest.Requirements), len(manifest.Groups)))
	return nil
}

// ListOptions configuration for the List method.
type ListOptions struct {
	File string
}

// List prints the manifest requirements grouped by their comment headings.
func (a *App) List(_ context.Context, opts ListOptions) error {
	manifest, err := a.parse(opts.File)
	if err != nil {
		return err
	}

	if len(manifest.Requirements) == 0 {
		a.logger.Warn(fmt.Sprintf("%s declares no requirements", manifest.Path))
		return nil
	}

	nameWidth := 0
	for _, req := range manifest.Requirements {
		nameWidth = max(nameWidth, len(req.Name))
	}

	fmt.Fprintf(a.out, "%s (%d requirements)\n", manifest.Path, len(manifest.Requirements))

	group := ""
	for _, req := range manifest.Requirements {
		if req.Group != group {
			group = req.Group
			if group == "" {
				fmt.Fprintln(a.out)
			} else {
				fmt.Fprintf(a.out, "\n%s:\n", group)
			}
		}

		constraint := req.Specifiers.String()
		if constraint == "" {
			constraint = "any"
		}
		fmt.Fprintf(a.out, "  %-*s  %s\n", nameWidth, req.Name, constraint)
	}

	return nil
}

// ResolveOptions configuration for the Resolve method.
type ResolveOptions struct {
	File   string
	Format string
}

// Resolve resolves every manifest entry against the index and reports
// the outcome. A single unresolvable entry fails the whole run.
func (a *App) Resolve(ctx context.Context, opts ResolveOptions) error {
	reporter, err := a.reporters(opts.Format)
	if err != nil {
		return err
	}

	manifest, err := a.parse(opts.File)
	if err != nil {
		return err
	}

	res, err := a.resolver.Resolve(ctx, manifest)
	if err != nil {
		return err
	}

	out, err := reporter.Report(res)
	if err != nil {
		return err
	}

	if _, err := a.out.Write(out); err != nil {
		return zerr.Wrap(err, "failed to write report")
	}

	return nil
}

// LockOptions configuration for the Lock method.
type LockOptions struct {
	File string
}

// Lock resolves the manifest and writes the lockfile next to it.
func (a *App) Lock(ctx context.Context, opts LockOptions) error {
	manifest, err := a.parse(opts.File)
	if err != nil {
		return err
	}

	res, err := a.resolver.Resolve(ctx, manifest)
	if err != nil {
		return err
	}

	lock := domain.NewLockfile(res, time.Now())
	path := domain.DefaultLockPath(manifest.Path)
	if err := a.lockStore.Write(path, lock); err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("locked %d requirements to %s", len(lock.Requirements), path))
	return nil
}

// VerifyOptions configuration for the Verify method.
type VerifyOptions struct {
	File string
}

// Verify checks that the lockfile next to the manifest is current: the
// manifest digest matches, every declaration is locked, and each locked
// version still satisfies its specifiers.
func (a *App) Verify(_ context.Context, opts VerifyOptions) error {
	manifest, err := a.parse(opts.File)
	if err != nil {
		return err
	}

	path := domain.DefaultLockPath(manifest.Path)
	lock, err := a.lockStore.Read(path)
	if err != nil {
		return err
	}

	if lock.ManifestDigest != manifest.Digest {
		return zerr.With(zerr.With(domain.ErrLockfileStale,
			"manifest_digest", manifest.Digest),
			"locked_digest", lock.ManifestDigest)
	}

	if len(lock.Requirements) != len(manifest.Requirements) {
		return zerr.With(zerr.With(domain.ErrLockfileStale,
			"manifest_count", len(manifest.Requirements)),
			"locked_count", len(lock.Requirements))
	}

	for _, req := range manifest.Requirements {
		entry := lock.Entry(req.Name)
		if entry == nil {
			return zerr.With(domain.ErrLockfileStale, "package", req.Name)
		}

		specs, err := pep440.Compile(req.Specifiers)
		if err != nil {
			return zerr.With(err, "package", req.Name)
		}

		version, err := pep440.Parse(entry.Resolved)
		if err != nil {
			return zerr.With(zerr.With(domain.ErrLockfileInvalid,
				"package", req.Name),
				"resolved", entry.Resolved)
		}

		if !specs.Match(version) {
			return zerr.With(zerr.With(zerr.With(domain.ErrLockfileStale,
				"package", req.Name),
				"locked", entry.Resolved),
				"constraint", req.Specifiers.String())
		}
	}

	a.logger.Info(fmt.Sprintf("%s is up to date with %s (%d requirements)", path, manifest.Path, len(lock.Requirements)))
	return nil
}

// Clean removes the index response cache.
func (a *App) Clean(_ context.Context) error {
	dir := a.settings.CacheDir
	if dir == "" {
		a.logger.Info("no cache directory configured")
		return nil
	}

	a.logger.Info(fmt.Sprintf("removing index cache at %s...", dir))
	if err := os.RemoveAll(dir); err != nil {
		return zerr.Wrap(err, "failed to remove index cache")
	}
	a.logger.Info("removed index cache")

	return nil
}

// parse finds the first parser that accepts the manifest and parses it.
func (a *App) parse(path string) (*domain.Manifest, error) {
	if path == "" {
		path = domain.DefaultManifestName
	}

	name := filepath.Base(path)
	for _, p := range a.parsers {
		if p.CanParse(name) {
			return p.Parse(path)
		}
	}

	return nil, zerr.With(domain.ErrUnsupportedManifest, "file", path)
}
