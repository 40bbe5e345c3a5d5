// Package resolver selects concrete versions for manifest requirements
// against a package index.
package resolver

import (
	"context"
	"fmt"
	"runtime"
	"slices"

	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"github.com/pinset/pinset/internal/core/domain"
	"github.com/pinset/pinset/internal/core/ports"
	"github.com/pinset/pinset/internal/pep440"
)

// Resolver resolves manifests into pinned requirement sets.
type Resolver struct {
	index    ports.PackageIndex
	logger   ports.Logger
	settings *domain.Settings
}

// New creates a resolver backed by the given package index.
func New(index ports.PackageIndex, logger ports.Logger, settings *domain.Settings) *Resolver {
	return &Resolver{
		index:    index,
		logger:   logger,
		settings: settings,
	}
}

// Resolve picks one version per manifest entry. Entries resolve
// independently and in parallel; the first unresolvable entry aborts
// the whole resolution and cancels lookups still in flight.
func (r *Resolver) Resolve(ctx context.Context, manifest *domain.Manifest) (*domain.Resolution, error) {
	if len(manifest.Requirements) == 0 {
		return nil, zerr.With(domain.ErrManifestEmpty, "path", manifest.Path)
	}

	for _, name := range manifest.Duplicates() {
		r.logger.Warn(fmt.Sprintf("requirement %s is declared more than once; each declaration resolves on its own", name))
	}

	// Indexed by manifest position, so the resolution keeps manifest
	// order no matter which lookup finishes first.
	results := make([]domain.ResolvedRequirement, len(manifest.Requirements))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency())

	for i, req := range manifest.Requirements {
		g.Go(func() error {
			resolved, err := r.resolveOne(ctx, req)
			if err != nil {
				return err
			}
			results[i] = resolved
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.Resolution{
		ManifestPath:   manifest.Path,
		ManifestDigest: manifest.Digest,
		IndexURL:       r.settings.IndexURL,
		Requirements:   results,
	}, nil
}

func (r *Resolver) resolveOne(ctx context.Context, req domain.Requirement) (domain.ResolvedRequirement, error) {
	specs, err := pep440.Compile(req.Specifiers)
	if err != nil {
		return domain.ResolvedRequirement{}, zerr.With(err, "requirement", req.Name)
	}

	releases, err := r.index.Releases(ctx, req.Name)
	if err != nil {
		return domain.ResolvedRequirement{}, err
	}

	release, err := r.selectRelease(req, specs, releases)
	if err != nil {
		return domain.ResolvedRequirement{}, err
	}

	if release.Yanked {
		msg := fmt.Sprintf("%s %s is yanked", req.Name, release.Version)
		if release.YankedReason != "" {
			msg += ": " + release.YankedReason
		}
		r.logger.Warn(msg)
	}

	return domain.ResolvedRequirement{
		Requirement: req,
		Version:     release.Version,
		Yanked:      release.Yanked,
	}, nil
}

// selectRelease picks the highest release satisfying the specifier set.
// Pre-releases participate only when allowed by settings, when a clause
// names one, or when nothing final matches. Yanked releases are
// selectable only through an exact pin.
func (r *Resolver) selectRelease(req domain.Requirement, specs pep440.Specifiers, releases []domain.Release) (domain.Release, error) {
	type candidate struct {
		release domain.Release
		version pep440.Version
	}

	var matching []candidate
	for _, rel := range releases {
		v, err := pep440.Parse(rel.Version)
		if err != nil {
			continue
		}
		if !specs.Match(v) {
			continue
		}
		matching = append(matching, candidate{release: rel, version: v})
	}

	if len(matching) == 0 {
		notFoundErr := zerr.With(domain.ErrVersionNotFound, "package", req.Name)
		return domain.Release{}, zerr.With(notFoundErr, "constraint", constraint(req))
	}

	if !r.settings.AllowPrereleases && !specs.AllowsPrereleases() {
		finals := slices.DeleteFunc(slices.Clone(matching), func(c candidate) bool {
			return c.version.IsPrerelease()
		})
		if len(finals) > 0 {
			matching = finals
		}
	}

	if !req.Pinned() {
		selectable := slices.DeleteFunc(slices.Clone(matching), func(c candidate) bool {
			return c.release.Yanked
		})
		if len(selectable) == 0 {
			yankedErr := zerr.With(domain.ErrVersionYanked, "package", req.Name)
			return domain.Release{}, zerr.With(yankedErr, "constraint", constraint(req))
		}
		matching = selectable
	}

	best := matching[0]
	for _, c := range matching[1:] {
		if c.version.Compare(best.version) > 0 {
			best = c
		}
	}
	return best.release, nil
}

func (r *Resolver) concurrency() int {
	if r.settings.Concurrency > 0 {
		return r.settings.Concurrency
	}
	return runtime.NumCPU()
}

func constraint(req domain.Requirement) string {
	if len(req.Specifiers) == 0 {
		return "any version"
	}
	return req.Specifiers.String()
}
