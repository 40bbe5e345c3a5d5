package resolver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pinset/pinset/internal/core/domain"
	"github.com/pinset/pinset/internal/core/ports/mocks"
	"github.com/pinset/pinset/internal/engine/resolver"
)

func TestResolver_Resolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	idx := mocks.NewMockPackageIndex(ctrl)
	log := mocks.NewMockLogger(ctrl)

	idx.EXPECT().Releases(gomock.Any(), "streamlit").Return([]domain.Release{
		{Version: "1.43.0"},
		{Version: "1.44.0"},
		{Version: "1.45.0"},
	}, nil)
	idx.EXPECT().Releases(gomock.Any(), "pandas").Return([]domain.Release{
		{Version: "2.2.2"},
		{Version: "2.2.3"},
	}, nil)

	r := resolver.New(idx, log, &domain.Settings{IndexURL: "https://pypi.org", Concurrency: 2})

	manifest := &domain.Manifest{
		Path:   "requirements.txt",
		Digest: "0011223344556677",
		Requirements: []domain.Requirement{
			pinned("streamlit", "1.44.0"),
			bare("pandas"),
		},
	}

	res, err := r.Resolve(context.Background(), manifest)
	require.NoError(t, err)

	assert.Equal(t, "requirements.txt", res.ManifestPath)
	assert.Equal(t, "0011223344556677", res.ManifestDigest)
	assert.Equal(t, "https://pypi.org", res.IndexURL)

	// Results keep manifest order regardless of lookup completion order.
	require.Len(t, res.Requirements, 2)
	assert.Equal(t, "streamlit", res.Requirements[0].Name)
	assert.Equal(t, "1.44.0", res.Requirements[0].Version)
	assert.Equal(t, "pandas", res.Requirements[1].Name)
	assert.Equal(t, "2.2.3", res.Requirements[1].Version)
}

func TestResolver_Resolve_EmptyManifest(t *testing.T) {
	ctrl := gomock.NewController(t)
	idx := mocks.NewMockPackageIndex(ctrl)
	log := mocks.NewMockLogger(ctrl)

	r := resolver.New(idx, log, &domain.Settings{})

	_, err := r.Resolve(context.Background(), &domain.Manifest{Path: "requirements.txt"})
	require.ErrorIs(t, err, domain.ErrManifestEmpty)
}

func TestResolver_Resolve_FailFast(t *testing.T) {
	ctrl := gomock.NewController(t)
	idx := mocks.NewMockPackageIndex(ctrl)
	log := mocks.NewMockLogger(ctrl)

	idx.EXPECT().Releases(gomock.Any(), "no-such-package").
		Return(nil, domain.ErrPackageNotFound)
	// The sibling lookup may be cancelled before it runs.
	idx.EXPECT().Releases(gomock.Any(), "pandas").
		Return([]domain.Release{{Version: "2.2.3"}}, nil).AnyTimes()

	r := resolver.New(idx, log, &domain.Settings{Concurrency: 1})

	manifest := &domain.Manifest{
		Path: "requirements.txt",
		Requirements: []domain.Requirement{
			bare("no-such-package"),
			bare("pandas"),
		},
	}

	res, err := r.Resolve(context.Background(), manifest)
	require.ErrorIs(t, err, domain.ErrPackageNotFound)
	assert.Nil(t, res)
}

func TestResolver_Resolve_VersionNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	idx := mocks.NewMockPackageIndex(ctrl)
	log := mocks.NewMockLogger(ctrl)

	idx.EXPECT().Releases(gomock.Any(), "streamlit").Return([]domain.Release{
		{Version: "1.43.0"},
		{Version: "1.44.0"},
	}, nil)

	r := resolver.New(idx, log, &domain.Settings{})

	manifest := &domain.Manifest{
		Path:         "requirements.txt",
		Requirements: []domain.Requirement{pinned("streamlit", "9.9.9")},
	}

	_, err := r.Resolve(context.Background(), manifest)
	require.ErrorIs(t, err, domain.ErrVersionNotFound)
}

func TestResolver_Resolve_PrereleasePolicy(t *testing.T) {
	releases := []domain.Release{
		{Version: "1.0.0"},
		{Version: "1.1.0rc1"},
	}

	tests := []struct {
		name     string
		req      domain.Requirement
		settings domain.Settings
		want     string
	}{
		{
			name: "final wins by default",
			req:  bare("streamlit"),
			want: "1.0.0",
		},
		{
			name:     "allow prereleases setting",
			req:      bare("streamlit"),
			settings: domain.Settings{AllowPrereleases: true},
			want:     "1.1.0rc1",
		},
		{
			name: "clause naming a prerelease opts in",
			req: domain.Requirement{
				Name: "streamlit", RawName: "streamlit",
				Specifiers: domain.SpecifierSet{{Op: domain.OpGreaterEqual, Version: "1.1.0rc1"}},
			},
			want: "1.1.0rc1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			idx := mocks.NewMockPackageIndex(ctrl)
			log := mocks.NewMockLogger(ctrl)

			idx.EXPECT().Releases(gomock.Any(), "streamlit").Return(releases, nil)

			r := resolver.New(idx, log, &tt.settings)

			res, err := r.Resolve(context.Background(), &domain.Manifest{
				Path:         "requirements.txt",
				Requirements: []domain.Requirement{tt.req},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Requirements[0].Version)
		})
	}
}

func TestResolver_Resolve_OnlyPrereleasesPublished(t *testing.T) {
	ctrl := gomock.NewController(t)
	idx := mocks.NewMockPackageIndex(ctrl)
	log := mocks.NewMockLogger(ctrl)

	idx.EXPECT().Releases(gomock.Any(), "earlybird").Return([]domain.Release{
		{Version: "0.1.0b1"},
		{Version: "0.2.0a1"},
	}, nil)

	r := resolver.New(idx, log, &domain.Settings{})

	res, err := r.Resolve(context.Background(), &domain.Manifest{
		Path:         "requirements.txt",
		Requirements: []domain.Requirement{bare("earlybird")},
	})
	require.NoError(t, err)
	assert.Equal(t, "0.2.0a1", res.Requirements[0].Version)
}

func TestResolver_Resolve_YankedExactPin(t *testing.T) {
	ctrl := gomock.NewController(t)
	idx := mocks.NewMockPackageIndex(ctrl)
	log := mocks.NewMockLogger(ctrl)

	idx.EXPECT().Releases(gomock.Any(), "streamlit").Return([]domain.Release{
		{Version: "1.43.0", Yanked: true, YankedReason: "broken wheel"},
		{Version: "1.44.0"},
	}, nil)
	log.EXPECT().Warn(gomock.Any()).Times(1)

	r := resolver.New(idx, log, &domain.Settings{})

	res, err := r.Resolve(context.Background(), &domain.Manifest{
		Path:         "requirements.txt",
		Requirements: []domain.Requirement{pinned("streamlit", "1.43.0")},
	})
	require.NoError(t, err)
	assert.Equal(t, "1.43.0", res.Requirements[0].Version)
	assert.True(t, res.Requirements[0].Yanked)
}

func TestResolver_Resolve_YankedExcludedFromRanges(t *testing.T) {
	ctrl := gomock.NewController(t)
	idx := mocks.NewMockPackageIndex(ctrl)
	log := mocks.NewMockLogger(ctrl)

	idx.EXPECT().Releases(gomock.Any(), "streamlit").Return([]domain.Release{
		{Version: "1.43.0"},
		{Version: "1.44.0", Yanked: true},
	}, nil)

	r := resolver.New(idx, log, &domain.Settings{})

	res, err := r.Resolve(context.Background(), &domain.Manifest{
		Path:         "requirements.txt",
		Requirements: []domain.Requirement{bare("streamlit")},
	})
	require.NoError(t, err)
	assert.Equal(t, "1.43.0", res.Requirements[0].Version)
	assert.False(t, res.Requirements[0].Yanked)
}

func TestResolver_Resolve_OnlyYankedMatches(t *testing.T) {
	ctrl := gomock.NewController(t)
	idx := mocks.NewMockPackageIndex(ctrl)
	log := mocks.NewMockLogger(ctrl)

	idx.EXPECT().Releases(gomock.Any(), "streamlit").Return([]domain.Release{
		{Version: "1.44.0", Yanked: true},
	}, nil)

	r := resolver.New(idx, log, &domain.Settings{})

	_, err := r.Resolve(context.Background(), &domain.Manifest{
		Path:         "requirements.txt",
		Requirements: []domain.Requirement{bare("streamlit")},
	})
	require.ErrorIs(t, err, domain.ErrVersionYanked)
}

func TestResolver_Resolve_DuplicatesWarn(t *testing.T) {
	ctrl := gomock.NewController(t)
	idx := mocks.NewMockPackageIndex(ctrl)
	log := mocks.NewMockLogger(ctrl)

	idx.EXPECT().Releases(gomock.Any(), "pandas").
		Return([]domain.Release{{Version: "2.2.3"}}, nil).Times(2)
	log.EXPECT().Warn(gomock.Any()).Times(1)

	r := resolver.New(idx, log, &domain.Settings{})

	res, err := r.Resolve(context.Background(), &domain.Manifest{
		Path:         "requirements.txt",
		Requirements: []domain.Requirement{bare("pandas"), bare("pandas")},
	})
	require.NoError(t, err)
	require.Len(t, res.Requirements, 2)
}

// Helpers.

func bare(name string) domain.Requirement {
	return domain.Requirement{Name: name, RawName: name}
}

func pinned(name, version string) domain.Requirement {
	return domain.Requirement{
		Name:    name,
		RawName: name,
		Specifiers: domain.SpecifierSet{
			{Op: domain.OpEqual, Version: version},
		},
	}
}
