package pep440_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinset/pinset/internal/core/domain"
	"github.com/pinset/pinset/internal/pep440"
)

func TestParseSpecifier(t *testing.T) {
	tests := []struct {
		in      string
		op      string
		literal string
	}{
		{in: "==1.44.0", op: "==", literal: "1.44.0"},
		{in: ">= 2.0", op: ">=", literal: "2.0"},
		{in: " <3 ", op: "<", literal: "3"},
		{in: "~=1.4.2", op: "~=", literal: "1.4.2"},
		{in: "==1.1.*", op: "==", literal: "1.1.*"},
		{in: "!=1.1.*", op: "!=", literal: "1.1.*"},
		{in: "===legacy-version", op: "===", literal: "legacy-version"},
		{in: "==1.0+cu118", op: "==", literal: "1.0+cu118"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			s, err := pep440.ParseSpecifier(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.op, s.Operator())
			assert.Equal(t, tt.literal, s.VersionLiteral())
			assert.Equal(t, tt.op+tt.literal, s.String())
		})
	}
}

func TestParseSpecifier_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"1.0",
		"==",
		"=1.0",
		">=1.0.*",
		"~=1",
		"~=1.0.*",
		"<=1.0+local",
		"==not a version",
		"==1.0a1.*",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := pep440.ParseSpecifier(in)
			require.ErrorIs(t, err, domain.ErrInvalidSpecifier)
		})
	}
}

func TestSpecifier_Match(t *testing.T) {
	tests := []struct {
		clause  string
		version string
		want    bool
	}{
		// Exact pins, the common manifest case.
		{clause: "==1.44.0", version: "1.44.0", want: true},
		{clause: "==1.44.0", version: "1.44.0.0", want: true},
		{clause: "==1.44.0", version: "1.44.1", want: false},
		{clause: "==1.44.0", version: "1.44.0rc1", want: false},

		// Local segments only count when the clause names one.
		{clause: "==1.0", version: "1.0+cu118", want: true},
		{clause: "==1.0+cu118", version: "1.0+cu118", want: true},
		{clause: "==1.0+cu118", version: "1.0", want: false},

		// Wildcard prefix matching is per release component.
		{clause: "==1.1.*", version: "1.1", want: true},
		{clause: "==1.1.*", version: "1.1.5", want: true},
		{clause: "==1.1.*", version: "1.1.0rc1", want: true},
		{clause: "==1.1.*", version: "1.10", want: false},
		{clause: "==1.1.*", version: "1.2", want: false},
		{clause: "!=1.1.*", version: "1.1.5", want: false},
		{clause: "!=1.1.*", version: "1.2", want: true},

		// Ordered comparisons.
		{clause: ">=2.0", version: "2.0", want: true},
		{clause: ">=2.0", version: "2.1", want: true},
		{clause: ">=2.0", version: "1.9", want: false},
		{clause: "<=2.0", version: "2.0.0", want: true},
		{clause: "<=2.0", version: "2.0.1", want: false},

		// Exclusive bounds guard the clause version's own pre and post
		// releases.
		{clause: "<3.0", version: "2.9", want: true},
		{clause: "<3.0", version: "3.0.dev1", want: false},
		{clause: "<3.0", version: "2.9rc1", want: true},
		{clause: "<3.0rc1", version: "3.0.dev1", want: true},
		{clause: ">1.7", version: "1.8", want: true},
		{clause: ">1.7", version: "1.7.post2", want: false},
		{clause: ">1.7", version: "1.7.1", want: true},
		{clause: ">1.7.post1", version: "1.7.post2", want: true},
		{clause: ">1.7", version: "1.7+local", want: false},

		// Compatible release clauses.
		{clause: "~=2.2", version: "2.2", want: true},
		{clause: "~=2.2", version: "2.9", want: true},
		{clause: "~=2.2", version: "2.2.1", want: true},
		{clause: "~=2.2", version: "3.0", want: false},
		{clause: "~=2.2", version: "2.1", want: false},
		{clause: "~=1.4.5", version: "1.4.5", want: true},
		{clause: "~=1.4.5", version: "1.4.9", want: true},
		{clause: "~=1.4.5", version: "1.5.0", want: false},

		// Arbitrary equality compares spellings, not versions.
		{clause: "===1.44.0", version: "1.44.0", want: true},
		{clause: "===1.44.0", version: "1.44", want: false},

		// Exclusions.
		{clause: "!=1.5", version: "1.5", want: false},
		{clause: "!=1.5", version: "1.5.1", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.clause+" "+tt.version, func(t *testing.T) {
			s, err := pep440.ParseSpecifier(tt.clause)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Match(pep440.MustParse(tt.version)))
		})
	}
}

func TestParseSpecifiers(t *testing.T) {
	sp, err := pep440.ParseSpecifiers(">=2.0, <3.0, !=2.5")
	require.NoError(t, err)
	require.Len(t, sp, 3)

	assert.True(t, sp.Match(pep440.MustParse("2.4")))
	assert.False(t, sp.Match(pep440.MustParse("2.5")))
	assert.False(t, sp.Match(pep440.MustParse("3.0")))
	assert.False(t, sp.Match(pep440.MustParse("1.9")))

	empty, err := pep440.ParseSpecifiers("   ")
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.True(t, empty.Match(pep440.MustParse("0.0.1")))

	_, err = pep440.ParseSpecifiers(">=2.0,,<3.0")
	require.ErrorIs(t, err, domain.ErrInvalidSpecifier)
}

func TestCompile(t *testing.T) {
	set := domain.SpecifierSet{
		{Op: domain.OpGreaterEqual, Version: "2.0"},
		{Op: domain.OpLess, Version: "3.0"},
	}
	sp, err := pep440.Compile(set)
	require.NoError(t, err)
	assert.True(t, sp.Match(pep440.MustParse("2.7")))
	assert.False(t, sp.Match(pep440.MustParse("3.1")))

	empty, err := pep440.Compile(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = pep440.Compile(domain.SpecifierSet{{Op: domain.OpCompatible, Version: "1"}})
	require.ErrorIs(t, err, domain.ErrInvalidSpecifier)
}

func TestSpecifiers_AllowsPrereleases(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{in: ">=1.0a1", want: true},
		{in: "==2.0rc1", want: true},
		{in: "==1.0.dev1", want: true},
		{in: "~=1.0b2", want: true},
		{in: ">=1.0", want: false},
		{in: "!=2.0b1", want: false},
		{in: "<2.0a1", want: false},
		{in: "==1.1.*", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			sp, err := pep440.ParseSpecifiers(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sp.AllowsPrereleases())
		})
	}
}
