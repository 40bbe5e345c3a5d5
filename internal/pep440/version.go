// Package pep440 implements the version and specifier algebra used by pip
// requirements manifests (PEP 440), along with the canonical distribution
// name form used by package indexes (PEP 503).
package pep440

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/zerr"

	"github.com/pinset/pinset/internal/core/domain"
)

// Version is a parsed PEP 440 version. Build one with Parse; the zero value
// is not a valid version.
type Version struct {
	// Epoch is the version epoch (the N in "N!1.0"), normally 0.
	Epoch int

	// Release is the dotted release segment (1.44.0 is [1, 44, 0]).
	Release []int

	// PreTag is "a", "b" or "rc" for a pre-release, empty otherwise.
	PreTag string

	// PreNum is the pre-release number, valid only when PreTag is set.
	PreNum int

	// HasPost marks a post-release; Post holds its number.
	HasPost bool
	Post    int

	// HasDev marks a development release; Dev holds its number.
	HasDev bool
	Dev    int

	// Local is the normalized local version label after "+", empty when absent.
	Local string
}

// versionPattern is the PEP 440 grammar, including the normalization
// spellings (alpha, beta, c, pre, preview, rev, r, dashed post releases).
var versionPattern = regexp.MustCompile(`(?i)^\s*v?` +
	`(?:(?P<epoch>[0-9]+)!)?` +
	`(?P<release>[0-9]+(?:\.[0-9]+)*)` +
	`(?:[-_.]?(?P<preL>a|b|c|rc|alpha|beta|pre|preview)[-_.]?(?P<preN>[0-9]+)?)?` +
	`(?:-(?P<postN1>[0-9]+)|(?P<postL>[-_.]?(?:post|rev|r))(?:[-_.]?(?P<postN2>[0-9]+))?)?` +
	`(?:(?P<devL>[-_.]?dev)(?:[-_.]?(?P<devN>[0-9]+))?)?` +
	`(?:\+(?P<local>[a-z0-9]+(?:[-_.][a-z0-9]+)*))?\s*$`)

var (
	epochIdx   = versionPattern.SubexpIndex("epoch")
	releaseIdx = versionPattern.SubexpIndex("release")
	preLIdx    = versionPattern.SubexpIndex("preL")
	preNIdx    = versionPattern.SubexpIndex("preN")
	postN1Idx  = versionPattern.SubexpIndex("postN1")
	postLIdx   = versionPattern.SubexpIndex("postL")
	postN2Idx  = versionPattern.SubexpIndex("postN2")
	devLIdx    = versionPattern.SubexpIndex("devL")
	devNIdx    = versionPattern.SubexpIndex("devN")
	localIdx   = versionPattern.SubexpIndex("local")
)

// Parse parses a version string. Spellings PEP 440 normalizes (leading "v",
// "alpha" for "a", "rev" for "post", underscore separators) are accepted and
// folded into the canonical form.
func Parse(s string) (Version, error) {
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, zerr.With(domain.ErrInvalidVersion, "version", s)
	}

	var v Version
	var err error
	if v.Epoch, err = atoi(m[epochIdx], 0); err != nil {
		return Version{}, zerr.With(domain.ErrInvalidVersion, "version", s)
	}
	for _, part := range strings.Split(m[releaseIdx], ".") {
		n, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, zerr.With(domain.ErrInvalidVersion, "version", s)
		}
		v.Release = append(v.Release, n)
	}
	if tag := strings.ToLower(m[preLIdx]); tag != "" {
		switch tag {
		case "a", "alpha":
			v.PreTag = "a"
		case "b", "beta":
			v.PreTag = "b"
		default:
			v.PreTag = "rc"
		}
		if v.PreNum, err = atoi(m[preNIdx], 0); err != nil {
			return Version{}, zerr.With(domain.ErrInvalidVersion, "version", s)
		}
	}
	if m[postN1Idx] != "" || m[postLIdx] != "" {
		v.HasPost = true
		num := m[postN1Idx]
		if num == "" {
			num = m[postN2Idx]
		}
		if v.Post, err = atoi(num, 0); err != nil {
			return Version{}, zerr.With(domain.ErrInvalidVersion, "version", s)
		}
	}
	if m[devLIdx] != "" {
		v.HasDev = true
		if v.Dev, err = atoi(m[devNIdx], 0); err != nil {
			return Version{}, zerr.With(domain.ErrInvalidVersion, "version", s)
		}
	}
	if m[localIdx] != "" {
		local := strings.ToLower(m[localIdx])
		local = strings.ReplaceAll(local, "-", ".")
		v.Local = strings.ReplaceAll(local, "_", ".")
	}
	return v, nil
}

// MustParse is Parse for known-good inputs; it panics on error.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("pep440: invalid version %q", s))
	}
	return v
}

func atoi(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

// IsPrerelease reports whether the version is a pre-release or a
// development release. Resolution skips these unless opted in.
func (v Version) IsPrerelease() bool {
	return v.PreTag != "" || v.HasDev
}

// String renders the canonical form.
func (v Version) String() string {
	var b strings.Builder
	if v.Epoch > 0 {
		b.WriteString(strconv.Itoa(v.Epoch))
		b.WriteByte('!')
	}
	for i, r := range v.Release {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(r))
	}
	if v.PreTag != "" {
		b.WriteString(v.PreTag)
		b.WriteString(strconv.Itoa(v.PreNum))
	}
	if v.HasPost {
		b.WriteString(".post")
		b.WriteString(strconv.Itoa(v.Post))
	}
	if v.HasDev {
		b.WriteString(".dev")
		b.WriteString(strconv.Itoa(v.Dev))
	}
	if v.Local != "" {
		b.WriteByte('+')
		b.WriteString(v.Local)
	}
	return b.String()
}

// Compare orders versions per PEP 440. It returns a negative number when
// v sorts before w, zero when they are equal, and a positive number
// otherwise. Trailing release zeros do not affect the order, so 1.0 and
// 1.0.0 compare equal.
func (v Version) Compare(w Version) int {
	if v.Epoch != w.Epoch {
		return cmp.Compare(v.Epoch, w.Epoch)
	}
	if c := compareRelease(v.Release, w.Release); c != 0 {
		return c
	}
	if c := comparePre(v, w); c != 0 {
		return c
	}
	if c := comparePost(v, w); c != 0 {
		return c
	}
	if c := compareDev(v, w); c != 0 {
		return c
	}
	return compareLocal(v.Local, w.Local)
}

// Equal reports whether v and w order the same, ignoring spelling.
func (v Version) Equal(w Version) bool {
	return v.Compare(w) == 0
}

func (v Version) withoutLocal() Version {
	v.Local = ""
	return v
}

func (v Version) baseEqual(w Version) bool {
	return v.Epoch == w.Epoch && compareRelease(v.Release, w.Release) == 0
}

func compareRelease(a, b []int) int {
	for i := range max(len(a), len(b)) {
		av, bv := 0, 0
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		if av != bv {
			return cmp.Compare(av, bv)
		}
	}
	return 0
}

// comparePre sorts a bare dev release below any pre-release, and any
// pre-release below the final release (1.0.dev1 < 1.0a1 < 1.0).
func comparePre(v, w Version) int {
	vr, wr := preRank(v), preRank(w)
	if vr != wr {
		return cmp.Compare(vr, wr)
	}
	if vr != 1 {
		return 0
	}
	if v.PreTag != w.PreTag {
		return strings.Compare(v.PreTag, w.PreTag)
	}
	return cmp.Compare(v.PreNum, w.PreNum)
}

func preRank(v Version) int {
	switch {
	case v.PreTag != "":
		return 1
	case !v.HasPost && v.HasDev:
		return 0
	default:
		return 2
	}
}

func comparePost(v, w Version) int {
	switch {
	case v.HasPost && w.HasPost:
		return cmp.Compare(v.Post, w.Post)
	case v.HasPost:
		return 1
	case w.HasPost:
		return -1
	default:
		return 0
	}
}

// compareDev sorts a dev release below its target (1.0a1.dev1 < 1.0a1).
func compareDev(v, w Version) int {
	switch {
	case v.HasDev && w.HasDev:
		return cmp.Compare(v.Dev, w.Dev)
	case v.HasDev:
		return -1
	case w.HasDev:
		return 1
	default:
		return 0
	}
}

// compareLocal orders local labels segment-wise, numeric segments above
// alphanumeric ones, absent labels below present ones.
func compareLocal(a, b string) int {
	if a == b {
		return 0
	}
	if a == "" {
		return -1
	}
	if b == "" {
		return 1
	}
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := range min(len(as), len(bs)) {
		an, aerr := strconv.Atoi(as[i])
		bn, berr := strconv.Atoi(bs[i])
		switch {
		case aerr == nil && berr == nil:
			if an != bn {
				return cmp.Compare(an, bn)
			}
		case aerr == nil:
			return 1
		case berr == nil:
			return -1
		default:
			if c := strings.Compare(as[i], bs[i]); c != 0 {
				return c
			}
		}
	}
	return cmp.Compare(len(as), len(bs))
}

// Sort orders versions ascending in place.
func Sort(vs []Version) {
	slices.SortFunc(vs, Version.Compare)
}
