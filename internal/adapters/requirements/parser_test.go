package requirements_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"

	"github.com/pinset/pinset/internal/adapters/requirements"
	"github.com/pinset/pinset/internal/core/domain"
)

func TestParser_CanParse(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"requirements.txt", true},
		{"requirements-dev.txt", true},
		{"dev-requirements.txt", true},
		{"app/requirements.txt", true},
		{"REQUIREMENTS.TXT", true},
		{"pyproject.toml", false},
		{"notes.txt", false},
		{"requirements.in", false},
	}

	p := requirements.NewParser()
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, p.CanParse(tt.filename))
		})
	}
}

func TestParser_Parse_Fixture(t *testing.T) {
	p := requirements.NewParser()

	m, err := p.Parse(filepath.Join("testdata", "requirements.txt"))
	require.NoError(t, err)
	require.NotNil(t, m)

	// Comment lines become groups, never requirements.
	assert.Equal(t, []string{
		"streamlit", "pandas", "numpy", "requests", "openai",
		"nest-asyncio", "pillow", "python-docx", "openpyxl",
		"plotly", "altair", "pyecharts", "folium", "streamlit-folium",
		"faiss-cpu",
	}, m.Names())

	require.Len(t, m.Groups, 3)
	assert.Equal(t, "Core dependencies", m.Groups[0].Title)
	assert.Equal(t, "Visualization", m.Groups[1].Title)
	assert.Equal(t, "RAG/Vector Database dependencies", m.Groups[2].Title)

	// An exact pin keeps the full version.
	streamlit := m.Requirements[0]
	assert.Equal(t, "streamlit", streamlit.Name)
	assert.Equal(t, 2, streamlit.Line)
	assert.Equal(t, "Core dependencies", streamlit.Group)
	pin, ok := streamlit.Pin()
	require.True(t, ok, "streamlit should be exactly pinned")
	assert.Equal(t, "1.44.0", pin)

	// A bare name carries no constraint at all.
	pandas := m.Requirements[1]
	assert.Equal(t, "pandas", pandas.Name)
	assert.Empty(t, pandas.Specifiers)
	assert.False(t, pandas.Pinned())

	// Underscores normalize to hyphens but the raw spelling survives.
	nest := m.Requirements[5]
	assert.Equal(t, "nest-asyncio", nest.Name)
	assert.Equal(t, "nest_asyncio", nest.RawName)

	// Grouping follows the most recent heading.
	assert.Equal(t, "Visualization", m.Requirements[13].Group)
	assert.Equal(t, "RAG/Vector Database dependencies", m.Requirements[14].Group)

	assert.Empty(t, m.Options)
	assert.Len(t, m.Digest, 16)
}

func TestParser_Parse_Reparse(t *testing.T) {
	p := requirements.NewParser()
	path := filepath.Join("testdata", "requirements.txt")

	first, err := p.Parse(path)
	require.NoError(t, err)
	second, err := p.Parse(path)
	require.NoError(t, err)

	// Same bytes, same manifest.
	assert.Equal(t, first, second)
}

func TestParser_Parse_InlineCommentsAndMarkers(t *testing.T) {
	path := writeManifest(t, `requests>=2.0  # the http client
nest_asyncio ; python_version < "3.12"
`)

	m, err := requirements.NewParser().Parse(path)
	require.NoError(t, err)
	require.Len(t, m.Requirements, 2)

	req := m.Requirements[0]
	assert.Equal(t, "requests", req.Name)
	assert.Empty(t, req.Marker)
	require.Len(t, req.Specifiers, 1)
	assert.Equal(t, domain.OpGreaterEqual, req.Specifiers[0].Op)
	assert.Equal(t, "2.0", req.Specifiers[0].Version)

	nest := m.Requirements[1]
	assert.Equal(t, "nest-asyncio", nest.Name)
	assert.Empty(t, nest.Specifiers)
	assert.Equal(t, `python_version < "3.12"`, nest.Marker)
}

func TestParser_Parse_ExtrasAndMultiClause(t *testing.T) {
	path := writeManifest(t, `requests[socks,security]==2.32.3
pandas>=2.0,<3.0
`)

	m, err := requirements.NewParser().Parse(path)
	require.NoError(t, err)
	require.Len(t, m.Requirements, 2)

	req := m.Requirements[0]
	assert.Equal(t, []string{"socks", "security"}, req.Extras)
	pin, ok := req.Pin()
	require.True(t, ok)
	assert.Equal(t, "2.32.3", pin)

	pandas := m.Requirements[1]
	require.Len(t, pandas.Specifiers, 2)
	assert.Equal(t, ">=2.0,<3.0", pandas.Specifiers.String())
	assert.False(t, pandas.Pinned())
}

func TestParser_Parse_OptionsRecordedAndSkipped(t *testing.T) {
	path := writeManifest(t, `-r base.txt
--index-url https://pypi.example.org/simple
streamlit==1.44.0
`)

	m, err := requirements.NewParser().Parse(path)
	require.NoError(t, err)

	require.Len(t, m.Requirements, 1)
	assert.Equal(t, "streamlit", m.Requirements[0].Name)

	require.Len(t, m.Options, 2)
	assert.Equal(t, "-r base.txt", m.Options[0].Raw)
	assert.Equal(t, 1, m.Options[0].Line)
	assert.Equal(t, "--index-url https://pypi.example.org/simple", m.Options[1].Raw)
}

func TestParser_Parse_CRLF(t *testing.T) {
	path := writeManifest(t, "streamlit==1.44.0\r\npandas\r\n")

	m, err := requirements.NewParser().Parse(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"streamlit", "pandas"}, m.Names())
}

func TestParser_Parse_EmptyFile(t *testing.T) {
	path := writeManifest(t, "\n\n# only a heading\n")

	m, err := requirements.NewParser().Parse(path)
	require.NoError(t, err)
	assert.Empty(t, m.Requirements)
	require.Len(t, m.Groups, 1)
	assert.Equal(t, "only a heading", m.Groups[0].Title)
}

func TestParser_Parse_NotFound(t *testing.T) {
	_, err := requirements.NewParser().Parse(filepath.Join(t.TempDir(), "requirements.txt"))
	require.ErrorIs(t, err, domain.ErrManifestNotFound)
}

func TestParser_Parse_InvalidLines(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		expectedErr error
	}{
		{
			name:        "invalid name",
			content:     "_private==1.0\n",
			expectedErr: domain.ErrInvalidName,
		},
		{
			name:        "trailing dash name",
			content:     "package-\n",
			expectedErr: domain.ErrInvalidName,
		},
		{
			name:        "missing version",
			content:     "streamlit==\n",
			expectedErr: domain.ErrInvalidSpecifier,
		},
		{
			name:        "unknown operator",
			content:     "streamlit @ https://example.org/streamlit.whl\n",
			expectedErr: domain.ErrInvalidSpecifier,
		},
		{
			name:        "garbled version",
			content:     "pandas==not&a&version\n",
			expectedErr: domain.ErrInvalidSpecifier,
		},
		{
			name:        "unterminated extras",
			content:     "requests[socks\n",
			expectedErr: domain.ErrInvalidRequirement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, tt.content)

			m, err := requirements.NewParser().Parse(path)
			require.ErrorIs(t, err, tt.expectedErr)
			assert.Nil(t, m)
		})
	}
}

func TestParser_Parse_ErrorCarriesPosition(t *testing.T) {
	path := writeManifest(t, `streamlit==1.44.0
pandas

_private==1.0
`)

	_, err := requirements.NewParser().Parse(path)
	require.ErrorIs(t, err, domain.ErrInvalidName)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	meta := zErr.Metadata()
	assert.Equal(t, path, meta["file"])
	assert.Equal(t, 4, meta["line"])
}

// Helpers.

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "requirements.txt")
	err := os.WriteFile(path, []byte(content), domain.FilePerm)
	require.NoError(t, err)
	return path
}
