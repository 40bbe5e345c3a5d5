package pep440_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pinset/pinset/internal/pep440"
)

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "streamlit", want: "streamlit"},
		{in: "Pillow", want: "pillow"},
		{in: "streamlit-folium", want: "streamlit-folium"},
		{in: "nest_asyncio", want: "nest-asyncio"},
		{in: "streamlit.folium", want: "streamlit-folium"},
		{in: "A__B..C--D", want: "a-b-c-d"},
		{in: "faiss-cpu", want: "faiss-cpu"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, pep440.CanonicalName(tt.in))
		})
	}
}

func TestValidName(t *testing.T) {
	valid := []string{"streamlit", "python-docx", "a", "A2", "9numpy", "nest_asyncio", "zope.interface"}
	for _, name := range valid {
		assert.True(t, pep440.ValidName(name), name)
	}

	invalid := []string{"", "-pandas", "pandas-", "_private", "has space", "name!", ".dot"}
	for _, name := range invalid {
		assert.False(t, pep440.ValidName(name), name)
	}
}
