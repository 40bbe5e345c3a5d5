package reporter

import (
	"fmt"
	"strings"

	"github.com/pinset/pinset/internal/core/domain"
)

// Markdown renders a resolution as a table, ready for a PR description
// or a docs page.
type Markdown struct{}

// NewMarkdown creates the markdown reporter.
func NewMarkdown() *Markdown {
	return &Markdown{}
}

// Report generates a markdown table for the resolution.
func (m *Markdown) Report(res *domain.Resolution) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString("# Resolved requirements\n\n")
	sb.WriteString(fmt.Sprintf("Manifest: `%s`\n\n", res.ManifestPath))
	sb.WriteString("| Package | Requested | Resolved | Notes |\n")
	sb.WriteString("|---|---|---|---|\n")

	for _, rr := range res.Requirements {
		requested := "*any*"
		if len(rr.Specifiers) > 0 {
			requested = "`" + rr.Specifiers.String() + "`"
		}
		notes := ""
		if rr.Yanked {
			notes = "yanked"
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
			rr.Name, requested, rr.Version, notes))
	}

	return []byte(sb.String()), nil
}
