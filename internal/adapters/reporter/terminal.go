package reporter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pinset/pinset/internal/core/domain"
	"github.com/pinset/pinset/internal/ui/style"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true)

	groupStyle = lipgloss.NewStyle().
			Foreground(style.Indigo).
			Bold(true)

	requestedStyle = lipgloss.NewStyle().
			Foreground(style.Slate)

	resolvedStyle = lipgloss.NewStyle().
			Foreground(style.Green)

	yankedStyle = lipgloss.NewStyle().
			Foreground(style.Yellow).
			Bold(true)

	checkStyle = lipgloss.NewStyle().
			Foreground(style.Green)
)

// Terminal renders a resolution as a styled, grouped listing.
type Terminal struct{}

// NewTerminal creates the human-readable reporter.
func NewTerminal() *Terminal {
	return &Terminal{}
}

// Report renders the resolution grouped the way the manifest groups its
// entries, one line per requirement.
func (t *Terminal) Report(res *domain.Resolution) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render(fmt.Sprintf("%s resolved %d requirements for %s",
		checkStyle.Render(style.Check), len(res.Requirements), res.ManifestPath)))
	sb.WriteString("\n")

	nameWidth := 0
	requestedWidth := 0
	for _, rr := range res.Requirements {
		nameWidth = max(nameWidth, len(rr.Name))
		requestedWidth = max(requestedWidth, len(requestedText(rr)))
	}

	group := ""
	started := false
	for _, rr := range res.Requirements {
		if rr.Group != group || !started {
			sb.WriteString("\n")
			if rr.Group != "" {
				sb.WriteString("  " + groupStyle.Render(rr.Group) + "\n")
			}
			group = rr.Group
			started = true
		}

		sb.WriteString(fmt.Sprintf("    %-*s  %s  %s %s",
			nameWidth, rr.Name,
			requestedStyle.Render(fmt.Sprintf("%-*s", requestedWidth, requestedText(rr))),
			style.Arrow,
			resolvedStyle.Render(rr.Version)))
		if rr.Yanked {
			sb.WriteString("  " + yankedStyle.Render(style.Warning+" yanked"))
		}
		sb.WriteString("\n")
	}

	return []byte(sb.String()), nil
}

func requestedText(rr domain.ResolvedRequirement) string {
	if len(rr.Specifiers) == 0 {
		return "any"
	}
	return rr.Specifiers.String()
}
