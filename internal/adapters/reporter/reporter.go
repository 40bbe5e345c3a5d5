// Package reporter renders resolutions for humans and machines.
package reporter

import (
	"strings"

	"go.trai.ch/zerr"

	"github.com/pinset/pinset/internal/core/domain"
	"github.com/pinset/pinset/internal/core/ports"
)

// Supported report formats.
const (
	FormatTerminal = "terminal"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Formats lists the supported report formats.
func Formats() []string {
	return []string{FormatTerminal, FormatJSON, FormatMarkdown}
}

// Get returns the reporter for the named format. An empty format picks
// the terminal reporter.
func Get(format string) (ports.Reporter, error) {
	switch format {
	case FormatTerminal, "":
		return NewTerminal(), nil
	case FormatJSON:
		return NewJSON(), nil
	case FormatMarkdown:
		return NewMarkdown(), nil
	default:
		err := zerr.With(domain.ErrConfigInvalid, "format", format)
		return nil, zerr.With(err, "supported", strings.Join(Formats(), ", "))
	}
}
