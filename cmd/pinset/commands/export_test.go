package commands

import "github.com/pinset/pinset/internal/core/ports"

// SetApplication injects the application directly, bypassing the
// component provider.
func (c *CLI) SetApplication(a Application, log ports.Logger) {
	c.app = a
	c.logger = log
}
