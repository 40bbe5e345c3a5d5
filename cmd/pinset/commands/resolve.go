package commands

import (
	"github.com/spf13/cobra"

	"github.com/pinset/pinset/internal/app"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve every requirement to a concrete version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.application(cmd)
			if err != nil {
				return err
			}
			file, _ := cmd.Flags().GetString("file")
			format, _ := cmd.Flags().GetString("output")
			return a.Resolve(cmd.Context(), app.ResolveOptions{File: file, Format: format})
		},
	}
	cmd.Flags().StringP("output", "o", "terminal", "Report format: terminal, json, or markdown")
	return cmd
}
