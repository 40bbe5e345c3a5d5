package commands

import (
	"github.com/spf13/cobra"

	"github.com/pinset/pinset/internal/app"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Parse and validate the requirements manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.application(cmd)
			if err != nil {
				return err
			}
			file, _ := cmd.Flags().GetString("file")
			return a.Check(cmd.Context(), app.CheckOptions{File: file})
		},
	}
}
