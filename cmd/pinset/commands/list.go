package commands

import (
	"github.com/spf13/cobra"

	"github.com/pinset/pinset/internal/app"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List manifest requirements by group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.application(cmd)
			if err != nil {
				return err
			}
			file, _ := cmd.Flags().GetString("file")
			return a.List(cmd.Context(), app.ListOptions{File: file})
		},
	}
}
