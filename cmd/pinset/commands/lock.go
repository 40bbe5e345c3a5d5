package commands

import (
	"github.com/spf13/cobra"

	"github.com/pinset/pinset/internal/app"
)

func (c *CLI) newLockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lock",
		Short: "Resolve the manifest and write a lockfile next to it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.application(cmd)
			if err != nil {
				return err
			}
			file, _ := cmd.Flags().GetString("file")
			return a.Lock(cmd.Context(), app.LockOptions{File: file})
		},
	}
}
