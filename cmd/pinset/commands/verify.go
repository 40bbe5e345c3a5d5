package commands

import (
	"github.com/spf13/cobra"

	"github.com/pinset/pinset/internal/app"
)

func (c *CLI) newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Verify the lockfile is current for the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.application(cmd)
			if err != nil {
				return err
			}
			file, _ := cmd.Flags().GetString("file")
			return a.Verify(cmd.Context(), app.VerifyOptions{File: file})
		},
	}
}
