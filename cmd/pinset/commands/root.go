// Package commands implements the CLI commands for the pinset dependency tool.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pinset/pinset/internal/app"
	"github.com/pinset/pinset/internal/build"
	"github.com/pinset/pinset/internal/core/ports"
)

// CLI represents the command line interface for pinset.
type CLI struct {
	provider ComponentProvider
	app      Application
	logger   ports.Logger
	rootCmd  *cobra.Command
}

// ComponentProvider builds the application components. It runs lazily,
// after flag overrides have been exported to the environment, so the
// configuration loader and terminal styling see them.
type ComponentProvider func(ctx context.Context) (*app.Components, func(), error)

// Application represents the application logic interface.
type Application interface {
	Check(ctx context.Context, opts app.CheckOptions) error
	List(ctx context.Context, opts app.ListOptions) error
	Resolve(ctx context.Context, opts app.ResolveOptions) error
	Lock(ctx context.Context, opts app.LockOptions) error
	Verify(ctx context.Context, opts app.VerifyOptions) error
	Clean(ctx context.Context) error
}

// New creates a new CLI instance with the given component provider.
func New(provider ComponentProvider) *CLI {
	rootCmd := &cobra.Command{
		Use:           "pinset",
		Short:         "Pin and verify Python requirements against a package index",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("file", "f", "", "Manifest to operate on (defaults to requirements.txt)")
	rootCmd.PersistentFlags().String("index-url", "", "Package index base URL, overriding configuration")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Index request timeout, overriding configuration")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Emit logs as JSON")

	c := &CLI{
		provider: provider,
		rootCmd:  rootCmd,
	}

	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newLockCmd())
	rootCmd.AddCommand(c.newVerifyCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// Logger returns the logger once components have been built.
// Returns nil when no command has needed them.
func (c *CLI) Logger() ports.Logger {
	return c.logger
}

// application builds the components the first time a command needs them.
func (c *CLI) application(cmd *cobra.Command) (Application, error) {
	if c.app != nil {
		return c.app, nil
	}

	exportOverrides(cmd)

	components, _, err := c.provider(cmd.Context())
	if err != nil {
		return nil, err
	}
	c.app = components.App
	c.logger = components.Logger

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		if l, ok := c.logger.(interface{ SetVerbose(bool) }); ok {
			l.SetVerbose(true)
		}
	}
	if jsonLogs, _ := cmd.Flags().GetBool("json-logs"); jsonLogs {
		if l, ok := c.logger.(interface{ SetJSON(bool) }); ok {
			l.SetJSON(true)
		}
	}

	return c.app, nil
}

// exportOverrides mirrors flag overrides into the environment, where the
// configuration loader and terminal styling pick them up.
func exportOverrides(cmd *cobra.Command) {
	if url, _ := cmd.Flags().GetString("index-url"); url != "" {
		_ = os.Setenv("PINSET_INDEX_URL", url)
	}
	if timeout, _ := cmd.Flags().GetDuration("timeout"); timeout > 0 {
		_ = os.Setenv("PINSET_INDEX_TIMEOUT", timeout.String())
	}
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		_ = os.Setenv("NO_COLOR", "1")
	}
}
