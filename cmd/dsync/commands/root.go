// Package commands implements the dsync command line interface.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
)

//Version is overridden at build time with -ldflags "-X dsync/cmd/dsync/commands.Version=...".
var Version = "dev"

type CLI struct {
	rootCmd *cobra.Command
}

func New() *CLI {
	rootCmd := &cobra.Command{
		Use:           "dsync",
		Short:         "Scans a directory and reports the entries selected by a job's filters",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newDescribeCmd())
	rootCmd.AddCommand(newVersionCmd())

	return &CLI{rootCmd: rootCmd}
}

func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs and SetOutput are used by tests.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
	c.rootCmd.SetErr(w)
}
