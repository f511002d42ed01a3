package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"go.trai.ch/mpy/internal/build"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the mpy version and build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "mpy version %s %s/%s\n", build.Version, runtime.GOOS, runtime.GOARCH)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "commit %s, built %s\n", build.Commit, build.Date)
		},
	}
}
