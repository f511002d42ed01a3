package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.trai.ch/mpy/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the entry module already on the device",
		Long: "Run the entry module already on the device.\n\n" +
			"With --mount the artifact root is mounted on the device instead and the\n" +
			"entry module runs from there, streaming its output until it exits.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := options(cmd)
			opts.Mount, _ = cmd.Flags().GetBool("mount")
			return c.app.Run(cmd.Context(), opts)
		},
	}
	cmd.Flags().BoolP("mount", "m", false, "Run from the mounted artifact root without deploying")
	return cmd
}

func (c *CLI) newStopCmd() *cobra.Command {
	return c.deviceCmd("stop", "Stop the running program with a soft reset", c.app.Stop)
}

func (c *CLI) newResetCmd() *cobra.Command {
	return c.deviceCmd("reset", "Hard-reset the device and import the entry module", c.app.Reset)
}

func (c *CLI) newInfoCmd() *cobra.Command {
	return c.deviceCmd("info", "Print firmware and memory information of the device", c.app.Info)
}

func (c *CLI) newPortsCmd() *cobra.Command {
	return c.deviceCmd("ports", "List serial ports that can be passed to --port", c.app.Ports)
}

func (c *CLI) deviceCmd(use, short string, fn func(context.Context, app.Options) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return fn(cmd.Context(), options(cmd))
		},
	}
}
