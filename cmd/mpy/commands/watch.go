package commands

import "github.com/spf13/cobra"

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Deploy on every change below the source root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Watch(cmd.Context(), pipelineOptions(cmd))
		},
	}
	addCompileFlags(cmd)
	addDeployFlags(cmd)
	return cmd
}
