package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/mpy/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile changed sources into the artifact root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Build(cmd.Context(), pipelineOptions(cmd))
		},
	}
	addCompileFlags(cmd)
	return cmd
}

func (c *CLI) newDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Compile changed sources, copy them to the device and run the entry module",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Deploy(cmd.Context(), pipelineOptions(cmd))
		},
	}
	addCompileFlags(cmd)
	addDeployFlags(cmd)
	cmd.Flags().BoolP("all", "a", false, "Also copy artifacts that are already up to date")
	return cmd
}

func addCompileFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("opt", "O", "", "Optimization level 0-3, or none to copy sources verbatim")
	cmd.Flags().IntP("jobs", "j", 0, "Number of parallel compiler processes")
	cmd.Flags().Bool("clean", false, "Remove the artifact root before building")
}

func addDeployFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("bulk", false, "Copy the whole artifact root in one operation")
	cmd.Flags().Bool("no-launch", false, "Do not run the entry module after deploying")
}

// pipelineOptions reads the flags of the build, deploy and watch commands.
// Flags a command does not define keep their zero value.
func pipelineOptions(cmd *cobra.Command) app.Options {
	opts := options(cmd)
	opts.OptLevel, _ = cmd.Flags().GetString("opt")
	opts.Jobs, _ = cmd.Flags().GetInt("jobs")
	opts.Clean, _ = cmd.Flags().GetBool("clean")
	opts.All, _ = cmd.Flags().GetBool("all")
	opts.Bulk, _ = cmd.Flags().GetBool("bulk")
	opts.NoLaunch, _ = cmd.Flags().GetBool("no-launch")
	return opts
}
