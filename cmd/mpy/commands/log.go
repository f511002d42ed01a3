package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log [run-id]",
		Short: "Replay the stage log of a recorded run",
		Long: "Replay the stage log of a recorded run.\n\n" +
			"Every build or deploy is journaled below .mpy/runs. Without an argument the\n" +
			"newest run is shown. A prefix of the run ID is enough.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var runID string
			if len(args) > 0 {
				runID = args[0]
			}
			return c.app.Log(cmd.Context(), options(cmd), runID)
		},
	}
}
