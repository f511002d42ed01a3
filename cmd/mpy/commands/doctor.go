package commands

import "github.com/spf13/cobra"

func (c *CLI) newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the compiler and the device tool are installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Doctor(cmd.Context(), options(cmd))
		},
	}
}
