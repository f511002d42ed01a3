package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/mpy/internal/app"
)

func (c *CLI) newArchiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Pack the artifact root into the next versioned zip archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bump, _ := cmd.Flags().GetString("bump")
			upload, _ := cmd.Flags().GetBool("upload")

			return c.app.Archive(cmd.Context(), app.ArchiveOptions{
				Options: options(cmd),
				Bump:    bump,
				Upload:  upload,
			})
		},
	}
	cmd.Flags().StringP("bump", "b", "patch", "Version part to increment: patch, minor or major")
	cmd.Flags().Bool("upload", false, "Upload the archive to the configured S3 bucket")
	return cmd
}
