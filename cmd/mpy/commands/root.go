// Package commands implements the CLI commands for mpy.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/mpy/internal/app"
	"go.trai.ch/mpy/internal/build"
)

const (
	groupPipeline = "pipeline"
	groupDevice   = "device"
)

// CLI represents the command line interface for mpy.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	setJSON func(bool)
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, opts app.Options) error
	Deploy(ctx context.Context, opts app.Options) error
	Run(ctx context.Context, opts app.Options) error
	Stop(ctx context.Context, opts app.Options) error
	Reset(ctx context.Context, opts app.Options) error
	Info(ctx context.Context, opts app.Options) error
	Ports(ctx context.Context, opts app.Options) error
	Watch(ctx context.Context, opts app.Options) error
	Clean(ctx context.Context, opts app.Options) error
	Doctor(ctx context.Context, opts app.Options) error
	Archive(ctx context.Context, opts app.ArchiveOptions) error
	Log(ctx context.Context, opts app.Options, runID string) error
}

// Option configures the CLI.
type Option func(*CLI)

// WithJSONSwitch registers the function that toggles JSON log output for --json.
func WithJSONSwitch(fn func(bool)) Option {
	return func(c *CLI) {
		c.setJSON = fn
	}
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "mpy",
		Short:         "Incremental MicroPython build and deploy",
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

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to mpy.yaml (default: searched from the working directory)")
	rootCmd.PersistentFlags().StringP("port", "p", "", "Target serial port, or auto")
	rootCmd.PersistentFlags().Bool("json", false, "Write logs as JSON")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	for _, opt := range opts {
		opt(c)
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if jsonLogs, _ := cmd.Flags().GetBool("json"); jsonLogs && c.setJSON != nil {
			c.setJSON(true)
		}
	}

	rootCmd.AddGroup(
		&cobra.Group{ID: groupPipeline, Title: "Pipeline Commands:"},
		&cobra.Group{ID: groupDevice, Title: "Device Commands:"},
	)
	addToGroup(rootCmd, groupPipeline,
		c.newBuildCmd(), c.newDeployCmd(), c.newWatchCmd(), c.newCleanCmd(), c.newArchiveCmd(), c.newLogCmd())
	addToGroup(rootCmd, groupDevice,
		c.newRunCmd(), c.newStopCmd(), c.newResetCmd(), c.newInfoCmd(), c.newPortsCmd())
	rootCmd.AddCommand(c.newDoctorCmd(), c.newVersionCmd())

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

// options reads the persistent flags shared by every command.
func options(cmd *cobra.Command) app.Options {
	configPath, _ := cmd.Flags().GetString("config")
	port, _ := cmd.Flags().GetString("port")
	return app.Options{
		ConfigPath: configPath,
		Target:     port,
	}
}

func addToGroup(root *cobra.Command, group string, cmds ...*cobra.Command) {
	for _, cmd := range cmds {
		cmd.GroupID = group
		root.AddCommand(cmd)
	}
}
