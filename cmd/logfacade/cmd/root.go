// Package cmd implements the logfacade command line.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/logfacade/internal/config"
	"github.com/oshokin/logfacade/internal/version"
)

// options are shared by all subcommands.
type options struct {
	// cfgPath stores the configuration file path; empty reads the environment only.
	cfgPath string
}

// loadConfig reads the configuration selected by the --config flag.
func (o *options) loadConfig() (*config.Config, error) {
	return config.Load(o.cfgPath)
}

// NewRootCommand builds the logfacade command tree.
func NewRootCommand() *cobra.Command {
	opts := new(options)

	root := &cobra.Command{
		Use:   "logfacade",
		Short: "Write log records through a pluggable backend.",
		Long: `Writes log records through the logging facade.

The backend (zap, slog, zerolog, logrus or nop), level, format and output are
read from a YAML file and LOGFACADE_* environment variables.
Use it to check a logging configuration before shipping it with a service.`,
		SilenceUsage: true,
	}

	// Setup command flags with consistent naming and descriptions.
	root.PersistentFlags().StringVarP(&opts.cfgPath, "config", "c", "",
		"path to configuration file (environment only when empty)")

	root.AddCommand(newEmitCommand(opts), newConfigCommand(opts))
	version.AttachCobraVersionCommand(root)

	return root
}

// Execute runs the logfacade CLI and exits with non-zero status on error.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
