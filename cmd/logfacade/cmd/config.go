package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/logfacade/internal/config"
)

// errConfigExists is returned by config init when the file exists and --force is not set.
var errConfigExists = errors.New("configuration file already exists")

func newConfigCommand(opts *options) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the logging configuration.",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	}

	var force bool

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration file.",
		Long:  "Write the default configuration to path, " + config.DefaultConfigFilename + " when omitted.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultConfigFilename
			if len(args) > 0 {
				path = args[0]
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%w: %s", errConfigExists, path)
			}

			if err := config.Save(path, config.Default()); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "configuration written to %s\n", path)

			return nil
		},
	}

	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	cfgCmd.AddCommand(show, initCmd)

	return cfgCmd
}
