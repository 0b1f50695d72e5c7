package main

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	config "github.com/lixenwraith/valconfig"
)

var version = "dev"

// appName is the base name used for configuration file discovery.
const appName = "mbv"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: version,
		Use:     "valconf",
		Short:   "Inspect and check validator configuration",
		Long: `valconf assembles the validator configuration exactly as the validator does:
built-in defaults, then the configuration file, then command-line flags, then
MBV_* environment variables. Use it to see the result, where each value came
from, and whether the configuration is valid.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := setupLogging(env.ToMap(os.Environ()), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), logger))
			return nil
		},
		RunE: runShow,
	}

	config.BindFlags(rootCmd.PersistentFlags())
	rootCmd.SetGlobalNormalizationFunc(config.NormalizeFlagName)
	addShowFlags(rootCmd)

	rootCmd.AddCommand(
		newShowCmd(),
		newSourcesCmd(),
		newEnvCmd(),
		newInitCmd(),
		newCheckCmd(),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
