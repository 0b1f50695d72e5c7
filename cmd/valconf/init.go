package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	config "github.com/lixenwraith/valconfig"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a configuration file holding the built-in defaults",
		Long: `Write the built-in defaults to a configuration file (default: ./mbv.toml).
The format follows the file extension: .toml, .yaml/.yml or .json. An existing
file is only replaced with --force.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
	cmd.Flags().Bool("force", false, "overwrite an existing file")
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	path := appName + ".toml"
	if len(args) == 1 {
		path = args[0]
	}

	force, _ := cmd.Flags().GetBool("force")
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", path, err)
		}
	}

	defaults := config.Defaults()
	if err := defaults.Save(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	logger := loggerFromContext(cmd.Context())
	logger.Info().Str("path", path).Msg("configuration file written")
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
