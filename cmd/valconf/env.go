package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

func newEnvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Print environment assignments reproducing the current overrides",
		Long: `Print one export line per configuration value that does not come from the
built-in defaults, using the MBV_ variable names the validator reads.`,
		Args: cobra.NoArgs,
		RunE: runEnv,
	}
	cmd.Flags().Bool("show-secrets", false, "print the keypair instead of redacting it")
	return cmd
}

func runEnv(cmd *cobra.Command, args []string) error {
	cfg, err := newBuilder(cmd).BuildLayers()
	if err != nil {
		return err
	}
	showSecrets, _ := cmd.Flags().GetBool("show-secrets")

	redacted := make(map[string]bool)
	for _, path := range cfg.Paths() {
		if cfg.Redacted(path) {
			redacted[cfg.EnvName(path)] = true
		}
	}

	exports := cfg.ExportEnv()
	names := make([]string, 0, len(exports))
	for name := range exports {
		names = append(names, name)
	}
	sort.Strings(names)

	out := cmd.OutOrStdout()
	for _, name := range names {
		value := exports[name]
		if redacted[name] && !showSecrets {
			value = "<redacted>"
		}
		fmt.Fprintf(out, "export %s='%s'\n", name, strings.ReplaceAll(value, "'", `'\''`))
	}
	return nil
}
