package main

import (
	"fmt"

	"github.com/spf13/cobra"

	config "github.com/lixenwraith/valconfig"
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the assembled configuration",
		Long: `Assemble the configuration from all sources, validate it and print the
result. Secrets are redacted unless --show-secrets is given.`,
		Args: cobra.NoArgs,
		RunE: runShow,
	}
	addShowFlags(cmd)
	return cmd
}

func addShowFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "toml", "output format: toml, yaml, json")
	cmd.Flags().Bool("show-secrets", false, "print the keypair instead of redacting it")
}

func runShow(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected argument %q", args[0])
	}
	format, _ := cmd.Flags().GetString("format")
	showSecrets, _ := cmd.Flags().GetBool("show-secrets")

	switch format {
	case "toml", "yaml", "json":
	default:
		return fmt.Errorf("unsupported format %q: want toml, yaml or json", format)
	}

	params, err := newBuilder(cmd).Build()
	if err != nil {
		return err
	}
	return params.Encode(cmd.OutOrStdout(), format, config.EncodeOptions{Redact: !showSecrets})
}
