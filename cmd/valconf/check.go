package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration",
		Long: `Assemble and validate the configuration. Exits non-zero and reports the
failing field, its source and the offending text when the configuration is invalid.`,
		Args: cobra.NoArgs,
		RunE: runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	params, err := newBuilder(cmd).Build()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "configuration ok")
	fmt.Fprintf(out, "  identity:  %s\n", params.Validator.Keypair.Pubkey())
	fmt.Fprintf(out, "  remote:    %s\n", params.Remote)
	fmt.Fprintf(out, "  lifecycle: %s\n", params.Lifecycle)
	fmt.Fprintf(out, "  listen:    %s\n", params.Listen)
	if params.Metrics != nil {
		fmt.Fprintf(out, "  metrics:   %s\n", params.Metrics)
	}
	return nil
}
