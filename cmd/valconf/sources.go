package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newSourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Show which source supplied each configuration value",
		Long: `List every configuration field with the layer that supplied its value and the
key it was written under. Values are shown as written, before validation, so this
also works for configurations that fail to load.`,
		Args: cobra.NoArgs,
		RunE: runSources,
	}
	cmd.Flags().BoolP("verbose", "v", false, "show the value every layer holds")
	return cmd
}

func runSources(cmd *cobra.Command, args []string) error {
	cfg, err := newBuilder(cmd).BuildLayers()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		_, err := fmt.Fprint(out, cfg.Debug())
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tSOURCE\tKEY\tVALUE")
	for _, path := range cfg.Paths() {
		origin := cfg.Origin(path)
		if origin == "" {
			fmt.Fprintf(tw, "%s\t-\t-\t<absent>\n", path)
			continue
		}
		value, _ := cfg.Get(path)
		text := fmt.Sprint(value)
		if cfg.Redacted(path) {
			text = "<redacted>"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", path, origin, cfg.SourceName(path), text)
	}
	if file := cfg.FilePath(); file != "" {
		fmt.Fprintf(tw, "\nfile: %s\n", file)
	}
	return tw.Flush()
}
