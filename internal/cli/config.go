package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	format := formatYAML

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after defaults, the config file and TOKENTINT_*
environment variables have been applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if format == formatTable {
				file := a.cfg.File
				if file == "" {
					file = "<none>"
				}
				fmt.Fprintf(out, "Config File Used: %s\n", file)
				format = formatYAML
			}
			return writeStructured(out, format, a.cfg)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatYAML, "output format (table, json, yaml)")

	return cmd
}
