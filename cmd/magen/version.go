package main

import (
	"strings"

	"github.com/spf13/cobra"

	"magen/internal/version"
)

func newVersionCmd(root *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show magen build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Current()
			out := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "pretty":
				return version.WritePretty(out, info, root.useColor(out))
			case "json":
				return version.WriteJSON(out, info)
			}
			return usageError("unsupported format %q (must be pretty or json)", format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json)")
	return cmd
}
