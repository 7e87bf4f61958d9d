package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := version
			if v == "" {
				v = "dev"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imdblists %s\n", v)
			if githash != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Git Commit Hash: %s\n", githash)
			}
			if buildstamp != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "UTC Build Time: %s\n", buildstamp)
			}
			return nil
		},
	}
}
