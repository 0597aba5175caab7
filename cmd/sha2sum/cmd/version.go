package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"massnet.org/sha2/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "sha2sum version", version.GetVersion())
			if commit := version.GitCommit(); commit != "" {
				fmt.Fprintln(cmd.OutOrStdout(), "git commit", commit)
			}
		},
	}
}
