package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the mtgtrades CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mtgtrades version %s\n", version)
		fmt.Fprintln(cmd.OutOrStdout(), "Magic: The Gathering trade tracker")
		fmt.Fprintln(cmd.OutOrStdout(), "https://github.com/rustyeddy/mtgtrades")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
