// ABOUTME: version command for the newsnex CLI
// ABOUTME: Prints the build version set through ldflags

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of newsnex",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "newsnex %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
