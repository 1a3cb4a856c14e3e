package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/psibench"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of psibench",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "psibench version %s\n", strings.TrimSpace(psibench.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
