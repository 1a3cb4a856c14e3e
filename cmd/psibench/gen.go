package main

import (
	"github.com/spf13/cobra"
)

var genSeed uint64

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate synthetic benchmark inputs",
}

// seeded reports whether --seed was given on the running command.
func seeded(cmd *cobra.Command) bool {
	return cmd.Flags().Changed("seed")
}

func init() {
	rootCmd.AddCommand(genCmd)
	genCmd.PersistentFlags().Uint64Var(&genSeed, "seed", 0, "Seed for reproducible output (default: random)")
}
