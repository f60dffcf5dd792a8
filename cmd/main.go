package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pelada",
		Short: "Balanced team draws for the weekly pickup match",
	}

	rootCmd.AddCommand(newServeCmd(), newDraftCmd(), newSeedCmd())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
