package main

import (
	"os"

	"doppel/cmd/doppel/ask"
	"doppel/cmd/doppel/serve"
	"doppel/internal/logger"

	"github.com/spf13/cobra"
)

func main() {
	logger.Init()
	rootCmd := &cobra.Command{
		Use:   "doppel",
		Short: "Doppel answers questions as a specific person",
	}

	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(ask.Cmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
