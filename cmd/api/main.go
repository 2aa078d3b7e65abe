package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgerlite/core/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ledgerlite",
		Short: "LedgerLite transaction server",
		Long:  `LedgerLite is a small record-keeping web application that stores transaction records in a flat JSON file on local disk.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewSeedCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
