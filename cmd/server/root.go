package main

import (
	"fmt"
	"os"

	"github.com/onside-finance/onside/internal/config"
	"github.com/onside-finance/onside/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "onside",
	Short: "Onside - personal finance backend",
	Long: `Onside keeps track of a user's transactions, recurring subscriptions and savings goals.

It provides a REST API for the Onside single page app.

Run 'onside serve' to start the server, 'onside migrate' to prepare the database,
'onside import' to load transactions from JSON or 'onside seed' to create demo data.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(seedCmd)
}

// loadConfig reads the environment and installs the global logger.
// The returned function flushes the logger.
func loadConfig() (*config.Config, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	restore, err := logging.Install(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return cfg, restore, nil
}
