package main

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/onside-finance/onside/internal/app"
	"github.com/onside-finance/onside/internal/seed"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	seedUsers        int
	seedTransactions int
	seedRandomSeed   int64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create demo users and records",
	Long: `Create demo users with generated transactions, subscriptions and goals.

Every demo user gets the password "` + seed.DefaultPassword + `".`,
	Example: `  onside seed
  onside seed -n 20 --transactions 50`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed()
	},
}

func init() {
	seedCmd.Flags().IntVarP(&seedUsers, "users", "n", 5, "Number of users to create")
	seedCmd.Flags().IntVar(&seedTransactions, "transactions", 20, "Transactions per user")
	seedCmd.Flags().Int64Var(&seedRandomSeed, "seed", 0, "Random seed (0 picks one)")
}

func runSeed() error {
	if seedUsers <= 0 {
		return fmt.Errorf("--users must be positive")
	}

	cfg, restore, err := loadConfig()
	if err != nil {
		return err
	}
	defer restore()

	a, err := app.Open(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	opts := seed.DefaultOptions(seedUsers)
	opts.TransactionsPerUser = seedTransactions

	result, err := seed.Run(a, gofakeit.New(seedRandomSeed), opts)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	zap.L().Info("seed complete",
		zap.Strings("users", result.Users),
		zap.Int("transactions", result.Transactions),
		zap.Int("subscriptions", result.Subscriptions),
		zap.Int("goals", result.Goals),
	)
	return nil
}
