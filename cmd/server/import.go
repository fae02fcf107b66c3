package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/onside-finance/onside/internal/app"
	"github.com/onside-finance/onside/internal/schemas"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	importFile     string
	importUsername string
	strictMode     bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import transactions from a JSON file",
	Long: `Import transactions for one user from a JSON file.

Expected JSON format:
[
  {"title": "Coffee", "amount": "4.50", "type": "expense", "category": "Food", "date": "2024-05-01"},
  {"title": "Salary", "amount": "2500.00", "type": "income", "category": "Salary", "date": "2024-05-01"}
]

By default, invalid entries are skipped and reported.
Use --strict to reject the whole file when any entry is invalid.`,
	Example: `  onside import -f transactions.json -u alice
  onside import --file transactions.json --user alice --strict`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport()
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "JSON file to import (required)")
	importCmd.Flags().StringVarP(&importUsername, "user", "u", "", "Username that owns the transactions (required)")
	importCmd.Flags().BoolVar(&strictMode, "strict", false, "Fail on any validation error")
	importCmd.MarkFlagRequired("file")
	importCmd.MarkFlagRequired("user")
}

type importResult struct {
	Imported int
	Skipped  int
}

func runImport() error {
	data, err := os.ReadFile(importFile)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var entries []schemas.TransactionInput
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
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

	zap.L().Info("starting import",
		zap.Int("entries", len(entries)),
		zap.String("file", importFile),
		zap.String("user", importUsername),
	)

	result, err := importTransactions(a, importUsername, entries, strictMode)
	if err != nil {
		return err
	}

	zap.L().Info("import complete",
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
	)
	return nil
}

// importTransactions validates every entry with the API rules and stores the
// valid ones for username. In strict mode nothing is stored unless all entries
// are valid.
func importTransactions(a *app.App, username string, entries []schemas.TransactionInput, strict bool) (importResult, error) {
	user, err := a.UserService.GetByUsername(username)
	if err != nil {
		return importResult{}, fmt.Errorf("unknown user %q: %w", username, err)
	}

	valid := make([]schemas.TransactionInput, 0, len(entries))
	result := importResult{}
	for i, entry := range entries {
		if err := schemas.Validate(&entry); err != nil {
			if strict {
				return importResult{}, fmt.Errorf("entry %d is invalid: %w", i, err)
			}
			zap.L().Warn("skipping invalid entry", zap.Int("index", i), zap.Error(err))
			result.Skipped++
			continue
		}
		valid = append(valid, entry)
	}

	for _, entry := range valid {
		if err := a.TransactionService.Create(entry.ToModel(user.ID)); err != nil {
			return result, fmt.Errorf("failed to store %q: %w", entry.Title, err)
		}
		result.Imported++
	}

	return result, nil
}
