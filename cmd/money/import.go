package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Veraticus/money-manager/internal/cli"
	"github.com/Veraticus/money-manager/internal/common"
	"github.com/Veraticus/money-manager/internal/ledger"
	"github.com/Veraticus/money-manager/internal/model"
	"github.com/Veraticus/money-manager/internal/ofx"
)

func importCmd() *cobra.Command {
	var (
		incomeRef  string
		incomeSub  string
		expenseRef string
		expenseSub string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "import <files...>",
		Short: "Import transactions from OFX/QFX statements",
		Long: `Import the lines of OFX or QFX statements exported from your bank.

Credits are recorded as income against --income-category and debits as
expenses against --expense-category. Zero-amount lines and lines repeating a
FITID already seen for the same account are skipped.`,
		Example: `  money import ~/Downloads/statement_2024_03.qfx --income-category Salary --expense-category Living
  money import ~/Downloads/*.ofx --income-category Salary --expense-category Food --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expandFiles(args)
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			var m ofx.Mapping
			m.IncomeCategoryID, m.IncomeSubcategoryID, err = resolvePair(a.store, incomeRef, incomeSub, model.CategoryTypeIncome)
			if err != nil {
				return err
			}
			m.ExpenseCategoryID, m.ExpenseSubcategoryID, err = resolvePair(a.store, expenseRef, expenseSub, model.CategoryTypeExpense)
			if err != nil {
				return err
			}

			lines, err := parseStatements(cmd, files)
			if err != nil {
				return err
			}

			inputs, skipped := ofx.ToTransactions(lines, m)
			if len(inputs) == 0 {
				return common.NewUserError("nothing to import", common.ErrNoTransactions)
			}

			result := importInputs(cmd, a, inputs, dryRun)
			result.skipped = skipped

			out := cmd.OutOrStdout()
			verb := "Imported"
			if dryRun {
				verb = "Would import"
			}
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%s %d transactions (%s income, %s expenses)",
				verb, result.added, a.format.Amount(result.totals.TotalIncome), a.format.Amount(result.totals.TotalExpense))))
			if result.skipped > 0 || result.rejected > 0 {
				fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("Skipped %d duplicate or empty lines, rejected %d invalid lines",
					result.skipped, result.rejected)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&incomeRef, "income-category", "", "income category for credits")
	cmd.Flags().StringVar(&incomeSub, "income-subcategory", "", "income sub-category for credits")
	cmd.Flags().StringVar(&expenseRef, "expense-category", "", "expense category for debits")
	cmd.Flags().StringVar(&expenseSub, "expense-subcategory", "", "expense sub-category for debits")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "preview the import without saving")
	_ = cmd.MarkFlagRequired("income-category")
	_ = cmd.MarkFlagRequired("expense-category")

	return cmd
}

// parseStatements reads every file, logging and skipping unreadable ones.
func parseStatements(cmd *cobra.Command, files []string) ([]ofx.StatementLine, error) {
	parser := ofx.NewParser()

	var lines []ofx.StatementLine
	for _, path := range files {
		f, err := os.Open(path) //nolint:gosec // paths come from the user's own arguments
		if err != nil {
			common.LogError(err, "Failed to open file", common.Fields{"file": path})
			continue
		}

		parsed, err := parser.ParseFile(cmd.Context(), f)
		_ = f.Close()
		if err != nil {
			common.LogError(err, "Failed to parse OFX file", common.Fields{"file": path})
			continue
		}

		common.LogInfo("Processed file", common.Fields{"file": filepath.Base(path), "lines": len(parsed)})
		lines = append(lines, parsed...)
	}

	if len(lines) == 0 {
		return nil, common.NewUserError("no statement lines found", common.ErrNoTransactions)
	}
	return lines, nil
}

type importResult struct {
	totals   model.Summary
	added    int
	skipped  int
	rejected int
}

func importInputs(cmd *cobra.Command, a *app, inputs []ledger.TransactionInput, dryRun bool) importResult {
	bar := progressbar.NewOptions(len(inputs),
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionSetDescription("Importing"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	var result importResult
	var booked []model.Transaction
	for _, in := range inputs {
		_ = bar.Add(1)

		txn, err := a.validator.Transaction(in)
		if err != nil {
			result.rejected++
			common.LogWarn("Rejected statement line", common.Fields{
				"date":   in.Date.Format(model.DateLayout),
				"amount": in.Amount.String(),
				"error":  err.Error(),
			})
			continue
		}

		if dryRun {
			booked = append(booked, model.Transaction{Amount: txn.Amount, Entry: txn.Entry})
			result.added++
			continue
		}

		if created, ok := a.store.AddTransaction(cmd.Context(), txn); ok {
			booked = append(booked, created)
			result.added++
		}
	}
	_ = bar.Finish()

	result.totals = ledger.Summarize(booked)
	return result
}
