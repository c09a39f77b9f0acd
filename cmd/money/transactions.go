package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Veraticus/money-manager/internal/cli"
	"github.com/Veraticus/money-manager/internal/common"
	"github.com/Veraticus/money-manager/internal/ledger"
	"github.com/Veraticus/money-manager/internal/model"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"transaction", "txn"},
		Short:   "Record, list and delete transactions",
	}

	cmd.AddCommand(listTransactionsCmd())
	cmd.AddCommand(addTransactionCmd())
	cmd.AddCommand(deleteTransactionCmd())

	return cmd
}

func listTransactionsCmd() *cobra.Command {
	var (
		typeFlag string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			txnType, err := parseTransactionType(typeFlag)
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			txns := a.store.Transactions(txnType)
			if limit > 0 && len(txns) > limit {
				txns = txns[:limit]
			}

			out := cmd.OutOrStdout()
			if len(txns) == 0 {
				fmt.Fprintln(out, cli.SubtleStyle.Render("No transactions recorded yet."))
				return nil
			}

			fmt.Fprintln(out, cli.TransactionTable(txns, a.store, a.format))
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeFlag, "type", "t", "all", "filter by type (all, income, expense, transfer)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most this many transactions")
	return cmd
}

// entryFlags are the fields every add subcommand shares.
type entryFlags struct {
	amount string
	date   string
	note   string
}

func (f *entryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.amount, "amount", "a", "", "amount, greater than zero")
	cmd.Flags().StringVarP(&f.date, "date", "d", "", "calendar date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&f.note, "note", "", "optional note")
	_ = cmd.MarkFlagRequired("amount")
}

// input parses the shared fields into a TransactionInput.
func (f *entryFlags) input(txnType model.TransactionType, now time.Time) (ledger.TransactionInput, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(f.amount))
	if err != nil {
		return ledger.TransactionInput{}, common.NewUserError(fmt.Sprintf("invalid amount %q", f.amount), err)
	}

	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if strings.TrimSpace(f.date) != "" {
		date, err = model.ParseDate(strings.TrimSpace(f.date))
		if err != nil {
			return ledger.TransactionInput{}, common.NewUserError(fmt.Sprintf("invalid date %q (want YYYY-MM-DD)", f.date), err)
		}
	}

	return ledger.TransactionInput{
		Type:   txnType,
		Amount: amount,
		Date:   date,
		Note:   f.note,
	}, nil
}

func addTransactionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an income, expense or transfer",
	}

	cmd.AddCommand(addCategorizedCmd(model.TransactionTypeIncome, model.CategoryTypeIncome))
	cmd.AddCommand(addCategorizedCmd(model.TransactionTypeExpense, model.CategoryTypeExpense))
	cmd.AddCommand(addTransferCmd())

	return cmd
}

func addCategorizedCmd(txnType model.TransactionType, categoryType model.CategoryType) *cobra.Command {
	var (
		flags       entryFlags
		categoryRef string
		subRef      string
	)

	cmd := &cobra.Command{
		Use:     string(txnType),
		Short:   fmt.Sprintf("Record %s against a %s category", article(string(txnType)), categoryType),
		Example: fmt.Sprintf("  money transactions add %s --amount 1200 --category Living --subcategory Rent --date 2024-03-01", txnType),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := flags.input(txnType, time.Now())
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			in.CategoryID, in.SubcategoryID, err = resolvePair(a.store, categoryRef, subRef, categoryType)
			if err != nil {
				return err
			}

			return record(cmd, a, in)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&categoryRef, "category", "c", "", "category id or name")
	cmd.Flags().StringVarP(&subRef, "subcategory", "s", "", "sub-category id or name")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func addTransferCmd() *cobra.Command {
	var (
		flags   entryFlags
		fromRef string
		toRef   string
		fromSub string
		toSub   string
	)

	cmd := &cobra.Command{
		Use:     "transfer",
		Short:   "Move money between two account categories",
		Example: `  money transactions add transfer --amount 500 --from "Cash Wallet" --to "Bank Account"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := flags.input(model.TransactionTypeTransfer, time.Now())
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			in.FromCategoryID, in.FromSubcategoryID, err = resolvePair(a.store, fromRef, fromSub, model.CategoryTypeAccount)
			if err != nil {
				return err
			}
			in.ToCategoryID, in.ToSubcategoryID, err = resolvePair(a.store, toRef, toSub, model.CategoryTypeAccount)
			if err != nil {
				return err
			}

			return record(cmd, a, in)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&fromRef, "from", "", "source account id or name")
	cmd.Flags().StringVar(&toRef, "to", "", "destination account id or name")
	cmd.Flags().StringVar(&fromSub, "from-sub", "", "source sub-account id or name")
	cmd.Flags().StringVar(&toSub, "to-sub", "", "destination sub-account id or name")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

// record validates in and adds it to the ledger.
func record(cmd *cobra.Command, a *app, in ledger.TransactionInput) error {
	txn, err := a.validator.Transaction(in)
	if err != nil {
		return common.NewUserError("cannot record transaction", err)
	}

	created, ok := a.store.AddTransaction(cmd.Context(), txn)
	if !ok {
		return common.NewUserError("cannot record transaction", ledger.ErrInvalidType)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Recorded %s of %s: %s (ID: %s)",
		created.Type(), a.format.Amount(created.Amount), cli.Placement(created, a.store), created.ID)))
	return nil
}

func deleteTransactionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a transaction",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if !a.store.RemoveTransaction(cmd.Context(), args[0]) {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning(fmt.Sprintf("No transaction with ID %s", args[0])))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Deleted transaction "+args[0]))
			return nil
		},
	}
}

func article(word string) string {
	if strings.ContainsRune("aeiou", rune(word[0])) {
		return "an " + word
	}
	return "a " + word
}
