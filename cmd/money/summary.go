package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/money-manager/internal/cli"
)

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show total income, expenses, transfers and balance",
		Long: `Show the totals over every recorded transaction. The balance is income
minus expenses; transfers move money between your own accounts and do not
change it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			fmt.Fprintln(cmd.OutOrStdout(), cli.SummaryBox(a.store.Summary(), a.format))
			return nil
		},
	}
}
