package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/money-manager/internal/cli"
	"github.com/Veraticus/money-manager/internal/common"
	"github.com/Veraticus/money-manager/internal/storage"
)

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write the whole ledger to a JSON file",
		Long:  `Write every category and transaction to a file in the same JSON layout the ledger is stored in.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			state := a.store.State()
			data, err := storage.Encode(state)
			if err != nil {
				return fmt.Errorf("failed to encode ledger: %w", err)
			}

			var pretty bytes.Buffer
			if err := json.Indent(&pretty, data, "", "  "); err != nil {
				return fmt.Errorf("failed to format ledger: %w", err)
			}
			pretty.WriteByte('\n')

			if err := os.WriteFile(args[0], pretty.Bytes(), 0600); err != nil {
				return fmt.Errorf("failed to write %s: %w", args[0], err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Exported %d categories and %d transactions to %s",
				len(state.Categories), len(state.Transactions), args[0])))
			return nil
		},
	}
}

func restoreCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Replace the whole ledger with an exported JSON file",
		Long: `Replace every category and transaction with the contents of a file written
by 'money export'. The file is loaded as-is; references are not checked.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			state, err := storage.Decode(data)
			if err != nil {
				return common.NewUserError(fmt.Sprintf("%s is not a ledger export", args[0]), err)
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			current := a.store.State()
			if !yes && len(current.Transactions) > 0 {
				return common.NewUserError(fmt.Sprintf(
					"the ledger holds %d transactions; pass --yes to replace them", len(current.Transactions)), nil)
			}

			a.store.Hydrate(cmd.Context(), state)
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Restored %d categories and %d transactions from %s",
				len(state.Categories), len(state.Transactions), args[0])))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "replace a ledger that already has transactions")
	return cmd
}
