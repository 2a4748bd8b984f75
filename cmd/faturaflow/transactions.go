package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faturaflow/faturaflow/internal/service"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Inspect stored transactions",
	}

	cmd.AddCommand(transactionsListCmd())
	cmd.AddCommand(transactionsSearchCmd())

	return cmd
}

func transactionsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored transactions",
		RunE:  runTransactionsList,
	}

	cmd.Flags().String("origin", "", "filter by origin label")
	cmd.Flags().Int("limit", 50, "maximum transactions to show")
	cmd.Flags().Bool("json", false, "print transactions as JSON instead of a table")

	return cmd
}

func runTransactionsList(cmd *cobra.Command, _ []string) error {
	origin, _ := cmd.Flags().GetString("origin")
	limit, _ := cmd.Flags().GetInt("limit")
	asJSON, _ := cmd.Flags().GetBool("json")

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	transactions, err := store.GetTransactions(cmd.Context(), service.TransactionFilter{
		Origin: origin,
		Limit:  limit,
	})
	if err != nil {
		return fmt.Errorf("failed to list transactions: %w", err)
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(transactions); err != nil {
			return fmt.Errorf("failed to encode transactions: %w", err)
		}
		return nil
	}

	if len(transactions) == 0 {
		cmd.Println("No transactions found")
		return nil
	}

	for _, txn := range transactions {
		cmd.Printf("%s  %s  %-40.40s  R$ %10s  %-12s  %s\n",
			txn.Fingerprint[:8],
			txn.Date.Format("02/01/2006"),
			txn.Description,
			txn.Amount.StringFixed(2),
			txn.Category,
			txn.OriginLabel)
	}
	return nil
}

func transactionsSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search stored transactions by description, category, or source",
		Args:  cobra.ExactArgs(1),
		RunE:  runTransactionsSearch,
	}

	cmd.Flags().Int("limit", 50, "maximum transactions to show")

	return cmd
}

func runTransactionsSearch(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	transactions, err := store.GetTransactions(cmd.Context(), service.TransactionFilter{
		Search: args[0],
		Limit:  limit,
	})
	if err != nil {
		return fmt.Errorf("failed to search transactions: %w", err)
	}

	if len(transactions) == 0 {
		cmd.Printf("No transactions match %q\n", args[0])
		return nil
	}

	for _, txn := range transactions {
		cmd.Printf("%s  %s  %-40.40s  R$ %10s  %s\n",
			txn.Fingerprint[:8],
			txn.Date.Format("02/01/2006"),
			txn.Description,
			txn.Amount.StringFixed(2),
			txn.Category)
	}
	return nil
}
