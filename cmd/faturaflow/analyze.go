package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/faturaflow/faturaflow/internal/model"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <file>...",
		Short: "Parse statement text files into transactions",
		Long: `Analyze one or more pre-extracted statement text files: detect the
source format, extract and normalize transactions, categorize them, and
optionally persist the results (deduplicated by fingerprint).`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().String("origin", "principal", "origin label for the card/account these statements belong to")
	cmd.Flags().Bool("save", false, "persist the extracted transactions")
	cmd.Flags().Bool("json", false, "print transactions as JSON instead of a table")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	origin, _ := cmd.Flags().GetString("origin")
	save, _ := cmd.Flags().GetBool("save")
	asJSON, _ := cmd.Flags().GetBool("json")

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(cmd.Context()); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	eng, err := buildEngine(store)
	if err != nil {
		return err
	}

	var bar *progressbar.ProgressBar
	if len(args) > 1 && !asJSON {
		bar = progressbar.Default(int64(len(args)), "analyzing")
	}

	var all []model.Transaction
	for _, path := range args {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return fmt.Errorf("failed to read %s: %w", path, readErr)
		}

		result, analyzeErr := eng.Analyze(cmd.Context(), string(data), origin)
		if analyzeErr != nil {
			return fmt.Errorf("failed to analyze %s: %w", path, analyzeErr)
		}

		if !asJSON {
			cmd.Printf("%s: source=%s transactions=%d skipped=%d\n",
				path, result.SourceID, len(result.Transactions), result.Skipped)
		}
		all = append(all, result.Transactions...)

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(all); err != nil {
			return fmt.Errorf("failed to encode transactions: %w", err)
		}
	} else {
		printTransactions(cmd, all)
	}

	if save {
		report, saveErr := store.SaveTransactions(cmd.Context(), all)
		if saveErr != nil {
			return fmt.Errorf("failed to save transactions: %w", saveErr)
		}
		cmd.Printf("\nSaved %d new transactions (%d duplicates skipped)\n",
			report.Saved, report.Duplicates)
	}

	return nil
}

func printTransactions(cmd *cobra.Command, transactions []model.Transaction) {
	for _, txn := range transactions {
		installment := ""
		if txn.Installment != nil {
			installment = fmt.Sprintf(" [%d/%d]", txn.Installment.Current, txn.Installment.Total)
		}
		cmd.Printf("%s  %-40.40s  R$ %10s  %-12s%s\n",
			txn.Date.Format("02/01/2006"),
			txn.Description,
			txn.Amount.StringFixed(2),
			txn.Category,
			installment)
	}
}
