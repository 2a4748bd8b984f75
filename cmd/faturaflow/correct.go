package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/faturaflow/faturaflow/internal/classify"
	"github.com/faturaflow/faturaflow/internal/model"
)

func correctCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "correct <fingerprint> <category>",
		Short: "Correct a transaction's category and learn from it",
		Long: `Reassign the category of a stored transaction. The correction is also
recorded as a learned pattern so future statements with similar
descriptions classify automatically.

Categories: ` + strings.Join(model.Categories, ", "),
		Args: cobra.ExactArgs(2),
		RunE: runCorrect,
	}
}

func runCorrect(cmd *cobra.Command, args []string) error {
	fingerprint, category := args[0], args[1]

	if !model.ValidCategory(category) {
		return fmt.Errorf("unknown category %q (want one of: %s)",
			category, strings.Join(model.Categories, ", "))
	}

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	txn, err := store.GetTransactionByFingerprint(cmd.Context(), fingerprint)
	if err != nil {
		return err
	}

	if err := store.UpdateTransactionCategory(cmd.Context(), fingerprint, category); err != nil {
		return err
	}

	matcher := classify.NewMatcher(store)
	pattern, err := matcher.RecordCorrection(cmd.Context(), txn.Description, category)
	if err != nil {
		return fmt.Errorf("category updated but correction not learned: %w", err)
	}

	cmd.Printf("%s -> %s (pattern %q seen %d time(s))\n",
		txn.Description, category, pattern.NormalizedDescription, pattern.UsageCount)
	return nil
}
