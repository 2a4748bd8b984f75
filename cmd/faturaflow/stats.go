package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show statistics for stored transactions",
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, _ []string) error {
	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	stats, err := store.GetStatistics(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to compute statistics: %w", err)
	}

	cmd.Printf("Transactions: %d\n", stats.Total)
	cmd.Printf("Total amount: R$ %s\n", stats.TotalAmount.StringFixed(2))
	cmd.Printf("Installments: %d\n", stats.Installments)

	cmd.Println("\nBy source:")
	for source, count := range stats.BySource {
		cmd.Printf("  %-12s %d\n", source, count)
	}

	cmd.Println("\nBy category:")
	for category, count := range stats.ByCategory {
		cmd.Printf("  %-12s %d\n", category, count)
	}

	cmd.Println("\nBy origin:")
	for origin, count := range stats.ByOrigin {
		cmd.Printf("  %-20s %d\n", origin, count)
	}

	return nil
}
