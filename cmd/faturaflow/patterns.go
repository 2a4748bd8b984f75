package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func patternsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "List learned category patterns",
		RunE:  runPatterns,
	}

	cmd.Flags().Int("limit", 100, "maximum patterns to show")

	return cmd
}

func runPatterns(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	patterns, err := store.ListPatterns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to list patterns: %w", err)
	}

	if len(patterns) == 0 {
		cmd.Println("No learned patterns yet")
		return nil
	}

	for _, p := range patterns {
		cmd.Printf("%-50.50s  %-12s  used %3d  last %s\n",
			p.NormalizedDescription,
			p.Category,
			p.UsageCount,
			p.LastUsedAt.Format("2006-01-02"))
	}
	return nil
}
