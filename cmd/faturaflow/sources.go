package main

import (
	"github.com/spf13/cobra"

	"github.com/faturaflow/faturaflow/internal/grammar"
)

func sourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List supported statement sources",
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := grammar.DefaultRegistry()
			if err != nil {
				return err
			}
			for _, id := range registry.SourceIDs() {
				cmd.Println(id)
			}
			return nil
		},
	}
}
