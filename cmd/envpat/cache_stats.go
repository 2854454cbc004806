package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blockchaincommons/bc-envelope-pattern-go/pattern"
)

func newCacheStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cache-stats",
		Short: "Print the compiled-program cache's hit/miss counters",
		Long: "Print the compiled-program cache's hit/miss counters, and the names of " +
			"the built-in patterns available to `envpat run --pattern`.\n\n" +
			"Known patterns: " + strings.Join(patternNames(), ", "),
		RunE: func(cmd *cobra.Command, args []string) error {
			stats := pattern.Stats()
			fmt.Printf("hits:   %d\n", stats.Hits)
			fmt.Printf("misses: %d\n", stats.Misses)
			return nil
		},
	}
}
