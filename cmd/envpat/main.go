// Command envpat evaluates a named built-in pattern against a set of
// envelope fixture files and prints the resulting match paths, with
// optional audit-log persistence and diff-based regression comparison
// between two runs.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blockchaincommons/bc-envelope-pattern-go/internal/config"
)

func main() {
	cfg := config.Load()
	root := newRootCommand(cfg)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:   "envpat",
		Short: "Evaluate Gordian Envelope patterns against envelope fixtures",
	}

	root.AddCommand(newRunCommand(cfg))
	root.AddCommand(newCacheStatsCommand())

	return root
}
