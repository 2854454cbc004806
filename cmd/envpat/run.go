package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/blockchaincommons/bc-envelope-pattern-go/audit"
	"github.com/blockchaincommons/bc-envelope-pattern-go/internal/config"
	"github.com/blockchaincommons/bc-envelope-pattern-go/internal/fixture"
	"github.com/blockchaincommons/bc-envelope-pattern-go/path"
	"github.com/blockchaincommons/bc-envelope-pattern-go/pattern"
)

func newRunCommand(cfg *config.Config) *cobra.Command {
	var (
		patternName string
		glob        string
		diffAgainst string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate a named pattern against every fixture matching a glob",
		RunE: func(cmd *cobra.Command, args []string) error {
			if glob == "" {
				glob = cfg.FixtureGlob
			}
			pat, err := resolvePattern(patternName)
			if err != nil {
				return err
			}

			files, err := doublestar.FilepathGlob(glob)
			if err != nil {
				return fmt.Errorf("invalid glob %q: %w", glob, err)
			}
			sort.Strings(files)
			if len(files) == 0 {
				return fmt.Errorf("no fixture files matched %q", glob)
			}

			var log *audit.Log
			if cfg.AuditDBPath != "" {
				log, err = audit.Open(cfg.AuditDBPath, cfg.Debug)
				if err != nil {
					return err
				}
				defer log.Close()
			}

			report, err := runOverFixtures(files, pat, log, cfg.ThreadLimit)
			if err != nil {
				return err
			}

			if diffAgainst != "" {
				baseline, err := os.ReadFile(diffAgainst)
				if err != nil {
					return fmt.Errorf("failed to read baseline %q: %w", diffAgainst, err)
				}
				return printDiff(string(baseline), report)
			}

			fmt.Print(report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&patternName, "pattern", "p", "any", "name of a built-in pattern (see cache-stats --help for the list)")
	cmd.Flags().StringVarP(&glob, "glob", "g", "", "doublestar glob of envelope fixture files (default from config)")
	cmd.Flags().StringVar(&diffAgainst, "diff-against", "", "path to a previously saved run's output, to diff against this run")

	return cmd
}

// runOverFixtures evaluates pat against every fixture file, returning a
// deterministic text report: one line per fixture, one indented line per
// matched path.
func runOverFixtures(files []string, pat pattern.Pattern, log *audit.Log, threadLimit int) (string, error) {
	var b strings.Builder
	for _, f := range files {
		e, err := fixture.Load(f)
		if err != nil {
			return "", fmt.Errorf("%s: %w", f, err)
		}

		var paths []path.Path
		if log != nil {
			paths, err = log.Record(pat, e)
			if err != nil {
				return "", fmt.Errorf("%s: %w", f, err)
			}
		} else {
			paths, err = pat.PathsLimited(e, threadLimit)
			if err != nil {
				return "", fmt.Errorf("%s: %w", f, err)
			}
		}

		fmt.Fprintf(&b, "%s: %d match(es)\n", f, len(paths))
		for _, p := range paths {
			fmt.Fprintf(&b, "  %s\n", formatPath(p))
		}
	}
	return b.String(), nil
}

func printDiff(before, after string) error {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "baseline",
		ToFile:   "current",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return err
	}
	fmt.Print(text)
	return nil
}

func formatPath(p path.Path) string {
	parts := make([]string, len(p))
	for i, e := range p {
		parts[i] = e.Digest().Hex()[:12]
	}
	return strings.Join(parts, " -> ")
}
