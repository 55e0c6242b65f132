package main

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memarena/arena"
)

//go:embed scenarios/*.txt
var scenarioFS embed.FS

var (
	scenarioDump     bool
	scenarioRelative bool
)

func init() {
	cmd := newScenarioCmd()
	cmd.Flags().BoolVar(&scenarioDump, "dump", false, "Print the block list after every step")
	cmd.Flags().BoolVar(&scenarioRelative, "relative", false, "Print region offsets instead of addresses in dumps")
	rootCmd.AddCommand(cmd)
}

func newScenarioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario [name...]",
		Short: "Run the built-in allocator scenarios",
		Long: `The scenario command runs built-in allocation scripts against a 4 KiB
arena and reports whether each behaved as expected. With no names, every
scenario runs.

Example:
  memctl scenario
  memctl scenario coalesce --dump
  memctl scenario --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarios(args)
		},
	}
	return cmd
}

// scenarioResult is the JSON form of one scenario run.
type scenarioResult struct {
	Name       string       `json:"name"`
	Passed     bool         `json:"passed"`
	Mismatches int          `json:"mismatches"`
	Steps      []stepResult `json:"steps"`
}

func scenarioNames() ([]string, error) {
	entries, err := scenarioFS.ReadDir("scenarios")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".txt"))
	}
	sort.Strings(names)
	return names, nil
}

func loadScenario(name string) ([]op, error) {
	f, err := scenarioFS.Open(path.Join("scenarios", name+".txt"))
	if err != nil {
		known, _ := scenarioNames()
		return nil, fmt.Errorf("unknown scenario %q (available: %s)", name, strings.Join(known, ", "))
	}
	defer f.Close()
	return parseScript(f)
}

// withDumps inserts a dump after every operation that changes the arena.
func withDumps(ops []op) []op {
	out := make([]op, 0, 2*len(ops))
	for _, o := range ops {
		out = append(out, o)
		switch o.verb {
		case "init", "alloc", "fill", "free":
			out = append(out, op{line: o.line, verb: "dump"})
		}
	}
	return out
}

func runScenarios(names []string) error {
	if len(names) == 0 {
		var err error
		if names, err = scenarioNames(); err != nil {
			return fmt.Errorf("failed to list scenarios: %w", err)
		}
	}

	var results []scenarioResult
	failed := 0
	for _, name := range names {
		ops, err := loadScenario(name)
		if err != nil {
			return err
		}
		if scenarioDump {
			ops = withDumps(ops)
		}

		if !jsonOut {
			printInfo("=== %s\n", name)
		}
		opts := arena.DefaultOptions()
		opts.PageSize = 4096
		s := newSession(opts)
		s.relative = scenarioRelative
		// Every failure in a scenario must be announced by an expectation.
		mismatches, err := s.run(ops, true)
		if err != nil {
			return fmt.Errorf("scenario %s: %w", name, err)
		}

		res := scenarioResult{Name: name, Passed: mismatches == 0, Mismatches: mismatches, Steps: s.results}
		results = append(results, res)
		switch {
		case !res.Passed:
			failed++
			if !jsonOut {
				printInfo("--- FAIL %s (%d mismatches)\n", name, mismatches)
			}
		case !jsonOut:
			printInfo("--- PASS %s\n", name)
		}
	}

	if jsonOut {
		if err := printJSON(results); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(names))
	}
	return nil
}
