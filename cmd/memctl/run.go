package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memarena/arena"
)

var (
	runFile     string
	runSize     string
	runPageSize int
	runStrict   bool
	runRelative bool
)

func init() {
	cmd := newRunCmd()
	cmd.Flags().StringVarP(&runFile, "file", "f", "", "Read operations from a script file ('-' for stdin)")
	cmd.Flags().StringVarP(&runSize, "size", "s", "", "Create the arena before the first operation (e.g. 4096, 4KiB)")
	cmd.Flags().IntVar(&runPageSize, "page-size", 0, "Round the arena to this page size (default: OS page size)")
	cmd.Flags().BoolVar(&runStrict, "strict", false, "Treat any failed operation without an expectation as a mismatch")
	cmd.Flags().BoolVar(&runRelative, "relative", false, "Print region offsets instead of addresses in dumps")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [ops...]",
		Short: "Run an allocation script against a fresh arena",
		Long: `The run command executes allocation operations in order against a new
arena and prints the result of each one.

Operations:
  init <size>          create the arena
  alloc <size>         allocate; the n-th successful allocation is #n
  fill <size>          allocate <size> until the arena is exhausted
  free <n>|@<off>|nil  free allocation #n, a payload offset, or nil
  dump                 print the block list
  check                verify the block chain
  stats                print allocator counters

An operation may end with "=> <outcome>" to state the expected result
(ok, out-of-memory, double-free, invalid-pointer, ...). The command fails
if any expectation is not met.

Example:
  memctl run --size 4KiB "alloc 600" "alloc 600" "free 1" dump
  memctl run -f script.txt --relative
  memctl run --size 4096 "free nil => invalid-pointer" --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(args)
		},
	}
	return cmd
}

func runScript(args []string) error {
	ops, err := loadOps(args)
	if err != nil {
		return err
	}
	if runSize != "" {
		ops = append([]op{{line: 0, verb: "init", arg: runSize}}, ops...)
	}
	if len(ops) == 0 {
		return fmt.Errorf("no operations given")
	}

	if !jsonOut {
		printVerbose("Running %d operations\n", len(ops))
	}

	opts := arena.DefaultOptions()
	opts.PageSize = runPageSize
	if verbose && opts.Trace == nil {
		opts.Trace = os.Stderr
	}

	s := newSession(opts)
	s.relative = runRelative
	mismatches, err := s.run(ops, runStrict)
	if err != nil {
		return err
	}

	if jsonOut {
		if err := printJSON(s.results); err != nil {
			return err
		}
	}
	if mismatches > 0 {
		return fmt.Errorf("%d of %d operations did not match", mismatches, len(ops))
	}
	return nil
}

// loadOps reads operations from --file and then from the arguments.
func loadOps(args []string) ([]op, error) {
	var ops []op
	if runFile != "" {
		f := os.Stdin
		if runFile != "-" {
			var err error
			f, err = os.Open(runFile)
			if err != nil {
				return nil, fmt.Errorf("failed to open script: %w", err)
			}
			defer f.Close()
		}
		fileOps, err := parseScript(f)
		if err != nil {
			return nil, err
		}
		ops = append(ops, fileOps...)
	}

	argOps, err := parseArgs(args)
	if err != nil {
		return nil, err
	}
	return append(ops, argOps...), nil
}
