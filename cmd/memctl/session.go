package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/memarena/arena"
)

// stepResult records what one script operation did.
type stepResult struct {
	Line    int           `json:"line"`
	Op      string        `json:"op"`
	Outcome string        `json:"outcome"`
	Error   string        `json:"error,omitempty"`
	Ref     arena.Ref     `json:"ref,omitempty"`
	Bytes   int           `json:"bytes,omitempty"`
	Count   int           `json:"count,omitempty"`
	Report  *arena.Report `json:"report,omitempty"`
	Stats   *arena.Stats  `json:"stats,omitempty"`
}

// session runs script operations against one arena.
type session struct {
	opts arena.Options
	a    *arena.Arena

	// refs holds every successful allocation; "free n" releases refs[n-1].
	refs []arena.Ref

	results []stepResult

	// relative prints region offsets instead of addresses in dumps.
	relative bool
}

func newSession(opts arena.Options) *session {
	return &session{opts: opts}
}

// run executes ops in order. Operations whose outcome differs from their
// "=>" expectation are counted as mismatches; with strict set, any failed
// operation without an expectation counts as well. Script errors abort.
func (s *session) run(ops []op, strict bool) (mismatches int, err error) {
	for _, o := range ops {
		res, opErr := s.exec(o)
		if errors.Is(opErr, errScript) {
			return mismatches, opErr
		}

		res.Line = o.line
		res.Op = o.String()
		res.Outcome = outcomeOf(opErr)
		if opErr != nil {
			res.Error = opErr.Error()
		}
		s.results = append(s.results, res)

		switch {
		case o.expect != "" && o.expect != res.Outcome:
			mismatches++
			printError("line %d: %s: got %s, want %s\n", o.line, o, res.Outcome, o.expect)
		case o.expect == "" && opErr != nil && strict:
			mismatches++
			printError("line %d: %s: %v\n", o.line, o, opErr)
		}
		s.report(o, res)
	}
	return mismatches, nil
}

func (s *session) exec(o op) (stepResult, error) {
	var res stepResult

	if o.verb == "init" {
		size, err := parseSize(o.arg)
		if err != nil {
			return res, err
		}
		if s.a != nil {
			return res, arena.ErrAlreadyInitialized
		}
		a, err := arena.New(size, &s.opts)
		if err != nil {
			return res, err
		}
		s.a = a
		res.Bytes = a.Size()
		return res, nil
	}

	if s.a == nil {
		return res, arena.ErrNotInitialized
	}

	switch o.verb {
	case "alloc":
		size, err := parseSize(o.arg)
		if err != nil {
			return res, err
		}
		ref, buf, err := s.a.Alloc(size)
		if err != nil {
			return res, err
		}
		s.refs = append(s.refs, ref)
		res.Ref, res.Bytes, res.Count = ref, len(buf), len(s.refs)
		return res, nil

	case "fill":
		size, err := parseSize(o.arg)
		if err != nil {
			return res, err
		}
		for {
			ref, _, err := s.a.Alloc(size)
			if errors.Is(err, arena.ErrOutOfMemory) {
				return res, nil
			}
			if err != nil {
				return res, err
			}
			s.refs = append(s.refs, ref)
			res.Count++
		}

	case "free":
		ref, err := s.target(o)
		if err != nil {
			return res, err
		}
		res.Ref = ref
		return res, s.a.Free(ref)

	case "dump":
		r := s.a.Inspect()
		res.Report = &r
		return res, nil

	case "check":
		return res, s.a.Check()

	case "stats":
		st := s.a.Stats()
		res.Stats = &st
		r := s.a.Inspect()
		res.Report = &r
		return res, nil
	}
	return res, fmt.Errorf("%w: line %d: unhandled operation %q", errScript, o.line, o.verb)
}

// target resolves the argument of a free operation.
func (s *session) target(o op) (arena.Ref, error) {
	switch {
	case o.arg == "nil":
		return arena.NilRef, nil
	case strings.HasPrefix(o.arg, "@"):
		off, err := strconv.ParseUint(o.arg[1:], 0, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: line %d: bad offset %q", errScript, o.line, o.arg)
		}
		return arena.Ref(off), nil
	default:
		n, err := strconv.Atoi(strings.TrimPrefix(o.arg, "#"))
		if err != nil {
			return 0, fmt.Errorf("%w: line %d: bad allocation number %q", errScript, o.line, o.arg)
		}
		if n < 1 || n > len(s.refs) {
			return 0, fmt.Errorf("%w: line %d: allocation #%d does not exist (%d made)",
				errScript, o.line, n, len(s.refs))
		}
		return s.refs[n-1], nil
	}
}

// report prints one step in text mode. JSON output is written once at the end.
func (s *session) report(o op, res stepResult) {
	if jsonOut {
		return
	}

	if res.Error != "" {
		printInfo("%-16s -> %s\n", o, res.Error)
		return
	}
	switch o.verb {
	case "alloc":
		printInfo("%-16s -> ref %d (#%d, %d bytes)\n", o, res.Ref, res.Count, res.Bytes)
		return
	case "fill":
		printInfo("%-16s -> %d allocations until exhausted\n", o, res.Count)
		return
	case "init":
		printInfo("%-16s -> region of %d bytes\n", o, res.Bytes)
		return
	case "dump":
		if quiet {
			return
		}
		if err := s.a.Dump(os.Stdout, arena.DumpOptions{Format: arena.FormatText, Relative: s.relative}); err != nil {
			printError("dump: %v\n", err)
		}
		return
	case "stats":
		printStats(*res.Stats, *res.Report)
		return
	}
	printInfo("%-16s -> %s\n", o, res.Outcome)
}

// printStats writes counters with grouped digits and humanized byte counts.
func printStats(st arena.Stats, r arena.Report) {
	p := message.NewPrinter(language.English)
	bytesOf := func(n int) string {
		return p.Sprintf("%d B (%s)", n, humanize.IBytes(uint64(n)))
	}

	printInfo("%s", p.Sprintf("blocks:        %d (%d busy, %d free)\n",
		len(r.Blocks), r.BusyBlocks(), len(r.Blocks)-r.BusyBlocks()))
	printInfo("busy:          %s\n", bytesOf(r.BusyBytes))
	printInfo("free:          %s\n", bytesOf(r.FreeBytes))
	printInfo("largest free:  %s\n", bytesOf(r.LargestFree()))
	printInfo("%s", p.Sprintf("allocs:        %d (%d failed, %d split, %d exact, %d whole)\n",
		st.AllocCalls, st.AllocFailures, st.SplitCount, st.ExactFits, st.WholeBlocks))
	printInfo("%s", p.Sprintf("frees:         %d (%d failed, %d backward merges, %d forward merges)\n",
		st.FreeCalls, st.FreeFailures, st.CoalesceBackward, st.CoalesceForward))
	printVerbose("handed out:    %s\n", humanize.IBytes(uint64(st.BytesAllocated)))
	printVerbose("returned:      %s\n", humanize.IBytes(uint64(st.BytesFreed)))
}
