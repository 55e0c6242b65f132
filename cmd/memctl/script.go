package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/joshuapare/memarena/arena"
)

// Script syntax, one operation per line:
//
//	init <size>          create the arena (size accepts 4096, 4KiB, 4k, ...)
//	alloc <size>         allocate; the n-th successful allocation is #n
//	fill <size>          allocate <size> until the arena is exhausted
//	free <n>|@<off>|nil  free allocation #n, a raw payload offset, or nil
//	dump                 print the block list
//	check                verify the chain invariants
//	stats                print allocator counters
//
// Any line may end with "=> <outcome>" where outcome is "ok" or an error
// name such as out-of-memory or double-free. Blank lines and lines starting
// with '#' are ignored.

var errScript = errors.New("script error")

// outcomes maps the names usable after "=>" to the errors they expect.
var outcomes = map[string]error{
	"ok":                    nil,
	"invalid-size":          arena.ErrInvalidSize,
	"already-initialized":   arena.ErrAlreadyInitialized,
	"not-initialized":       arena.ErrNotInitialized,
	"os-allocation-failure": arena.ErrOSAllocationFailure,
	"out-of-memory":         arena.ErrOutOfMemory,
	"invalid-pointer":       arena.ErrInvalidPointer,
	"double-free":           arena.ErrDoubleFree,
}

// verbArgs lists every verb and whether it takes an argument.
var verbArgs = map[string]bool{
	"init":  true,
	"alloc": true,
	"fill":  true,
	"free":  true,
	"dump":  false,
	"check": false,
	"stats": false,
}

// op is one parsed script line.
type op struct {
	line   int
	verb   string
	arg    string
	expect string // outcome name, empty when the line has no expectation
}

func (o op) String() string {
	s := o.verb
	if o.arg != "" {
		s += " " + o.arg
	}
	return s
}

// parseScript reads a script, one operation per line.
func parseScript(r io.Reader) ([]op, error) {
	var ops []op
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		o, ok, err := parseLine(line, sc.Text())
		if err != nil {
			return nil, err
		}
		if ok {
			ops = append(ops, o)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return ops, nil
}

// parseArgs treats each command-line argument as one script line.
func parseArgs(args []string) ([]op, error) {
	ops := make([]op, 0, len(args))
	for i, a := range args {
		o, ok, err := parseLine(i+1, a)
		if err != nil {
			return nil, err
		}
		if ok {
			ops = append(ops, o)
		}
	}
	return ops, nil
}

func parseLine(line int, text string) (op, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" || strings.HasPrefix(text, "#") {
		return op{}, false, nil
	}

	o := op{line: line}
	if body, expect, found := strings.Cut(text, "=>"); found {
		o.expect = strings.TrimSpace(expect)
		if _, known := outcomes[o.expect]; !known {
			return op{}, false, fmt.Errorf("%w: line %d: unknown outcome %q (want one of %s)",
				errScript, line, o.expect, strings.Join(outcomeNames(), ", "))
		}
		text = strings.TrimSpace(body)
	}

	fields := strings.Fields(text)
	if len(fields) == 0 {
		return op{}, false, fmt.Errorf("%w: line %d: missing operation", errScript, line)
	}
	o.verb = strings.ToLower(fields[0])
	takesArg, known := verbArgs[o.verb]
	if !known {
		return op{}, false, fmt.Errorf("%w: line %d: unknown operation %q", errScript, line, fields[0])
	}
	switch {
	case takesArg && len(fields) != 2:
		return op{}, false, fmt.Errorf("%w: line %d: %s takes exactly one argument", errScript, line, o.verb)
	case !takesArg && len(fields) != 1:
		return op{}, false, fmt.Errorf("%w: line %d: %s takes no argument", errScript, line, o.verb)
	}
	if takesArg {
		o.arg = fields[1]
	}
	return o, true, nil
}

// parseSize accepts plain byte counts, humanized sizes and negative integers
// (the latter so scripts can exercise invalid-size handling).
func parseSize(s string) (int, error) {
	if strings.HasPrefix(s, "-") {
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("%w: bad size %q", errScript, s)
		}
		return n, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("%w: bad size %q: %w", errScript, s, err)
	}
	if n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: size %q too large", errScript, s)
	}
	return int(n), nil
}

func outcomeNames() []string {
	names := make([]string, 0, len(outcomes))
	for name := range outcomes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// outcomeOf names the outcome an error represents.
func outcomeOf(err error) string {
	if err == nil {
		return "ok"
	}
	for name, want := range outcomes {
		if want != nil && errors.Is(err, want) {
			return name
		}
	}
	return "error"
}
