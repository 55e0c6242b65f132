package arena

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Format specifies the output format of Dump.
type Format string

const (
	// FormatText outputs the tab-separated block table.
	FormatText Format = "text"

	// FormatJSON outputs the Report as indented JSON.
	FormatJSON Format = "json"
)

// DumpOptions controls Dump output.
type DumpOptions struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// Relative prints region offsets instead of absolute addresses
	// (text format only). Useful for output that must be reproducible.
	// Default: false
	Relative bool
}

// DefaultDumpOptions returns the options used by the package-level Dump.
func DefaultDumpOptions() DumpOptions {
	return DumpOptions{Format: FormatText}
}

var (
	dumpBanner = strings.Repeat("*", 81)
	dumpRule   = strings.Repeat("-", 81)
)

// Dump writes a listing of every block followed by the Busy, Free and
// total byte counts. It does not modify the arena.
func (a *Arena) Dump(w io.Writer, opts DumpOptions) error {
	r := a.Inspect()
	switch opts.Format {
	case FormatJSON:
		return dumpJSON(w, r)
	case FormatText, "":
		return dumpText(w, r, opts)
	default:
		return fmt.Errorf("arena: unknown dump format %q", opts.Format)
	}
}

func dumpText(w io.Writer, r Report, opts DumpOptions) error {
	addr := func(off int) uint64 {
		if opts.Relative {
			return uint64(off)
		}
		return uint64(r.Base) + uint64(off)
	}

	var sb strings.Builder
	sb.WriteString("************************************Block list***********************************\n")
	sb.WriteString("No.\tStatus\tBegin\t\tEnd\t\tSize\tt_Size\tt_Begin\n")
	sb.WriteString(dumpRule + "\n")
	for _, b := range r.Blocks {
		fmt.Fprintf(&sb, "%d\t%s\t0x%08x\t0x%08x\t%d\t%d\t0x%08x\n",
			b.Index, b.Status, addr(b.Begin), addr(b.End), b.Size, b.Total, addr(b.Header))
	}
	sb.WriteString(dumpRule + "\n")
	sb.WriteString(dumpBanner + "\n")
	fmt.Fprintf(&sb, "Total busy size = %d\n", r.BusyBytes)
	fmt.Fprintf(&sb, "Total free size = %d\n", r.FreeBytes)
	fmt.Fprintf(&sb, "Total size = %d\n", r.TotalBytes)
	sb.WriteString(dumpBanner + "\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func dumpJSON(w io.Writer, r Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}
