// Package dump renders a nupy memory.RAM as a human-readable debug
// listing, grounded on
// _examples/original_source/ram/ram.c's ram_print, extended with
// dustin/go-humanize for the capacity/count/footprint figures
// ram_print prints as bare integers. This output is debug-only, gated
// behind the CLI's --dump-memory flag, and is never part of the
// diagnostic or print streams spec.md's format contract covers.
package dump

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"nupy/internal/memory"
	"nupy/internal/value"
)

// Print writes a ram_print-equivalent listing of r to w.
func Print(w io.Writer, r *memory.RAM) {
	fmt.Fprintln(w, "**MEMORY PRINT**")
	fmt.Fprintf(w, "capacity: %s\n", humanize.Comma(int64(r.Capacity())))
	fmt.Fprintf(w, "num_values: %s\n", humanize.Comma(int64(r.Count())))
	fmt.Fprintf(w, "approx size: %s\n", humanize.Bytes(uint64(footprint(r))))
	for i := 0; i < r.Count(); i++ {
		name, v, _ := r.Cell(i)
		fmt.Fprintf(w, "  [%d] %s = %s (%s)\n", i, name, v.Print(), v.Tag)
	}
	fmt.Fprintln(w, "**END PRINT**")
}

// footprint estimates the RAM's in-memory size: a fixed per-cell
// overhead plus the length of any Str payload, since that is the only
// variable-sized field a cell carries.
func footprint(r *memory.RAM) uint64 {
	const perCell = 48
	var total uint64
	for i := 0; i < r.Count(); i++ {
		_, v, _ := r.Cell(i)
		total += perCell
		if v.Tag == value.Str {
			total += uint64(len(v.S))
		}
	}
	return total
}
