// Package memory implements nupy's RAM: a flat, name-keyed, ordered
// store of variables, grounded on _examples/original_source/ram/ram.c.
//
// The source manages its own array with manual malloc/realloc and frees
// a Str payload's owned copy before overwriting it. Go's allocator and
// GC make the free half of that contract moot; this package keeps the
// rest of the contract — ordered insertion, stable per-name addresses,
// geometric growth from an initial capacity of 4, and read_* returning
// an independent copy — because those are the testable properties
// spec.md §8 describes, not an artifact of manual memory management.
package memory

import "nupy/internal/value"

const initialCapacity = 4

type cell struct {
	name  string
	value value.Value
}

// RAM is nupy's flat variable store.
type RAM struct {
	cells []cell
}

// New returns an empty RAM with the source's initial capacity of 4.
func New() *RAM {
	r := &RAM{}
	r.cells = make([]cell, 0, initialCapacity)
	return r
}

// Capacity reports the current backing capacity, exposed for the
// boundary-behavior tests in spec.md §8 (growth at 4, 5, 9 insertions).
func (r *RAM) Capacity() int { return cap(r.cells) }

// Count reports the number of cells currently in use.
func (r *RAM) Count() int { return len(r.cells) }

// GetAddr returns the address of name, or -1 if it has never been
// written. Linear scan, first match wins — ram_get_addr in the source.
func (r *RAM) GetAddr(name string) int {
	for i := range r.cells {
		if r.cells[i].name == name {
			return i
		}
	}
	return -1
}

// ReadByAddr returns an independent copy of the value at addr, and
// whether addr was valid. ram_read_cell_by_addr in the source.
func (r *RAM) ReadByAddr(addr int) (value.Value, bool) {
	if addr < 0 || addr >= len(r.cells) {
		return value.Value{}, false
	}
	return r.cells[addr].value, true
}

// ReadByName returns an independent copy of name's value, and whether
// name exists. ram_read_cell_by_name in the source.
func (r *RAM) ReadByName(name string) (value.Value, bool) {
	addr := r.GetAddr(name)
	if addr == -1 {
		return value.Value{}, false
	}
	return r.cells[addr].value, true
}

// WriteByAddr overwrites the value at an existing cell. It fails if
// addr is out of range — there is no such thing as writing to an
// unallocated address by index, unlike WriteByName which appends.
// ram_write_cell_by_addr in the source.
func (r *RAM) WriteByAddr(addr int, v value.Value) bool {
	if addr < 0 || addr >= len(r.cells) {
		return false
	}
	r.cells[addr].value = v
	return true
}

// WriteByName overwrites name's value if it exists, or appends a new
// cell (growing capacity geometrically if needed). Always succeeds.
// ram_write_cell_by_name in the source.
func (r *RAM) WriteByName(name string, v value.Value) bool {
	if addr := r.GetAddr(name); addr != -1 {
		return r.WriteByAddr(addr, v)
	}
	r.cells = append(r.cells, cell{name: name, value: v})
	return true
}

// Names returns cell names in insertion (address) order, used by the
// debug dump in internal/dump and by ram_print-equivalent output.
func (r *RAM) Names() []string {
	names := make([]string, len(r.cells))
	for i := range r.cells {
		names[i] = r.cells[i].name
	}
	return names
}

// Cell reports the (name, value) pair at addr, for dump formatting.
func (r *RAM) Cell(addr int) (name string, v value.Value, ok bool) {
	if addr < 0 || addr >= len(r.cells) {
		return "", value.Value{}, false
	}
	return r.cells[addr].name, r.cells[addr].value, true
}
