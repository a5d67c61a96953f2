// Package value implements nupy's tagged-union runtime value and its
// binary-operator promotion rules.
package value

import "fmt"

// Type tags the variant carried by a Value. A Value never carries a
// payload for a tag other than its own.
type Type int

const (
	None Type = iota
	Int
	Real
	Str
	Bool
	Ptr
)

func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case Int:
		return "int"
	case Real:
		return "real"
	case Str:
		return "str"
	case Bool:
		return "boolean"
	case Ptr:
		return "ptr"
	default:
		return "unknown"
	}
}

// Value is the tagged union nupy's evaluator and memory pass around by
// value. Only the field matching Tag is meaningful. Str is plain Go
// string data — immutable and safe to share, so copying a Value by
// assignment already gives the "independent copy" semantics spec.md's
// Memory contract requires; no separate clone step is needed.
type Value struct {
	Tag  Type
	I    int64
	D    float64
	S    string
	Bool bool
}

// NewNone returns the None value.
func NewNone() Value { return Value{Tag: None} }

// NewInt returns an Int value.
func NewInt(i int64) Value { return Value{Tag: Int, I: i} }

// NewReal returns a Real value.
func NewReal(d float64) Value { return Value{Tag: Real, D: d} }

// NewStr returns a Str value.
func NewStr(s string) Value { return Value{Tag: Str, S: s} }

// NewBool returns a Bool value.
func NewBool(b bool) Value { return Value{Tag: Bool, Bool: b} }

// NewPtr returns a reserved Ptr value. The evaluator never produces one;
// memory's image format recognizes the tag so an image load can
// round-trip it.
func NewPtr(addr int64) Value { return Value{Tag: Ptr, I: addr} }

// Truthy reports whether v should drive a while-loop body to execute.
// Per spec.md §4.3.1 this is "1 = continue, 0 = stop": a nonzero Int or
// a true Bool continues, everything else stops.
func (v Value) Truthy() bool {
	switch v.Tag {
	case Bool:
		return v.Bool
	case Int:
		return v.I != 0
	default:
		return false
	}
}

// Equal reports structural equality, used by the testable round-trip
// and idempotence properties in spec.md §8. Str compares by content.
func (v Value) Equal(other Value) bool {
	if v.Tag != other.Tag {
		return false
	}
	switch v.Tag {
	case None:
		return true
	case Int, Ptr:
		return v.I == other.I
	case Real:
		return v.D == other.D
	case Str:
		return v.S == other.S
	case Bool:
		return v.Bool == other.Bool
	default:
		return false
	}
}

// Print renders v the way nupy's print statement does: Int in decimal,
// Real with six fractional digits (the source's "%lf" default), Str raw,
// Bool as the token True/False, None as the literal None.
func (v Value) Print() string {
	switch v.Tag {
	case Int:
		return fmt.Sprintf("%d", v.I)
	case Real:
		return fmt.Sprintf("%f", v.D)
	case Str:
		return v.S
	case Bool:
		if v.Bool {
			return "True"
		}
		return "False"
	case Ptr:
		return fmt.Sprintf("%d", v.I)
	default:
		return "None"
	}
}
