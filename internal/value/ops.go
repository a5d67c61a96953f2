package value

import "math"

// Operator identifies a binary operator reaching the dispatcher. NoOp
// must never reach BinaryOp — its presence there is an internal error,
// matching the source's OPERATOR_NO_OP assertion.
type Operator int

const (
	NoOp Operator = iota
	Plus
	Minus
	Asterisk
	Power
	Mod
	Div
	Equal
	NotEqual
	LT
	LTE
	GT
	GTE
)

func (op Operator) isRelational() bool {
	switch op {
	case Equal, NotEqual, LT, LTE, GT, GTE:
		return true
	}
	return false
}

// OpError reports that an operator could not be applied to the given
// operand types. It carries no line number — the evaluator attaches
// that when it renders spec.md's diagnostic text.
type OpError struct {
	Op       Operator
	LHS, RHS Type
}

func (e *OpError) Error() string {
	return "invalid operand types"
}

// errBadOperator reports NoOp or an unrecognized code reaching
// the dispatcher (spec.md §4.2's "NO_OP must never reach the dispatcher").
type errBadOperator struct{ Op Operator }

func (e *errBadOperator) Error() string { return "invalid operator type" }

// BinaryOp applies op to lhs and rhs per the type-promotion table in
// spec.md §4.2, grounded line-for-line on
// _examples/original_source/execute/executor/execute.c's calculate() and
// calc_rel_operator(). It returns the result Value, or an error —
// *OpError for a type mismatch, *DivByZeroError for integer division or
// modulo by zero, or *errBadOperator for an invalid op code.
func BinaryOp(lhs Value, op Operator, rhs Value) (Value, error) {
	if op == NoOp {
		return Value{}, &errBadOperator{Op: op}
	}
	if op.isRelational() {
		return relational(lhs, op, rhs)
	}
	switch op {
	case Plus:
		return arithmeticPlus(lhs, rhs)
	case Minus:
		return arithmetic(lhs, rhs, func(a, b float64) float64 { return a - b }, func(a, b int64) int64 { return a - b })
	case Asterisk:
		return arithmetic(lhs, rhs, func(a, b float64) float64 { return a * b }, func(a, b int64) int64 { return a * b })
	case Div:
		return divide(lhs, rhs)
	case Mod:
		return modulo(lhs, rhs)
	case Power:
		return power(lhs, rhs)
	default:
		return Value{}, &errBadOperator{Op: op}
	}
}

// numericPair reports whether lhs/rhs are both numeric (Int/Real, in any
// combination) and whether the result should be Real (true) or Int
// (false when both operands are Int).
func numericPair(lhs, rhs Value) (real bool, ok bool) {
	switch {
	case lhs.Tag == Int && rhs.Tag == Int:
		return false, true
	case lhs.Tag == Real && rhs.Tag == Real:
		return true, true
	case lhs.Tag == Int && rhs.Tag == Real:
		return true, true
	case lhs.Tag == Real && rhs.Tag == Int:
		return true, true
	default:
		return false, false
	}
}

func asFloat(v Value) float64 {
	if v.Tag == Int {
		return float64(v.I)
	}
	return v.D
}

func arithmeticPlus(lhs, rhs Value) (Value, error) {
	if lhs.Tag == Str && rhs.Tag == Str {
		return NewStr(lhs.S + rhs.S), nil
	}
	return arithmetic(lhs, rhs, func(a, b float64) float64 { return a + b }, func(a, b int64) int64 { return a + b })
}

func arithmetic(lhs, rhs Value, realOp func(a, b float64) float64, intOp func(a, b int64) int64) (Value, error) {
	isReal, ok := numericPair(lhs, rhs)
	if !ok {
		return Value{}, &OpError{LHS: lhs.Tag, RHS: rhs.Tag}
	}
	if !isReal {
		return NewInt(intOp(lhs.I, rhs.I)), nil
	}
	return NewReal(realOp(asFloat(lhs), asFloat(rhs))), nil
}

func divide(lhs, rhs Value) (Value, error) {
	isReal, ok := numericPair(lhs, rhs)
	if !ok {
		return Value{}, &OpError{LHS: lhs.Tag, RHS: rhs.Tag}
	}
	if !isReal {
		if rhs.I == 0 {
			return Value{}, &DivByZeroError{}
		}
		return NewInt(lhs.I / rhs.I), nil
	}
	return NewReal(asFloat(lhs) / asFloat(rhs)), nil
}

// DivByZeroError reports integer division by zero. Real division
// instead follows IEEE-754 and produces Inf/NaN (spec.md §4.2).
type DivByZeroError struct{}

func (e *DivByZeroError) Error() string { return "invalid operand types" }

func modulo(lhs, rhs Value) (Value, error) {
	isReal, ok := numericPair(lhs, rhs)
	if !ok {
		return Value{}, &OpError{LHS: lhs.Tag, RHS: rhs.Tag}
	}
	if !isReal {
		if rhs.I == 0 {
			return Value{}, &DivByZeroError{}
		}
		return NewInt(lhs.I % rhs.I), nil
	}
	return NewReal(math.Mod(asFloat(lhs), asFloat(rhs))), nil
}

func power(lhs, rhs Value) (Value, error) {
	isReal, ok := numericPair(lhs, rhs)
	if !ok {
		return Value{}, &OpError{LHS: lhs.Tag, RHS: rhs.Tag}
	}
	result := math.Pow(asFloat(lhs), asFloat(rhs))
	if !isReal {
		return NewInt(int64(result)), nil
	}
	return NewReal(result), nil
}

func relational(lhs Value, op Operator, rhs Value) (Value, error) {
	var cmp int
	switch {
	case lhs.Tag == Int && rhs.Tag == Int:
		cmp = compareFloat(float64(lhs.I), float64(rhs.I))
	case lhs.Tag == Real && rhs.Tag == Real:
		cmp = compareFloat(lhs.D, rhs.D)
	case lhs.Tag == Int && rhs.Tag == Real:
		cmp = compareFloat(float64(lhs.I), rhs.D)
	case lhs.Tag == Real && rhs.Tag == Int:
		cmp = compareFloat(lhs.D, float64(rhs.I))
	case lhs.Tag == Str && rhs.Tag == Str:
		cmp = compareStr(lhs.S, rhs.S)
	default:
		return Value{}, &OpError{LHS: lhs.Tag, RHS: rhs.Tag}
	}
	switch op {
	case Equal:
		return NewBool(cmp == 0), nil
	case NotEqual:
		return NewBool(cmp != 0), nil
	case LT:
		return NewBool(cmp < 0), nil
	case LTE:
		return NewBool(cmp <= 0), nil
	case GT:
		return NewBool(cmp > 0), nil
	case GTE:
		return NewBool(cmp >= 0), nil
	default:
		return Value{}, &errBadOperator{Op: op}
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareStr(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
