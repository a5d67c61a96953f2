// Package evaluator walks nupy's statement graph against a memory.RAM,
// grounded line-for-line on
// _examples/original_source/execute/executor/execute.c's execute(),
// execute_assignment(), execute_get_value(), execute_function_call(),
// input_function(), int_function(), and float_function().
package evaluator

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"nupy/internal/errors"
	"nupy/internal/memory"
	"nupy/internal/parser"
	"nupy/internal/value"
)

// Hook observes evaluation as it happens, so an optional debug front end
// (internal/netdebug) can broadcast statement boundaries, print output,
// and diagnostics without the evaluator itself knowing anything about
// websockets. A nil Hook is the default and costs nothing.
type Hook interface {
	Statement(stmt *parser.Stmt)
	Printed(line string)
	Failed(err error)
}

// Evaluator holds the I/O streams execute_function_call and
// input_function read from and write to, plus an optional Hook.
type Evaluator struct {
	Out  io.Writer
	In   *bufio.Reader
	Hook Hook
}

// New returns an Evaluator reading input() lines from in and writing
// print() output to out.
func New(out io.Writer, in io.Reader) *Evaluator {
	return &Evaluator{Out: out, In: bufio.NewReader(in)}
}

// Execute walks the statement graph starting at stmt, applying each
// statement's effect to mem. It stops at the first error, after printing
// the diagnostic to Out — matching execute()'s "print and stop" control
// flow rather than propagating a Go error up through a long call chain.
// The returned error is non-nil exactly when execution stopped early;
// callers that only care about side effects (the CLI) can ignore it.
func (e *Evaluator) Execute(stmt *parser.Stmt, mem *memory.RAM) error {
	for stmt != nil {
		if e.Hook != nil {
			e.Hook.Statement(stmt)
		}
		switch stmt.Kind {
		case parser.StmtAssignment:
			if err := e.execAssignment(stmt, mem); err != nil {
				return e.fail(err)
			}
			stmt = stmt.Next
		case parser.StmtCall:
			if err := e.execPrint(stmt, mem); err != nil {
				return e.fail(err)
			}
			stmt = stmt.Next
		case parser.StmtWhile:
			cond, err := e.evalExpr(stmt.While.Condition, mem)
			if err != nil {
				return e.fail(err)
			}
			if !cond.Truthy() {
				stmt = stmt.Next
				continue
			}
			// A truthy condition executes the body once and then stops
			// the whole walk, rather than looping back to re-test the
			// condition — execute()'s STMT_WHILE_LOOP case calls
			// execute() recursively on the body and returns
			// unconditionally afterward, never re-entering the while.
			return e.Execute(stmt.While.Body, mem)
		case parser.StmtPass, parser.StmtIf:
			// IfStmt is parsed for grammar compatibility but never
			// executed, same as Pass.
			stmt = stmt.Next
		default:
			stmt = stmt.Next
		}
	}
	return nil
}

func (e *Evaluator) fail(err error) error {
	if _, silent := err.(errSilent); silent {
		return err
	}
	fmt.Fprintln(e.Out, err.Error())
	if e.Hook != nil {
		e.Hook.Failed(err)
	}
	return err
}

func (e *Evaluator) execAssignment(stmt *parser.Stmt, mem *memory.RAM) error {
	assign := stmt.Assignment
	if assign.RHSExpr != nil {
		v, err := e.evalExpr(assign.RHSExpr, mem)
		if err != nil {
			return err
		}
		mem.WriteByName(assign.VarName, v)
		return nil
	}
	return e.execBuiltinCall(stmt.Line, assign, mem)
}

func (e *Evaluator) execBuiltinCall(line int, assign *parser.Assignment, mem *memory.RAM) error {
	call := assign.RHSCall
	switch call.Name {
	case "input":
		return e.execInput(line, assign.VarName, call, mem)
	case "int":
		return e.execIntConv(line, assign.VarName, call, mem)
	case "float":
		return e.execFloatConv(line, assign.VarName, call, mem)
	default:
		return errors.FunctionName(line)
	}
}

// execInput mirrors input_function: print the prompt (no trailing
// newline, a single space after it), read one line, strip its line
// ending, and store it as a Str.
func (e *Evaluator) execInput(line int, varName string, call *parser.Call, mem *memory.RAM) error {
	prompt := ""
	if call.Parameter != nil && call.Parameter.Type == parser.ElementStrLiteral {
		prompt = call.Parameter.Value
	}
	fmt.Fprintf(e.Out, "%s ", prompt)
	text, _ := e.In.ReadString('\n')
	text = strings.TrimRight(text, "\r\n")
	mem.WriteByName(varName, value.NewStr(text))
	return nil
}

// execIntConv mirrors int_function: read the named cell's Str
// payload, and apply the source's is_zero_string / atoi fallback
// chain. Reading a cell that does not exist fails silently — the
// source's ram_read_cell_by_name returns NULL there and int_function
// simply returns false without printing a diagnostic, so there is no
// SemanticError to report here; this is a deliberate preserved quirk,
// not an oversight.
func (e *Evaluator) execIntConv(line int, varName string, call *parser.Call, mem *memory.RAM) error {
	raw, ok := lookupParam(call, mem)
	if !ok {
		return errSilent{}
	}
	s := raw.S
	if isZeroString(s, false) {
		mem.WriteByName(varName, value.NewInt(0))
		return nil
	}
	if n := looseAtoi(s); n != 0 {
		mem.WriteByName(varName, value.NewInt(n))
		return nil
	}
	return errors.IntConversion(line)
}

// execFloatConv mirrors float_function: same shape as execIntConv, but
// is_zero_string also accepts '.'.
func (e *Evaluator) execFloatConv(line int, varName string, call *parser.Call, mem *memory.RAM) error {
	raw, ok := lookupParam(call, mem)
	if !ok {
		return errSilent{}
	}
	s := raw.S
	if isZeroString(s, true) {
		mem.WriteByName(varName, value.NewReal(0))
		return nil
	}
	if f := looseAtof(s); f != 0 {
		mem.WriteByName(varName, value.NewReal(f))
		return nil
	}
	return errors.FloatConversion(line)
}

// lookupParam resolves int()/float()'s single identifier parameter
// against mem, matching execute_assignment's VALUE_FUNCTION_CALL path
// which always reads the parameter by name rather than accepting a
// literal.
func lookupParam(call *parser.Call, mem *memory.RAM) (value.Value, bool) {
	if call.Parameter == nil {
		return value.Value{}, false
	}
	return mem.ReadByName(call.Parameter.Value)
}

// errSilent is execute_assignment's one undocumented quiet failure: a
// missing identifier passed to int()/float() halts execution without a
// printed diagnostic. Execute still reports a non-nil error to its
// caller so tests can observe the halt, but fail() returns it without
// writing anything to Out or notifying the Hook.
type errSilent struct{}

func (errSilent) Error() string { return "" }

func (e *Evaluator) execPrint(stmt *parser.Stmt, mem *memory.RAM) error {
	el := stmt.Call.Parameter
	if el == nil {
		fmt.Fprintln(e.Out)
		e.announce("")
		return nil
	}
	switch el.Type {
	case parser.ElementIdentifier:
		v, ok := mem.ReadByName(el.Value)
		if !ok {
			return errors.Undefined(el.Value, stmt.Line)
		}
		e.println(v.Print())
	default:
		v, err := literalValue(*el)
		if err != nil {
			return err
		}
		e.println(v.Print())
	}
	return nil
}

func (e *Evaluator) println(s string) {
	fmt.Fprintln(e.Out, s)
	e.announce(s)
}

func (e *Evaluator) announce(s string) {
	if e.Hook != nil {
		e.Hook.Printed(s)
	}
}

func (e *Evaluator) evalExpr(expr *parser.Expr, mem *memory.RAM) (value.Value, error) {
	lhs, err := e.elementValue(expr.LHS, expr.Line, mem)
	if err != nil {
		return value.Value{}, err
	}
	if !expr.IsBinary {
		return lhs, nil
	}
	rhs, err := e.elementValue(expr.RHS, expr.Line, mem)
	if err != nil {
		return value.Value{}, err
	}
	result, err := value.BinaryOp(lhs, mapOperator(expr.Op), rhs)
	if err != nil {
		return value.Value{}, mapOpError(err, expr.Line)
	}
	return result, nil
}

// elementValue mirrors execute_get_value: decode a literal directly, or
// look an identifier up by name and fail with UndefinedName.
func (e *Evaluator) elementValue(el parser.Element, line int, mem *memory.RAM) (value.Value, error) {
	if el.Type == parser.ElementIdentifier {
		v, ok := mem.ReadByName(el.Value)
		if !ok {
			return value.Value{}, errors.Undefined(el.Value, line)
		}
		return v, nil
	}
	return literalValue(el)
}

func literalValue(el parser.Element) (value.Value, error) {
	switch el.Type {
	case parser.ElementIntLiteral:
		return value.NewInt(looseAtoi(el.Value)), nil
	case parser.ElementRealLiteral:
		return value.NewReal(looseAtof(el.Value)), nil
	case parser.ElementStrLiteral:
		return value.NewStr(el.Value), nil
	case parser.ElementTrue:
		return value.NewBool(true), nil
	case parser.ElementFalse:
		return value.NewBool(false), nil
	default:
		return value.NewNone(), nil
	}
}

func mapOperator(op parser.Operator) value.Operator {
	switch op {
	case parser.OpPlus:
		return value.Plus
	case parser.OpMinus:
		return value.Minus
	case parser.OpAsterisk:
		return value.Asterisk
	case parser.OpPower:
		return value.Power
	case parser.OpMod:
		return value.Mod
	case parser.OpDiv:
		return value.Div
	case parser.OpEqual:
		return value.Equal
	case parser.OpNotEqual:
		return value.NotEqual
	case parser.OpLT:
		return value.LT
	case parser.OpLTE:
		return value.LTE
	case parser.OpGT:
		return value.GT
	case parser.OpGTE:
		return value.GTE
	default:
		return value.NoOp
	}
}

// mapOpError renders a value package error as nupy's one-line
// diagnostic vocabulary. There is no dedicated "division by zero"
// message in the fixed set of diagnostic formats, so DivByZeroError reuses
// the same InvalidOperandTypes text an OpError would produce — the
// closest existing diagnostic, not a new one.
func mapOpError(err error, line int) error {
	switch err.(type) {
	case *value.OpError, *value.DivByZeroError:
		return errors.OperandTypes(line)
	default:
		return errors.OperatorType(line)
	}
}
