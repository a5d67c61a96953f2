// Command nupy runs a nuPython program. Usage: nupy [flags] [file]; with
// no file argument, the program is read from stdin up to a line that is
// exactly "$", the source's end-of-source sentinel. "nupy repl" instead
// starts an interactive line-at-a-time session.
//
// Flag-based configuration and the lex/parse/execute wiring follow
// sentra's cmd/sentra/main.go; the run subcommand's optimization-flag
// dance and bytecode-file dispatch don't apply to a tree-walking
// evaluator and were dropped along with it.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"nupy/internal/audit"
	"nupy/internal/dump"
	"nupy/internal/evaluator"
	"nupy/internal/lexer"
	"nupy/internal/memory"
	"nupy/internal/netdebug"
	"nupy/internal/parser"
	"nupy/internal/repl"
)

const sourceSentinel = "$"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "repl" {
		repl.Start(os.Stdin, os.Stdout)
		return
	}

	auditDSN := flag.String("audit-dsn", "", "driver://dsn to log one row per run (mysql, postgres, sqlite3, sqlserver)")
	debugAddr := flag.String("debug-addr", "", "host:port to serve a live statement/print/error websocket feed on")
	dumpMemory := flag.Bool("dump-memory", false, "print a ram_print-style memory dump to stdout after the run")
	flag.Parse()

	source, path, err := readProgram(flag.Args())
	if err != nil {
		log.Fatalf("nupy: %v", err)
	}

	var hook evaluator.Hook
	if *debugAddr != "" {
		srv, err := netdebug.Listen(*debugAddr)
		if err != nil {
			log.Fatalf("nupy: debug server: %v", err)
		}
		defer srv.Close()
		hook = srv
	}

	startedAt := time.Now()
	outcome := run(source, os.Stdout, os.Stdin, hook, *dumpMemory)

	if *auditDSN != "" {
		if err := audit.Log(*auditDSN, path, outcome, startedAt); err != nil {
			fmt.Fprintf(os.Stderr, "nupy: audit log: %v\n", err)
		}
	}

	os.Exit(0)
}

// run lexes, parses, and executes source, returning a short outcome
// string ("ok" or the diagnostic text) for the audit log.
func run(source string, out io.Writer, in io.Reader, hook evaluator.Hook, dumpMem bool) string {
	toks, err := lexer.NewScanner(source).ScanTokens()
	if err != nil {
		fmt.Fprintln(out, err.Error())
		return err.Error()
	}

	prog, err := parser.New(toks).Parse()
	if err != nil {
		fmt.Fprintln(out, err.Error())
		return err.Error()
	}

	mem := memory.New()
	ev := evaluator.New(out, in)
	ev.Hook = hook

	outcome := "ok"
	if err := ev.Execute(prog, mem); err != nil {
		outcome = err.Error()
	}

	if dumpMem {
		dump.Print(out, mem)
	}
	return outcome
}

// readProgram returns the program source and a display path: args[0]'s
// contents when a file is given, or stdin read up to a bare "$" line.
func readProgram(args []string) (source, path string, err error) {
	if len(args) > 0 {
		body, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", err
		}
		return string(body), args[0], nil
	}

	var b strings.Builder
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == sourceSentinel {
			break
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String(), "<stdin>", scanner.Err()
}
