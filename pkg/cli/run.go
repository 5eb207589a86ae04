// Package cli implements mindscript's command-line surface: running a
// script file, a read-eval-print loop over stdin, and serving
// internal/typesvc over gRPC. It is kept separate from cmd/mindscript so
// that the dispatch logic can be exercised by tests without a process
// boundary.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mindscript-lang/mindscript/internal/config"
	"github.com/mindscript-lang/mindscript/internal/evaluator"
	"github.com/mindscript-lang/mindscript/internal/lexer"
	"github.com/mindscript-lang/mindscript/internal/object"
	"github.com/mindscript-lang/mindscript/internal/parser"
	"github.com/mindscript-lang/mindscript/internal/printer"
)

// RunFile evaluates the program read from path against a fresh
// top-level environment and writes its printed result to out. A
// parse error is reported on each offending line the same way the
// REPL reports one.
func RunFile(path string, out, errOut io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return runSource(string(data), out, errOut)
}

// RunStdin reads an entire program from in (used for `mindscript -`
// and piped invocations) and evaluates it.
func RunStdin(in io.Reader, out, errOut io.Writer) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	return runSource(string(data), out, errOut)
}

func runSource(source string, out, errOut io.Writer) error {
	p := parser.New(lexer.New(source))
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(errOut, e)
		}
		return fmt.Errorf("%d parse error(s)", len(errs))
	}

	eval := evaluator.New()
	eval.SetOut(out)
	result, err := eval.Eval(program, eval.Global)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return err
	}
	if result != nil {
		if _, isNull := result.(*object.Null); !isNull {
			fmt.Fprintln(out, printer.PrintValue(result))
		}
	}
	return nil
}

// LoadConfig locates and parses mindscript.yaml starting from the
// current directory, falling back to config.Default() if none is
// found. Config lookup failures are non-fatal — a missing or invalid
// config file should never stop a script from running.
func LoadConfig(errOut io.Writer) *config.Config {
	cwd, err := os.Getwd()
	if err != nil {
		return config.Default()
	}
	path, err := config.Find(cwd)
	if err != nil || path == "" {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(errOut, "warning: %s\n", err)
		return config.Default()
	}
	return cfg
}
