package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/mattn/go-isatty"

	"github.com/mindscript-lang/mindscript/internal/ast"
	"github.com/mindscript-lang/mindscript/internal/config"
	"github.com/mindscript-lang/mindscript/internal/evaluator"
	"github.com/mindscript-lang/mindscript/internal/lexer"
	"github.com/mindscript-lang/mindscript/internal/object"
	"github.com/mindscript-lang/mindscript/internal/parser"
	"github.com/mindscript-lang/mindscript/internal/printer"
	"github.com/mindscript-lang/mindscript/internal/store"
)

const (
	colorReset  = "\033[0m"
	colorPrompt = "\033[36m"
	colorError  = "\033[31m"
)

// REPL is a read-eval-print loop over a single persistent environment,
// so a variable or `type` alias declared on one line stays visible to
// later lines, just as statements of a single script file share one
// environment.
type REPL struct {
	cfg      *config.Config
	eval     *evaluator.Evaluator
	env      *object.Environment
	registry *store.Registry
	session  string
	resume   string
	useColor bool
}

// NewREPL builds a REPL against cfg. If registry is non-nil, Run opens
// a new store session and every `type X = ...` declaration evaluated
// afterward is persisted to it (internal/store), so a later session
// started with Resume can pick the alias set back up.
func NewREPL(cfg *config.Config, registry *store.Registry, stdoutFD uintptr) *REPL {
	eval := evaluator.New()
	r := &REPL{
		cfg:      cfg,
		eval:     eval,
		env:      object.NewEnclosedEnvironment(eval.Global),
		registry: registry,
		useColor: cfg.UseColor(isatty.IsTerminal(stdoutFD) || isatty.IsCygwinTerminal(stdoutFD)),
	}
	return r
}

// Resume points Run at an existing store session instead of minting a
// new one: that session's saved aliases are loaded into the starting
// environment (`mindscript repl --resume <session>`).
func (r *REPL) Resume(session string) {
	r.resume = session
}

// Run drives the loop, reading lines from in and writing prompts,
// results, and errors to out/errOut. It returns when in is exhausted
// (EOF) or a read error occurs.
func (r *REPL) Run(in io.Reader, out, errOut io.Writer) error {
	ctx := context.Background()
	r.eval.SetOut(out)
	if r.registry != nil {
		if err := r.startSession(ctx, errOut); err != nil {
			fmt.Fprintf(errOut, "warning: could not start session: %s\n", err)
		}
	}

	scanner := bufio.NewScanner(in)
	prompt := r.cfg.Prompt
	if prompt == "" {
		prompt = ">> "
	}

	for {
		r.writePrompt(out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		r.evalLine(line, out, errOut)
	}
}

// startSession either resumes r.resume (loading its saved aliases into
// the starting environment) or mints a fresh session.
func (r *REPL) startSession(ctx context.Context, errOut io.Writer) error {
	if r.resume != "" {
		ok, err := r.registry.HasSession(ctx, r.resume)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no such session: %s", r.resume)
		}
		aliases, err := r.registry.LoadAliases(ctx, r.resume)
		if err != nil {
			return err
		}
		for name, t := range aliases {
			r.env.Define(name, &object.TypeValue{Def: t, Env: r.env})
		}
		r.session = r.resume
		return nil
	}
	session, err := r.registry.NewSession(ctx)
	if err != nil {
		return err
	}
	r.session = session
	return nil
}

func (r *REPL) writePrompt(out io.Writer, prompt string) {
	if r.useColor {
		fmt.Fprint(out, colorPrompt+prompt+colorReset)
		return
	}
	fmt.Fprint(out, prompt)
}

func (r *REPL) evalLine(line string, out, errOut io.Writer) {
	p := parser.New(lexer.New(line))
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		for _, e := range errs {
			r.writeError(errOut, e)
		}
		return
	}

	result, err := r.eval.Eval(program, r.env)
	if err != nil {
		r.writeError(errOut, err.Error())
		return
	}
	r.persistAliases(program)
	if result == nil {
		return
	}
	if _, isNull := result.(*object.Null); isNull {
		return
	}
	fmt.Fprintln(out, printer.PrintValue(result))
}

func (r *REPL) writeError(errOut io.Writer, msg string) {
	if r.useColor {
		fmt.Fprintln(errOut, colorError+msg+colorReset)
		return
	}
	fmt.Fprintln(errOut, msg)
}

// persistAliases saves every top-level `type X = ...` declaration in
// program to the session's store, if a registry is attached.
func (r *REPL) persistAliases(program *ast.Program) {
	if r.registry == nil || r.session == "" {
		return
	}
	ctx := context.Background()
	for _, stmt := range program.Statements {
		decl, ok := stmt.(*ast.TypeDeclarationStatement)
		if !ok {
			continue
		}
		if err := r.registry.SaveAlias(ctx, r.session, decl.Name.Value, decl.Expr); err != nil {
			continue
		}
	}
}

// SessionID returns the store session id this REPL is attached to, or
// "" if no registry was provided.
func (r *REPL) SessionID() string {
	return r.session
}
