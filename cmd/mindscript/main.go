// Command mindscript runs a script file, starts an interactive REPL, or
// serves the type-resolution service over gRPC, depending on os.Args.
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/mindscript-lang/mindscript/internal/config"
	"github.com/mindscript-lang/mindscript/internal/store"
	"github.com/mindscript-lang/mindscript/pkg/cli"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: mindscript [file] | mindscript repl | mindscript serve")
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "internal error: %v\n", r)
			os.Exit(1)
		}
	}()

	if os.Getenv("MINDSCRIPT_TEST_MODE") == "1" {
		config.IsTestMode = true
	}

	cfg := cli.LoadConfig(os.Stderr)

	args := os.Args[1:]
	stdinFD := os.Stdin.Fd()
	if len(args) == 0 {
		if isatty.IsTerminal(stdinFD) || isatty.IsCygwinTerminal(stdinFD) {
			runREPL(cfg, "")
			return
		}
		if err := cli.RunStdin(os.Stdin, os.Stdout, os.Stderr); err != nil {
			os.Exit(1)
		}
		return
	}

	switch args[0] {
	case "repl":
		runREPL(cfg, replResumeArg(args[1:]))
	case "serve":
		if err := cli.Serve(cfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case "-help", "--help", "help":
		usage()
	case "-":
		if err := cli.RunStdin(os.Stdin, os.Stdout, os.Stderr); err != nil {
			os.Exit(1)
		}
	default:
		if err := cli.RunFile(args[0], os.Stdout, os.Stderr); err != nil {
			os.Exit(1)
		}
	}
}

func runREPL(cfg *config.Config, resume string) {
	var registry *store.Registry
	if cfg.Registry != "" {
		r, err := store.Open(cfg.Registry)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open registry: %s\n", err)
		} else {
			registry = r
			defer registry.Close()
		}
	}
	r := cli.NewREPL(cfg, registry, os.Stdout.Fd())
	if resume != "" {
		r.Resume(resume)
	}
	if err := r.Run(os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// replResumeArg extracts the session id from `--resume <session>` among
// the REPL subcommand's trailing arguments.
func replResumeArg(args []string) string {
	for i, a := range args {
		if a == "--resume" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
