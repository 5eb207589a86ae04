package evaluator

import (
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/mindscript-lang/mindscript/internal/lexer"
	"github.com/mindscript-lang/mindscript/internal/parser"
	"github.com/mindscript-lang/mindscript/internal/printer"
)

// TestGoldenPrograms runs every testdata/golden/*.txtar archive as a small
// end-to-end fixture: each archive bundles a program (in.ms) with its
// expected printed result (out), so a full parse-eval-print pass can be
// checked in one file instead of scattering matching literals across Go
// source.
func TestGoldenPrograms(t *testing.T) {
	archives, err := filepath.Glob("testdata/golden/*.txtar")
	if err != nil {
		t.Fatalf("globbing golden fixtures: %v", err)
	}
	if len(archives) == 0 {
		t.Fatal("no golden fixtures found under testdata/golden")
	}

	for _, path := range archives {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			ar, err := txtar.ParseFile(path)
			if err != nil {
				t.Fatalf("parsing txtar archive: %v", err)
			}

			program := fileFromArchive(t, ar, "in.ms")
			want := strings.TrimRight(fileFromArchive(t, ar, "out"), "\n")

			l := lexer.New(program)
			p := parser.New(l)
			parsed := p.ParseProgram()
			if errs := p.Errors(); len(errs) > 0 {
				t.Fatalf("parser errors: %v", errs)
			}

			e := New()
			v, err := e.Eval(parsed, e.Global)
			if err != nil {
				t.Fatalf("eval error: %v", err)
			}

			if got := printer.PrintValue(v); got != want {
				t.Errorf("got %q, want %q", got, want)
			}
		})
	}
}

func fileFromArchive(t *testing.T, ar *txtar.Archive, name string) string {
	t.Helper()
	for _, f := range ar.Files {
		if f.Name == name {
			return string(f.Data)
		}
	}
	t.Fatalf("archive missing file %q", name)
	return ""
}
