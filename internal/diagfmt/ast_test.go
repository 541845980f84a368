package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"playground/internal/ast"
	"playground/internal/diag"
	"playground/internal/parser"
	"playground/internal/source"
)

func TestFormatAST(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.tb", []byte("let x = 1;\nx + 2")))
	b := ast.NewBuilder(ast.Hints{}, nil)
	rep := &diag.SliceReporter{}
	res := parser.ParseFile(fs, file, b, parser.Options{Reporter: rep})
	if len(rep.Items) != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.Items)
	}

	var buf bytes.Buffer
	if err := FormatAST(&buf, b, res.File, fs); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"File (span: 1:1-2:6)",
		"├─ Let x (span: 1:1-1:11)",
		"│  └─ Value: Literal Int 1 (span: 1:9-1:10)",
		"└─ Tail: Binary + (span: 2:1-2:6)",
		"   ├─ Ident x (span: 2:1-2:2)",
		"   └─ Literal Int 2 (span: 2:5-2:6)",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatASTMissingFile(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	if err := FormatAST(&bytes.Buffer{}, b, ast.FileID(7), nil); err == nil {
		t.Fatalf("expected an error for an unknown file")
	}
}
