package parser

import (
	"fmt"
	"strings"
	"testing"

	"playground/internal/ast"
	"playground/internal/diag"
	"playground/internal/source"
)

type parsed struct {
	builder *ast.Builder
	file    *ast.File
	body    *ast.ExprBlockData
	diags   []diag.Diagnostic
	result  Result
}

func parseSource(t *testing.T, input string) parsed {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.tb", []byte(input)))
	builder := ast.NewBuilder(ast.Hints{}, nil)
	rep := &diag.SliceReporter{}
	res := ParseFile(fs, file, builder, Options{Reporter: rep})
	astFile := builder.Files.Get(res.File)
	if astFile == nil {
		t.Fatalf("no file produced")
	}
	body, ok := builder.Exprs.Block(astFile.Body)
	if !ok {
		t.Fatalf("file body is not a block")
	}
	return parsed{builder: builder, file: astFile, body: body, diags: rep.Items, result: res}
}

func diagnosticsSummary(items []diag.Diagnostic) string {
	if len(items) == 0 {
		return "<none>"
	}
	lines := make([]string, len(items))
	for i, d := range items {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func (ps parsed) noErrors(t *testing.T) {
	t.Helper()
	if len(ps.diags) != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(ps.diags))
	}
}
