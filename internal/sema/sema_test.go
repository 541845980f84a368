package sema

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"playground/internal/ast"
	"playground/internal/diag"
	"playground/internal/parser"
	"playground/internal/source"
)

func analyze(t *testing.T, input string, passes []Pass) ([]diag.Diagnostic, error) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.tb", []byte(input)))
	builder := ast.NewBuilder(ast.Hints{}, nil)
	rep := &diag.SliceReporter{}
	res := parser.ParseFile(fs, file, builder, parser.Options{Reporter: rep})
	if len(rep.Items) != 0 {
		t.Fatalf("%q: unexpected syntax diagnostics: %v", input, rep.Items)
	}
	ctx := &Context{File: file, Tokens: res.Tokens, Builder: builder, AST: res.File}
	return Run(passes, ctx)
}

func codes(items []diag.Diagnostic) string {
	parts := make([]string, 0, len(items))
	for _, d := range items {
		parts = append(parts, d.Code.ID())
	}
	return strings.Join(parts, ",")
}

func TestDefaultPasses(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean", "let x = 40; x + 2", ""},
		{"empty program", "", ""},
		{"redundant semicolons", ";1;;", "SEM3101,SEM3101"},
		{"semicolon after brace", "{ ; 1 }", "SEM3101"},
		{"unresolved", "y + 1", "SEM3001"},
		{"assign undeclared", "z = 1;", "SEM3001"},
		{"let value sees outer scope", "let x = x;", "SEM3001,SEM3003"},
		{"shadow", "let a = 1; let a = a + 1; a", "SEM3002"},
		{"shadow in block", "let a = 1; { let a = 2; a } + a", "SEM3002"},
		{"block scope ends", "{ let inner = 1; inner; } inner", "SEM3001"},
		{"unused", "let x = 1; true", "SEM3003"},
		{"underscore is exempt", "let _x = 1; true", ""},
		{"written but unread", "let x = 1; x = 2;", "SEM3003"},
		{"constant if", "if true { 1 } else { 2 }", "SEM3004"},
		{"constant while", "while (false) { }", "SEM3004"},
		{"literal division", "1 / 0", "SEM3005"},
		{"literal remainder", "1 % -(0.0)", "SEM3005"},
		{"non-literal divisor", "let d = 0; 1 / d", ""},
		{"pass order", "let u = 1;; q / 0", "SEM3101,SEM3001,SEM3003,SEM3005"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := analyze(t, tt.input, DefaultPasses())
			if err != nil {
				t.Fatalf("unexpected host failure: %v", err)
			}
			if got := codes(items); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSeverities(t *testing.T) {
	want := map[diag.Code]diag.Severity{
		diag.SemaEmptyStatement:    diag.SevInfo,
		diag.SemaShadowSymbol:      diag.SevInfo,
		diag.SemaUnusedBinding:     diag.SevWarning,
		diag.SemaConstantCondition: diag.SevWarning,
		diag.SemaUnresolvedSymbol:  diag.SevError,
		diag.SemaDivisionByZero:    diag.SevError,
	}
	items, err := analyze(t, "let a = 1; ; let a = 2; if true { q } else { a / 0 }", DefaultPasses())
	if err != nil {
		t.Fatal(err)
	}
	seen := map[diag.Code]bool{}
	for _, d := range items {
		if sev, ok := want[d.Code]; ok && d.Severity != sev {
			t.Errorf("%s: got %s, want %s", d.Code.ID(), d.Severity, sev)
		}
		seen[d.Code] = true
	}
	for code := range want {
		if !seen[code] {
			t.Errorf("expected a %s finding in %q", code.ID(), codes(items))
		}
	}
}

func TestShadowNotePointsAtPreviousBinding(t *testing.T) {
	items, _ := analyze(t, "let a = 1; let a = a; a", []Pass{Names{}})
	if len(items) != 1 || len(items[0].Notes) != 1 {
		t.Fatalf("expected one shadow finding with a note, got %v", items)
	}
	if sp := items[0].Notes[0].Span; sp.Start != 4 || sp.End != 5 {
		t.Errorf("note span: got %v", sp)
	}
}

type failingPass struct{ panic bool }

func (failingPass) Name() string { return "failing" }

func (p failingPass) Run(*Context, diag.Reporter) error {
	if p.panic {
		panic("boom")
	}
	return fmt.Errorf("disk on fire")
}

func TestHostFailure(t *testing.T) {
	for _, panics := range []bool{false, true} {
		_, err := analyze(t, "1", []Pass{EmptyStatements{}, failingPass{panic: panics}})
		if !errors.Is(err, ErrPassFailed) {
			t.Fatalf("panic=%v: expected ErrPassFailed, got %v", panics, err)
		}
		if !strings.Contains(err.Error(), "failing") {
			t.Errorf("error should name the pass: %v", err)
		}
	}
}

func TestLookup(t *testing.T) {
	passes, err := Lookup([]string{"unused", " names "})
	if err != nil {
		t.Fatal(err)
	}
	if passes[0].Name() != "unused" || passes[1].Name() != "names" {
		t.Errorf("order not preserved: %s, %s", passes[0].Name(), passes[1].Name())
	}
	if _, err := Lookup([]string{"nope"}); !errors.Is(err, ErrUnknownPass) {
		t.Errorf("expected ErrUnknownPass, got %v", err)
	}
	if got := len(DefaultPasses()); got != len(PassNames()) {
		t.Errorf("default set size %d != %d", got, len(PassNames()))
	}
}
