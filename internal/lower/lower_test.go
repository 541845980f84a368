package lower

import (
	"bytes"
	"strings"
	"testing"

	"playground/internal/ast"
	"playground/internal/bytecode"
	"playground/internal/diag"
	"playground/internal/parser"
	"playground/internal/source"
)

func lowerSource(t *testing.T, input string) *bytecode.Program {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.tb", []byte(input)))
	b := ast.NewBuilder(ast.Hints{}, nil)
	rep := &diag.SliceReporter{}
	res := parser.ParseFile(fs, file, b, parser.Options{Reporter: rep})
	if len(rep.Items) != 0 {
		t.Fatalf("syntax errors: %v", rep.Items)
	}
	return Body(b, res.File, file)
}

func ops(p *bytecode.Program) string {
	parts := make([]string, 0, len(p.Code))
	for _, in := range p.Code {
		parts = append(parts, in.Op.String())
	}
	return strings.Join(parts, " ")
}

func TestLowerShapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"42", "PUSH_INT"},
		{"1;", "PUSH_INT POP"},
		{"let x = 1; x", "PUSH_INT STORE LOAD"},
		{"let x = 1; x = 2", "PUSH_INT STORE PUSH_INT DUP STORE"},
		{"-1 + 2", "PUSH_INT NEG PUSH_INT ADD"},
		{"if true { 1 }", "PUSH_TRUE JUMP_IF_FALSE PUSH_INT JUMP PUSH_NULL"},
		{"while false { }", "PUSH_FALSE JUMP_IF_FALSE PUSH_NULL POP JUMP"},
		{"true && false", "PUSH_TRUE JUMP_IF_FALSE PUSH_FALSE JUMP_IF_FALSE PUSH_TRUE JUMP PUSH_FALSE"},
		{"true || false", "PUSH_TRUE JUMP_IF_TRUE PUSH_FALSE JUMP_IF_TRUE PUSH_FALSE JUMP PUSH_TRUE"},
		{`"s"; 1.5`, "PUSH_STR POP PUSH_FLOAT"},
	}
	for _, tt := range tests {
		if got := ops(lowerSource(t, tt.input)); got != tt.want {
			t.Errorf("%q:\n got  %s\n want %s", tt.input, got, tt.want)
		}
	}
}

func TestShadowedLetsGetDistinctSlots(t *testing.T) {
	p := lowerSource(t, "let a = 1; { let a = 2; a; } a")
	if p.Locals != 2 {
		t.Fatalf("expected 2 slots, got %d", p.Locals)
	}
	last := p.Code[len(p.Code)-1]
	if last.Op != bytecode.OpLoad || last.Arg != 0 {
		t.Errorf("outer a must load slot 0, got %s %d", last.Op, last.Arg)
	}
}

func TestUnresolvedNamePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic for an unresolved name")
		}
	}()
	lowerSource(t, "missing + 1")
}

func TestDisassemblyOfWhileResolvesBackEdge(t *testing.T) {
	var buf bytes.Buffer
	if err := bytecode.Disassemble(&buf, lowerSource(t, "let i = 0; while i < 3 { i = i + 1; }").Resolve()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "JUMP           -> 0002") {
		t.Errorf("back edge should target the loop head:\n%s", buf.String())
	}
}
