package parser

import (
	"strings"
	"testing"

	"playground/internal/ast"
	"playground/internal/diag"
	"playground/internal/source"
	"playground/internal/testkit"
	"playground/internal/token"
)

func TestParseEmptyProgram(t *testing.T) {
	for _, input := range []string{"", "   ", "// only a comment\n"} {
		ps := parseSource(t, input)
		ps.noErrors(t)
		if len(ps.body.Stmts) != 0 || ps.body.Tail.IsValid() {
			t.Errorf("%q: expected empty body, got %d stmts tail=%v", input, len(ps.body.Stmts), ps.body.Tail)
		}
		if last := ps.result.Tokens[len(ps.result.Tokens)-1]; last.Kind != token.EOF {
			t.Errorf("%q: token stream must end with EOF", input)
		}
	}
}

func TestParseTailExpression(t *testing.T) {
	ps := parseSource(t, "let x = 40; x + 2")
	ps.noErrors(t)
	if len(ps.body.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(ps.body.Stmts))
	}
	let := ps.builder.Stmts.Let(ps.body.Stmts[0])
	if let == nil || ps.builder.Name(let.Name) != "x" {
		t.Fatalf("expected let x")
	}
	bin, ok := ps.builder.Exprs.Binary(ps.body.Tail)
	if !ok || bin.Op != ast.ExprBinaryAdd {
		t.Fatalf("expected binary + tail")
	}
}

func TestParsePrecedence(t *testing.T) {
	ps := parseSource(t, "1 + 2 * 3 == 7 && !false")
	ps.noErrors(t)
	and, ok := ps.builder.Exprs.Binary(ps.body.Tail)
	if !ok || and.Op != ast.ExprBinaryLogicalAnd {
		t.Fatalf("root must be &&")
	}
	eq, ok := ps.builder.Exprs.Binary(and.Left)
	if !ok || eq.Op != ast.ExprBinaryEq {
		t.Fatalf("left of && must be ==")
	}
	add, ok := ps.builder.Exprs.Binary(eq.Left)
	if !ok || add.Op != ast.ExprBinaryAdd {
		t.Fatalf("left of == must be +")
	}
	if mul, ok := ps.builder.Exprs.Binary(add.Right); !ok || mul.Op != ast.ExprBinaryMul {
		t.Fatalf("right of + must be *")
	}
	if not, ok := ps.builder.Exprs.Unary(and.Right); !ok || not.Op != ast.ExprUnaryNot {
		t.Fatalf("right of && must be !")
	}
}

func TestParseAssignIsRightAssociative(t *testing.T) {
	ps := parseSource(t, "let a = 0; let b = 0; a = b = 3")
	ps.noErrors(t)
	outer, ok := ps.builder.Exprs.Assign(ps.body.Tail)
	if !ok || ps.builder.Name(outer.Target) != "a" {
		t.Fatalf("expected assignment to a")
	}
	inner, ok := ps.builder.Exprs.Assign(outer.Value)
	if !ok || ps.builder.Name(inner.Target) != "b" {
		t.Fatalf("expected nested assignment to b")
	}
}

func TestParseIfElseChainAndWhile(t *testing.T) {
	ps := parseSource(t, "let i = 0; while i < 3 { i = i + 1; } if i == 3 { 1 } else if i > 3 { 2 } else { 3 }")
	ps.noErrors(t)
	if len(ps.body.Stmts) != 2 {
		t.Fatalf("expected let + while, got %d", len(ps.body.Stmts))
	}
	if w := ps.builder.Stmts.While(ps.body.Stmts[1]); w == nil {
		t.Fatalf("second statement must be while")
	}
	ifData, ok := ps.builder.Exprs.If(ps.body.Tail)
	if !ok {
		t.Fatalf("tail must be if")
	}
	elseIf, ok := ps.builder.Exprs.If(ifData.Else)
	if !ok {
		t.Fatalf("else branch must be a nested if")
	}
	if _, ok := ps.builder.Exprs.Block(elseIf.Else); !ok {
		t.Fatalf("final else must be a block")
	}
}

func TestBlockLikeStatementNeedsNoSemicolon(t *testing.T) {
	ps := parseSource(t, "if true { 1 } { 2 } 3")
	ps.noErrors(t)
	if len(ps.body.Stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(ps.body.Stmts))
	}
	if lit, ok := ps.builder.Exprs.Literal(ps.body.Tail); !ok || lit.Kind != ast.ExprLitInt {
		t.Fatalf("tail must be the int literal")
	}
}

func TestEmptyStatements(t *testing.T) {
	ps := parseSource(t, ";; 1;")
	ps.noErrors(t)
	kinds := []ast.StmtKind{ast.StmtEmpty, ast.StmtEmpty, ast.StmtExpr}
	if len(ps.body.Stmts) != len(kinds) {
		t.Fatalf("got %d statements", len(ps.body.Stmts))
	}
	for i, k := range kinds {
		if got := ps.builder.Stmts.Get(ps.body.Stmts[i]).Kind; got != k {
			t.Errorf("stmt %d: got %s, want %s", i, got, k)
		}
	}
	if ps.body.Tail.IsValid() {
		t.Errorf("terminated expression must not be a tail")
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		codes []diag.Code
	}{
		{"missing semicolon", "let x = 1 let y = 2; y", []diag.Code{diag.SynExpectSemicolon}},
		{"missing name", "let = 1;", []diag.Code{diag.SynExpectIdentifier}},
		{"missing assign", "let x 1;", []diag.Code{diag.SynExpectAssign}},
		{"unclosed paren", "(1 + 2", []diag.Code{diag.SynUnclosedParen}},
		{"unclosed brace", "{ 1", []diag.Code{diag.SynUnclosedBrace}},
		{"dangling operator", "1 +", []diag.Code{diag.SynExpectExpression}},
		{"bad assign target", "1 = 2", []diag.Code{diag.SynInvalidAssign}},
		{"stray brace", "}", []diag.Code{diag.SynExpectExpression}},
		{"two expressions", "1 2", []diag.Code{diag.SynExpectSemicolon}},
		{"unterminated string only", `"abc`, []diag.Code{diag.LexUnterminatedString}},
		{"unterminated string in let", "let s = \"abc", []diag.Code{diag.LexUnterminatedString}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := parseSource(t, tt.input)
			if len(ps.diags) != len(tt.codes) {
				t.Fatalf("got %s", diagnosticsSummary(ps.diags))
			}
			for i, code := range tt.codes {
				if ps.diags[i].Code != code {
					t.Errorf("diag %d: got %s, want %s", i, ps.diags[i].Code.ID(), code.ID())
				}
				if !ps.diags[i].Severity.IsError() {
					t.Errorf("diag %d must be an error", i)
				}
			}
			if ps.result.Errors != uint(len(tt.codes)) {
				t.Errorf("error count: got %d, want %d", ps.result.Errors, len(tt.codes))
			}
		})
	}
}

func TestNestingLimit(t *testing.T) {
	deep := func(open, mid, closing string, n int) string {
		return strings.Repeat(open, n) + mid + strings.Repeat(closing, n)
	}
	tests := []struct {
		name  string
		input string
	}{
		{"parens", deep("(", "1", ")", 1_000_000)},
		{"bangs", deep("!", "true", "", 1_000_000)},
		{"negations", deep("-", "1", "", 100_000)},
		{"blocks", deep("{", "1", "}", 100_000)},
		{"while bodies", deep("while true {", "", "}", 100_000)},
		{"assignments", deep("x = ", "1", "", 100_000)},
		{"long chain", deep("1 + ", "1", "", 3*maxNestingDepth)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := parseSource(t, tt.input)
			if len(ps.diags) != 1 || ps.diags[0].Code != diag.SynNestingTooDeep {
				t.Fatalf("got %s", diagnosticsSummary(ps.diags))
			}
			if ps.diags[0].Message != "expression nested too deeply" {
				t.Errorf("message = %q", ps.diags[0].Message)
			}
			if ps.result.Errors != 1 {
				t.Errorf("error count = %d", ps.result.Errors)
			}
		})
	}
}

func TestNestingBelowLimitParses(t *testing.T) {
	for _, input := range []string{
		strings.Repeat("(", 400) + "1" + strings.Repeat(")", 400),
		strings.Repeat("1 + ", maxNestingDepth) + "1",
		strings.Repeat("if true { 1 } else ", 300) + "{ 2 }",
	} {
		ps := parseSource(t, input)
		ps.noErrors(t)
	}
}

func TestNestingErrorPointsAtOpening(t *testing.T) {
	input := strings.Repeat("(", 2*maxNestingDepth) + "1" + strings.Repeat(")", 2*maxNestingDepth) + "; 2"
	ps := parseSource(t, input)
	if len(ps.diags) != 1 {
		t.Fatalf("got %s", diagnosticsSummary(ps.diags))
	}
	sp := ps.diags[0].Primary
	if input[sp.Start] != '(' {
		t.Errorf("span %s must start at '('", sp)
	}
	// после пропуска разбор продолжается со следующего оператора
	if len(ps.body.Stmts) != 1 || !ps.body.Tail.IsValid() {
		t.Errorf("expected one statement and a tail, got %d stmts", len(ps.body.Stmts))
	}
}

func TestUnclosedBraceNotesOpening(t *testing.T) {
	ps := parseSource(t, "{ 1")
	if len(ps.diags) != 1 || len(ps.diags[0].Notes) != 1 {
		t.Fatalf("expected one diagnostic with a note, got %s", diagnosticsSummary(ps.diags))
	}
	if note := ps.diags[0].Notes[0]; note.Span.Start != 0 || note.Span.End != 1 {
		t.Errorf("note should point at '{', got %s", note.Span)
	}
}

func TestRecoveryReportsEveryStatement(t *testing.T) {
	ps := parseSource(t, "1 2 3 4 5")
	if len(ps.diags) != 4 {
		t.Fatalf("expected 4 errors, got %s", diagnosticsSummary(ps.diags))
	}
}

func TestMaxErrorsStopsReportingButKeepsCounting(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.tb", []byte("@ 1 2 3 4")))
	rep := &diag.SliceReporter{}
	res := ParseFile(fs, file, ast.NewBuilder(ast.Hints{}, nil), Options{Reporter: rep, MaxErrors: 2})
	if len(rep.Items) != 2 {
		t.Fatalf("expected 2 reported, got %d", len(rep.Items))
	}
	if rep.Items[0].Code != diag.LexUnknownChar {
		t.Errorf("lexer error must come first, got %s", rep.Items[0].Code.ID())
	}
	if res.Errors != 4 {
		t.Errorf("expected 4 counted errors, got %d", res.Errors)
	}
}

func TestSpanInvariants(t *testing.T) {
	inputs := []string{
		"",
		"let x = 1; x",
		"let i = 0; while i < 10 { i = i + 1; } if i == 10 { \"done\" } else { null }",
		"{ let a = (1 + 2) * -3; a }",
		"let x = 1 let y = 2;",
		"(1 + ",
		"1 = 2; ;",
	}
	for _, input := range inputs {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("test.tb", []byte(input)))
		builder := ast.NewBuilder(ast.Hints{}, nil)
		res := ParseFile(fs, file, builder, Options{})
		if err := testkit.CheckSpanInvariants(builder, res.File, file); err != nil {
			t.Errorf("%q: %v", input, err)
		}
	}
}
