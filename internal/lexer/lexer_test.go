package lexer_test

import (
	"testing"

	"playground/internal/diag"
	"playground/internal/lexer"
	"playground/internal/source"
	"playground/internal/token"
)

// lexAll прогоняет вход через Tokenize и возвращает токены и диагностики
func lexAll(input string) ([]token.Token, []diag.Diagnostic) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.pg", []byte(input)))
	rep := &diag.SliceReporter{}
	return lexer.Tokenize(file, lexer.Options{Reporter: rep}), rep.Items
}

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.Kind)
	}
	return out
}

func TestTokenizeKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{"empty", "", []token.Kind{token.EOF}},
		{"let", "let x = 1;", []token.Kind{token.KwLet, token.Ident, token.Assign, token.IntLit, token.Semicolon, token.EOF}},
		{"ops", "== != <= >= && || < > ! = + - * / %", []token.Kind{
			token.EqEq, token.BangEq, token.LtEq, token.GtEq, token.AndAnd, token.OrOr,
			token.Lt, token.Gt, token.Bang, token.Assign, token.Plus, token.Minus,
			token.Star, token.Slash, token.Percent, token.EOF,
		}},
		{"keywords", "if else while true false null", []token.Kind{
			token.KwIf, token.KwElse, token.KwWhile, token.KwTrue, token.KwFalse, token.KwNull, token.EOF,
		}},
		{"numbers", "0 12 1_000 0xFF 0b101 1.5 2e3 1.0e-2", []token.Kind{
			token.IntLit, token.IntLit, token.IntLit, token.IntLit, token.IntLit,
			token.FloatLit, token.FloatLit, token.FloatLit, token.EOF,
		}},
		{"unicode ident", "имя_1", []token.Kind{token.Ident, token.EOF}},
		{"comments", "// line\n/* block /* nested */ */ x", []token.Kind{token.Ident, token.EOF}},
		{"braces", "{ ( ) }", []token.Kind{token.LBrace, token.LParen, token.RParen, token.RBrace, token.EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, diags := lexAll(tt.input)
			if len(diags) != 0 {
				t.Fatalf("unexpected diagnostics: %v", diags)
			}
			got := kinds(tokens)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d: got %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
		start uint32
		end   uint32
	}{
		{"unterminated string", `"hello`, diag.LexUnterminatedString, 0, 1},
		{"string across newline", "x = \"ab\ny", diag.LexUnterminatedString, 4, 5},
		{"bad escape", `"a\qb"`, diag.LexBadEscape, 2, 4},
		{"unknown char", "1 @ 2", diag.LexUnknownChar, 2, 3},
		{"invalid utf8", "a \xff", diag.LexUnknownChar, 2, 3},
		{"invalid utf8 in string", "\"a\xffb\"", diag.LexUnknownChar, 2, 3},
		{"truncated rune in string", "\"\xd0\"", diag.LexUnknownChar, 1, 2},
		{"unterminated comment", "/* open", diag.LexUnterminatedBlockComment, 0, 7},
		{"bad suffix", "12abc", diag.LexBadNumber, 0, 5},
		{"empty hex", "0x", diag.LexBadNumber, 0, 2},
		{"trailing underscore", "1_", diag.LexBadNumber, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags := lexAll(tt.input)
			if len(diags) != 1 {
				t.Fatalf("expected 1 diagnostic, got %d: %v", len(diags), diags)
			}
			d := diags[0]
			if d.Code != tt.code {
				t.Errorf("code: got %s, want %s", d.Code.ID(), tt.code.ID())
			}
			if d.Severity != diag.SevError {
				t.Errorf("severity: got %s", d.Severity)
			}
			if d.Primary.Start != tt.start || d.Primary.End != tt.end {
				t.Errorf("span: got %d..%d, want %d..%d", d.Primary.Start, d.Primary.End, tt.start, tt.end)
			}
		})
	}
}

func TestInvalidUTF8SameInsideAndOutsideStrings(t *testing.T) {
	_, outside := lexAll("x \xff")
	tokens, inside := lexAll("\"\xff\" \"ok ж\"")
	if len(outside) != 1 || len(inside) != 1 {
		t.Fatalf("outside %v, inside %v", outside, inside)
	}
	if outside[0].Message != inside[0].Message {
		t.Errorf("messages differ: %q vs %q", outside[0].Message, inside[0].Message)
	}
	if tokens[0].Kind != token.StringLit || tokens[1].Kind != token.StringLit {
		t.Errorf("literals must still be tokens, got %s %s", tokens[0].Kind, tokens[1].Kind)
	}
}

func TestLeadingTrivia(t *testing.T) {
	tokens, _ := lexAll("  // c\n\nx")
	if tokens[0].Kind != token.Ident {
		t.Fatalf("expected ident, got %s", tokens[0].Kind)
	}
	want := []token.TriviaKind{token.TriviaSpace, token.TriviaLineComment, token.TriviaNewline}
	got := tokens[0].Leading
	if len(got) != len(want) {
		t.Fatalf("got %d trivia, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Kind != want[i] {
			t.Errorf("trivia %d: got %s, want %s", i, got[i].Kind, want[i])
		}
	}
	if got[2].Text != "\n\n" {
		t.Errorf("newlines should coalesce, got %q", got[2].Text)
	}
}

func TestTokenTextIsSourceSlice(t *testing.T) {
	src := `let s = "a\"b"; 0x1F`
	tokens, _ := lexAll(src)
	for _, tok := range tokens {
		if got := src[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Errorf("%s: text %q != slice %q", tok.Kind, tok.Text, got)
		}
	}
}

func TestEOFIsSticky(t *testing.T) {
	fs := source.NewFileSet()
	lx := lexer.New(fs.Get(fs.AddVirtual("t", []byte("x"))), lexer.Options{})
	_ = lx.Next()
	for i := 0; i < 3; i++ {
		if k := lx.Next().Kind; k != token.EOF {
			t.Fatalf("call %d: expected EOF, got %s", i, k)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct{ in, want string }{
		{`"plain"`, "plain"},
		{`"a\nb"`, "a\nb"},
		{`"tab\there"`, "tab\there"},
		{`"q\"q"`, `q"q`},
		{`"back\\slash"`, `back\slash`},
		{`"nul\0"`, "nul\x00"},
		{`"keep\q"`, `keep\q`},
	}
	for _, tt := range tests {
		if got := lexer.Unquote(tt.in); got != tt.want {
			t.Errorf("Unquote(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseIntLiterals(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"0123", 123},
		{"1_000", 1000},
		{"0xff", 255},
		{"0b1010", 10},
		{"9223372036854775807", 9223372036854775807},
	}
	for _, tt := range tests {
		got, err := lexer.ParseInt(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseInt(%q) = %d, %v; want %d", tt.in, got, err, tt.want)
		}
	}
	if _, diags := lexAll("9223372036854775808"); len(diags) != 1 || diags[0].Code != diag.LexBadNumber {
		t.Errorf("expected out of range diagnostic, got %v", diags)
	}
}
