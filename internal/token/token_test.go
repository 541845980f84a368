package token_test

import (
	"testing"

	"playground/internal/source"
	"playground/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{token.IntLit, token.FloatLit, token.StringLit, token.KwTrue, token.KwFalse, token.KwNull}
	for _, k := range lits {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwLet, token.Plus, token.LParen}
	for _, k := range non {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestLookupKeyword(t *testing.T) {
	if k, ok := token.LookupKeyword("while"); !ok || k != token.KwWhile {
		t.Fatalf("while -> %v %v", k, ok)
	}
	if _, ok := token.LookupKeyword("While"); ok {
		t.Fatal("keywords are case sensitive")
	}
	if !tok(token.KwNull).IsKeyword() || tok(token.Ident).IsKeyword() {
		t.Fatal("unexpected IsKeyword result")
	}
}

func TestKindString(t *testing.T) {
	if token.Semicolon.String() != "Semicolon" || token.EOF.String() != "EOF" {
		t.Fatal("unexpected kind names")
	}
	if token.Kind(200).String() != "Kind?" {
		t.Fatal("unknown kind must not panic")
	}
}
