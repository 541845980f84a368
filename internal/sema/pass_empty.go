package sema

import (
	"playground/internal/diag"
	"playground/internal/token"
)

// EmptyStatements - токенный проход: ';' сразу после начала программы,
// '{' или другой ';' ничего не завершает.
type EmptyStatements struct{}

func (EmptyStatements) Name() string { return "empty-statements" }

func (EmptyStatements) Run(ctx *Context, r diag.Reporter) error {
	prev := token.Semicolon // начало файла ведёт себя как ';'
	for _, tok := range ctx.Tokens {
		if tok.Kind == token.Semicolon && (prev == token.Semicolon || prev == token.LBrace) {
			diag.ReportInfo(r, diag.SemaEmptyStatement, tok.Span, "unnecessary ';'").Emit()
		}
		prev = tok.Kind
	}
	return nil
}
