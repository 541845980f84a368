package parser

import (
	"playground/internal/diag"
	"playground/internal/source"
	"playground/internal/token"
)

// advance - съедает следующий токен и обновляет lastSpan. EOF не съедается.
func (p *Parser) advance() token.Token {
	tok := p.tokens[p.pos]
	if tok.Kind == token.EOF {
		return tok
	}
	p.pos++
	p.afterInvalid = tok.Kind == token.Invalid
	p.lastSpan = tok.Span
	return tok
}

// getDiagnosticSpan - на EOF указываем сразу после последнего токена, а не в конец trivia.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.pos > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect - ожидаем конкретный токен. Если нет - репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg, nil)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.peek().Text}, false
}

// expectClose - как expect, но с заметкой на открывающую скобку.
func (p *Parser) expectClose(k token.Kind, code diag.Code, open token.Token) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	closing := "}"
	if k == token.RParen {
		closing = ")"
	}
	msg := "expected '" + closing + "', found " + describe(p.peek())
	notes := []diag.Note{{Span: open.Span, Msg: "unclosed '" + open.Text + "' opened here"}}
	p.report(code, diag.SevError, diagSpan, msg, notes)
	return token.Token{Kind: token.Invalid, Span: diagSpan}, false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg, nil)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string, notes []diag.Note) bool {
	if sev.IsError() && p.afterInvalid {
		return false
	}
	enough := p.opts.Enough()
	if sev.IsError() {
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter == nil || enough {
		return false
	}
	p.opts.Reporter.Report(code, sev, sp, msg, notes)
	return true
}

// describe выдаёт текст токена для сообщений; для EOF - "end of input".
func describe(tok token.Token) string {
	if tok.Kind == token.EOF {
		return "end of input"
	}
	return "'" + tok.Text + "'"
}
