package parser

import (
	"playground/internal/ast"
	"playground/internal/diag"
	"playground/internal/source"
	"playground/internal/token"
)

// parseBlockBody разбирает операторы до end (RBrace или EOF), не съедая его.
// Последнее выражение без ';' становится хвостом (значением блока).
func (p *Parser) parseBlockBody(end token.Kind) ([]ast.StmtID, ast.ExprID) {
	var stmts []ast.StmtID
	tail := ast.NoExprID
	for !p.at(end) && !p.at(token.EOF) {
		before := p.pos
		stmt, expr := p.parseStmt(end)
		switch {
		case stmt.IsValid():
			stmts = append(stmts, stmt)
		case expr.IsValid():
			tail = expr
		}
		if p.pos == before {
			// ничего не съели - пропускаем токен, иначе зациклимся
			p.advance()
		}
	}
	return stmts, tail
}

// parseStmt возвращает либо оператор, либо хвостовое выражение блока.
func (p *Parser) parseStmt(end token.Kind) (ast.StmtID, ast.ExprID) {
	switch p.peek().Kind {
	case token.Semicolon:
		tok := p.advance()
		return p.arenas.Stmts.NewEmpty(tok.Span), ast.NoExprID
	case token.KwLet:
		return p.parseLetStmt(), ast.NoExprID
	case token.KwWhile:
		return p.parseWhileStmt(), ast.NoExprID
	}

	expr := p.parseExpr()
	if !expr.IsValid() {
		return ast.NoStmtID, ast.NoExprID
	}
	exprSpan := p.arenas.Exprs.Get(expr).Span

	switch {
	case p.at(token.Semicolon):
		semi := p.advance()
		return p.arenas.Stmts.NewExpr(exprSpan.Cover(semi.Span), expr), ast.NoExprID
	case p.at(end) || p.at(token.EOF):
		return ast.NoStmtID, expr
	case p.arenas.Exprs.IsBlockLike(expr):
		return p.arenas.Stmts.NewExpr(exprSpan, expr), ast.NoExprID
	}

	p.report(diag.SynExpectSemicolon, diag.SevError, p.afterSpan(exprSpan),
		"expected ';' after expression, found "+describe(p.peek()), nil)
	return p.arenas.Stmts.NewExpr(exprSpan, expr), ast.NoExprID
}

// let name = value;
func (p *Parser) parseLetStmt() ast.StmtID {
	letTok := p.advance()

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected identifier after 'let', found "+describe(p.peek()))
	if !ok {
		p.resyncStatement()
		return p.arenas.Stmts.NewEmpty(letTok.Span.Cover(p.lastSpan))
	}
	name := p.arenas.Strings.Intern(nameTok.Text)

	if _, ok := p.expect(token.Assign, diag.SynExpectAssign, "expected '=' after binding name, found "+describe(p.peek())); !ok {
		p.resyncStatement()
		bad := p.arenas.Exprs.NewBad(p.afterSpan(nameTok.Span))
		return p.arenas.Stmts.NewLet(letTok.Span.Cover(p.lastSpan), name, nameTok.Span, bad)
	}
	value := p.parseExpr()
	if !value.IsValid() {
		value = p.arenas.Exprs.NewBad(p.afterSpan(p.lastSpan))
	}

	sp := letTok.Span.Cover(p.arenas.Exprs.Get(value).Span)
	if semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after let binding, found "+describe(p.peek())); ok {
		sp = sp.Cover(semi.Span)
	}
	return p.arenas.Stmts.NewLet(sp, name, nameTok.Span, value)
}

// while cond { body }
func (p *Parser) parseWhileStmt() ast.StmtID {
	whileTok := p.advance()
	cond := p.parseExpr()
	if !cond.IsValid() {
		cond = p.arenas.Exprs.NewBad(p.afterSpan(whileTok.Span))
	}
	body := p.parseBlock()
	sp := whileTok.Span.Cover(p.arenas.Exprs.Get(body).Span)
	return p.arenas.Stmts.NewWhile(sp, cond, body)
}

// resyncStatement прокручивает до ';' (съедая её) или до начала следующего оператора.
func (p *Parser) resyncStatement() {
	for !p.at_or(token.EOF, token.RBrace, token.KwLet, token.KwWhile) {
		if p.advance().Kind == token.Semicolon {
			return
		}
	}
}

// afterSpan - пустой span сразу за sp.
func (p *Parser) afterSpan(sp source.Span) source.Span {
	return source.Span{File: sp.File, Start: sp.End, End: sp.End}
}
