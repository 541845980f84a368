package parser

import (
	"playground/internal/ast"
	"playground/internal/diag"
	"playground/internal/token"
)

// parseExpr - вход в Pratt-разбор выражений. NoExprID, если выражения нет вовсе.
func (p *Parser) parseExpr() ast.ExprID {
	return p.parseBinaryExpr(precAssignment)
}

func (p *Parser) parseBinaryExpr(minPrec int) ast.ExprID {
	if !p.enter() {
		return p.tooDeep()
	}
	defer p.leave()

	left := p.parseUnaryExpr()
	if !left.IsValid() {
		return ast.NoExprID
	}

	for {
		opTok := p.peek()
		prec, rightAssoc := getBinaryOperatorPrec(opTok.Kind)
		if prec < minPrec {
			return left
		}
		p.advance()

		nextMin := prec + 1
		if rightAssoc {
			nextMin = prec
		}
		right := p.parseBinaryExpr(nextMin)
		if !right.IsValid() {
			right = p.arenas.Exprs.NewBad(p.afterSpan(opTok.Span))
		}

		leftSpan := p.arenas.Exprs.Get(left).Span
		sp := leftSpan.Cover(p.arenas.Exprs.Get(right).Span)
		if opTok.Kind == token.Assign {
			left = p.makeAssign(left, right)
			continue
		}
		left = p.arenas.Exprs.NewBinary(sp, binaryOps[opTok.Kind], left, right)
	}
}

// makeAssign проверяет, что слева имя.
func (p *Parser) makeAssign(target, value ast.ExprID) ast.ExprID {
	targetExpr := p.arenas.Exprs.Get(target)
	sp := targetExpr.Span.Cover(p.arenas.Exprs.Get(value).Span)
	ident, ok := p.arenas.Exprs.Ident(target)
	if !ok {
		if targetExpr.Kind != ast.ExprBad {
			p.report(diag.SynInvalidAssign, diag.SevError, targetExpr.Span, "invalid assignment target", nil)
		}
		return p.arenas.Exprs.NewBad(sp)
	}
	return p.arenas.Exprs.NewAssign(sp, ident.Name, targetExpr.Span, value)
}

func (p *Parser) parseUnaryExpr() ast.ExprID {
	var op ast.ExprUnaryOp
	switch p.peek().Kind {
	case token.Minus:
		op = ast.ExprUnaryNeg
	case token.Bang:
		op = ast.ExprUnaryNot
	default:
		return p.parsePrimaryExpr()
	}
	opTok := p.advance()
	var operand ast.ExprID
	if p.enter() {
		operand = p.parseUnaryExpr()
		p.leave()
	} else {
		operand = p.tooDeep()
	}
	if !operand.IsValid() {
		operand = p.arenas.Exprs.NewBad(p.afterSpan(opTok.Span))
	}
	sp := opTok.Span.Cover(p.arenas.Exprs.Get(operand).Span)
	return p.arenas.Exprs.NewUnary(sp, op, operand)
}

func (p *Parser) parsePrimaryExpr() ast.ExprID {
	tok := p.peek()
	exprs := p.arenas.Exprs
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return exprs.NewIdent(tok.Span, p.arenas.Strings.Intern(tok.Text))
	case token.IntLit:
		return p.literal(ast.ExprLitInt)
	case token.FloatLit:
		return p.literal(ast.ExprLitFloat)
	case token.StringLit:
		return p.literal(ast.ExprLitString)
	case token.KwTrue:
		return p.literal(ast.ExprLitTrue)
	case token.KwFalse:
		return p.literal(ast.ExprLitFalse)
	case token.KwNull:
		return p.literal(ast.ExprLitNull)
	case token.LParen:
		return p.parseGroup()
	case token.LBrace:
		return p.parseBlock()
	case token.KwIf:
		return p.parseIf()
	case token.Invalid:
		// лексер уже сообщил об ошибке
		p.advance()
		return exprs.NewBad(tok.Span)
	}
	p.err(diag.SynExpectExpression, "expected expression, found "+describe(tok))
	return ast.NoExprID
}

func (p *Parser) literal(kind ast.ExprLitKind) ast.ExprID {
	tok := p.advance()
	return p.arenas.Exprs.NewLiteral(tok.Span, kind, p.arenas.Strings.Intern(tok.Text))
}

// ( expr )
func (p *Parser) parseGroup() ast.ExprID {
	open := p.advance()
	inner := p.parseExpr()
	if !inner.IsValid() {
		inner = p.arenas.Exprs.NewBad(p.afterSpan(open.Span))
	}
	sp := open.Span.Cover(p.arenas.Exprs.Get(inner).Span)
	if closeTok, ok := p.expectClose(token.RParen, diag.SynUnclosedParen, open); ok {
		sp = sp.Cover(closeTok.Span)
	}
	return p.arenas.Exprs.NewGroup(sp, inner)
}

// { stmts; tail }. Если '{' нет - репорт и пустой блок.
func (p *Parser) parseBlock() ast.ExprID {
	if !p.enter() {
		return p.tooDeep()
	}
	defer p.leave()

	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{', found "+describe(p.peek()))
	if !ok {
		return p.arenas.Exprs.NewBlock(open.Span, nil, ast.NoExprID)
	}
	stmts, tail := p.parseBlockBody(token.RBrace)
	sp := open.Span.Cover(p.lastSpan)
	if closeTok, ok := p.expectClose(token.RBrace, diag.SynUnclosedBrace, open); ok {
		sp = sp.Cover(closeTok.Span)
	}
	return p.arenas.Exprs.NewBlock(sp, stmts, tail)
}

// if cond { } [else if ... | else { }]
func (p *Parser) parseIf() ast.ExprID {
	if !p.enter() {
		return p.tooDeep()
	}
	defer p.leave()

	ifTok := p.advance()
	cond := p.parseExpr()
	if !cond.IsValid() {
		cond = p.arenas.Exprs.NewBad(p.afterSpan(ifTok.Span))
	}
	then := p.parseBlock()
	sp := ifTok.Span.Cover(p.arenas.Exprs.Get(then).Span)

	els := ast.NoExprID
	if p.at(token.KwElse) {
		p.advance()
		if p.at(token.KwIf) {
			els = p.parseIf()
		} else {
			els = p.parseBlock()
		}
		sp = sp.Cover(p.arenas.Exprs.Get(els).Span)
	}
	return p.arenas.Exprs.NewIf(sp, cond, then, els)
}
