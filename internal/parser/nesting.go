package parser

import (
	"playground/internal/ast"
	"playground/internal/diag"
	"playground/internal/token"
)

const (
	// maxNestingDepth - предел рекурсии парсера (скобки, блоки, if, унарные цепочки).
	maxNestingDepth = 1000
	// maxTreeHeight - предел высоты готового дерева; все обходы AST рекурсивны.
	maxTreeHeight = 2 * maxNestingDepth

	msgTooDeep = "expression nested too deeply"
)

// enter открывает уровень вложенности; false - предел исчерпан.
func (p *Parser) enter() bool {
	if p.depth >= maxNestingDepth {
		return false
	}
	p.depth++
	return true
}

func (p *Parser) leave() { p.depth-- }

// tooDeep репортит ошибку на текущем токене и пропускает конструкцию целиком,
// не спускаясь в неё. Возвращает Bad на пропущенный участок.
func (p *Parser) tooDeep() ast.ExprID {
	start := p.getDiagnosticSpan()
	if !p.tooDeepSeen {
		p.tooDeepSeen = true
		p.report(diag.SynNestingTooDeep, diag.SevError, start, msgTooDeep, nil)
	}
	before := p.pos
	p.skipNested()
	sp := start
	if p.pos > before {
		sp = start.Cover(p.lastSpan)
	}
	return p.arenas.Exprs.NewBad(sp)
}

// skipNested съедает токены до ';' или чужой закрывающей скобки на нулевом
// уровне (их не трогает) либо до закрытия скобки, открытой по пути.
func (p *Parser) skipNested() {
	for level := 0; !p.at(token.EOF); {
		switch p.peek().Kind {
		case token.LParen, token.LBrace:
			level++
		case token.RParen, token.RBrace:
			if level == 0 {
				return
			}
			level--
			if level == 0 {
				p.advance()
				return
			}
		case token.Semicolon:
			if level == 0 {
				return
			}
		}
		p.advance()
	}
}
