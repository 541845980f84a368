package sema

import (
	"playground/internal/ast"
	"playground/internal/diag"
	"playground/internal/lexer"
)

// LiteralDivision reports `/` and `%` whose right operand is a literal zero.
type LiteralDivision struct{}

func (LiteralDivision) Name() string { return "literal-division" }

func (LiteralDivision) Run(ctx *Context, r diag.Reporter) error {
	b := ctx.Builder
	b.Inspect(ctx.Body(), func(id ast.ExprID, e *ast.Expr) bool {
		bin, ok := b.Exprs.Binary(id)
		if !ok || (bin.Op != ast.ExprBinaryDiv && bin.Op != ast.ExprBinaryMod) {
			return true
		}
		if isLiteralZero(b, bin.Right) {
			what := "division"
			if bin.Op == ast.ExprBinaryMod {
				what = "remainder"
			}
			diag.ReportError(r, diag.SemaDivisionByZero, e.Span, what+" by literal zero").
				WithNote(b.Exprs.Get(bin.Right).Span, "divisor is zero").
				Emit()
		}
		return true
	})
	return nil
}

// isLiteralZero смотрит сквозь скобки и унарный минус.
func isLiteralZero(b *ast.Builder, id ast.ExprID) bool {
	id = b.Unparen(id)
	if u, ok := b.Exprs.Unary(id); ok && u.Op == ast.ExprUnaryNeg {
		return isLiteralZero(b, u.Operand)
	}
	lit, ok := b.Exprs.Literal(id)
	if !ok {
		return false
	}
	text := b.Name(lit.Value)
	switch lit.Kind {
	case ast.ExprLitInt:
		v, err := lexer.ParseInt(text)
		return err == nil && v == 0
	case ast.ExprLitFloat:
		v, err := lexer.ParseFloat(text)
		return err == nil && v == 0
	}
	return false
}
