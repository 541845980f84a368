package sema

import (
	"playground/internal/ast"
	"playground/internal/diag"
)

// ConstantCondition warns when `if` or `while` tests a literal bool.
type ConstantCondition struct{}

func (ConstantCondition) Name() string { return "constant-condition" }

func (ConstantCondition) Run(ctx *Context, r diag.Reporter) error {
	b := ctx.Builder
	check := func(cond ast.ExprID) {
		lit, ok := b.Exprs.Literal(b.Unparen(cond))
		if !ok {
			return
		}
		var text string
		switch lit.Kind {
		case ast.ExprLitTrue:
			text = "true"
		case ast.ExprLitFalse:
			text = "false"
		default:
			return
		}
		diag.ReportWarning(r, diag.SemaConstantCondition, b.Exprs.Get(cond).Span, "condition is always "+text).Emit()
	}

	b.Inspect(ctx.Body(), func(id ast.ExprID, e *ast.Expr) bool {
		switch e.Kind {
		case ast.ExprIf:
			data, _ := b.Exprs.If(id)
			check(data.Cond)
		case ast.ExprBlock:
			data, _ := b.Exprs.Block(id)
			for _, st := range data.Stmts {
				if w := b.Stmts.While(st); w != nil {
					check(w.Cond)
				}
			}
		}
		return true
	})
	return nil
}
