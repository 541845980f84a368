package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"playground/internal/ast"
	"playground/internal/source"
)

// CheckSpanInvariants walks a parsed file and checks that:
// 1) file.Span lies within the file content and points at sf
// 2) every statement and expression span lies within its parent's span
// 3) only placeholder (Bad) expressions and empty blocks may have empty spans
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.Start != 0 || f.Span.End != lenContent {
		return fmt.Errorf("file span %v does not cover content of %d bytes", f.Span, lenContent)
	}

	w := walker{b: b, file: sf.ID}
	return w.expr(f.Body, f.Span)
}

type walker struct {
	b    *ast.Builder
	file source.FileID
}

func (w walker) within(what string, sp, parent source.Span) error {
	if sp.File != w.file {
		return fmt.Errorf("%s span file mismatch: got=%d want=%d", what, sp.File, w.file)
	}
	if sp.End < sp.Start {
		return fmt.Errorf("%s span is inverted: %v", what, sp)
	}
	if sp.Start < parent.Start || sp.End > parent.End {
		return fmt.Errorf("%s span %v is outside parent span %v", what, sp, parent)
	}
	return nil
}

func (w walker) expr(id ast.ExprID, parent source.Span) error {
	if !id.IsValid() {
		return nil
	}
	e := w.b.Exprs.Get(id)
	if e == nil {
		return fmt.Errorf("nil expr for id=%d", id)
	}
	what := "expr " + e.Kind.String()
	if err := w.within(what, e.Span, parent); err != nil {
		return err
	}
	if e.Span.Empty() && e.Kind != ast.ExprBad && e.Kind != ast.ExprBlock {
		return fmt.Errorf("%s has an empty span", what)
	}

	switch e.Kind {
	case ast.ExprBinary:
		data, _ := w.b.Exprs.Binary(id)
		return w.exprs(e.Span, data.Left, data.Right)
	case ast.ExprUnary:
		data, _ := w.b.Exprs.Unary(id)
		return w.expr(data.Operand, e.Span)
	case ast.ExprGroup:
		data, _ := w.b.Exprs.Group(id)
		return w.expr(data.Inner, e.Span)
	case ast.ExprAssign:
		data, _ := w.b.Exprs.Assign(id)
		if err := w.within("assign target", data.NameSpan, e.Span); err != nil {
			return err
		}
		return w.expr(data.Value, e.Span)
	case ast.ExprIf:
		data, _ := w.b.Exprs.If(id)
		return w.exprs(e.Span, data.Cond, data.Then, data.Else)
	case ast.ExprBlock:
		data, _ := w.b.Exprs.Block(id)
		for _, st := range data.Stmts {
			if err := w.stmt(st, e.Span); err != nil {
				return err
			}
		}
		return w.expr(data.Tail, e.Span)
	}
	return nil
}

func (w walker) exprs(parent source.Span, ids ...ast.ExprID) error {
	for _, id := range ids {
		if err := w.expr(id, parent); err != nil {
			return err
		}
	}
	return nil
}

func (w walker) stmt(id ast.StmtID, parent source.Span) error {
	st := w.b.Stmts.Get(id)
	if st == nil {
		return fmt.Errorf("nil stmt for id=%d", id)
	}
	what := "stmt " + st.Kind.String()
	if err := w.within(what, st.Span, parent); err != nil {
		return err
	}
	switch st.Kind {
	case ast.StmtLet:
		let := w.b.Stmts.Let(id)
		if err := w.within("let name", let.NameSpan, st.Span); err != nil {
			return err
		}
		return w.expr(let.Value, st.Span)
	case ast.StmtExpr:
		return w.expr(w.b.Stmts.Expr(id).Expr, st.Span)
	case ast.StmtWhile:
		data := w.b.Stmts.While(id)
		return w.exprs(st.Span, data.Cond, data.Body)
	}
	return nil
}
