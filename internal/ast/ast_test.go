package ast

import (
	"testing"

	"playground/internal/source"
)

func TestArenaIsOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil {
		t.Fatalf("index 0 must be nil")
	}
	id := a.Allocate(7)
	if id != 1 || *a.Get(id) != 7 {
		t.Fatalf("got id=%d", id)
	}
	if a.Get(2) != nil {
		t.Fatalf("out of range index must be nil")
	}
}

func TestInspectVisitsStatementsAndTail(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	sp := source.Span{Start: 0, End: 1}
	one := b.Exprs.NewLiteral(sp, ExprLitInt, b.Strings.Intern("1"))
	x := b.Exprs.NewIdent(sp, b.Strings.Intern("x"))
	let := b.Stmts.NewLet(sp, b.Strings.Intern("x"), sp, one)
	grp := b.Exprs.NewGroup(sp, x)
	body := b.Exprs.NewBlock(sp, []StmtID{let}, grp)

	var seen []ExprKind
	b.Inspect(body, func(_ ExprID, e *Expr) bool {
		seen = append(seen, e.Kind)
		return true
	})
	want := []ExprKind{ExprBlock, ExprLit, ExprGroup, ExprIdent}
	if len(seen) != len(want) {
		t.Fatalf("got %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("visit %d: got %s, want %s", i, seen[i], want[i])
		}
	}
	if b.Unparen(grp) != x {
		t.Errorf("Unparen must strip the group")
	}
}
