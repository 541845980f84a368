// Package lower turns a checked AST into a label-based bytecode program.
package lower

import (
	"fmt"

	"playground/internal/ast"
	"playground/internal/bytecode"
	"playground/internal/source"
)

// Body lowers the program of file. The tree must be free of syntax errors and
// every name must resolve: anything else is a defect and panics.
// The program's value, if it has one, is left on the stack.
func Body(b *ast.Builder, file ast.FileID, src *source.File) *bytecode.Program {
	f := b.Files.Get(file)
	if f == nil {
		panic(fmt.Errorf("lower: unknown file %d", file))
	}
	l := lowerer{b: b, prog: bytecode.NewProgram(src)}
	block, ok := b.Exprs.Block(f.Body)
	if !ok {
		panic(fmt.Errorf("lower: file body is not a block"))
	}
	l.push()
	for _, st := range block.Stmts {
		l.stmt(st)
	}
	if block.Tail.IsValid() {
		l.expr(block.Tail)
	}
	l.pop()
	return l.prog
}

type lowerer struct {
	b      *ast.Builder
	prog   *bytecode.Program
	scopes []map[source.StringID]int
	slots  int
}

func (l *lowerer) push() { l.scopes = append(l.scopes, map[source.StringID]int{}) }
func (l *lowerer) pop()  { l.scopes = l.scopes[:len(l.scopes)-1] }

// каждый let получает свой слот, даже при затенении
func (l *lowerer) declare(name source.StringID) int {
	slot := l.slots
	l.slots++
	l.scopes[len(l.scopes)-1][name] = slot
	return slot
}

func (l *lowerer) slot(name source.StringID) int {
	for i := len(l.scopes) - 1; i >= 0; i-- {
		if slot, ok := l.scopes[i][name]; ok {
			return slot
		}
	}
	panic(fmt.Errorf("lower: unresolved name %q", l.b.Name(name)))
}

func (l *lowerer) stmt(id ast.StmtID) {
	st := l.b.Stmts.Get(id)
	switch st.Kind {
	case ast.StmtLet:
		let := l.b.Stmts.Let(id)
		l.expr(let.Value)
		l.prog.EmitSlot(bytecode.OpStore, l.declare(let.Name), let.NameSpan)
	case ast.StmtExpr:
		e := l.b.Stmts.Expr(id).Expr
		l.expr(e)
		l.prog.Emit(bytecode.OpPop, st.Span)
	case ast.StmtWhile:
		w := l.b.Stmts.While(id)
		top, end := l.prog.NewLabel(), l.prog.NewLabel()
		l.prog.Place(top)
		l.expr(w.Cond)
		l.prog.EmitJump(bytecode.OpJumpIfFalse, end, l.b.Exprs.Get(w.Cond).Span)
		l.expr(w.Body)
		l.prog.Emit(bytecode.OpPop, st.Span)
		l.prog.EmitJump(bytecode.OpJump, top, st.Span)
		l.prog.Place(end)
	case ast.StmtEmpty:
	default:
		panic(fmt.Errorf("lower: unexpected statement %s", st.Kind))
	}
}
