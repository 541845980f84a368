package sema

import (
	"playground/internal/ast"
	"playground/internal/source"
)

// Binding - одно объявление `let`.
type Binding struct {
	Name    source.StringID
	Span    source.Span // span имени
	Stmt    ast.StmtID
	Reads   int
	Shadows *Binding // видимое ранее объявление того же имени
}

// Use - чтение или запись имени. Binding == nil, если имя не найдено.
type Use struct {
	Expr    ast.ExprID
	Span    source.Span
	Name    source.StringID
	Write   bool
	Binding *Binding
}

// Bindings is the name resolution of one file in declaration/use order.
type Bindings struct {
	Decls []*Binding
	Uses  []Use
}

type scopeStack struct {
	b      *ast.Builder
	scopes []map[source.StringID]*Binding
	out    *Bindings
}

func resolveBindings(b *ast.Builder, body ast.ExprID) *Bindings {
	s := scopeStack{b: b, out: &Bindings{}}
	s.expr(body)
	return s.out
}

func (s *scopeStack) push() { s.scopes = append(s.scopes, map[source.StringID]*Binding{}) }
func (s *scopeStack) pop()  { s.scopes = s.scopes[:len(s.scopes)-1] }

func (s *scopeStack) lookup(name source.StringID) *Binding {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if bnd, ok := s.scopes[i][name]; ok {
			return bnd
		}
	}
	return nil
}

func (s *scopeStack) declare(stmt ast.StmtID, let *ast.LetStmt) {
	bnd := &Binding{Name: let.Name, Span: let.NameSpan, Stmt: stmt, Shadows: s.lookup(let.Name)}
	s.scopes[len(s.scopes)-1][let.Name] = bnd
	s.out.Decls = append(s.out.Decls, bnd)
}

func (s *scopeStack) use(id ast.ExprID, sp source.Span, name source.StringID, write bool) {
	bnd := s.lookup(name)
	if bnd != nil && !write {
		bnd.Reads++
	}
	s.out.Uses = append(s.out.Uses, Use{Expr: id, Span: sp, Name: name, Write: write, Binding: bnd})
}

// expr обходит в порядке вычисления: значение let разрешается до объявления имени.
func (s *scopeStack) expr(id ast.ExprID) {
	e := s.b.Exprs.Get(id)
	if e == nil {
		return
	}
	switch e.Kind {
	case ast.ExprIdent:
		data, _ := s.b.Exprs.Ident(id)
		s.use(id, e.Span, data.Name, false)
	case ast.ExprBinary:
		data, _ := s.b.Exprs.Binary(id)
		s.expr(data.Left)
		s.expr(data.Right)
	case ast.ExprUnary:
		data, _ := s.b.Exprs.Unary(id)
		s.expr(data.Operand)
	case ast.ExprGroup:
		data, _ := s.b.Exprs.Group(id)
		s.expr(data.Inner)
	case ast.ExprAssign:
		data, _ := s.b.Exprs.Assign(id)
		s.expr(data.Value)
		s.use(id, data.NameSpan, data.Target, true)
	case ast.ExprIf:
		data, _ := s.b.Exprs.If(id)
		s.expr(data.Cond)
		s.expr(data.Then)
		s.expr(data.Else)
	case ast.ExprBlock:
		data, _ := s.b.Exprs.Block(id)
		s.push()
		for _, st := range data.Stmts {
			s.stmt(st)
		}
		s.expr(data.Tail)
		s.pop()
	}
}

func (s *scopeStack) stmt(id ast.StmtID) {
	st := s.b.Stmts.Get(id)
	switch st.Kind {
	case ast.StmtLet:
		let := s.b.Stmts.Let(id)
		s.expr(let.Value)
		s.declare(id, let)
	case ast.StmtExpr:
		s.expr(s.b.Stmts.Expr(id).Expr)
	case ast.StmtWhile:
		data := s.b.Stmts.While(id)
		s.expr(data.Cond)
		s.expr(data.Body)
	}
}
