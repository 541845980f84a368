package ast

import (
	"playground/internal/source"
)

type StmtKind uint8

const (
	StmtLet StmtKind = iota
	StmtExpr
	StmtWhile
	StmtEmpty
)

func (k StmtKind) String() string {
	switch k {
	case StmtLet:
		return "Let"
	case StmtExpr:
		return "Expr"
	case StmtWhile:
		return "While"
	case StmtEmpty:
		return "Empty"
	}
	return "Stmt?"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type LetStmt struct {
	Name     source.StringID
	NameSpan source.Span
	Value    ExprID
}

// ExprStmt - выражение в позиции оператора; значение выбрасывается.
type ExprStmt struct {
	Expr ExprID
}

type WhileStmt struct {
	Cond ExprID
	Body ExprID
}

type Stmts struct {
	Arena  *Arena[Stmt]
	Lets   *Arena[LetStmt]
	Exprs  *Arena[ExprStmt]
	Whiles *Arena[WhileStmt]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:  NewArena[Stmt](capHint),
		Lets:   NewArena[LetStmt](capHint / 2),
		Exprs:  NewArena[ExprStmt](capHint / 2),
		Whiles: NewArena[WhileStmt](capHint / 8),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) NewLet(span source.Span, name source.StringID, nameSpan source.Span, value ExprID) StmtID {
	payload := s.Lets.Allocate(LetStmt{Name: name, NameSpan: nameSpan, Value: value})
	return s.new(StmtLet, span, PayloadID(payload))
}

func (s *Stmts) Let(id StmtID) *LetStmt {
	st := s.Get(id)
	if st == nil || st.Kind != StmtLet {
		return nil
	}
	return s.Lets.Get(uint32(st.Payload))
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	payload := s.Exprs.Allocate(ExprStmt{Expr: expr})
	return s.new(StmtExpr, span, PayloadID(payload))
}

func (s *Stmts) Expr(id StmtID) *ExprStmt {
	st := s.Get(id)
	if st == nil || st.Kind != StmtExpr {
		return nil
	}
	return s.Exprs.Get(uint32(st.Payload))
}

func (s *Stmts) NewWhile(span source.Span, cond, body ExprID) StmtID {
	payload := s.Whiles.Allocate(WhileStmt{Cond: cond, Body: body})
	return s.new(StmtWhile, span, PayloadID(payload))
}

func (s *Stmts) While(id StmtID) *WhileStmt {
	st := s.Get(id)
	if st == nil || st.Kind != StmtWhile {
		return nil
	}
	return s.Whiles.Get(uint32(st.Payload))
}

func (s *Stmts) NewEmpty(span source.Span) StmtID {
	return s.new(StmtEmpty, span, NoPayloadID)
}
