package ast

import (
	"playground/internal/source"
)

type ExprKind uint8

const (
	ExprBad ExprKind = iota
	ExprIdent
	ExprLit
	ExprBinary
	ExprUnary
	ExprGroup
	ExprAssign
	ExprBlock
	ExprIf
)

func (k ExprKind) String() string {
	switch k {
	case ExprBad:
		return "Bad"
	case ExprIdent:
		return "Ident"
	case ExprLit:
		return "Literal"
	case ExprBinary:
		return "Binary"
	case ExprUnary:
		return "Unary"
	case ExprGroup:
		return "Group"
	case ExprAssign:
		return "Assign"
	case ExprBlock:
		return "Block"
	case ExprIf:
		return "If"
	}
	return "Expr?"
}

// Expr - заголовок узла; данные лежат в арене своего вида по Payload.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type ExprLitKind uint8

const (
	ExprLitInt ExprLitKind = iota
	ExprLitFloat
	ExprLitString
	ExprLitTrue
	ExprLitFalse
	ExprLitNull
)

func (k ExprLitKind) String() string {
	switch k {
	case ExprLitInt:
		return "Int"
	case ExprLitFloat:
		return "Float"
	case ExprLitString:
		return "String"
	case ExprLitTrue:
		return "True"
	case ExprLitFalse:
		return "False"
	case ExprLitNull:
		return "Null"
	}
	return "Lit?"
}

type ExprBinaryOp uint8

const (
	ExprBinaryAdd ExprBinaryOp = iota
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryDiv
	ExprBinaryMod
	ExprBinaryEq
	ExprBinaryNotEq
	ExprBinaryLess
	ExprBinaryLessEq
	ExprBinaryGreater
	ExprBinaryGreaterEq
	ExprBinaryLogicalAnd
	ExprBinaryLogicalOr
)

var binaryOpText = [...]string{
	ExprBinaryAdd:        "+",
	ExprBinarySub:        "-",
	ExprBinaryMul:        "*",
	ExprBinaryDiv:        "/",
	ExprBinaryMod:        "%",
	ExprBinaryEq:         "==",
	ExprBinaryNotEq:      "!=",
	ExprBinaryLess:       "<",
	ExprBinaryLessEq:     "<=",
	ExprBinaryGreater:    ">",
	ExprBinaryGreaterEq:  ">=",
	ExprBinaryLogicalAnd: "&&",
	ExprBinaryLogicalOr:  "||",
}

func (op ExprBinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

type ExprUnaryOp uint8

const (
	ExprUnaryNeg ExprUnaryOp = iota
	ExprUnaryNot
)

func (op ExprUnaryOp) String() string {
	switch op {
	case ExprUnaryNeg:
		return "-"
	case ExprUnaryNot:
		return "!"
	}
	return "?"
}

type ExprIdentData struct {
	Name source.StringID
}

// ExprLiteralData: Value - исходный текст литерала (для строк вместе с кавычками).
type ExprLiteralData struct {
	Kind  ExprLitKind
	Value source.StringID
}

type ExprBinaryData struct {
	Op    ExprBinaryOp
	Left  ExprID
	Right ExprID
}

type ExprUnaryData struct {
	Op      ExprUnaryOp
	Operand ExprID
}

type ExprGroupData struct {
	Inner ExprID
}

type ExprAssignData struct {
	Target   source.StringID
	NameSpan source.Span
	Value    ExprID
}

// ExprBlockData - `{ stmts; tail }`. Tail == NoExprID, если значения нет.
type ExprBlockData struct {
	Stmts []StmtID
	Tail  ExprID
}

// ExprIfData: Else - блок, вложенный if (else if) или NoExprID.
type ExprIfData struct {
	Cond ExprID
	Then ExprID
	Else ExprID
}
