package lower

import (
	"fmt"

	"playground/internal/ast"
	"playground/internal/bytecode"
	"playground/internal/lexer"
)

var binaryOps = map[ast.ExprBinaryOp]bytecode.Op{
	ast.ExprBinaryAdd:       bytecode.OpAdd,
	ast.ExprBinarySub:       bytecode.OpSub,
	ast.ExprBinaryMul:       bytecode.OpMul,
	ast.ExprBinaryDiv:       bytecode.OpDiv,
	ast.ExprBinaryMod:       bytecode.OpMod,
	ast.ExprBinaryEq:        bytecode.OpEq,
	ast.ExprBinaryNotEq:     bytecode.OpNotEq,
	ast.ExprBinaryLess:      bytecode.OpLess,
	ast.ExprBinaryLessEq:    bytecode.OpLessEq,
	ast.ExprBinaryGreater:   bytecode.OpGreater,
	ast.ExprBinaryGreaterEq: bytecode.OpGreaterEq,
}

// expr оставляет на стеке ровно одно значение.
func (l *lowerer) expr(id ast.ExprID) {
	e := l.b.Exprs.Get(id)
	if e == nil {
		panic(fmt.Errorf("lower: missing expression %d", id))
	}
	p := l.prog
	switch e.Kind {
	case ast.ExprLit:
		l.literal(id)
	case ast.ExprIdent:
		data, _ := l.b.Exprs.Ident(id)
		p.EmitSlot(bytecode.OpLoad, l.slot(data.Name), e.Span)
	case ast.ExprGroup:
		data, _ := l.b.Exprs.Group(id)
		l.expr(data.Inner)
	case ast.ExprUnary:
		data, _ := l.b.Exprs.Unary(id)
		l.expr(data.Operand)
		if data.Op == ast.ExprUnaryNeg {
			p.Emit(bytecode.OpNeg, e.Span)
		} else {
			p.Emit(bytecode.OpNot, e.Span)
		}
	case ast.ExprBinary:
		data, _ := l.b.Exprs.Binary(id)
		switch data.Op {
		case ast.ExprBinaryLogicalAnd:
			l.shortCircuit(e, data, bytecode.OpJumpIfFalse, bytecode.OpPushTrue, bytecode.OpPushFalse)
		case ast.ExprBinaryLogicalOr:
			l.shortCircuit(e, data, bytecode.OpJumpIfTrue, bytecode.OpPushFalse, bytecode.OpPushTrue)
		default:
			l.expr(data.Left)
			l.expr(data.Right)
			p.Emit(binaryOps[data.Op], e.Span)
		}
	case ast.ExprAssign:
		data, _ := l.b.Exprs.Assign(id)
		l.expr(data.Value)
		p.Emit(bytecode.OpDup, e.Span)
		p.EmitSlot(bytecode.OpStore, l.slot(data.Target), data.NameSpan)
	case ast.ExprBlock:
		data, _ := l.b.Exprs.Block(id)
		l.push()
		for _, st := range data.Stmts {
			l.stmt(st)
		}
		if data.Tail.IsValid() {
			l.expr(data.Tail)
		} else {
			p.Emit(bytecode.OpPushNull, e.Span)
		}
		l.pop()
	case ast.ExprIf:
		data, _ := l.b.Exprs.If(id)
		elseLabel, end := p.NewLabel(), p.NewLabel()
		l.expr(data.Cond)
		p.EmitJump(bytecode.OpJumpIfFalse, elseLabel, l.b.Exprs.Get(data.Cond).Span)
		l.expr(data.Then)
		p.EmitJump(bytecode.OpJump, end, e.Span)
		p.Place(elseLabel)
		if data.Else.IsValid() {
			l.expr(data.Else)
		} else {
			p.Emit(bytecode.OpPushNull, e.Span)
		}
		p.Place(end)
	default:
		panic(fmt.Errorf("lower: unexpected %s expression", e.Kind))
	}
}

// shortCircuit: a && b  =>  a; JIF f; b; JIF f; TRUE; JUMP end; f: FALSE; end:
// (для || зеркально). Оба операнда проверяются на bool самой машиной.
func (l *lowerer) shortCircuit(e *ast.Expr, data *ast.ExprBinaryData, jump, through, taken bytecode.Op) {
	p := l.prog
	out, end := p.NewLabel(), p.NewLabel()
	l.expr(data.Left)
	p.EmitJump(jump, out, e.Span)
	l.expr(data.Right)
	p.EmitJump(jump, out, e.Span)
	p.Emit(through, e.Span)
	p.EmitJump(bytecode.OpJump, end, e.Span)
	p.Place(out)
	p.Emit(taken, e.Span)
	p.Place(end)
}

func (l *lowerer) literal(id ast.ExprID) {
	e := l.b.Exprs.Get(id)
	lit, _ := l.b.Exprs.Literal(id)
	text := l.b.Name(lit.Value)
	p := l.prog
	switch lit.Kind {
	case ast.ExprLitInt:
		v, err := lexer.ParseInt(text)
		if err != nil {
			panic(fmt.Errorf("lower: int literal %q: %w", text, err))
		}
		p.EmitInt(v, e.Span)
	case ast.ExprLitFloat:
		v, err := lexer.ParseFloat(text)
		if err != nil {
			panic(fmt.Errorf("lower: float literal %q: %w", text, err))
		}
		p.EmitFloat(v, e.Span)
	case ast.ExprLitString:
		p.EmitString(lexer.Unquote(text), e.Span)
	case ast.ExprLitTrue:
		p.Emit(bytecode.OpPushTrue, e.Span)
	case ast.ExprLitFalse:
		p.Emit(bytecode.OpPushFalse, e.Span)
	case ast.ExprLitNull:
		p.Emit(bytecode.OpPushNull, e.Span)
	}
}
