package ast

// Inspect обходит выражение в глубину (pre-order). Если fn вернул false,
// потомки узла пропускаются. Операторы внутри блоков тоже обходятся.
func (b *Builder) Inspect(id ExprID, fn func(ExprID, *Expr) bool) {
	e := b.Exprs.Get(id)
	if e == nil || !fn(id, e) {
		return
	}
	switch e.Kind {
	case ExprBinary:
		data, _ := b.Exprs.Binary(id)
		b.Inspect(data.Left, fn)
		b.Inspect(data.Right, fn)
	case ExprUnary:
		data, _ := b.Exprs.Unary(id)
		b.Inspect(data.Operand, fn)
	case ExprGroup:
		data, _ := b.Exprs.Group(id)
		b.Inspect(data.Inner, fn)
	case ExprAssign:
		data, _ := b.Exprs.Assign(id)
		b.Inspect(data.Value, fn)
	case ExprIf:
		data, _ := b.Exprs.If(id)
		b.Inspect(data.Cond, fn)
		b.Inspect(data.Then, fn)
		b.Inspect(data.Else, fn)
	case ExprBlock:
		data, _ := b.Exprs.Block(id)
		for _, st := range data.Stmts {
			b.InspectStmt(st, fn)
		}
		b.Inspect(data.Tail, fn)
	}
}

// InspectStmt обходит выражения одного оператора.
func (b *Builder) InspectStmt(id StmtID, fn func(ExprID, *Expr) bool) {
	st := b.Stmts.Get(id)
	if st == nil {
		return
	}
	switch st.Kind {
	case StmtLet:
		b.Inspect(b.Stmts.Let(id).Value, fn)
	case StmtExpr:
		b.Inspect(b.Stmts.Expr(id).Expr, fn)
	case StmtWhile:
		data := b.Stmts.While(id)
		b.Inspect(data.Cond, fn)
		b.Inspect(data.Body, fn)
	}
}

// Unparen снимает скобки: ((x)) -> x.
func (b *Builder) Unparen(id ExprID) ExprID {
	for {
		g, ok := b.Exprs.Group(id)
		if !ok {
			return id
		}
		id = g.Inner
	}
}

// TooDeep ищет первое выражение, чьё поддерево выше limit уровней.
// Потомки аллоцируются раньше родителя, поэтому хватает одного прохода по арене
// без рекурсии: высота родителя считается из уже посчитанных высот детей.
func (b *Builder) TooDeep(limit uint32) (ExprID, bool) {
	n := b.Exprs.Arena.Len()
	heights := make([]uint32, n+1)
	of := func(id ExprID) uint32 {
		if !id.IsValid() || uint32(id) > n {
			return 0
		}
		return heights[id]
	}
	ofStmt := func(id StmtID) uint32 {
		st := b.Stmts.Get(id)
		if st == nil {
			return 0
		}
		switch st.Kind {
		case StmtLet:
			return 1 + of(b.Stmts.Let(id).Value)
		case StmtExpr:
			return 1 + of(b.Stmts.Expr(id).Expr)
		case StmtWhile:
			data := b.Stmts.While(id)
			return 1 + max(of(data.Cond), of(data.Body))
		}
		return 1
	}

	for i := uint32(1); i <= n; i++ {
		id := ExprID(i)
		var child uint32
		switch b.Exprs.Get(id).Kind {
		case ExprBinary:
			data, _ := b.Exprs.Binary(id)
			child = max(of(data.Left), of(data.Right))
		case ExprUnary:
			data, _ := b.Exprs.Unary(id)
			child = of(data.Operand)
		case ExprGroup:
			data, _ := b.Exprs.Group(id)
			child = of(data.Inner)
		case ExprAssign:
			data, _ := b.Exprs.Assign(id)
			child = of(data.Value)
		case ExprIf:
			data, _ := b.Exprs.If(id)
			child = max(of(data.Cond), of(data.Then), of(data.Else))
		case ExprBlock:
			data, _ := b.Exprs.Block(id)
			child = of(data.Tail)
			for _, st := range data.Stmts {
				child = max(child, ofStmt(st))
			}
		}
		heights[i] = child + 1
		if heights[i] > limit {
			return id, true
		}
	}
	return NoExprID, false
}
