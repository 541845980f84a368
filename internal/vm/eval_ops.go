package vm

import (
	"math"
	"strings"

	"playground/internal/bytecode"
	"playground/internal/diag"
)

func (vm *VM) unary(op bytecode.Op, v Value) (Value, *VMError) {
	switch op {
	case bytecode.OpNeg:
		switch v.Kind {
		case VKInt:
			n, ok := NegInt64Checked(v.Int)
			if !ok {
				return Value{}, vm.fault(diag.RunIntOverflow, "integer overflow in negation")
			}
			return MakeInt(n), nil
		case VKFloat:
			return MakeFloat(-v.F), nil
		}
		return Value{}, vm.fault(diag.RunTypeMismatch, "cannot negate "+v.Kind.String())
	case bytecode.OpNot:
		if v.Kind != VKBool {
			return Value{}, vm.fault(diag.RunTypeMismatch, "'!' expects bool, found "+v.Kind.String())
		}
		return MakeBool(!v.Bool), nil
	}
	panic("vm: not a unary op: " + op.String())
}

func (vm *VM) binary(op bytecode.Op, l, r Value) (Value, *VMError) {
	switch op {
	case bytecode.OpEq:
		return MakeBool(vm.equal(l, r)), nil
	case bytecode.OpNotEq:
		return MakeBool(!vm.equal(l, r)), nil
	case bytecode.OpLess, bytecode.OpLessEq, bytecode.OpGreater, bytecode.OpGreaterEq:
		return vm.compare(op, l, r)
	}

	if op == bytecode.OpAdd && l.Kind == VKString && r.Kind == VKString {
		ls, _ := vm.strings.Lookup(l.Str)
		rs, _ := vm.strings.Lookup(r.Str)
		return MakeString(vm.strings.Intern(ls + rs)), nil
	}
	if !l.IsNumeric() || !r.IsNumeric() {
		return Value{}, vm.fault(diag.RunTypeMismatch,
			"unsupported operand types for '"+opSymbol(op)+"': "+l.Kind.String()+" and "+r.Kind.String())
	}
	if l.Kind == VKInt && r.Kind == VKInt {
		return vm.intArith(op, l.Int, r.Int)
	}
	return vm.floatArith(op, l.AsFloat(), r.AsFloat())
}

func (vm *VM) intArith(op bytecode.Op, a, b int64) (Value, *VMError) {
	var (
		res int64
		ok  = true
	)
	switch op {
	case bytecode.OpAdd:
		res, ok = AddInt64Checked(a, b)
	case bytecode.OpSub:
		res, ok = SubInt64Checked(a, b)
	case bytecode.OpMul:
		res, ok = MulInt64Checked(a, b)
	case bytecode.OpDiv, bytecode.OpMod:
		if b == 0 {
			return Value{}, vm.fault(diag.RunDivisionByZero, "integer division by zero")
		}
		if a == math.MinInt64 && b == -1 {
			ok = false
		} else if op == bytecode.OpDiv {
			res = a / b
		} else {
			res = a % b
		}
	}
	if !ok {
		return Value{}, vm.fault(diag.RunIntOverflow, "integer overflow in '"+opSymbol(op)+"'")
	}
	return MakeInt(res), nil
}

func (vm *VM) floatArith(op bytecode.Op, a, b float64) (Value, *VMError) {
	switch op {
	case bytecode.OpAdd:
		return MakeFloat(a + b), nil
	case bytecode.OpSub:
		return MakeFloat(a - b), nil
	case bytecode.OpMul:
		return MakeFloat(a * b), nil
	}
	if b == 0 {
		return Value{}, vm.fault(diag.RunDivisionByZero, "float division by zero")
	}
	if op == bytecode.OpDiv {
		return MakeFloat(a / b), nil
	}
	return MakeFloat(math.Mod(a, b)), nil
}

// equal: разные типы не равны, кроме int/float, которые сравниваются численно.
func (vm *VM) equal(l, r Value) bool {
	if l.IsNumeric() && r.IsNumeric() {
		if l.Kind == VKInt && r.Kind == VKInt {
			return l.Int == r.Int
		}
		return l.AsFloat() == r.AsFloat()
	}
	if l.Kind != r.Kind {
		return false
	}
	switch l.Kind {
	case VKBool:
		return l.Bool == r.Bool
	case VKString:
		return l.Str == r.Str
	}
	return true // null == null
}

func (vm *VM) compare(op bytecode.Op, l, r Value) (Value, *VMError) {
	var c int
	switch {
	case l.Kind == VKInt && r.Kind == VKInt:
		c = cmpOrdered(l.Int, r.Int)
	case l.IsNumeric() && r.IsNumeric():
		c = cmpOrdered(l.AsFloat(), r.AsFloat())
	case l.Kind == VKString && r.Kind == VKString:
		ls, _ := vm.strings.Lookup(l.Str)
		rs, _ := vm.strings.Lookup(r.Str)
		c = strings.Compare(ls, rs)
	default:
		return Value{}, vm.fault(diag.RunTypeMismatch,
			"cannot compare "+l.Kind.String()+" with "+r.Kind.String())
	}
	switch op {
	case bytecode.OpLess:
		return MakeBool(c < 0), nil
	case bytecode.OpLessEq:
		return MakeBool(c <= 0), nil
	case bytecode.OpGreater:
		return MakeBool(c > 0), nil
	}
	return MakeBool(c >= 0), nil
}

func cmpOrdered[T int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func opSymbol(op bytecode.Op) string {
	switch op {
	case bytecode.OpAdd:
		return "+"
	case bytecode.OpSub:
		return "-"
	case bytecode.OpMul:
		return "*"
	case bytecode.OpDiv:
		return "/"
	case bytecode.OpMod:
		return "%"
	}
	return op.String()
}
