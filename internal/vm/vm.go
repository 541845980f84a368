package vm

import (
	"fmt"

	"playground/internal/bytecode"
	"playground/internal/diag"
	"playground/internal/source"
	"playground/internal/trace"
)

// DefaultMaxSteps bounds execution when Options.MaxSteps is zero.
const DefaultMaxSteps = 1_000_000

type Options struct {
	// MaxSteps - бюджет инструкций; <0 снимает ограничение.
	MaxSteps int
	Tracer   trace.Tracer
}

// VM runs one resolved program once. Not safe for concurrent use.
type VM struct {
	code    *bytecode.Resolved
	stack   []Value
	locals  []Value
	strings *StringTable
	opts    Options
	pc      int
	steps   int
	halted  bool
}

func New(code *bytecode.Resolved, opts Options) *VM {
	if opts.MaxSteps == 0 {
		opts.MaxSteps = DefaultMaxSteps
	}
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	return &VM{
		code:    code,
		stack:   make([]Value, 0, 16),
		locals:  make([]Value, code.Locals()),
		strings: newStringTable(code.Strings()),
		opts:    opts,
	}
}

// Strings exposes the runtime string table for value inspection.
func (vm *VM) Strings() *StringTable {
	return vm.strings
}

// Steps reports how many instructions were executed.
func (vm *VM) Steps() int {
	return vm.steps
}

// Run executes until HALT or the first runtime fault.
func (vm *VM) Run() (vmErr *VMError) {
	span := trace.Begin(vm.opts.Tracer, trace.ScopePass, "vm.run", 0)
	defer func() {
		detail := fmt.Sprintf("steps=%d", vm.steps)
		if vmErr != nil {
			detail += " error=" + vmErr.Code.ID()
		}
		span.End(detail)
	}()

	for !vm.halted {
		if vm.opts.MaxSteps > 0 && vm.steps >= vm.opts.MaxSteps {
			return vm.fault(diag.RunStepLimit, fmt.Sprintf("execution exceeded %d steps", vm.opts.MaxSteps))
		}
		if vmErr := vm.Step(); vmErr != nil {
			return vmErr
		}
	}
	return nil
}

// Step executes one instruction.
func (vm *VM) Step() *VMError {
	if vm.halted {
		return nil
	}
	in := vm.code.At(vm.pc)
	vm.steps++
	next := vm.pc + 1

	switch in.Op {
	case bytecode.OpNop:
	case bytecode.OpPushInt:
		vm.push(MakeInt(in.Arg))
	case bytecode.OpPushFloat:
		vm.push(MakeFloat(in.Float))
	case bytecode.OpPushString:
		vm.push(MakeString(vm.constString(in.Arg)))
	case bytecode.OpPushTrue:
		vm.push(MakeBool(true))
	case bytecode.OpPushFalse:
		vm.push(MakeBool(false))
	case bytecode.OpPushNull:
		vm.push(Value{})
	case bytecode.OpLoad:
		vm.push(vm.locals[in.Arg])
	case bytecode.OpStore:
		vm.locals[in.Arg] = vm.pop()
	case bytecode.OpDup:
		vm.push(vm.peek())
	case bytecode.OpPop:
		vm.pop()
	case bytecode.OpNeg, bytecode.OpNot:
		v, err := vm.unary(in.Op, vm.pop())
		if err != nil {
			return err
		}
		vm.push(v)
	case bytecode.OpAdd, bytecode.OpSub, bytecode.OpMul, bytecode.OpDiv, bytecode.OpMod,
		bytecode.OpEq, bytecode.OpNotEq, bytecode.OpLess, bytecode.OpLessEq, bytecode.OpGreater, bytecode.OpGreaterEq:
		right := vm.pop()
		left := vm.pop()
		v, err := vm.binary(in.Op, left, right)
		if err != nil {
			return err
		}
		vm.push(v)
	case bytecode.OpJump:
		next = int(in.Arg)
	case bytecode.OpJumpIfFalse, bytecode.OpJumpIfTrue:
		cond := vm.pop()
		if cond.Kind != VKBool {
			return vm.fault(diag.RunTypeMismatch, "condition must be bool, found "+cond.Kind.String())
		}
		if cond.Bool == (in.Op == bytecode.OpJumpIfTrue) {
			next = int(in.Arg)
		}
	case bytecode.OpHalt:
		vm.halted = true
		return nil
	default:
		panic(fmt.Errorf("vm: unknown opcode %d at %04d", in.Op, vm.pc))
	}
	vm.pc = next
	return nil
}

// PopTop removes the value left on top of the stack after Run.
func (vm *VM) PopTop() (Value, bool) {
	if len(vm.stack) == 0 {
		return Value{}, false
	}
	return vm.pop(), true
}

func (vm *VM) push(v Value) {
	vm.stack = append(vm.stack, v)
}

// pop на пустом стеке - дефект понижения, не ошибка программы
func (vm *VM) pop() Value {
	n := len(vm.stack)
	if n == 0 {
		panic(fmt.Errorf("vm: stack underflow at %04d", vm.pc))
	}
	v := vm.stack[n-1]
	vm.stack = vm.stack[:n-1]
	return v
}

func (vm *VM) peek() Value {
	if len(vm.stack) == 0 {
		panic(fmt.Errorf("vm: stack underflow at %04d", vm.pc))
	}
	return vm.stack[len(vm.stack)-1]
}

// constString переводит id пула констант в id таблицы строк (после NFC они могут слиться).
func (vm *VM) constString(id int64) source.StringID {
	pool := vm.code.Strings()
	if id <= 0 || id >= int64(len(pool)) {
		return vm.strings.Intern("")
	}
	return vm.strings.Intern(pool[id])
}

func (vm *VM) fault(code diag.Code, msg string) *VMError {
	return &VMError{Code: code, Message: msg, Span: vm.code.At(vm.pc).Span, PC: vm.pc}
}
