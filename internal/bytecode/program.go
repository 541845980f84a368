package bytecode

import (
	"fmt"
	"math"

	"playground/internal/source"
)

// Label - символическая ссылка на позицию; разрешается в Resolve.
type Label uint32

const unplaced = -1

// Instr is one instruction. Arg is the int literal, slot, string id, label or
// (after resolution) the absolute jump target, depending on Op.
type Instr struct {
	Op    Op
	Arg   int64
	Float float64
	Span  source.Span
}

// Program is a lowered instruction list whose jumps still refer to labels.
// It can only be executed or disassembled after Resolve.
type Program struct {
	Code    []Instr
	Strings *source.Interner // пул строковых констант
	Locals  int
	Source  *source.File

	labels []int
}

func NewProgram(src *source.File) *Program {
	return &Program{
		Code:    make([]Instr, 0, 64),
		Strings: source.NewInterner(),
		Source:  src,
	}
}

// NewLabel allocates a label that must be placed exactly once before Resolve.
func (p *Program) NewLabel() Label {
	p.labels = append(p.labels, unplaced)
	return Label(len(p.labels) - 1)
}

// Place binds l to the address of the next emitted instruction.
func (p *Program) Place(l Label) {
	if p.labels[l] != unplaced {
		panic(fmt.Errorf("label L%d placed twice", l))
	}
	p.labels[l] = len(p.Code)
}

func (p *Program) Emit(op Op, sp source.Span) {
	p.Code = append(p.Code, Instr{Op: op, Span: sp})
}

func (p *Program) EmitInt(v int64, sp source.Span) {
	p.Code = append(p.Code, Instr{Op: OpPushInt, Arg: v, Span: sp})
}

func (p *Program) EmitFloat(v float64, sp source.Span) {
	p.Code = append(p.Code, Instr{Op: OpPushFloat, Float: v, Span: sp})
}

func (p *Program) EmitString(s string, sp source.Span) {
	id := p.Strings.Intern(s)
	p.Code = append(p.Code, Instr{Op: OpPushString, Arg: int64(id), Span: sp})
}

// EmitSlot emits OpLoad or OpStore for a local slot.
func (p *Program) EmitSlot(op Op, slot int, sp source.Span) {
	if slot >= p.Locals {
		p.Locals = slot + 1
	}
	p.Code = append(p.Code, Instr{Op: op, Arg: int64(slot), Span: sp})
}

func (p *Program) EmitJump(op Op, l Label, sp source.Span) {
	if !op.IsJump() {
		panic(fmt.Errorf("%s is not a jump", op))
	}
	p.Code = append(p.Code, Instr{Op: op, Arg: int64(l), Span: sp})
}

// Resolve rewrites labels into absolute addresses and terminates the code with
// HALT. The Program must not be modified afterwards. An unplaced label is a
// lowering defect and panics.
func (p *Program) Resolve() *Resolved {
	code := make([]Instr, len(p.Code), len(p.Code)+1)
	copy(code, p.Code)
	for i := range code {
		if !code[i].Op.IsJump() {
			continue
		}
		l := code[i].Arg
		if l < 0 || l >= int64(len(p.labels)) || p.labels[l] == unplaced {
			panic(fmt.Errorf("instruction %04d jumps to unplaced label L%d", i, l))
		}
		code[i].Arg = int64(p.labels[l])
	}
	end := source.Span{File: source.NoFileID}
	if p.Source != nil {
		n := uint32(len(p.Source.Content))
		end = source.Span{File: p.Source.ID, Start: n, End: n}
	}
	code = append(code, Instr{Op: OpHalt, Span: end})
	if len(code) > math.MaxInt32 {
		panic(fmt.Errorf("program too large: %d instructions", len(code)))
	}
	return &Resolved{
		code:    code,
		strings: p.Strings.Snapshot(),
		locals:  p.Locals,
		source:  p.Source,
	}
}

// Resolved is a Program whose every jump points at a valid address.
// It is produced only by Program.Resolve.
type Resolved struct {
	code    []Instr
	strings []string
	locals  int
	source  *source.File
}

func (r *Resolved) Len() int { return len(r.code) }

func (r *Resolved) At(pc int) Instr { return r.code[pc] }

func (r *Resolved) Locals() int { return r.locals }

func (r *Resolved) Source() *source.File { return r.source }

// Strings returns the constant pool; index 0 is the empty sentinel.
func (r *Resolved) Strings() []string { return r.strings }
