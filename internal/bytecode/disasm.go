package bytecode

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Disassemble writes one instruction per line:
//
//	0003  JUMP_IF_FALSE  -> 0007        ; 2:4
func Disassemble(w io.Writer, r *Resolved) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "; %d instructions, %d locals, %d strings\n", r.Len(), r.locals, len(r.strings)-1)
	for pc, in := range r.code {
		line := fmt.Sprintf("%04d  %-14s %s", pc, in.Op, r.operand(in))
		if pos := r.origin(in); pos != "" {
			line = fmt.Sprintf("%-40s ; %s", line, pos)
		}
		if _, err := bw.WriteString(strings.TrimRight(line, " ") + "\n"); err != nil {
			return fmt.Errorf("write disassembly: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush disassembly: %w", err)
	}
	return nil
}

func (r *Resolved) operand(in Instr) string {
	switch in.Op {
	case OpPushInt:
		return strconv.FormatInt(in.Arg, 10)
	case OpPushFloat:
		return strconv.FormatFloat(in.Float, 'g', -1, 64)
	case OpPushString:
		s := ""
		if in.Arg >= 0 && in.Arg < int64(len(r.strings)) {
			s = r.strings[in.Arg]
		}
		return fmt.Sprintf("#%d %s", in.Arg, strconv.Quote(s))
	case OpLoad, OpStore:
		return "$" + strconv.FormatInt(in.Arg, 10)
	case OpJump, OpJumpIfFalse, OpJumpIfTrue:
		return fmt.Sprintf("-> %04d", in.Arg)
	}
	return ""
}

func (r *Resolved) origin(in Instr) string {
	if r.source == nil || in.Span.File != r.source.ID {
		return ""
	}
	pos := r.source.Position(in.Span.Start)
	return fmt.Sprintf("%d:%d", pos.Line, pos.Col)
}
