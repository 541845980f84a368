package bytecode

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"playground/internal/source"
)

func TestResolveRewritesLabels(t *testing.T) {
	p := NewProgram(nil)
	sp := source.NoSpan
	end := p.NewLabel()
	p.Emit(OpPushTrue, sp)
	p.EmitJump(OpJumpIfFalse, end, sp)
	p.EmitInt(1, sp)
	p.Emit(OpPop, sp)
	p.Place(end)

	r := p.Resolve()
	if r.Len() != 5 {
		t.Fatalf("expected 4 instructions + HALT, got %d", r.Len())
	}
	if got := r.At(1).Arg; got != 4 {
		t.Errorf("jump target: got %d, want 4", got)
	}
	if r.At(4).Op != OpHalt {
		t.Errorf("program must end with HALT")
	}
	// исходная программа не меняется
	if p.Code[1].Arg != int64(end) {
		t.Errorf("Resolve must not mutate the program")
	}
}

func TestResolvePanicsOnUnplacedLabel(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic")
		}
	}()
	p := NewProgram(nil)
	p.EmitJump(OpJump, p.NewLabel(), source.NoSpan)
	p.Resolve()
}

func TestDisassemble(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.tb", []byte("x\n  \"hé\"")))
	p := NewProgram(file)
	p.EmitString("hé", source.Span{File: file.ID, Start: 4, End: 9})
	p.EmitSlot(OpStore, 0, source.Span{File: file.ID, Start: 0, End: 1})

	var buf bytes.Buffer
	if err := Disassemble(&buf, p.Resolve()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !utf8.ValidString(out) {
		t.Fatalf("disassembly must be valid UTF-8")
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 lines, got:\n%s", out)
	}
	if lines[0] != "; 3 instructions, 1 locals, 1 strings" {
		t.Errorf("header: %q", lines[0])
	}
	for i, want := range []string{"0000  PUSH_STR", "0001  STORE", "0002  HALT"} {
		if !strings.HasPrefix(lines[i+1], want) {
			t.Errorf("line %d: %q should start with %q", i+1, lines[i+1], want)
		}
	}
	if !strings.Contains(lines[1], `#1 "hé"`) || !strings.HasSuffix(lines[1], "; 2:3") {
		t.Errorf("string operand or origin missing: %q", lines[1])
	}
	if !strings.Contains(lines[2], "$0") {
		t.Errorf("slot operand missing: %q", lines[2])
	}
}
