package bytecode

// Op - код инструкции стековой машины.
type Op uint8

const (
	OpNop Op = iota
	OpPushInt
	OpPushFloat
	OpPushString
	OpPushTrue
	OpPushFalse
	OpPushNull
	OpLoad  // push locals[slot]
	OpStore // locals[slot] = pop
	OpDup
	OpPop
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpNeg
	OpNot
	OpEq
	OpNotEq
	OpLess
	OpLessEq
	OpGreater
	OpGreaterEq
	OpJump
	OpJumpIfFalse // pop; прыжок, если false
	OpJumpIfTrue  // pop; прыжок, если true
	OpHalt
)

var opNames = [...]string{
	OpNop:         "NOP",
	OpPushInt:     "PUSH_INT",
	OpPushFloat:   "PUSH_FLOAT",
	OpPushString:  "PUSH_STR",
	OpPushTrue:    "PUSH_TRUE",
	OpPushFalse:   "PUSH_FALSE",
	OpPushNull:    "PUSH_NULL",
	OpLoad:        "LOAD",
	OpStore:       "STORE",
	OpDup:         "DUP",
	OpPop:         "POP",
	OpAdd:         "ADD",
	OpSub:         "SUB",
	OpMul:         "MUL",
	OpDiv:         "DIV",
	OpMod:         "MOD",
	OpNeg:         "NEG",
	OpNot:         "NOT",
	OpEq:          "EQ",
	OpNotEq:       "NE",
	OpLess:        "LT",
	OpLessEq:      "LE",
	OpGreater:     "GT",
	OpGreaterEq:   "GE",
	OpJump:        "JUMP",
	OpJumpIfFalse: "JUMP_IF_FALSE",
	OpJumpIfTrue:  "JUMP_IF_TRUE",
	OpHalt:        "HALT",
}

func (op Op) String() string {
	if int(op) < len(opNames) && opNames[op] != "" {
		return opNames[op]
	}
	return "OP?"
}

// IsJump reports whether the operand of op is a label (before Resolve) or an address (after).
func (op Op) IsJump() bool {
	return op == OpJump || op == OpJumpIfFalse || op == OpJumpIfTrue
}
