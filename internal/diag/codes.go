package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexBadEscape                Code = 1005

	// Синтаксические
	SynUnexpectedToken  Code = 2001
	SynUnclosedParen    Code = 2006
	SynUnclosedBrace    Code = 2007
	SynExpectSemicolon  Code = 2012
	SynExpectAssign     Code = 2018
	SynExpectIdentifier Code = 2102
	SynExpectExpression Code = 2203
	SynInvalidAssign    Code = 2204
	SynNestingTooDeep   Code = 2301

	// Семантические
	SemaUnresolvedSymbol  Code = 3001
	SemaShadowSymbol      Code = 3002
	SemaUnusedBinding     Code = 3003
	SemaConstantCondition Code = 3004
	SemaDivisionByZero    Code = 3005
	SemaEmptyStatement    Code = 3101
	SemaAnalyzerFailed    Code = 3900

	// Исполнение
	RunTypeMismatch   Code = 4001
	RunDivisionByZero Code = 4002
	RunStepLimit      Code = 4003
	RunIntOverflow    Code = 4004

	// Внутренние дефекты харнесса
	InternalFault Code = 9001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number",
	LexBadEscape:                "Bad escape sequence",
	SynUnexpectedToken:          "Unexpected token",
	SynUnclosedParen:            "Unclosed parenthesis",
	SynUnclosedBrace:            "Unclosed brace",
	SynExpectSemicolon:          "Expect semicolon",
	SynExpectAssign:             "Expect '='",
	SynExpectIdentifier:         "Expect identifier",
	SynExpectExpression:         "Expect expression",
	SynInvalidAssign:            "Invalid assignment target",
	SynNestingTooDeep:           "Nesting too deep",
	SemaUnresolvedSymbol:        "Unresolved symbol",
	SemaShadowSymbol:            "Shadowed symbol",
	SemaUnusedBinding:           "Unused binding",
	SemaConstantCondition:       "Constant condition",
	SemaDivisionByZero:          "Division by zero",
	SemaEmptyStatement:          "Empty statement",
	SemaAnalyzerFailed:          "Analyzer failed",
	RunTypeMismatch:             "Runtime type mismatch",
	RunDivisionByZero:           "Runtime division by zero",
	RunStepLimit:                "Step limit exceeded",
	RunIntOverflow:              "Integer overflow",
	InternalFault:               "Internal error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("RUN%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("INT%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
