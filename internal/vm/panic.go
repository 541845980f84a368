package vm

import (
	"errors"
	"fmt"

	"playground/internal/diag"
	"playground/internal/source"
)

// ErrStepLimit is matched by errors.Is on a VMError raised by the step budget.
var ErrStepLimit = errors.New("step limit exceeded")

// VMError is a runtime fault at the instruction that raised it.
type VMError struct {
	Code    diag.Code
	Message string
	Span    source.Span
	PC      int
}

// Error implements the error interface.
func (e *VMError) Error() string {
	return fmt.Sprintf("runtime error %s at %04d: %s", e.Code.ID(), e.PC, e.Message)
}

func (e *VMError) Unwrap() error {
	if e.Code == diag.RunStepLimit {
		return ErrStepLimit
	}
	return nil
}

// Diagnostic converts the fault into an Error-severity diagnostic.
func (e *VMError) Diagnostic() diag.Diagnostic {
	return diag.NewError(e.Code, e.Span, e.Message)
}
