package diag

import (
	"playground/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one finding. It is immutable once emitted.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span // source.NoSpan for source-wide findings
	Notes    []Note
}
