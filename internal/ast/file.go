package ast

import (
	"playground/internal/source"
)

// File - корень программы. Body всегда блок (ExprBlock), даже для пустого ввода.
type File struct {
	Span source.Span
	Body ExprID
}

type Files struct {
	Arena *Arena[File]
}

func NewFiles(capHint uint) *Files {
	return &Files{
		Arena: NewArena[File](capHint),
	}
}

func (f *Files) New(sp source.Span, body ExprID) FileID {
	return FileID(f.Arena.Allocate(File{
		Span: sp,
		Body: body,
	}))
}

func (f *Files) Get(id FileID) *File {
	return f.Arena.Get(uint32(id))
}
