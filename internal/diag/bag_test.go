package diag

import (
	"testing"

	"playground/internal/source"
)

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)
	for i := 0; i < 3; i++ {
		bag.Add(mk(SevWarning))
	}
	if bag.Len() != 2 || bag.Dropped() != 1 {
		t.Fatalf("len=%d dropped=%d", bag.Len(), bag.Dropped())
	}
	if bag.HasErrors() || !bag.HasWarnings() {
		t.Fatal("unexpected severity flags")
	}
}

func TestBagReporterAndTally(t *testing.T) {
	bag := NewBag(0)
	r := BagReporter{Bag: bag}
	ReportError(r, LexUnterminatedString, source.Span{Start: 1, End: 2}, "unterminated string literal").Emit()
	ReportInfo(r, SemaEmptyStatement, source.Span{Start: 3, End: 4}, "empty statement").
		WithNote(source.Span{Start: 0, End: 1}, "here").
		Emit()
	if got := bag.Tally(); got != (Tally{Info: 1, Errors: 1}) {
		t.Fatalf("tally = %+v", got)
	}
	if len(bag.Items()[1].Notes) != 1 {
		t.Fatal("note lost")
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	var r SliceReporter
	b := ReportWarning(&r, SemaUnusedBinding, source.NoSpan, "unused")
	b.Emit()
	b.Emit()
	if len(r.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(r.Items))
	}
}

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main", []byte("let x = 1;\nx +\n"))
	items := []Diagnostic{
		NewError(SynExpectExpression, source.Span{File: id, Start: 14, End: 15}, "expected expression"),
		New(SevWarning, SemaUnusedBinding, source.NoSpan, "multi\nline"),
	}
	want := "error SYN2203 2:4 expected expression\nwarning SEM3003 - multi line"
	if got := FormatShort(items, fs); got != want {
		t.Fatalf("FormatShort =\n%s\nwant\n%s", got, want)
	}
}

func TestCodeIDs(t *testing.T) {
	tests := map[Code]string{
		LexUnterminatedString: "LEX1002",
		SynExpectSemicolon:    "SYN2012",
		SemaUnusedBinding:     "SEM3003",
		RunStepLimit:          "RUN4003",
		InternalFault:         "INT9001",
		UnknownCode:           "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
}
