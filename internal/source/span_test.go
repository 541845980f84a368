package source

import "testing"

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 5, End: 12}
	if got := a.Cover(b); got != (Span{File: 1, Start: 5, End: 20}) {
		t.Fatalf("Cover = %v", got)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Fatalf("cross-file Cover must keep receiver, got %v", got)
	}
}

func TestSpanValidity(t *testing.T) {
	if NoSpan.IsValid() {
		t.Fatal("NoSpan must be invalid")
	}
	if NoSpan.String() != "-" {
		t.Fatalf("NoSpan.String() = %q", NoSpan.String())
	}
	sp := Span{File: 0, Start: 3, End: 3}
	if !sp.IsValid() || !sp.Empty() || sp.Len() != 0 {
		t.Fatalf("unexpected state for %v", sp)
	}
	if !(Span{File: 0, Start: 0, End: 10}).Contains(Span{File: 0, Start: 2, End: 4}) {
		t.Fatal("expected containment")
	}
}
