package sema

import (
	"playground/internal/diag"
)

// Names reports unresolved names and shadowed bindings.
type Names struct{}

func (Names) Name() string { return "names" }

func (Names) Run(ctx *Context, r diag.Reporter) error {
	b := ctx.Bindings()
	names := ctx.Builder

	// находки идут в порядке исходника: объявления и использования вперемешку
	di, ui := 0, 0
	for di < len(b.Decls) || ui < len(b.Uses) {
		if ui == len(b.Uses) || (di < len(b.Decls) && b.Decls[di].Span.Start < b.Uses[ui].Span.Start) {
			d := b.Decls[di]
			di++
			if d.Shadows == nil {
				continue
			}
			diag.ReportInfo(r, diag.SemaShadowSymbol, d.Span, "binding '"+names.Name(d.Name)+"' shadows an earlier binding").
				WithNote(d.Shadows.Span, "previous binding is here").
				Emit()
			continue
		}
		u := b.Uses[ui]
		ui++
		if u.Binding != nil {
			continue
		}
		msg := "cannot find name '" + names.Name(u.Name) + "'"
		if u.Write {
			msg = "cannot assign to undeclared name '" + names.Name(u.Name) + "'"
		}
		diag.ReportError(r, diag.SemaUnresolvedSymbol, u.Span, msg).Emit()
	}
	return nil
}
