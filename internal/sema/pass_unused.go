package sema

import (
	"strings"

	"playground/internal/diag"
)

// Unused warns about bindings that are never read. Names starting with '_' are exempt.
type Unused struct{}

func (Unused) Name() string { return "unused" }

func (Unused) Run(ctx *Context, r diag.Reporter) error {
	for _, d := range ctx.Bindings().Decls {
		if d.Reads > 0 {
			continue
		}
		name := ctx.Builder.Name(d.Name)
		if strings.HasPrefix(name, "_") {
			continue
		}
		diag.ReportWarning(r, diag.SemaUnusedBinding, d.Span, "binding '"+name+"' is never read").Emit()
	}
	return nil
}
