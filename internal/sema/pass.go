package sema

import (
	"errors"
	"fmt"

	"playground/internal/ast"
	"playground/internal/diag"
	"playground/internal/source"
	"playground/internal/token"
	"playground/internal/trace"
)

var (
	// ErrPassFailed marks a host failure: a pass returned an error or panicked.
	ErrPassFailed = errors.New("analyzer pass failed")
	// ErrUnknownPass is returned by Lookup for names missing from the registry.
	ErrUnknownPass = errors.New("unknown analyzer pass")
)

// Context - всё, что видит проход. Один Context на запрос.
type Context struct {
	File    *source.File
	Tokens  []token.Token
	Builder *ast.Builder
	AST     ast.FileID
	Tracer  trace.Tracer

	bindings *Bindings
}

// Body returns the root block of the parsed file.
func (ctx *Context) Body() ast.ExprID {
	f := ctx.Builder.Files.Get(ctx.AST)
	if f == nil {
		return ast.NoExprID
	}
	return f.Body
}

// Bindings resolves names once and shares the result between passes.
func (ctx *Context) Bindings() *Bindings {
	if ctx.bindings == nil {
		ctx.bindings = resolveBindings(ctx.Builder, ctx.Body())
	}
	return ctx.bindings
}

// Pass is one analyzer. Findings go to r; a returned error is a host failure.
type Pass interface {
	Name() string
	Run(ctx *Context, r diag.Reporter) error
}

// Run executes passes in order and returns their findings in pass order,
// then occurrence order. The first host failure stops the run.
func Run(passes []Pass, ctx *Context) ([]diag.Diagnostic, error) {
	if ctx == nil || ctx.Builder == nil {
		return nil, fmt.Errorf("%w: nil analysis context", ErrPassFailed)
	}
	tracer := ctx.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	out := &diag.SliceReporter{}
	for _, p := range passes {
		span := trace.Begin(tracer, trace.ScopePass, "sema."+p.Name(), 0)
		err := runPass(p, ctx, out)
		span.End(fmt.Sprintf("findings=%d", len(out.Items)))
		if err != nil {
			return nil, err
		}
	}
	return out.Items, nil
}

func runPass(p Pass, ctx *Context, out diag.Reporter) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: panic: %v", ErrPassFailed, p.Name(), r)
		}
	}()
	if err := p.Run(ctx, out); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPassFailed, p.Name(), err)
	}
	return nil
}
