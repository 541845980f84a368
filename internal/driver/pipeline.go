package driver

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"playground/internal/ast"
	"playground/internal/bytecode"
	"playground/internal/diag"
	"playground/internal/diagfmt"
	"playground/internal/lower"
	"playground/internal/observ"
	"playground/internal/parser"
	"playground/internal/sema"
	"playground/internal/source"
	"playground/internal/trace"
	"playground/internal/vm"
)

// virtualName is the registry name of request text; diagnostics never print it.
const virtualName = "<input>"

// Exec runs one request and reports how far the pipeline got.
func (h *Harness) Exec(op Op, src string) Outcome {
	key, cacheable := h.cacheKey(op, src)
	if cacheable {
		if out, ok := h.cached(key); ok {
			return out
		}
	}
	out := h.exec(op, src)
	if cacheable && (out.Aborted == nil || out.Aborted.Reason != AbortInternal) {
		if err := h.opts.Cache.Put(key, &out); err != nil {
			trace.Point(h.opts.Tracer, trace.ScopeDriver, "cache.put", err.Error(), 0)
		}
	}
	return out
}

func (h *Harness) cached(key cacheKey) (Outcome, bool) {
	out, ok, err := h.opts.Cache.Get(key)
	if err != nil {
		trace.Point(h.opts.Tracer, trace.ScopeDriver, "cache.get", err.Error(), 0)
		return Outcome{}, false
	}
	if !ok {
		return Outcome{}, false
	}
	out.Cached = true
	return out, true
}

// request - состояние одного запроса; живёт только внутри exec.
type request struct {
	h     *Harness
	op    Op
	fs    *source.FileSet
	file  *source.File
	timer *observ.Timer
	root  *trace.Span
	diags []diag.Diagnostic
	out   Outcome
}

// phase opens a pipeline stage and returns the function closing it.
func (r *request) phase(name string) func(note string) {
	idx := -1
	if r.timer != nil {
		idx = r.timer.Begin(name)
	}
	if r.h.opts.Observer != nil {
		r.h.opts.Observer(PhaseEvent{Name: name, Status: PhaseStart})
	}
	span := trace.Begin(r.h.opts.Tracer, trace.ScopePass, "stage."+name, r.root.ID())
	return func(note string) {
		elapsed := span.End(note)
		if r.timer != nil {
			r.timer.End(idx, note)
		}
		if r.h.opts.Observer != nil {
			r.h.opts.Observer(PhaseEvent{Name: name, Status: PhaseEnd, Elapsed: elapsed})
		}
	}
}

func (r *request) abort(reason AbortReason) {
	r.out.Aborted = &Aborted{At: r.out.Stage, Reason: reason}
}

// finish fills the report from the collected findings; a clean run has none.
func (r *request) finish() {
	if len(r.diags) > 0 {
		r.out.Tally, _ = diag.Aggregate(r.diags)
		report := diagfmt.Render(r.diags, r.fs, r.h.opts.Mode)
		r.out.Response.Diagnostics = &report
	}
	if r.timer != nil {
		report := r.timer.Report()
		r.out.Timings = &report
	}
}

func (h *Harness) exec(op Op, src string) (out Outcome) {
	r := &request{h: h, op: op, fs: source.NewFileSet()}
	if h.opts.Timings {
		r.timer = observ.NewTimer()
	}
	r.root = trace.Begin(h.opts.Tracer, trace.ScopeDriver, "driver."+string(op), 0)
	r.file = r.fs.Get(r.fs.AddVirtual(virtualName, []byte(src)))

	defer func() {
		if rec := recover(); rec != nil {
			r.internalFault(rec)
		}
		r.finish()
		detail := "stage=" + r.out.Stage.String()
		if r.out.Aborted != nil {
			detail = r.out.Aborted.String()
		}
		r.root.End(detail)
		out = r.out
	}()
	r.run()
	return r.out
}

// internalFault turns a defect into a report. The primary result is null no
// matter what the pipeline had produced before the panic.
func (r *request) internalFault(rec any) {
	msg := fmt.Sprint(rec)
	if err, ok := rec.(error); ok {
		msg = err.Error()
	}
	r.diags = append(r.diags, diag.NewError(diag.InternalFault, source.NoSpan, "internal error: "+msg))
	r.out.Response.Result = Null
	r.abort(AbortInternal)
}

func (r *request) run() {
	switch r.op {
	case OpAST, OpDis, OpInterpret:
	default:
		panic(fmt.Errorf("unknown operation %q", r.op))
	}

	builder := ast.NewBuilder(ast.Hints{}, nil)
	end := r.phase(PhaseParse)
	bag := &diag.SliceReporter{}
	res := parser.ParseFile(r.fs, r.file, builder, parser.Options{
		MaxErrors: maxErrors(r.h.opts.MaxDiagnostics),
		Reporter:  bag,
	})
	r.diags = append(r.diags, bag.Items...)
	end(fmt.Sprintf("tokens=%d errors=%d", len(res.Tokens), res.Errors))
	if _, stop := diag.Aggregate(r.diags); stop || res.Errors > 0 {
		r.abort(AbortSyntax)
		return
	}
	r.out.Stage = StageParsed

	end = r.phase(PhaseAnalyze)
	findings, err := sema.Run(r.h.opts.Passes, &sema.Context{
		File:    r.file,
		Tokens:  res.Tokens,
		Builder: builder,
		AST:     res.File,
		Tracer:  r.h.opts.Tracer,
	})
	if err != nil {
		end("host failure")
		r.hostFailure(err)
		return
	}
	r.diags = append(r.diags, findings...)
	tally, stop := diag.Aggregate(r.diags)
	end(fmt.Sprintf("findings=%d", tally.Total()))
	if stop {
		r.abort(AbortAnalysis)
		if r.op == OpAST && r.h.opts.ASTPolicy == ASTLenient {
			r.out.Response.Result = Text(r.tree(builder, res.File))
		}
		return
	}
	r.out.Stage = StageAnalyzed

	if r.op == OpAST {
		r.out.Response.Result = Text(r.tree(builder, res.File))
		return
	}

	end = r.phase(PhaseLower)
	prog := lower.Body(builder, res.File, r.file)
	r.out.Stage = StageLowered
	end("")

	end = r.phase(PhaseResolve)
	code := prog.Resolve()
	r.out.Stage = StageResolved
	end(fmt.Sprintf("instructions=%d", code.Len()))

	if r.op == OpDis {
		r.out.Response.Result = Text(disassemble(code))
		return
	}
	r.execute(code)
}

// hostFailure replaces every earlier finding: the report holds only the
// analyzer failure, rendered without a source excerpt.
func (r *request) hostFailure(err error) {
	r.abort(AbortHost)
	report := diagfmt.RenderHostError(err, r.h.opts.Mode)
	r.out.Response = Response{Result: Null, Diagnostics: &report}
	r.out.Tally = diag.Tally{Errors: 1}
	r.diags = nil
}

func (r *request) tree(b *ast.Builder, file ast.FileID) string {
	var buf bytes.Buffer
	if err := diagfmt.FormatAST(&buf, b, file, r.fs); err != nil {
		panic(fmt.Errorf("format ast: %w", err))
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func disassemble(code *bytecode.Resolved) string {
	var buf bytes.Buffer
	if err := bytecode.Disassemble(&buf, code); err != nil {
		panic(fmt.Errorf("disassemble: %w", err))
	}
	if !utf8.Valid(buf.Bytes()) {
		panic(errors.New("disassembly is not valid UTF-8"))
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func (r *request) execute(code *bytecode.Resolved) {
	end := r.phase(PhaseExecute)
	machine := vm.New(code, vm.Options{MaxSteps: r.h.opts.MaxSteps, Tracer: r.h.opts.Tracer})
	if vmErr := machine.Run(); vmErr != nil {
		end(fmt.Sprintf("steps=%d error=%s", machine.Steps(), vmErr.Code.ID()))
		r.diags = append(r.diags, vmErr.Diagnostic())
		r.abort(AbortRuntime)
		return
	}
	end(fmt.Sprintf("steps=%d", machine.Steps()))
	r.out.Stage = StageExecuted

	v, ok := machine.PopTop()
	switch {
	case ok:
		r.out.Response.Result = Text(vm.Inspect(v, machine.Strings()))
	case len(r.diags) == 0:
		r.out.Response.Result = False
	default:
		r.out.Response.Result = Null
	}
}

func maxErrors(n int) uint {
	if n <= 0 {
		return 0
	}
	return uint(n)
}
