package driver

import (
	"fmt"
	"strings"

	"playground/internal/diagfmt"
	"playground/internal/project"
	"playground/internal/sema"
	"playground/internal/trace"
)

// Op selects the output of a request.
type Op string

const (
	OpAST       Op = "ast"
	OpDis       Op = "dis"
	OpInterpret Op = "interpret"
)

// ParseOp accepts the operation names of the CLI; "run" is an alias of interpret.
func ParseOp(s string) (Op, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ast":
		return OpAST, nil
	case "dis":
		return OpDis, nil
	case "interpret", "run":
		return OpInterpret, nil
	}
	return "", fmt.Errorf("unknown operation %q (want ast, dis or interpret)", s)
}

// ASTPolicy decides what `ast` returns when analysis finds errors.
type ASTPolicy uint8

const (
	// ASTStrict returns a null primary: the tree is not trusted for display.
	ASTStrict ASTPolicy = iota
	// ASTLenient returns the tree next to the report.
	ASTLenient
)

func ParseASTPolicy(s string) (ASTPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return ASTStrict, nil
	case "lenient":
		return ASTLenient, nil
	}
	return ASTStrict, fmt.Errorf("unknown ast policy %q (want strict or lenient)", s)
}

func (p ASTPolicy) String() string {
	if p == ASTLenient {
		return "lenient"
	}
	return "strict"
}

// Options configure a Harness once; they never change per request.
type Options struct {
	Mode diagfmt.Mode
	// MaxDiagnostics caps reported syntax errors; 0 means no cap.
	MaxDiagnostics int
	// MaxSteps is the interpreter budget: 0 takes vm.DefaultMaxSteps, <0 is unbounded.
	MaxSteps  int
	ASTPolicy ASTPolicy
	// Passes is the analyzer set in order; nil selects sema.DefaultPasses().
	Passes   []sema.Pass
	Tracer   trace.Tracer
	Observer PhaseObserver
	// Timings records per-stage durations into Outcome.Timings.
	Timings bool
	Cache   *ResponseCache
}

// OptionsFromConfig maps playground.toml onto harness options.
func OptionsFromConfig(cfg project.Config) (Options, error) {
	mode, err := diagfmt.ParseMode(cfg.Render.Mode)
	if err != nil {
		return Options{}, fmt.Errorf("[render].mode: %w", err)
	}
	policy, err := ParseASTPolicy(cfg.Pipeline.ASTPolicy)
	if err != nil {
		return Options{}, fmt.Errorf("[pipeline].ast_policy: %w", err)
	}
	opts := Options{
		Mode:           mode,
		MaxDiagnostics: cfg.Limits.MaxDiagnostics,
		MaxSteps:       cfg.Limits.MaxSteps,
		ASTPolicy:      policy,
	}
	if cfg.Pipeline.Passes != nil {
		passes, err := sema.Lookup(cfg.Pipeline.Passes)
		if err != nil {
			return Options{}, fmt.Errorf("[pipeline].passes: %w", err)
		}
		opts.Passes = passes
	}
	return opts, nil
}

// Harness runs playground requests. It is immutable after NewHarness and
// safe for concurrent use; each request allocates its own source registry,
// AST, program and interpreter.
type Harness struct {
	opts        Options
	fingerprint string
}

// NewHarness is the one-time initialisation of the playground.
func NewHarness(opts Options) *Harness {
	if opts.Passes == nil {
		opts.Passes = sema.DefaultPasses()
	} else {
		opts.Passes = append([]sema.Pass(nil), opts.Passes...)
	}
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	names := make([]string, len(opts.Passes))
	for i, p := range opts.Passes {
		names[i] = p.Name()
	}
	return &Harness{
		opts: opts,
		fingerprint: fmt.Sprintf("mode=%s max=%d steps=%d ast=%s passes=%s",
			opts.Mode, opts.MaxDiagnostics, opts.MaxSteps, opts.ASTPolicy, strings.Join(names, ",")),
	}
}

// withObserver derives a harness that reports phases to obs.
func (h *Harness) withObserver(obs PhaseObserver) *Harness {
	cpy := *h
	cpy.opts.Observer = obs
	return &cpy
}

// AST returns the pretty-printed syntax tree of src.
func (h *Harness) AST(src string) Response { return h.Exec(OpAST, src).Response }

// Dis returns the disassembly of the resolved program of src.
func (h *Harness) Dis(src string) Response { return h.Exec(OpDis, src).Response }

// Interpret runs src and returns the display form of its value.
func (h *Harness) Interpret(src string) Response { return h.Exec(OpInterpret, src).Response }

// Run dispatches on op.
func (h *Harness) Run(op Op, src string) Response { return h.Exec(op, src).Response }
