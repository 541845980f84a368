package driver

import (
	"fmt"

	"playground/internal/diag"
	"playground/internal/observ"
)

// Stage is a state of the request pipeline. Transitions only move forward:
// Start → Parsed → Analyzed → Lowered → Resolved → Executed.
type Stage uint8

const (
	StageStart Stage = iota
	StageParsed
	StageAnalyzed
	StageLowered
	StageResolved
	StageExecuted
)

var stageNames = [...]string{
	StageStart:    "start",
	StageParsed:   "parsed",
	StageAnalyzed: "analyzed",
	StageLowered:  "lowered",
	StageResolved: "resolved",
	StageExecuted: "executed",
}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", s)
}

// AbortReason classifies why the pipeline stopped early.
type AbortReason uint8

const (
	AbortSyntax   AbortReason = iota + 1 // syntax error while parsing
	AbortAnalysis                        // error-class analyzer finding
	AbortHost                            // analyzer host failure
	AbortRuntime                         // runtime fault in the interpreter
	AbortInternal                        // defect recovered at the harness boundary
)

func (r AbortReason) String() string {
	switch r {
	case AbortSyntax:
		return "syntax"
	case AbortAnalysis:
		return "analysis"
	case AbortHost:
		return "host"
	case AbortRuntime:
		return "runtime"
	case AbortInternal:
		return "internal"
	}
	return "unknown"
}

// Aborted is the terminal state reached from a non-terminal stage At.
type Aborted struct {
	At     Stage
	Reason AbortReason
}

func (a Aborted) String() string {
	return fmt.Sprintf("aborted at %s (%s)", a.At, a.Reason)
}

// Outcome is the full record of one request. Response is what callers of
// AST/Dis/Interpret see; the rest serves the CLI and tests.
type Outcome struct {
	Response Response
	// Stage - последняя успешно достигнутая стадия.
	Stage   Stage
	Aborted *Aborted
	// Tally - разбивка находок отчёта по классам; нулевая, если отчёта нет.
	Tally   diag.Tally
	Timings *observ.Report
	Cached  bool
}
