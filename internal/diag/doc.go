// Package diag defines the diagnostic model shared by every pipeline stage.
//
// # Purpose
//
//   - Provide immutable records for findings produced by the lexer, parser,
//     analyzer passes and the VM.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or rendering.
//   - Classify batches of findings (Aggregate) and decide whether the pipeline
//     may continue past analysis.
//
// # Scope
//
// Package diag does not format for humans beyond the single-line FormatShort
// helper. Rendering into plain, ANSI or HTML reports lives in internal/diagfmt;
// orchestration lives in internal/driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error. Severity.IsError decides abort.
//   - Code – compact numeric identifier with a stable string form (LEX1002).
//   - Message – human oriented text; keep it short and actionable.
//   - Primary – source.Span of the issue, or source.NoSpan for source-wide findings.
//   - Notes – optional secondary spans/messages.
//
// # Ordering
//
// Producers report in occurrence order and the driver concatenates parser
// findings with analyzer findings in pass order. Consumers must not re-sort
// diagnostics that are rendered for the playground.
package diag
