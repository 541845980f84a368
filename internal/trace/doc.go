// Package trace records the structure of playground requests as spans.
//
// Every request opens a driver span; every pipeline stage and analyzer pass
// opens a pass span under it. Tracing is off by default and costs a nil
// check when disabled.
//
// # Usage
//
//	playground run --trace=- --trace-level=phase main.tb
//
// # Tracers
//
//   - Nop: disabled tracing
//   - StreamTracer: writes each event as it happens (text or NDJSON)
//   - RingTracer: keeps the last N events for a dump on failure
//   - MultiTracer: fans out to several tracers
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelError: only explicit dumps
//   - LevelPhase: request and stage boundaries
//   - LevelDetail, LevelDebug: everything, including interpreter runs
//
// Tracers travel through cobra commands via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
package trace
