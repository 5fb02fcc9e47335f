// Package trace records what the linter is doing: which files are being
// processed, how long each took, and where a run got stuck.
//
// Enable it from the command line:
//
//	zhfmt check --trace=- --trace-level=detail docs/
//
// Tracers:
//
//   - Nop: the default when tracing is off
//   - StreamTracer: writes every event as it happens (text or ndjson)
//   - RingTracer: keeps the last N events in memory
//   - MultiTracer: fans out to several tracers
//
// Levels map to scopes: phase shows driver events only, detail adds one span
// per file, debug adds paragraph events.
//
// The tracer travels in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, path, trace.ParentID(ctx))
//	defer span.End("")
package trace
