// Package trace records what bigcalc commands do and how long each part
// takes.
//
// Tracing is enabled from the command line:
//
//	bigcalc scan mersenne --from 2 --to 2000 --trace=- --trace-level=detail
//
// A Tracer receives Events. NopTracer drops them, StreamTracer writes them
// immediately as text or NDJSON, RingTracer keeps the last N in memory for
// a dump after a failure, and MultiTracer fans out to several tracers.
//
// Levels select how much is recorded:
//
//   - LevelOff: nothing
//   - LevelError: only the ring dump written on failure
//   - LevelPhase: command boundaries
//   - LevelDetail: scan jobs and cache traffic
//   - LevelDebug: individual engine steps
//
// Tracers travel through a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeJob, "mersenne", 0)
//	defer span.End("")
package trace
