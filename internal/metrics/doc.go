// Package metrics aggregates per-attempt probe records into run statistics.
//
// The [Recorder] folds each probe record into counters and an HDR histogram;
// [Recorder.Summary] derives the final [Summary]: success/failure counts,
// min/max/mean and p50/p90/p99 latency over successful attempts only, the
// achieved request rate, and a warning flag when the achieved rate falls
// materially below the target. A run with zero successes yields a summary
// whose latency aggregates are explicitly unavailable, never zero.
package metrics
