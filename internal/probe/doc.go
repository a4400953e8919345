// Package probe provides the core paced request loop for apiprobe.
//
// The probe package schedules a fixed number of request attempts against a
// single endpoint at a target rate, one in flight at a time, and records an
// immutable [Record] per attempt in schedule order.
//
// # Basic Usage
//
// Create a runner with options and a sender implementation:
//
//	opts := probe.Options{
//		Requests: 60,
//		Rate:     1.0,
//		Sender:   mySender,
//	}
//	r := probe.New(opts)
//	result := r.Run(ctx)
//
// # Sender Interface
//
// The [Sender] interface defines what the runner executes each iteration:
//
//	type Sender interface {
//		Send(ctx context.Context) Outcome
//	}
//
// A sender classifies its own failures into the [Outcome]; a failed attempt
// is recorded with [StatusFailed] and a [FailureReason], and never aborts
// the run.
//
// # Pacing
//
// Two pacing models are available:
//   - [PacingSchedule]: each request targets run start + (i-1)/rate on an
//     absolute clock. Running behind schedule means the next request starts
//     immediately, but the loop never bursts to recover lost slots.
//   - [PacingSmooth]: token-bucket pacing via golang.org/x/time/rate.
package probe
