package probe_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/torosent/apiprobe/internal/probe"
)

// fakeSender simulates performing a request. The outcome for each call is
// produced by fn (1-based call number); Outcome.Latency doubles as the
// simulated request duration.
type fakeSender struct {
	mu    sync.Mutex
	calls int
	fn    func(call int) probe.Outcome
}

func (f *fakeSender) Send(ctx context.Context) probe.Outcome {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.mu.Unlock()

	out := f.fn(call)
	if out.Latency > 0 {
		select {
		case <-time.After(out.Latency):
		case <-ctx.Done():
		}
	}
	return out
}

func success(latency time.Duration) probe.Outcome {
	return probe.Outcome{Status: 200, Latency: latency}
}

func connectionFailure(latency time.Duration) probe.Outcome {
	return probe.Outcome{Status: probe.StatusFailed, Latency: latency, Reason: probe.ReasonConnection}
}

// TestRunnerRecordsAreContiguous ensures every scheduled attempt consumes
// its sequence number even when attempts fail.
func TestRunnerRecordsAreContiguous(t *testing.T) {
	sender := &fakeSender{fn: func(call int) probe.Outcome {
		if call == 2 || call == 4 {
			return connectionFailure(time.Millisecond)
		}
		return success(time.Millisecond)
	}}

	r := probe.New(probe.Options{Requests: 5, Rate: 200, Sender: sender})
	result := r.Run(context.Background())

	if len(result.Records) != 5 {
		t.Fatalf("expected 5 records, got %d", len(result.Records))
	}
	for i, rec := range result.Records {
		if rec.Sequence != i+1 {
			t.Fatalf("record %d has sequence %d", i, rec.Sequence)
		}
	}
	if !result.Records[1].Failed() || !result.Records[3].Failed() {
		t.Fatalf("expected records 2 and 4 to carry the failure sentinel")
	}
	if result.Records[0].Status != 200 || result.Records[4].Status != 200 {
		t.Fatalf("expected surrounding records to complete normally")
	}
}

// TestRunnerPacesFastRequests ensures requests that finish under the
// interval are held back to their scheduled start times.
func TestRunnerPacesFastRequests(t *testing.T) {
	interval := 50 * time.Millisecond
	sender := &fakeSender{fn: func(int) probe.Outcome { return success(5 * time.Millisecond) }}

	r := probe.New(probe.Options{Requests: 4, Rate: 20, Sender: sender})
	result := r.Run(context.Background())

	if len(result.Records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(result.Records))
	}
	// allow scheduling jitter but catch missing pacing
	tolerance := 10 * time.Millisecond
	for i := 1; i < len(result.Records); i++ {
		gap := result.Records[i].Start.Sub(result.Records[i-1].Start)
		if gap < interval-tolerance {
			t.Fatalf("gap between request %d and %d too small: %s", i, i+1, gap)
		}
	}
	if result.Duration < 3*interval-tolerance {
		t.Fatalf("run finished too quickly for the target rate: %s", result.Duration)
	}
}

// TestRunnerDoesNotBurstWhenBehind ensures a slow response delays later
// requests naturally but the scheduler adds no artificial wait and never
// issues a catch-up burst.
func TestRunnerDoesNotBurstWhenBehind(t *testing.T) {
	sender := &fakeSender{fn: func(call int) probe.Outcome {
		if call == 1 {
			return success(250 * time.Millisecond)
		}
		return success(time.Millisecond)
	}}

	r := probe.New(probe.Options{Requests: 3, Rate: 10, Sender: sender})
	result := r.Run(context.Background())

	if len(result.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(result.Records))
	}
	// request 2 cannot start before request 1 completes
	gap12 := result.Records[1].Start.Sub(result.Records[0].Start)
	if gap12 < 240*time.Millisecond {
		t.Fatalf("request 2 started before its predecessor finished: %s", gap12)
	}
	// request 3's target (200ms) is already past, so it follows immediately
	gap23 := result.Records[2].Start.Sub(result.Records[1].Start)
	if gap23 > 50*time.Millisecond {
		t.Fatalf("scheduler added artificial delay while behind schedule: %s", gap23)
	}
}

// TestRunnerSingleRequestStartsImmediately ensures N=1 issues the request
// with zero scheduling wait.
func TestRunnerSingleRequestStartsImmediately(t *testing.T) {
	sender := &fakeSender{fn: func(int) probe.Outcome { return success(time.Millisecond) }}

	before := time.Now()
	r := probe.New(probe.Options{Requests: 1, Rate: 1, Sender: sender})
	result := r.Run(context.Background())

	if len(result.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(result.Records))
	}
	if wait := result.Records[0].Start.Sub(before); wait > 100*time.Millisecond {
		t.Fatalf("single request waited before starting: %s", wait)
	}
	if result.Duration > 500*time.Millisecond {
		t.Fatalf("single request run took too long: %s", result.Duration)
	}
}

// TestRunnerChecksCancellationBetweenIterations ensures a cancelled context
// stops the loop at the top of the next iteration, never mid-request.
func TestRunnerChecksCancellationBetweenIterations(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sender := &fakeSender{fn: func(int) probe.Outcome { return success(time.Millisecond) }}

	recorded := 0
	r := probe.New(probe.Options{
		Requests: 100,
		Rate:     1000,
		Sender:   sender,
		OnRecord: func(probe.Record) {
			recorded++
			if recorded == 3 {
				cancel()
			}
		},
	})
	result := r.Run(ctx)

	if !result.Interrupted {
		t.Fatalf("expected interrupted result")
	}
	if len(result.Records) != 3 {
		t.Fatalf("expected exactly 3 records before cancellation, got %d", len(result.Records))
	}
}

// TestRunnerSmoothPacing exercises the token-bucket pacing model.
func TestRunnerSmoothPacing(t *testing.T) {
	sender := &fakeSender{fn: func(int) probe.Outcome { return success(0) }}

	r := probe.New(probe.Options{Requests: 5, Rate: 50, Sender: sender, Pacing: probe.PacingSmooth})
	start := time.Now()
	result := r.Run(context.Background())
	elapsed := time.Since(start)

	if len(result.Records) != 5 {
		t.Fatalf("expected 5 records, got %d", len(result.Records))
	}
	// first slot is immediate, the remaining four are spaced at 20ms
	if elapsed < 60*time.Millisecond {
		t.Fatalf("smooth pacing finished too quickly: %s", elapsed)
	}
}
