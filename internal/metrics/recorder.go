package metrics

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/torosent/apiprobe/internal/probe"
)

// Recorder aggregates per-attempt records in a thread-safe manner.
// Sentinel (failed) records are counted but never contribute latency, since
// their elapsed time may reflect a timeout ceiling or an immediate
// connection error rather than a real request latency.
type Recorder struct {
	mu         sync.Mutex
	hist       *hdrhistogram.Histogram
	successes  int64
	failures   int64
	minLatency time.Duration
	maxLatency time.Duration
	sumLatency time.Duration
	reasons    map[probe.FailureReason]int64
}

// Summary represents the aggregated outcome of a completed run.
type Summary struct {
	RunID     string `json:"run_id,omitempty"`
	Requests  int64  `json:"requests"`
	Successes int64  `json:"successes"`
	Failures  int64  `json:"failures"`

	// HasLatency is false when no attempt succeeded; the latency fields
	// are then unavailable rather than zero.
	HasLatency  bool          `json:"has_latency"`
	MinLatency  time.Duration `json:"-"`
	MaxLatency  time.Duration `json:"-"`
	MeanLatency time.Duration `json:"-"`
	P50Latency  time.Duration `json:"-"`
	P90Latency  time.Duration `json:"-"`
	P99Latency  time.Duration `json:"-"`
	Duration    time.Duration `json:"-"`

	// JSON-friendly millisecond fields.
	MinLatencyMs  float64 `json:"min_latency_ms"`
	MaxLatencyMs  float64 `json:"max_latency_ms"`
	MeanLatencyMs float64 `json:"mean_latency_ms"`
	P50LatencyMs  float64 `json:"p50_latency_ms"`
	P90LatencyMs  float64 `json:"p90_latency_ms"`
	P99LatencyMs  float64 `json:"p99_latency_ms"`
	DurationMs    float64 `json:"duration_ms"`

	TargetRPS   float64 `json:"target_rps"`
	ActualRPS   float64 `json:"actual_rps"`
	BelowTarget bool    `json:"below_target"`

	FailureReasons map[string]int `json:"failure_reasons,omitempty"`
}

// belowTargetRatio is the fraction of the target rate under which the
// summary raises a throughput warning. Exactly at the ratio does not warn.
const belowTargetRatio = 0.9

func NewRecorder() *Recorder {
	// Track latencies from 1µs up to 60s with 3 significant figures.
	h := hdrhistogram.New(1, 60_000_000, 3)
	return &Recorder{
		hist:    h,
		reasons: make(map[probe.FailureReason]int64),
	}
}

// Record folds one attempt into the aggregates.
func (r *Recorder) Record(rec probe.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec.Failed() {
		r.failures++
		reason := rec.Reason
		if reason == "" {
			reason = probe.ReasonRequest
		}
		r.reasons[reason]++
		return
	}

	r.successes++
	latency := rec.Latency
	if latency < 0 {
		latency = 0
	}

	us := latency.Microseconds()
	if us < r.hist.LowestTrackableValue() {
		us = r.hist.LowestTrackableValue()
	}
	if us > r.hist.HighestTrackableValue() {
		us = r.hist.HighestTrackableValue()
	}
	_ = r.hist.RecordValue(us)

	r.sumLatency += latency
	if r.successes == 1 || latency < r.minLatency {
		r.minLatency = latency
	}
	if latency > r.maxLatency {
		r.maxLatency = latency
	}
}

// Summary computes the aggregated statistics for the run.
func (r *Recorder) Summary(elapsed time.Duration, targetRate float64) Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := r.successes + r.failures
	s := Summary{
		Requests:  total,
		Successes: r.successes,
		Failures:  r.failures,
		Duration:  elapsed,
		TargetRPS: targetRate,
	}

	if r.successes > 0 {
		s.HasLatency = true
		s.MinLatency = r.minLatency
		s.MaxLatency = r.maxLatency
		s.MeanLatency = time.Duration(int64(r.sumLatency) / r.successes)
		if r.hist.TotalCount() > 0 {
			s.P50Latency = time.Duration(r.hist.ValueAtQuantile(50)) * time.Microsecond
			s.P90Latency = time.Duration(r.hist.ValueAtQuantile(90)) * time.Microsecond
			s.P99Latency = time.Duration(r.hist.ValueAtQuantile(99)) * time.Microsecond
		}

		s.MinLatencyMs = float64(s.MinLatency) / float64(time.Millisecond)
		s.MaxLatencyMs = float64(s.MaxLatency) / float64(time.Millisecond)
		s.MeanLatencyMs = float64(s.MeanLatency) / float64(time.Millisecond)
		s.P50LatencyMs = float64(s.P50Latency) / float64(time.Millisecond)
		s.P90LatencyMs = float64(s.P90Latency) / float64(time.Millisecond)
		s.P99LatencyMs = float64(s.P99Latency) / float64(time.Millisecond)
	}

	s.DurationMs = float64(elapsed) / float64(time.Millisecond)
	if elapsed > 0 && total > 0 {
		s.ActualRPS = float64(total) / elapsed.Seconds()
	}
	if targetRate > 0 && s.ActualRPS < belowTargetRatio*targetRate {
		s.BelowTarget = true
	}

	if len(r.reasons) > 0 {
		s.FailureReasons = make(map[string]int, len(r.reasons))
		for reason, count := range r.reasons {
			s.FailureReasons[string(reason)] = int(count)
		}
	}

	return s
}
