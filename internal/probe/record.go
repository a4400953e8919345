package probe

import "time"

// StatusFailed marks an attempt that produced no HTTP response at all.
// It is deliberately outside the valid HTTP status code range.
const StatusFailed = -1

// FailureReason categorizes why an attempt produced no response.
type FailureReason string

const (
	ReasonConnection FailureReason = "connection"
	ReasonTLS        FailureReason = "tls"
	ReasonTimeout    FailureReason = "timeout"
	ReasonRequest    FailureReason = "request"
)

// Outcome is the result of a single send attempt.
type Outcome struct {
	Status  int           // HTTP status code, or StatusFailed
	Latency time.Duration // measured wall-clock duration of the attempt
	Reason  FailureReason // set only when Status == StatusFailed
	Detail  string        // human-readable failure description
	Extract string        // optional value extracted from the response body
}

// Failed reports whether the attempt produced no real response.
func (o Outcome) Failed() bool {
	return o.Status == StatusFailed
}

// Record is one scheduled attempt's immutable result.
// Records are created in schedule order with contiguous 1-based sequence
// numbers; a failed attempt still consumes its sequence number.
type Record struct {
	Sequence int
	Start    time.Time
	Latency  time.Duration
	Status   int
	Reason   FailureReason
	Detail   string
	Extract  string
}

// Failed reports whether the record carries the failure sentinel. Its
// latency is not a true request latency and must not enter aggregates.
func (r Record) Failed() bool {
	return r.Status == StatusFailed
}
