package probe

import (
	"context"
	"time"
)

// Sender abstracts executing a single request attempt.
// Implementations classify their own failures into the Outcome; they never
// return an error, so one bad attempt cannot abort the run.
type Sender interface {
	Send(ctx context.Context) Outcome
}

// PacingModel selects how request start times are derived from the rate.
type PacingModel string

const (
	// PacingSchedule paces against an absolute schedule: request i targets
	// run start + (i-1)/rate, so one slow response never shifts later
	// targets and the loop never bursts to catch up.
	PacingSchedule PacingModel = "schedule"
	// PacingSmooth delegates to a token bucket (golang.org/x/time/rate).
	// Targets drift relative to the run start after a slow response.
	PacingSmooth PacingModel = "smooth"
)

// Options configure the Runner.
type Options struct {
	Requests int           // number of attempts to schedule (>= 1)
	Rate     float64       // target requests per second (> 0)
	Sender   Sender        // request executor (required)
	Pacing   PacingModel   // defaults to PacingSchedule
	OnRecord func(Record)  // invoked synchronously as each record is appended
	NowFunc  func() time.Time // optional injection for tests
}

func (o *Options) normalize() {
	if o.Requests < 1 {
		o.Requests = 1
	}
	if o.Rate <= 0 {
		o.Rate = 1
	}
	if o.Pacing == "" {
		o.Pacing = PacingSchedule
	}
	if o.NowFunc == nil {
		o.NowFunc = time.Now
	}
}

// interval is the budgeted gap between consecutive request starts.
func (o Options) interval() time.Duration {
	return time.Duration(float64(time.Second) / o.Rate)
}
