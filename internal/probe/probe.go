package probe

import (
	"context"
	"time"
)

// Result captures the full record sequence and run accounting.
type Result struct {
	Records     []Record
	Duration    time.Duration
	Interrupted bool // context cancelled before all attempts were scheduled
}

// Runner drives the fixed-count paced request loop. Exactly one request is
// ever in flight; the only blocking points are the schedule wait and the
// request call itself.
type Runner struct {
	opt Options
}

func New(opt Options) *Runner {
	opt.normalize()
	return &Runner{opt: opt}
}

// Run executes the scheduled attempts and returns the ordered record
// sequence. Every iteration appends exactly one record regardless of the
// attempt's outcome. Cancellation is checked only at the top of each
// iteration, never mid-request.
func (r *Runner) Run(ctx context.Context) Result {
	if ctx == nil {
		ctx = context.Background()
	}

	start := r.opt.NowFunc()
	pace := newPacer(r.opt, start)
	records := make([]Record, 0, r.opt.Requests)

	for seq := 1; seq <= r.opt.Requests; seq++ {
		if ctx.Err() != nil {
			return Result{Records: records, Duration: r.opt.NowFunc().Sub(start), Interrupted: true}
		}
		if err := pace.Wait(ctx, seq); err != nil {
			return Result{Records: records, Duration: r.opt.NowFunc().Sub(start), Interrupted: true}
		}

		attemptStart := r.opt.NowFunc()
		outcome := r.opt.Sender.Send(ctx)

		rec := Record{
			Sequence: seq,
			Start:    attemptStart,
			Latency:  outcome.Latency,
			Status:   outcome.Status,
			Reason:   outcome.Reason,
			Detail:   outcome.Detail,
			Extract:  outcome.Extract,
		}
		records = append(records, rec)

		if r.opt.OnRecord != nil {
			r.opt.OnRecord(rec)
		}
	}

	return Result{Records: records, Duration: r.opt.NowFunc().Sub(start)}
}
