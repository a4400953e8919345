package probe

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

type pacer interface {
	Wait(ctx context.Context, seq int) error
}

func newPacer(opt Options, start time.Time) pacer {
	switch opt.Pacing {
	case PacingSmooth:
		// Burst of 1 keeps at most one banked slot, so a slow response is
		// followed by one immediate send, never a back-to-back burst.
		return &smoothPacer{limiter: rate.NewLimiter(rate.Limit(opt.Rate), 1)}
	default:
		return &schedulePacer{start: start, interval: opt.interval(), now: opt.NowFunc}
	}
}

// schedulePacer aligns each request to an absolute schedule derived from the
// fixed run start time. When behind schedule it returns immediately; it does
// not try to recover lost slots.
type schedulePacer struct {
	start    time.Time
	interval time.Duration
	now      func() time.Time
}

func (p *schedulePacer) Wait(ctx context.Context, seq int) error {
	target := p.start.Add(time.Duration(seq-1) * p.interval)
	delay := target.Sub(p.now())
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// smoothPacer delegates pacing to a rate.Limiter token bucket.
type smoothPacer struct {
	limiter *rate.Limiter
}

func (p *smoothPacer) Wait(ctx context.Context, _ int) error {
	if p == nil || p.limiter == nil {
		return nil
	}
	return p.limiter.Wait(ctx)
}
