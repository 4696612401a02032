package base

import (
	"context"
	"time"
)

// Latency holds the simulated delay of every store operation kind. Delays do
// not depend on input size.
type Latency struct {
	List       time.Duration
	Get        time.Duration
	Create     time.Duration
	Update     time.Duration
	Delete     time.Duration
	Filter     time.Duration
	Search     time.Duration
	Range      time.Duration
	Transition time.Duration
}

// DefaultLatency returns the delays the dashboard was tuned against.
func DefaultLatency() Latency {
	return Latency{
		List:       300 * time.Millisecond,
		Get:        200 * time.Millisecond,
		Create:     500 * time.Millisecond,
		Update:     400 * time.Millisecond,
		Delete:     300 * time.Millisecond,
		Filter:     250 * time.Millisecond,
		Search:     200 * time.Millisecond,
		Range:      300 * time.Millisecond,
		Transition: 300 * time.Millisecond,
	}
}

// NoLatency completes every operation immediately.
func NoLatency() Latency {
	return Latency{}
}

// Scale multiplies every delay by f. A non-positive f disables the delays.
func (l Latency) Scale(f float64) Latency {
	if f <= 0 {
		return NoLatency()
	}
	scale := func(d time.Duration) time.Duration {
		return time.Duration(float64(d) * f)
	}
	return Latency{
		List:       scale(l.List),
		Get:        scale(l.Get),
		Create:     scale(l.Create),
		Update:     scale(l.Update),
		Delete:     scale(l.Delete),
		Filter:     scale(l.Filter),
		Search:     scale(l.Search),
		Range:      scale(l.Range),
		Transition: scale(l.Transition),
	}
}

// Wait blocks for d or until ctx is done. A caller that gets an error back
// must not apply the operation.
func Wait(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return ctx.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}
