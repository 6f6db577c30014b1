package sorting

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/san-kum/sortviz/internal/visual"
	"golang.org/x/sync/errgroup"
)

// Sleep fans out one sub-task per element. Each sub-task waits value*unit and
// then appends its value to the result, so elements report in ascending order.
// The run stops when every sub-task has reported or after max*unit + 1s;
// positions of sub-tasks that never reported are zero.
//
// unit is not scaled by the Pacer: the delay is the ordering mechanism.
type Sleep struct {
	meta
	unit  time.Duration
	slack time.Duration
}

func NewSleep(unit time.Duration) *Sleep {
	return &Sleep{
		meta:  meta{id: "sleep", label: "Sleep Sort", delay: 100 * time.Millisecond},
		unit:  unit,
		slack: time.Second,
	}
}

// Timeout is the self-imposed deadline for values.
func (s *Sleep) Timeout(values []int) time.Duration {
	if len(values) == 0 {
		return s.slack
	}
	return time.Duration(slices.Max(values))*s.unit + s.slack
}

func (s *Sleep) Sort(t *Tracker, a []int) ([]int, error) {
	n := len(a)
	if n == 0 {
		return a, t.Err()
	}

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	var (
		mu       sync.Mutex
		reported = make([]int, 0, n)
		closed   bool
	)
	report := func(v int) error {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return nil
		}
		reported = append(reported, v)
		return t.Publish(zeroPad(reported, n), visual.Highlights{len(reported) - 1: visual.ColorSorted})
	}
	finish := func() []int {
		mu.Lock()
		defer mu.Unlock()
		closed = true
		return zeroPad(reported, n)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, v := range a {
		v := v
		g.Go(func() error {
			if err := sleepCtx(gctx, time.Duration(v)*s.unit); err != nil {
				return nil
			}
			return report(v)
		})
	}

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	deadline := time.NewTimer(s.Timeout(a))
	defer deadline.Stop()

	select {
	case err := <-done:
		out := finish()
		if err != nil {
			return out, err
		}
		return out, t.Err()
	case <-deadline.C:
		out := finish()
		cancel()
		<-done
		return out, t.Err()
	}
}

func zeroPad(vals []int, n int) []int {
	out := make([]int, n)
	copy(out, vals)
	return out
}
