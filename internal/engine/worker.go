package engine

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"github.com/san-kum/sortviz/internal/sorting"
	"github.com/san-kum/sortviz/internal/visual"
)

// Outcome is how a worker run ended.
type Outcome int

const (
	OutcomeRunning Outcome = iota
	OutcomeCompleted
	OutcomeCanceled
	OutcomeFaulted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeCanceled:
		return "canceled"
	case OutcomeFaulted:
		return "faulted"
	default:
		return "running"
	}
}

// Handle tracks one worker of one generation.
type Handle struct {
	Slot       int
	Label      string
	Generation uint64

	done    chan struct{}
	outcome Outcome
	err     error
	elapsed time.Duration
}

func newHandle(slot int, label string, gen uint64) *Handle {
	return &Handle{Slot: slot, Label: label, Generation: gen, done: make(chan struct{})}
}

// Done is closed when the worker has returned.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Outcome is valid once Done is closed.
func (h *Handle) Outcome() Outcome {
	select {
	case <-h.done:
		return h.outcome
	default:
		return OutcomeRunning
	}
}

// Err is the fault of a faulted worker, valid once Done is closed.
func (h *Handle) Err() error {
	select {
	case <-h.done:
		return h.err
	default:
		return nil
	}
}

// Elapsed is the wall time of the run, valid once Done is closed.
func (h *Handle) Elapsed() time.Duration {
	select {
	case <-h.done:
		return h.elapsed
	default:
		return 0
	}
}

type worker struct {
	strategy sorting.Strategy
	writer   *visual.Writer
	values   []int
	pacer    sorting.Pacer
	rng      *rand.Rand
	log      zerolog.Logger
}

// run executes the strategy and records the outcome on h. It never panics.
func (w *worker) run(ctx context.Context, h *Handle) {
	start := time.Now()
	defer func() {
		h.elapsed = time.Since(start)
		close(h.done)
	}()

	h.outcome, h.err = w.execute(ctx)
	switch h.outcome {
	case OutcomeFaulted:
		if err := w.writer.MarkFailed(h.err); err != nil && !errors.Is(err, visual.ErrStale) {
			w.log.Error().Err(err).Msg("mark failed")
		}
		w.log.Error().Err(h.err).Msg("worker fault")
	case OutcomeCanceled:
		w.log.Debug().Msg("worker canceled")
	case OutcomeCompleted:
		w.log.Debug().Int("len", len(w.values)).Dur("elapsed", time.Since(start)).Msg("worker completed")
	}
}

func (w *worker) execute(ctx context.Context) (outcome Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			outcome = OutcomeFaulted
			err = &sorting.FaultError{Strategy: w.strategy.ID(), Cause: &sorting.PanicError{Value: r}}
		}
	}()

	if len(w.values) < 2 {
		return w.finish(w.values)
	}

	t := sorting.NewTracker(ctx, w.writer, w.pacer, w.rng)
	out, err := w.strategy.Sort(t, w.values)
	if err != nil {
		if isCancellation(ctx, err) {
			return OutcomeCanceled, nil
		}
		return OutcomeFaulted, &sorting.FaultError{Strategy: w.strategy.ID(), Cause: err}
	}
	if ctx.Err() != nil {
		return OutcomeCanceled, nil
	}
	return w.finish(out)
}

// finish publishes the final values and marks the slot complete.
func (w *worker) finish(out []int) (Outcome, error) {
	err := w.writer.Publish(out, nil)
	if err == nil {
		err = w.writer.MarkComplete()
	}
	switch {
	case err == nil:
		return OutcomeCompleted, nil
	case errors.Is(err, visual.ErrStale):
		return OutcomeCanceled, nil
	default:
		return OutcomeFaulted, &sorting.FaultError{Strategy: w.strategy.ID(), Cause: err}
	}
}

func isCancellation(ctx context.Context, err error) bool {
	if errors.Is(err, visual.ErrStale) {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ctx.Err() != nil
	}
	return false
}
