package sorting

import (
	"context"
	"math/rand"
	"time"

	"github.com/san-kum/sortviz/internal/visual"
)

// Strategy is one sorting routine animated in a roster slot.
type Strategy interface {
	ID() string
	Label() string
	// MaxDelay is the longest single pacing delay at scale 1.
	MaxDelay() time.Duration
	// Sort rearranges values and returns the final sequence. It returns the
	// tracker's error as soon as cancellation is observed.
	Sort(t *Tracker, values []int) ([]int, error)
}

// Pacer scales strategy delays. The zero value disables pacing.
type Pacer struct {
	Scale float64
}

// DefaultPacer runs strategies at their native speed.
var DefaultPacer = Pacer{Scale: 1}

func (p Pacer) Delay(d time.Duration) time.Duration {
	if p.Scale <= 0 || d <= 0 {
		return 0
	}
	return time.Duration(float64(d) * p.Scale)
}

// Sleep waits for the scaled delay or until ctx is done.
func (p Pacer) Sleep(ctx context.Context, d time.Duration) error {
	return sleepCtx(ctx, p.Delay(d))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Tracker binds a strategy run to its generation's cancellation token and to
// the slot writer.
type Tracker struct {
	ctx   context.Context
	w     *visual.Writer
	pacer Pacer
	rng   *rand.Rand
}

func NewTracker(ctx context.Context, w *visual.Writer, pacer Pacer, rng *rand.Rand) *Tracker {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Tracker{ctx: ctx, w: w, pacer: pacer, rng: rng}
}

func (t *Tracker) Context() context.Context { return t.ctx }
func (t *Tracker) Pacer() Pacer             { return t.pacer }

// Rand is private to the run and must not be shared across goroutines.
func (t *Tracker) Rand() *rand.Rand { return t.rng }

// Err is non-nil once the generation has been canceled.
func (t *Tracker) Err() error { return t.ctx.Err() }

// Publish writes one coherent visual step without pacing.
func (t *Tracker) Publish(values []int, hl visual.Highlights) error {
	return t.w.Publish(values, hl)
}

// Step checks cancellation, publishes, sleeps for delay and checks again.
func (t *Tracker) Step(values []int, hl visual.Highlights, delay time.Duration) error {
	if err := t.Err(); err != nil {
		return err
	}
	if err := t.w.Publish(values, hl); err != nil {
		return err
	}
	if err := t.pacer.Sleep(t.ctx, delay); err != nil {
		return err
	}
	return t.Err()
}

type meta struct {
	id    string
	label string
	delay time.Duration
}

func (m meta) ID() string              { return m.id }
func (m meta) Label() string           { return m.label }
func (m meta) MaxDelay() time.Duration { return m.delay }

func pair(a, b int) visual.Highlights {
	return visual.Highlights{a: visual.ColorCompareA, b: visual.ColorCompareB}
}
