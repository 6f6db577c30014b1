package engine_test

import (
	"errors"
	"slices"
	"sync/atomic"
	"time"

	"github.com/san-kum/sortviz/internal/sorting"
	"github.com/san-kum/sortviz/internal/visual"
)

type base struct{ id string }

func (b base) ID() string              { return b.id }
func (b base) Label() string           { return b.id }
func (b base) MaxDelay() time.Duration { return 10 * time.Millisecond }

// gated blocks until released or canceled, then sorts in one step. Only its
// first run publishes a highlighted step before blocking.
type gated struct {
	base
	release chan struct{}
	runs    atomic.Int32
}

func newGated() *gated {
	return &gated{base: base{"gated"}, release: make(chan struct{})}
}

func (g *gated) Sort(t *sorting.Tracker, a []int) ([]int, error) {
	if g.runs.Add(1) == 1 {
		if err := t.Step(a, visual.Highlights{0: visual.ColorPivot}, 0); err != nil {
			return a, err
		}
	}
	select {
	case <-g.release:
	case <-t.Context().Done():
		return a, t.Err()
	}
	slices.Sort(a)
	return a, t.Step(a, nil, 0)
}

// oblivious ignores cancellation on its first run: it sleeps, then publishes
// a marker. Later runs wait for cancellation.
type oblivious struct {
	base
	sleep     time.Duration
	runs      atomic.Int32
	lateWrite chan error
}

func newOblivious(sleep time.Duration) *oblivious {
	return &oblivious{base: base{"oblivious"}, sleep: sleep, lateWrite: make(chan error, 1)}
}

func (o *oblivious) Sort(t *sorting.Tracker, a []int) ([]int, error) {
	if o.runs.Add(1) > 1 {
		<-t.Context().Done()
		return a, t.Err()
	}
	time.Sleep(o.sleep)
	err := t.Publish([]int{999}, visual.Highlights{0: visual.ColorPivot})
	o.lateWrite <- err
	return a, err
}

type panicking struct{ base }

func (panicking) Sort(t *sorting.Tracker, a []int) ([]int, error) {
	var m map[string]int
	m["boom"] = 1
	return a, nil
}

type failing struct{ base }

var errBroken = errors.New("broken comparator")

func (failing) Sort(t *sorting.Tracker, a []int) ([]int, error) {
	return a, errBroken
}

type badHighlight struct{ base }

func (badHighlight) Sort(t *sorting.Tracker, a []int) ([]int, error) {
	return a, t.Step(a, visual.Highlights{len(a): visual.ColorCompareA}, 0)
}
