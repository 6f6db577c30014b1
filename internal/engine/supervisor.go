package engine

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/san-kum/sortviz/internal/dataset"
	"github.com/san-kum/sortviz/internal/sorting"
	"github.com/san-kum/sortviz/internal/visual"
)

// graceMargin is added to the longest scaled pacing delay of the roster.
const graceMargin = 50 * time.Millisecond

type Options struct {
	Pacer sorting.Pacer
	// Grace bounds the wait for the previous generation on restart. Zero
	// derives it from the roster's longest pacing delay.
	Grace  time.Duration
	Seed   int64
	Logger zerolog.Logger
}

func DefaultOptions() Options {
	return Options{
		Pacer:  sorting.DefaultPacer,
		Seed:   time.Now().UnixNano(),
		Logger: zerolog.Nop(),
	}
}

// Supervisor runs one generation of workers at a time over a fixed roster.
type Supervisor struct {
	roster []sorting.Strategy
	slots  []*visual.State
	opts   Options
	grace  time.Duration
	log    zerolog.Logger

	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	wg      *sync.WaitGroup
	handles []*Handle
	input   []int
}

func New(roster []sorting.Strategy, opts Options) *Supervisor {
	slots := make([]*visual.State, len(roster))
	var longest time.Duration
	for i, s := range roster {
		slots[i] = visual.NewState(s.Label())
		longest = max(longest, opts.Pacer.Delay(s.MaxDelay()))
	}
	grace := opts.Grace
	if grace <= 0 {
		grace = longest + graceMargin
	}
	return &Supervisor{
		roster: roster,
		slots:  slots,
		opts:   opts,
		grace:  grace,
		log:    opts.Logger.With().Str("component", "supervisor").Logger(),
		wg:     &sync.WaitGroup{},
		input:  []int{},
	}
}

// Grace is the bounded quiescence wait used by Restart and Stop.
func (s *Supervisor) Grace() time.Duration { return s.grace }

// Slots returns the per-slot records in roster order. The slice is stable
// across restarts.
func (s *Supervisor) Slots() []*visual.State { return s.slots }

// Snapshot samples every slot.
func (s *Supervisor) Snapshot() []visual.View {
	views := make([]visual.View, len(s.slots))
	for i, st := range s.slots {
		views[i] = st.Snapshot()
	}
	return views
}

func (s *Supervisor) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// Dataset returns a copy of the dataset of the current generation.
func (s *Supervisor) Dataset() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return dataset.Clone(s.input)
}

// Handles returns the worker handles of the current generation.
func (s *Supervisor) Handles() []*Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Handle, len(s.handles))
	copy(out, s.handles)
	return out
}

// Restart cancels the live generation, waits up to Grace for it to exit,
// resets every slot to a copy of data and starts a new generation.
func (s *Supervisor) Restart(data []int) []*Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()

	s.gen++
	gen := s.gen
	s.input = dataset.Clone(data)
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	wg := &sync.WaitGroup{}
	s.wg = wg

	for _, st := range s.slots {
		st.Reset(gen, s.input)
	}

	handles := make([]*Handle, len(s.roster))
	for i, strat := range s.roster {
		h := newHandle(i, strat.Label(), gen)
		w := &worker{
			strategy: strat,
			writer:   s.slots[i].Writer(gen),
			values:   dataset.Clone(s.input),
			pacer:    s.opts.Pacer,
			rng:      rand.New(rand.NewSource(s.opts.Seed + int64(gen)*1000 + int64(i))),
			log: s.log.With().
				Int("slot", i).
				Str("strategy", strat.ID()).
				Uint64("generation", gen).
				Logger(),
		}
		handles[i] = h
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.run(ctx, h)
		}()
	}
	s.handles = handles

	s.log.Info().
		Uint64("generation", gen).
		Int("workers", len(handles)).
		Int("size", len(data)).
		Msg("generation started")
	return handles
}

// Stop cancels the live generation and waits up to Grace for its workers.
// It reports whether every worker exited in time.
func (s *Supervisor) Stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopLocked()
}

func (s *Supervisor) stopLocked() bool {
	if s.cancel == nil {
		return true
	}
	s.cancel()
	s.cancel = nil

	quiet := waitTimeout(s.wg, s.grace)
	if !quiet {
		s.log.Warn().
			Uint64("generation", s.gen).
			Dur("grace", s.grace).
			Msg("previous generation still running after grace; late writes will be dropped")
	}
	return quiet
}

// Wait blocks until every worker of the current generation has returned or
// ctx is done.
func (s *Supervisor) Wait(ctx context.Context) error {
	for _, h := range s.Handles() {
		select {
		case <-h.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func waitTimeout(wg *sync.WaitGroup, d time.Duration) bool {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}
