// Package race drives one generation headlessly. It samples every slot at a
// fixed rate the way the terminal renderer does and records per-slot progress
// until all slots complete or the run times out.
package race

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/san-kum/sortviz/internal/dataset"
	"github.com/san-kum/sortviz/internal/engine"
	"github.com/san-kum/sortviz/internal/visual"
)

const (
	StatusComplete   = "complete"
	StatusFailed     = "failed"
	StatusUnfinished = "unfinished"
)

var ErrNoFPS = errors.New("race: fps must be positive")

type Options struct {
	FPS     int
	Timeout time.Duration
	Logger  zerolog.Logger
}

func DefaultOptions() Options {
	return Options{FPS: 60, Timeout: 2 * time.Minute, Logger: zerolog.Nop()}
}

type SlotResult struct {
	Slot      int
	Label     string
	Status    string
	Err       error
	Elapsed   time.Duration // first frame at which the slot was seen complete
	Final     []int
	Sorted    bool
	Publishes uint64
}

type Result struct {
	Generation uint64
	Input      []int
	Duration   time.Duration
	TimedOut   bool
	Frames     int
	Slots      []SlotResult

	// Times[i] is the offset in seconds of frame i; Progress[i][slot] is the
	// sortedness of that slot at frame i.
	Times    []float64
	Progress [][]float64

	seen []bool
}

// Completed counts slots that finished without a fault.
func (r *Result) Completed() int {
	n := 0
	for _, s := range r.Slots {
		if s.Status == StatusComplete {
			n++
		}
	}
	return n
}

// SlotSeries returns the progress curve of one slot.
func (r *Result) SlotSeries(slot int) []float64 {
	out := make([]float64, len(r.Progress))
	for i, frame := range r.Progress {
		if slot < len(frame) {
			out[i] = frame[slot]
		}
	}
	return out
}

// Run restarts sup on data and samples it until every slot is complete, the
// timeout elapses or ctx is done. Unfinished workers are stopped before Run
// returns.
func Run(ctx context.Context, sup *engine.Supervisor, data []int, opts Options) (*Result, error) {
	if opts.FPS <= 0 {
		return nil, ErrNoFPS
	}
	log := opts.Logger.With().Str("component", "race").Logger()

	handles := sup.Restart(data)
	res := &Result{
		Input: dataset.Clone(data),
		Slots: make([]SlotResult, len(handles)),
		seen:  make([]bool, len(handles)),
	}
	if len(handles) > 0 {
		res.Generation = handles[0].Generation
	}
	for i, h := range handles {
		res.Slots[i] = SlotResult{Slot: i, Label: h.Label, Status: StatusUnfinished}
	}

	var deadline <-chan time.Time
	if opts.Timeout > 0 {
		timer := time.NewTimer(opts.Timeout)
		defer timer.Stop()
		deadline = timer.C
	}
	ticker := time.NewTicker(time.Second / time.Duration(opts.FPS))
	defer ticker.Stop()

	start := time.Now()
	var views []visual.View
	for {
		views = sup.Snapshot()
		res.record(time.Since(start), views)
		if allComplete(views) {
			break
		}

		select {
		case <-ticker.C:
			continue
		case <-deadline:
			res.TimedOut = true
		case <-ctx.Done():
			sup.Stop()
			res.finish(time.Since(start), sup.Snapshot())
			return res, ctx.Err()
		}
		break
	}

	if res.TimedOut {
		if !sup.Stop() {
			log.Warn().Msg("workers still running after timeout grace")
		}
		views = sup.Snapshot()
	}
	res.finish(time.Since(start), views)

	log.Info().
		Uint64("generation", res.Generation).
		Int("frames", res.Frames).
		Int("completed", res.Completed()).
		Bool("timed_out", res.TimedOut).
		Dur("duration", res.Duration).
		Msg("race finished")
	return res, nil
}

func (r *Result) record(at time.Duration, views []visual.View) {
	frame := make([]float64, len(views))
	for i, v := range views {
		frame[i] = dataset.Sortedness(v.Values)
		if v.Complete && !r.seen[i] {
			r.seen[i] = true
			r.Slots[i].Elapsed = at
		}
	}
	r.Times = append(r.Times, at.Seconds())
	r.Progress = append(r.Progress, frame)
	r.Frames++
}

func (r *Result) finish(d time.Duration, views []visual.View) {
	r.Duration = d
	for i, v := range views {
		s := &r.Slots[i]
		s.Final = v.Values
		s.Sorted = dataset.IsSorted(v.Values)
		s.Publishes = v.Publishes
		switch {
		case v.Failed():
			s.Status = StatusFailed
			s.Err = v.Err
		case v.Complete:
			s.Status = StatusComplete
		default:
			s.Status = StatusUnfinished
			s.Elapsed = 0
		}
	}
}

func allComplete(views []visual.View) bool {
	for _, v := range views {
		if !v.Complete {
			return false
		}
	}
	return true
}
