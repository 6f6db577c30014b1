package sorting

import (
	"slices"
	"time"

	"github.com/san-kum/sortviz/internal/dataset"
	"github.com/san-kum/sortviz/internal/visual"
)

// Attempt caps of the bounded-random strategies.
const (
	BogoAttempts    = 100
	MiracleAttempts = 50
	QuantumAttempts = 50
	BrutalAttempts  = 30
)

// Bogo reshuffles until sorted or BogoAttempts shuffles, with no fallback.
type Bogo struct{ meta }

func NewBogo() *Bogo {
	return &Bogo{meta{id: "bogo", label: "Bogo Sort", delay: 100 * time.Millisecond}}
}

func (b *Bogo) Sort(t *Tracker, a []int) ([]int, error) {
	for attempts := 0; !dataset.IsSorted(a) && attempts < BogoAttempts; attempts++ {
		if err := t.Err(); err != nil {
			return a, err
		}
		t.Rand().Shuffle(len(a), func(i, j int) { a[i], a[j] = a[j], a[i] })
		if err := t.Step(a, nil, b.delay); err != nil {
			return a, err
		}
	}
	return a, nil
}

// Miracle waits for the list to sort itself. Each of MiracleAttempts waits has
// a 1% chance of a miracle; there is no fallback.
type Miracle struct {
	meta
	chance float64
}

func NewMiracle() *Miracle {
	return &Miracle{
		meta:   meta{id: "miracle", label: "Miracle Sort", delay: 200 * time.Millisecond},
		chance: 0.01,
	}
}

func (m *Miracle) Sort(t *Tracker, a []int) ([]int, error) {
	for attempts := 0; !dataset.IsSorted(a) && attempts < MiracleAttempts; attempts++ {
		if err := t.Step(a, nil, m.delay); err != nil {
			return a, err
		}
		if t.Rand().Float64() < m.chance {
			slices.Sort(a)
		}
	}
	return a, nil
}

// Quantum destroys the universe each attempt: 10% of the time the new
// universe holds the sorted list, otherwise it holds a reshuffle. Gives up
// unsorted after QuantumAttempts.
type Quantum struct {
	meta
	chance float64
}

func NewQuantum() *Quantum {
	return &Quantum{
		meta:   meta{id: "quantum", label: "Quantum BogoSort", delay: 300 * time.Millisecond},
		chance: 0.1,
	}
}

func (q *Quantum) Sort(t *Tracker, a []int) ([]int, error) {
	for attempts := 0; !dataset.IsSorted(a) && attempts < QuantumAttempts; attempts++ {
		if err := t.Step(a, nil, q.delay); err != nil {
			return a, err
		}
		if t.Rand().Float64() < q.chance {
			slices.Sort(a)
			break
		}
		t.Rand().Shuffle(len(a), func(i, j int) { a[i], a[j] = a[j], a[i] })
	}
	return a, nil
}

// Brutal pretends to test permutations. Every third attempt it either sorts a
// random window of 2-5 elements or swaps two random positions; the chance of
// the window repair grows with the attempt count. After BrutalAttempts it
// falls back to a full sort.
type Brutal struct{ meta }

func NewBrutal() *Brutal {
	return &Brutal{meta{id: "brutal", label: "Brutal Sort", delay: 100 * time.Millisecond}}
}

func (b *Brutal) Sort(t *Tracker, a []int) ([]int, error) {
	rng := t.Rand()
	var hl visual.Highlights
	for attempts := 0; !dataset.IsSorted(a); attempts++ {
		if attempts >= BrutalAttempts {
			slices.Sort(a)
			break
		}
		if err := t.Step(a, hl, b.delay); err != nil {
			return a, err
		}
		hl = nil
		if attempts%3 != 0 || len(a) < 2 {
			continue
		}

		progress := min(1.0, float64(attempts)/20.0)
		if rng.Float64() < progress {
			start := rng.Intn(len(a) - 1)
			end := min(start+2+rng.Intn(4), len(a))
			slices.Sort(a[start:end])
			hl = visual.Highlights{}
			for i := start; i < end; i++ {
				hl[i] = visual.ColorPivot
			}
		} else {
			i, j := rng.Intn(len(a)), rng.Intn(len(a))
			a[i], a[j] = a[j], a[i]
			hl = pair(i, j)
		}
	}
	return a, nil
}
