package sorting

import (
	"time"

	"github.com/san-kum/sortviz/internal/visual"
)

// Stalin removes every element smaller than its predecessor in one forward
// pass. The published values shrink as elements are dropped.
type Stalin struct{ meta }

func NewStalin() *Stalin {
	return &Stalin{meta{id: "stalin", label: "Stalin Sort", delay: 50 * time.Millisecond}}
}

func (s *Stalin) Sort(t *Tracker, a []int) ([]int, error) {
	i := 1
	for i < len(a) {
		if err := t.Err(); err != nil {
			return a, err
		}
		hl := visual.Highlights{i - 1: visual.ColorCompareA}
		if a[i] < a[i-1] {
			a = append(a[:i], a[i+1:]...)
			if i < len(a) {
				hl[i] = visual.ColorError
			}
		} else {
			hl[i] = visual.ColorCompareB
			i++
		}
		if err := t.Step(a, hl, s.delay); err != nil {
			return a, err
		}
	}
	return a, nil
}
