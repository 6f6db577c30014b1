package sorting

import (
	"github.com/san-kum/sortviz/internal/visual"
)

// Quick is a Lomuto-partition quicksort with the last element as pivot.
type Quick struct{ meta }

func NewQuick() *Quick {
	return &Quick{meta{id: "quick", label: "Quick Sort", delay: stepDelay}}
}

func (q *Quick) Sort(t *Tracker, a []int) ([]int, error) {
	return a, q.sort(t, a, 0, len(a)-1)
}

func (q *Quick) sort(t *Tracker, a []int, lo, hi int) error {
	if lo >= hi {
		return nil
	}
	if err := t.Err(); err != nil {
		return err
	}

	pivot := a[hi]
	p := lo
	for i := lo; i < hi; i++ {
		if a[i] <= pivot {
			a[i], a[p] = a[p], a[i]
			p++
		}
		hl := visual.Highlights{i: visual.ColorCompareA}
		hl[p] = visual.ColorCompareB
		hl[hi] = visual.ColorPivot
		if err := t.Step(a, hl, q.delay); err != nil {
			return err
		}
	}
	a[p], a[hi] = a[hi], a[p]

	if err := q.sort(t, a, lo, p-1); err != nil {
		return err
	}
	return q.sort(t, a, p+1, hi)
}

// Merge is a top-down merge sort writing back through a copy of each half.
type Merge struct{ meta }

func NewMerge() *Merge {
	return &Merge{meta{id: "merge", label: "Merge Sort", delay: stepDelay}}
}

func (m *Merge) Sort(t *Tracker, a []int) ([]int, error) {
	return a, m.sort(t, a, 0, len(a)-1)
}

func (m *Merge) sort(t *Tracker, a []int, left, right int) error {
	if left >= right {
		return nil
	}
	if err := t.Err(); err != nil {
		return err
	}
	mid := (left + right) / 2
	if err := m.sort(t, a, left, mid); err != nil {
		return err
	}
	if err := m.sort(t, a, mid+1, right); err != nil {
		return err
	}
	return m.merge(t, a, left, mid, right)
}

func (m *Merge) merge(t *Tracker, a []int, left, mid, right int) error {
	lh := append([]int(nil), a[left:mid+1]...)
	rh := append([]int(nil), a[mid+1:right+1]...)

	i, j, k := 0, 0, left
	for i < len(lh) || j < len(rh) {
		if j >= len(rh) || (i < len(lh) && lh[i] <= rh[j]) {
			a[k] = lh[i]
			i++
		} else {
			a[k] = rh[j]
			j++
		}
		hl := visual.Highlights{k: visual.ColorCompareA}
		if right != k {
			hl[right] = visual.ColorPivot
		}
		if err := t.Step(a, hl, m.delay); err != nil {
			return err
		}
		k++
	}
	return nil
}
