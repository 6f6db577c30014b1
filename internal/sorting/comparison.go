package sorting

import (
	"time"

	"github.com/san-kum/sortviz/internal/visual"
)

const stepDelay = 10 * time.Millisecond

// Bubble swaps adjacent out-of-order pairs, one comparison per step.
type Bubble struct{ meta }

func NewBubble() *Bubble {
	return &Bubble{meta{id: "bubble", label: "Bubble Sort", delay: stepDelay}}
}

func (b *Bubble) Sort(t *Tracker, a []int) ([]int, error) {
	for i := 0; i < len(a)-1; i++ {
		for j := 0; j < len(a)-1-i; j++ {
			if a[j] > a[j+1] {
				a[j], a[j+1] = a[j+1], a[j]
			}
			if err := t.Step(a, pair(j, j+1), b.delay); err != nil {
				return a, err
			}
		}
	}
	return a, nil
}

// Insertion shifts each element left until it meets a smaller one.
type Insertion struct{ meta }

func NewInsertion() *Insertion {
	return &Insertion{meta{id: "insertion", label: "Insertion Sort", delay: stepDelay}}
}

func (s *Insertion) Sort(t *Tracker, a []int) ([]int, error) {
	for i := 1; i < len(a); i++ {
		if err := t.Err(); err != nil {
			return a, err
		}
		cur := a[i]
		j := i
		for j > 0 && a[j-1] > cur {
			a[j] = a[j-1]
			j--
			if err := t.Step(a, pair(j, i), s.delay); err != nil {
				return a, err
			}
		}
		a[j] = cur
		if err := t.Step(a, visual.Highlights{j: visual.ColorSorted}, s.delay); err != nil {
			return a, err
		}
	}
	return a, nil
}

// Selection scans for the minimum of the unsorted suffix and swaps it into
// place. The scan checks cancellation per comparison; only the swap is paced.
type Selection struct{ meta }

func NewSelection() *Selection {
	return &Selection{meta{id: "selection", label: "Selection Sort", delay: stepDelay}}
}

func (s *Selection) Sort(t *Tracker, a []int) ([]int, error) {
	for i := range a {
		minIdx := i
		for j := i + 1; j < len(a); j++ {
			if err := t.Err(); err != nil {
				return a, err
			}
			if a[j] < a[minIdx] {
				minIdx = j
			}
		}
		a[i], a[minIdx] = a[minIdx], a[i]
		if err := t.Step(a, pair(i, minIdx), s.delay); err != nil {
			return a, err
		}
	}
	return a, nil
}

// Cocktail is a bubble sort alternating forward and backward passes.
type Cocktail struct{ meta }

func NewCocktail() *Cocktail {
	return &Cocktail{meta{id: "cocktail", label: "Cocktail Sort", delay: stepDelay}}
}

func (c *Cocktail) Sort(t *Tracker, a []int) ([]int, error) {
	start, end := 0, len(a)-1
	swapped := true
	for swapped {
		swapped = false
		for i := start; i < end; i++ {
			if a[i] > a[i+1] {
				a[i], a[i+1] = a[i+1], a[i]
				swapped = true
			}
			if err := t.Step(a, pair(i, i+1), c.delay); err != nil {
				return a, err
			}
		}
		if !swapped {
			break
		}

		swapped = false
		end--
		for i := end - 1; i >= start; i-- {
			if a[i] > a[i+1] {
				a[i], a[i+1] = a[i+1], a[i]
				swapped = true
			}
			if err := t.Step(a, pair(i+1, i), c.delay); err != nil {
				return a, err
			}
		}
		start++
	}
	return a, nil
}
