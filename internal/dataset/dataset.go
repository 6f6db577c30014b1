// Package dataset generates the input lists and provides the ordering checks
// shared by strategies, tests and the headless race.
package dataset

import (
	"math/rand"
	"slices"
)

const (
	DefaultSize = 100
	DefaultMin  = 5
	DefaultMax  = 100
	MinSize     = 10
	MaxSize     = 500
	SizeStep    = 10
)

// Generate returns n values drawn uniformly from [lo, hi].
func Generate(rng *rand.Rand, n, lo, hi int) []int {
	if n <= 0 {
		return []int{}
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	out := make([]int, n)
	for i := range out {
		out[i] = lo + rng.Intn(hi-lo+1)
	}
	return out
}

// Clone returns an independently owned copy.
func Clone(values []int) []int {
	c := make([]int, len(values))
	copy(c, values)
	return c
}

// IsSorted reports whether values is non-decreasing.
func IsSorted(values []int) bool {
	for i := 1; i < len(values); i++ {
		if values[i-1] > values[i] {
			return false
		}
	}
	return true
}

// Sortedness is the fraction of adjacent pairs already in order, 1 for n < 2.
func Sortedness(values []int) float64 {
	if len(values) < 2 {
		return 1
	}
	ok := 0
	for i := 1; i < len(values); i++ {
		if values[i-1] <= values[i] {
			ok++
		}
	}
	return float64(ok) / float64(len(values)-1)
}

// IsPermutation reports whether a and b hold the same multiset of values.
func IsPermutation(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	x, y := Clone(a), Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}

// IsSubsequence reports whether sub can be obtained from full by deleting elements.
func IsSubsequence(sub, full []int) bool {
	j := 0
	for _, v := range full {
		if j < len(sub) && sub[j] == v {
			j++
		}
	}
	return j == len(sub)
}

// ClampSize bounds n to [MinSize, MaxSize].
func ClampSize(n int) int {
	return max(MinSize, min(MaxSize, n))
}
