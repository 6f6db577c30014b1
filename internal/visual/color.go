package visual

// Color is a semantic highlight tag. The renderer maps tags to theme colors.
type Color int

const (
	ColorNone Color = iota
	ColorCompareA
	ColorCompareB
	ColorPivot
	ColorSorted
	ColorError
)

func (c Color) String() string {
	switch c {
	case ColorCompareA:
		return "compare-a"
	case ColorCompareB:
		return "compare-b"
	case ColorPivot:
		return "pivot"
	case ColorSorted:
		return "sorted"
	case ColorError:
		return "error"
	default:
		return "none"
	}
}

// Highlights maps a position in the published values to a tag.
type Highlights map[int]Color

func (h Highlights) clone() Highlights {
	c := make(Highlights, len(h))
	for k, v := range h {
		c[k] = v
	}
	return c
}
