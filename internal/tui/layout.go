package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/sortviz/internal/visual"
)

const (
	maxColumns    = 4
	footerLines   = 2
	panelChrome   = 3 // top border, title, bottom border
	defaultWidth  = 120
	defaultHeight = 40
)

// eighths of a cell, lowest first
var partialBlocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Geometry is the panel grid for one frame. It is recomputed on every draw
// from the terminal size and the slot count, so a resize never needs a
// restart.
type Geometry struct {
	Cols, Rows  int
	PanelWidth  int // including border
	PanelHeight int // including border and title
	PlotWidth   int
	PlotHeight  int
}

func Layout(width, height, slots int) Geometry {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	if slots <= 0 {
		return Geometry{}
	}

	cols := min(slots, maxColumns)
	rows := (slots + cols - 1) / cols
	g := Geometry{
		Cols:        cols,
		Rows:        rows,
		PanelWidth:  width / cols,
		PanelHeight: max(0, height-footerLines) / rows,
	}
	g.PlotWidth = max(0, g.PanelWidth-2)
	g.PlotHeight = max(0, g.PanelHeight-panelChrome)
	return g
}

// Column maps plot column c of w onto an index of n values. Narrow lists
// widen their bars; long lists are sampled.
func Column(c, w, n int) int {
	if n <= 0 || w <= 0 {
		return -1
	}
	return c * n / w
}

// BarEighths scales v against peak into eighths of a plot of h rows. Positive
// values always get at least one eighth.
func BarEighths(v, peak, h int) int {
	if v <= 0 || peak <= 0 || h <= 0 {
		return 0
	}
	e := v * h * 8 / peak
	if e == 0 {
		e = 1
	}
	return min(e, h*8)
}

// Plot renders the bars of one sample as exactly h lines of w cells.
func Plot(v visual.View, w, h int, th Theme) []string {
	if w <= 0 || h <= 0 {
		return nil
	}
	n := len(v.Values)
	peak := 0
	for _, x := range v.Values {
		peak = max(peak, x)
	}

	idx := make([]int, w)
	eighths := make([]int, w)
	colors := make([]lipgloss.Color, w)
	for c := 0; c < w; c++ {
		i := Column(c, w, n)
		idx[c] = i
		if i < 0 {
			continue
		}
		eighths[c] = BarEighths(v.Values[i], peak, h)
		colors[c] = th.BarColor(i, v.Highlights[i])
	}

	lines := make([]string, h)
	for r := 0; r < h; r++ {
		base := (h - 1 - r) * 8
		var line strings.Builder
		var run strings.Builder
		var runColor lipgloss.Color
		flush := func() {
			if run.Len() == 0 {
				return
			}
			line.WriteString(lipgloss.NewStyle().Foreground(runColor).Render(run.String()))
			run.Reset()
		}
		for c := 0; c < w; c++ {
			fill := min(max(eighths[c]-base, 0), 8)
			if colors[c] != runColor {
				flush()
				runColor = colors[c]
			}
			run.WriteRune(partialBlocks[fill])
		}
		flush()
		lines[r] = line.String()
	}
	return lines
}

// Status is the title suffix of a slot.
func Status(v visual.View) string {
	switch {
	case v.Failed():
		return "Failed"
	case v.Complete:
		return "Complete"
	default:
		return "Sorting..."
	}
}

func title(v visual.View, th Theme) string {
	color := th.Busy
	switch {
	case v.Failed():
		color = th.Error
	case v.Complete:
		color = th.Done
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color).Render(v.Label + " - " + Status(v))
}

// Panel renders one slot inside a bordered box sized by g.
func Panel(v visual.View, g Geometry, th Theme) string {
	body := []string{title(v, th)}
	body = append(body, Plot(v, g.PlotWidth, g.PlotHeight, th)...)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Border).
		Width(g.PlotWidth).
		MaxWidth(g.PanelWidth).
		Align(lipgloss.Center).
		Render(strings.Join(body, "\n"))
}

// Grid lays the panels of every sampled slot out row by row.
func Grid(views []visual.View, g Geometry, th Theme) string {
	if g.Cols == 0 || len(views) == 0 {
		return ""
	}
	rows := make([]string, 0, g.Rows)
	for start := 0; start < len(views); start += g.Cols {
		end := min(start+g.Cols, len(views))
		panels := make([]string, 0, end-start)
		for _, v := range views[start:end] {
			panels = append(panels, Panel(v, g, th))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, panels...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
