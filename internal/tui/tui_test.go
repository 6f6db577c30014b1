package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/san-kum/sortviz/internal/engine"
	"github.com/san-kum/sortviz/internal/sorting"
	"github.com/san-kum/sortviz/internal/visual"
)

func TestLayout(t *testing.T) {
	tests := []struct {
		name         string
		w, h, slots  int
		cols, rows   int
		plotW, plotH int
	}{
		{"full roster", 120, 41, 12, 4, 3, 28, 10},
		{"two slots", 80, 22, 2, 2, 1, 38, 17},
		{"unsized terminal", 0, 0, 12, 4, 3, 28, 9},
		{"tiny terminal", 4, 3, 12, 4, 3, 0, 0},
		{"no slots", 120, 40, 0, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Layout(tt.w, tt.h, tt.slots)
			if g.Cols != tt.cols || g.Rows != tt.rows {
				t.Errorf("expected %dx%d grid, got %dx%d", tt.cols, tt.rows, g.Cols, g.Rows)
			}
			if g.PlotWidth != tt.plotW || g.PlotHeight != tt.plotH {
				t.Errorf("expected plot %dx%d, got %dx%d", tt.plotW, tt.plotH, g.PlotWidth, g.PlotHeight)
			}
			if g.PlotWidth < 0 || g.PlotHeight < 0 {
				t.Errorf("negative geometry: %+v", g)
			}
		})
	}
}

func TestColumn(t *testing.T) {
	if got := Column(0, 10, 0); got != -1 {
		t.Errorf("expected -1 for empty list, got %d", got)
	}
	if got := Column(9, 10, 100); got != 90 {
		t.Errorf("expected sampled index 90, got %d", got)
	}
	if got := Column(9, 10, 2); got != 1 {
		t.Errorf("expected widened bar index 1, got %d", got)
	}
}

func TestBarEighths(t *testing.T) {
	tests := []struct {
		v, peak, h, want int
	}{
		{100, 100, 10, 80},
		{50, 100, 10, 40},
		{1, 1000, 2, 1},
		{0, 100, 10, 0},
		{5, 0, 10, 0},
		{5, 5, 0, 0},
	}
	for _, tt := range tests {
		if got := BarEighths(tt.v, tt.peak, tt.h); got != tt.want {
			t.Errorf("BarEighths(%d, %d, %d): expected %d, got %d", tt.v, tt.peak, tt.h, tt.want, got)
		}
	}
}

func TestPlot_Shape(t *testing.T) {
	tests := []struct {
		name   string
		values []int
	}{
		{"empty", []int{}},
		{"zeros", []int{0, 0, 0}},
		{"short", []int{1, 2}},
		{"long", make([]int, 500)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := Plot(visual.View{Values: tt.values}, 12, 4, ThemeClassic)
			if len(lines) != 4 {
				t.Fatalf("expected 4 lines, got %d", len(lines))
			}
			for _, l := range lines {
				if w := lipgloss.Width(l); w != 12 {
					t.Errorf("expected width 12, got %d: %q", w, l)
				}
			}
		})
	}

	if lines := Plot(visual.View{Values: []int{1}}, 0, 4, ThemeClassic); lines != nil {
		t.Errorf("expected no lines for zero width, got %v", lines)
	}
}

func TestPlot_TallestBarFillsColumn(t *testing.T) {
	lines := Plot(visual.View{Values: []int{1, 4}}, 2, 2, ThemeClassic)
	top := []rune(stripANSI(lines[0]))
	bottom := []rune(stripANSI(lines[1]))
	if top[1] != '█' || bottom[1] != '█' {
		t.Errorf("expected full column for peak, got %q / %q", string(top), string(bottom))
	}
	if top[0] != ' ' || bottom[0] != '▄' {
		t.Errorf("expected quarter bar, got %q / %q", string(top), string(bottom))
	}
}

func TestStatus(t *testing.T) {
	if got := Status(visual.View{}); got != "Sorting..." {
		t.Errorf("expected Sorting..., got %s", got)
	}
	if got := Status(visual.View{Complete: true}); got != "Complete" {
		t.Errorf("expected Complete, got %s", got)
	}
	if got := Status(visual.View{Complete: true, Err: sorting.ErrInvariant}); got != "Failed" {
		t.Errorf("expected Failed, got %s", got)
	}
}

func TestTheme(t *testing.T) {
	if _, ok := GetTheme("nope"); ok {
		t.Error("expected unknown theme to report false")
	}
	th, ok := GetTheme("ocean")
	if !ok || th.Name != "ocean" {
		t.Errorf("expected ocean, got %s", th.Name)
	}

	seen := map[string]bool{}
	cur := ThemeClassic
	for range Themes {
		seen[cur.Name] = true
		cur = cur.Next()
	}
	if len(seen) != len(Themes) || cur.Name != ThemeClassic.Name {
		t.Errorf("expected Next to cycle all themes, saw %v", seen)
	}

	if th.BarColor(4, visual.ColorPivot) != th.Pivot {
		t.Error("expected pivot color for pivot tag")
	}
	if th.BarColor(4, visual.ColorNone) != th.Gradient[1] {
		t.Error("expected gradient color for untagged bar")
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	reg := sorting.NewRegistry(sorting.DefaultOptions())
	roster, err := reg.Roster([]string{"bubble", "merge"})
	if err != nil {
		t.Fatal(err)
	}
	sup := engine.New(roster, engine.Options{Pacer: sorting.Pacer{}, Seed: 3, Logger: zerolog.Nop()})
	return NewModel(sup, Options{FPS: 60, Size: 20, MinValue: 5, MaxValue: 100, Seed: 3, Logger: zerolog.Nop()})
}

func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	next, _ := m.Update(cmd())
	return next.(Model)
}

func TestModel_RestartAndResize(t *testing.T) {
	m := newTestModel(t)
	m = run(t, m, m.restart())
	if m.generation != 1 {
		t.Fatalf("expected generation 1, got %d", m.generation)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)
	if m.sup.Generation() != 1 {
		t.Error("window resize must not restart")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(Model)
	if m.Size() != 30 {
		t.Errorf("expected size 30, got %d", m.Size())
	}
	m = run(t, m, cmd)
	if m.generation != 2 || len(m.sup.Dataset()) != 30 {
		t.Errorf("expected restart with 30 values, got gen %d len %d", m.generation, len(m.sup.Dataset()))
	}

	for i := 0; i < 5; i++ {
		next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = run(t, next.(Model), cmd)
	}
	if m.Size() != 10 {
		t.Errorf("expected size clamped to 10, got %d", m.Size())
	}
	m.sup.Stop()
}

func TestModel_QueuesRestartWhileOneIsInFlight(t *testing.T) {
	m := newTestModel(t)
	first := m.Init()
	if first == nil {
		t.Fatal("expected init command")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = next.(Model)
	if cmd != nil || !m.queued {
		t.Fatal("expected restart to be queued behind the initial one")
	}

	m = run(t, m, m.restart())
	if m.queued || !m.restarting {
		t.Error("expected queued restart to be issued")
	}
	m.sup.Stop()
}

func TestModel_ThemeAndView(t *testing.T) {
	m := newTestModel(t)
	m = run(t, m, m.restart())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(Model)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	m = next.(Model)
	if m.Theme().Name != "cyberpunk" {
		t.Errorf("expected cyberpunk, got %s", m.Theme().Name)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		next, _ = m.Update(TickMsg(time.Now()))
		m = next.(Model)
		if m.views[0].Complete && m.views[1].Complete {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	out := stripANSI(m.View())
	for _, want := range []string{"Bubble Sort - Complete", "Merge Sort - Complete", "List Size: 20", "R - Reset"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in view", want)
		}
	}
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t)
	m = run(t, m, m.restart())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("expected stop command")
	}
	_, quit := m.Update(cmd())
	if quit == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := quit().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("expected empty view while quitting")
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	esc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			esc = true
		case esc:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				esc = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
