package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/sortviz/internal/visual"
)

// Theme defines the color scheme of the renderer. Themes are values; the
// model holds the active one and passes it to every draw call.
type Theme struct {
	Name     string
	Gradient [3]lipgloss.Color // bar colors cycled by index
	CompareA lipgloss.Color
	CompareB lipgloss.Color
	Pivot    lipgloss.Color
	Sorted   lipgloss.Color
	Error    lipgloss.Color
	Done     lipgloss.Color // title of a complete slot
	Busy     lipgloss.Color // title of a running slot
	Border   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
}

var (
	ThemeClassic = Theme{
		Name:     "classic",
		Gradient: [3]lipgloss.Color{"#808080", "#a0a0a0", "#c0c0c0"},
		CompareA: lipgloss.Color("#ff0000"),
		CompareB: lipgloss.Color("#00ff00"),
		Pivot:    lipgloss.Color("#ffd700"),
		Sorted:   lipgloss.Color("#00ff00"),
		Error:    lipgloss.Color("#ff00ff"),
		Done:     lipgloss.Color("#00ff00"),
		Busy:     lipgloss.Color("#ff0000"),
		Border:   lipgloss.Color("#444444"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#888888"),
	}

	ThemeCyberpunk = Theme{
		Name:     "cyberpunk",
		Gradient: [3]lipgloss.Color{"#00ffff", "#00cccc", "#009999"},
		CompareA: lipgloss.Color("#ff00ff"),
		CompareB: lipgloss.Color("#ffff00"),
		Pivot:    lipgloss.Color("#ff8800"),
		Sorted:   lipgloss.Color("#00ff00"),
		Error:    lipgloss.Color("#ff0000"),
		Done:     lipgloss.Color("#00ff00"),
		Busy:     lipgloss.Color("#ff00ff"),
		Border:   lipgloss.Color("#444466"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#666666"),
	}

	ThemeRetro = Theme{
		Name:     "retro",
		Gradient: [3]lipgloss.Color{"#00ff00", "#00cc00", "#009900"},
		CompareA: lipgloss.Color("#ffff00"),
		CompareB: lipgloss.Color("#88ff88"),
		Pivot:    lipgloss.Color("#ffffff"),
		Sorted:   lipgloss.Color("#88ff88"),
		Error:    lipgloss.Color("#ff0000"),
		Done:     lipgloss.Color("#88ff88"),
		Busy:     lipgloss.Color("#ffff00"),
		Border:   lipgloss.Color("#005500"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
	}

	ThemeMinimal = Theme{
		Name:     "minimal",
		Gradient: [3]lipgloss.Color{"#ffffff", "#dddddd", "#bbbbbb"},
		CompareA: lipgloss.Color("#0088ff"),
		CompareB: lipgloss.Color("#00ccff"),
		Pivot:    lipgloss.Color("#ffaa00"),
		Sorted:   lipgloss.Color("#00ff00"),
		Error:    lipgloss.Color("#ff0000"),
		Done:     lipgloss.Color("#00ff00"),
		Busy:     lipgloss.Color("#ffaa00"),
		Border:   lipgloss.Color("#888888"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#888888"),
	}

	ThemeOcean = Theme{
		Name:     "ocean",
		Gradient: [3]lipgloss.Color{"#0077be", "#00a8cc", "#4488aa"},
		CompareA: lipgloss.Color("#ffd700"),
		CompareB: lipgloss.Color("#00ff88"),
		Pivot:    lipgloss.Color("#ffcc00"),
		Sorted:   lipgloss.Color("#00ff88"),
		Error:    lipgloss.Color("#ff4444"),
		Done:     lipgloss.Color("#00ff88"),
		Busy:     lipgloss.Color("#ffcc00"),
		Border:   lipgloss.Color("#4488aa"),
		Text:     lipgloss.Color("#e0f0ff"),
		Muted:    lipgloss.Color("#4488aa"),
	}

	ThemeSunset = Theme{
		Name:     "sunset",
		Gradient: [3]lipgloss.Color{"#ff6b6b", "#feca57", "#ff9ff3"},
		CompareA: lipgloss.Color("#ffffff"),
		CompareB: lipgloss.Color("#5fd068"),
		Pivot:    lipgloss.Color("#ffc048"),
		Sorted:   lipgloss.Color("#5fd068"),
		Error:    lipgloss.Color("#ff4757"),
		Done:     lipgloss.Color("#5fd068"),
		Busy:     lipgloss.Color("#ff6b6b"),
		Border:   lipgloss.Color("#8b6b8c"),
		Text:     lipgloss.Color("#fff5f5"),
		Muted:    lipgloss.Color("#8b6b8c"),
	}

	Themes = []Theme{
		ThemeClassic,
		ThemeCyberpunk,
		ThemeRetro,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name. Unknown names yield ThemeClassic and false.
func GetTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return ThemeClassic, false
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Next returns the theme after t in Themes, wrapping around.
func (t Theme) Next() Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// BarColor picks the color of the bar at index idx.
func (t Theme) BarColor(idx int, tag visual.Color) lipgloss.Color {
	switch tag {
	case visual.ColorCompareA:
		return t.CompareA
	case visual.ColorCompareB:
		return t.CompareB
	case visual.ColorPivot:
		return t.Pivot
	case visual.ColorSorted:
		return t.Sorted
	case visual.ColorError:
		return t.Error
	}
	if idx < 0 {
		idx = -idx
	}
	return t.Gradient[idx%len(t.Gradient)]
}
