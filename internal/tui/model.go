package tui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/san-kum/sortviz/internal/dataset"
	"github.com/san-kum/sortviz/internal/engine"
	"github.com/san-kum/sortviz/internal/visual"
)

const controlsLine = "R - Reset | UP/DOWN - Change List Size | T - Theme | Q - Quit"

type TickMsg time.Time

// restartedMsg reports that a restart command returned.
type restartedMsg struct {
	generation uint64
	size       int
}

type stoppedMsg struct{}

type Options struct {
	FPS      int
	Size     int
	MinValue int
	MaxValue int
	Seed     int64
	Theme    Theme
	Logger   zerolog.Logger
}

// Model samples a Supervisor at a fixed rate and draws every slot.
type Model struct {
	sup      *engine.Supervisor
	opts     Options
	rng      *rand.Rand
	interval time.Duration
	log      zerolog.Logger

	theme         Theme
	size          int
	width, height int
	views         []visual.View
	generation    uint64

	restarting bool
	queued     bool
	quitting   bool
}

func NewModel(sup *engine.Supervisor, opts Options) Model {
	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	theme := opts.Theme
	if theme.Name == "" {
		theme = ThemeClassic
	}
	// Init issues the first restart.
	return Model{
		sup:        sup,
		opts:       opts,
		rng:        rand.New(rand.NewSource(seed)),
		interval:   time.Second / time.Duration(fps),
		log:        opts.Logger.With().Str("component", "tui").Logger(),
		theme:      theme,
		size:       opts.Size,
		views:      sup.Snapshot(),
		restarting: true,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.restart(), m.tick())
}

// restart draws a fresh dataset on the UI goroutine and hands the blocking
// Supervisor restart to a command.
func (m *Model) restart() tea.Cmd {
	data := dataset.Generate(m.rng, m.size, m.opts.MinValue, m.opts.MaxValue)
	sup := m.sup
	return func() tea.Msg {
		hs := sup.Restart(data)
		msg := restartedMsg{size: len(data)}
		if len(hs) > 0 {
			msg.generation = hs[0].Generation
		}
		return msg
	}
}

// requestRestart starts a restart or queues one behind the restart in flight.
func (m *Model) requestRestart() tea.Cmd {
	if m.restarting {
		m.queued = true
		return nil
	}
	m.restarting = true
	return m.restart()
}

func (m *Model) resize(delta int) tea.Cmd {
	next := dataset.ClampSize(m.size + delta)
	if next == m.size {
		return nil
	}
	m.size = next
	return m.requestRestart()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.quitting {
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			sup := m.sup
			return m, func() tea.Msg {
				sup.Stop()
				return stoppedMsg{}
			}
		case "r", "R":
			return m, m.requestRestart()
		case "up", "k":
			return m, m.resize(dataset.SizeStep)
		case "down", "j":
			return m, m.resize(-dataset.SizeStep)
		case "t":
			m.theme = m.theme.Next()
			m.log.Debug().Str("theme", m.theme.Name).Msg("theme changed")
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case restartedMsg:
		m.restarting = false
		m.generation = msg.generation
		m.views = m.sup.Snapshot()
		m.log.Debug().Uint64("generation", msg.generation).Int("size", msg.size).Msg("restarted")
		if m.queued {
			m.queued = false
			return m, m.requestRestart()
		}
	case stoppedMsg:
		return m, tea.Quit
	case TickMsg:
		m.views = m.sup.Snapshot()
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	g := Layout(m.width, m.height, len(m.views))

	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)
	text := lipgloss.NewStyle().Foreground(m.theme.Text)

	var b strings.Builder
	b.WriteString(Grid(m.views, g, m.theme))
	b.WriteString("\n")
	b.WriteString(muted.Render(controlsLine))
	b.WriteString("\n")
	b.WriteString(text.Render(fmt.Sprintf("List Size: %d", m.size)))
	b.WriteString(muted.Render(fmt.Sprintf("  Theme: %s  Generation: %d", m.theme.Name, m.generation)))
	return b.String()
}

// Size is the list size used by the next restart.
func (m Model) Size() int { return m.size }

func (m Model) Theme() Theme { return m.theme }
