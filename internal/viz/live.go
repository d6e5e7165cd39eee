package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/bounce/internal/physics"
	"github.com/san-kum/bounce/internal/sim"
	"github.com/san-kum/bounce/internal/storage"
)

const (
	defaultWidth    = 80
	defaultHeight   = 24
	historyCapacity = 300
)

type TickMsg time.Time

type Options struct {
	Title  string
	FPS    int
	Bounds physics.Bounds
	// InboxSize is the simulator's spawn limit. Zero means sim.DefaultInboxSize.
	InboxSize int
	// Global holds the totals read at start; use storage.Unavailable when the
	// store could not be read.
	Global storage.Totals
	// Spawn builds the request for the n key. Nil means sim.DefaultSpawnConfig.
	Spawn func() sim.SpawnConfig
}

// Model drives a simulator from the bubbletea update loop, which makes the
// program goroutine the simulator's owner.
type Model struct {
	sim  *sim.Simulator
	opts Options

	width, height int
	canvas        *Canvas
	running       bool
	vectors       bool
	showHelp      bool

	wallRate   []float64
	sphereRate []float64
	last       sim.Counters
	err        error
}

func NewModel(s *sim.Simulator, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Spawn == nil {
		opts.Spawn = sim.DefaultSpawnConfig
	}
	if opts.Title == "" {
		opts.Title = "bounce"
	}
	if opts.InboxSize <= 0 {
		opts.InboxSize = sim.DefaultInboxSize
	}
	return Model{
		sim:        s,
		opts:       opts,
		width:      defaultWidth,
		height:     defaultHeight,
		canvas:     NewCanvas(defaultWidth, defaultHeight),
		running:    true,
		wallRate:   make([]float64, 0, historyCapacity),
		sphereRate: make([]float64, 0, historyCapacity),
	}
}

func (m Model) Simulator() *sim.Simulator { return m.sim }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "n":
			if _, err := m.sim.Spawn(m.opts.Spawn()); err != nil {
				m.err = err
			}
		case "d":
			m.deleteOldest()
		case "c":
			m.sim.ClearAll()
		case "s":
			m.sim.SetSoundEnabled(!m.sim.SoundEnabled())
		case "v":
			m.vectors = !m.vectors
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// deleteOldest removes the earliest registered live sphere.
func (m *Model) deleteOldest() {
	snap := m.sim.Snapshot()
	if len(snap.Entities) == 0 {
		return
	}
	m.sim.Delete(snap.Entities[0].Handle)
}

func (m *Model) resize(w, h int) {
	m.width = max(20, w-panelWidth-8)
	m.height = max(8, h-4)
	m.canvas = NewCanvas(m.width, m.height)
}

func (m *Model) step() {
	if err := m.sim.Tick(m.opts.Bounds); err != nil {
		m.err = err
		return
	}
	m.err = nil

	c := m.sim.Snapshot().Counters
	m.wallRate = pushRate(m.wallRate, float64(c.WallHits-m.last.WallHits))
	m.sphereRate = pushRate(m.sphereRate, float64(c.SphereHits-m.last.SphereHits))
	m.last = c
}

// inboxFill is the share of the spawn limit taken by waiting spawns.
func (m Model) inboxFill(snap *sim.Snapshot) float64 {
	return float64(snap.Pending) / float64(m.opts.InboxSize)
}

func pushRate(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m *Model) draw(snap *sim.Snapshot) {
	m.canvas.Clear()
	cw, ch := m.canvas.Pixels()
	b := m.opts.Bounds
	sx := float64(cw-1) / b.Width()
	sy := float64(ch-1) / b.Height()

	m.canvas.SetPen(CurrentTheme.Frame)
	m.canvas.Rect(0, 0, cw-1, ch-1)

	for _, e := range snap.Entities {
		x := (e.X - b.MinX) * sx
		y := (e.Y - b.MinY) * sy
		m.canvas.SetPen(lipgloss.Color(e.Color.Hex()))
		m.canvas.Ellipse(x, y, e.Radius*sx, e.Radius*sy)
		if m.vectors {
			m.canvas.DrawLine(int(x), int(y), int(x+e.VX*4*sx), int(y+e.VY*4*sy))
		}
	}
}

func (m Model) View() string {
	snap := m.sim.Snapshot()
	m.draw(snap)
	canvasView := canvasStyle().Render(m.canvas.Render())

	var s strings.Builder
	s.WriteString(headerStyle().Render(strings.ToUpper(m.opts.Title)) + "\n")

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	sound := "off"
	if m.sim.SoundEnabled() {
		sound = "on"
	}
	s.WriteString(fmt.Sprintf("%s  frame %d  sound %s\n\n", status, snap.Frame, sound))

	c := snap.Counters
	s.WriteString(mutedStyle().Render("SESSION") + "\n")
	s.WriteString(StatLine("Running", snap.Running()))
	s.WriteString(StatLine("Spheres", c.Spawned))
	s.WriteString(StatLine("Sphere hits", c.SphereHits))
	s.WriteString(StatLine("Wall hits", c.WallHits))

	g := m.opts.Global
	if g.Available() {
		g = g.Add(c)
	}
	s.WriteString("\n" + mutedStyle().Render("GLOBAL") + "\n")
	s.WriteString(StatLine("Spheres", FormatTotal(g.Spawned)))
	s.WriteString(StatLine("Sphere hits", FormatTotal(g.SphereHits)))
	s.WriteString(StatLine("Wall hits", FormatTotal(g.WallHits)))

	if snap.Pending > 0 {
		s.WriteString("\n" + StatLine("Pending", snap.Pending))
		s.WriteString(ProgressBar(m.inboxFill(snap), 20) + "\n")
	}

	if len(m.wallRate) > 1 {
		chart := asciigraph.Plot(m.wallRate, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("wall hits / frame"))
		s.WriteString("\n" + valueStyle().Render(chart) + "\n")
	}
	s.WriteString("\n" + labelStyle().Render("sphere hits") + SparklineChart(m.sphereRate, 24) + "\n")

	if m.err != nil {
		s.WriteString("\n" + warnStyle().Render(m.err.Error()) + "\n")
	}

	s.WriteString(mutedStyle().Render("\n─────────────────────\nSP:Pause N:Spawn D:Delete\nC:Clear S:Sound Q:Quit ?:Help"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panelStyle().Render(s.String()))

	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space  - Pause/Resume               ║
║  N      - Spawn a sphere             ║
║  D      - Delete the oldest sphere   ║
║  C      - Clear all spheres          ║
║  S      - Toggle collision sound     ║
║  V      - Toggle velocity vectors    ║
║  T      - Cycle themes               ║
║  Q      - Quit                       ║
║  ?      - Toggle this help           ║
╚══════════════════════════════════════╝`

// Run shows m full-screen and returns the final model once the user quits.
func Run(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m, tea.WithAltScreen()).Run()
}
