package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/orbsim/internal/config"
	"github.com/san-kum/orbsim/internal/metrics"
	"github.com/san-kum/orbsim/internal/orbital"
	"github.com/san-kum/orbsim/internal/vecmath"
)

const (
	canvasWidth   = 80
	canvasHeight  = 24
	trailCapacity = 400
	energyHistory = 120
	tickRate      = time.Second / 30
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Width(42)
	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

type TickMsg time.Time

// PreviewMsg carries a finished speculative run back into Update.
type PreviewMsg struct {
	Preview    *orbital.Preview
	Trajectory []vecmath.Vector
	Err        error
}

// Model steps a Simulation on every tick and keeps a speculative preview of
// the tracked body running alongside it.
type Model struct {
	ctx      context.Context
	scenario *config.Scenario
	initial  *orbital.Simulation
	sim      *orbital.Simulation

	track     orbital.ID
	perTick   int
	viewport  Viewport
	canvas    *Canvas
	trails    map[orbital.ID][]vecmath.Vector
	energy    []float64
	preview   *orbital.Preview
	pending   bool
	predicted []vecmath.Vector

	running     bool
	showPreview bool
	err         error
}

// NewModel builds a live view over sim. perTick is how many dt increments
// are integrated per frame.
func NewModel(ctx context.Context, sim *orbital.Simulation, sc *config.Scenario, perTick int) Model {
	if perTick <= 0 {
		perTick = 1
	}
	c := NewCanvas(canvasWidth, canvasHeight)

	positions := make([]vecmath.Vector, 0, sim.Len())
	for _, b := range sim.Bodies() {
		positions = append(positions, b.Position())
	}
	vp := FitViewport(c, positions)
	vp.Scale *= 2

	return Model{
		ctx:         ctx,
		scenario:    sc,
		initial:     sim.Clone(),
		sim:         sim,
		track:       orbital.ID(sc.Track),
		perTick:     perTick,
		viewport:    vp,
		canvas:      c,
		trails:      make(map[orbital.ID][]vecmath.Vector),
		energy:      make([]float64, 0, energyHistory),
		running:     true,
		showPreview: sc.Track != "",
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func waitPreview(p *orbital.Preview) tea.Cmd {
	return func() tea.Msg {
		traj, err := p.Wait()
		return PreviewMsg{Preview: p, Trajectory: traj, Err: err}
	}
}

// Init only schedules the first tick; the preview starts on that tick so the
// Preview handle lives in the model Update returns.
func (m Model) Init() tea.Cmd {
	return tick()
}

// speculate starts a preview of the tracked body if none is in flight.
func (m *Model) speculate() tea.Cmd {
	if !m.showPreview || m.track == "" {
		return nil
	}
	if m.pending {
		return nil
	}
	pv := m.scenario.Preview
	m.preview = m.sim.Speculate(m.ctx, pv.Dt, pv.Duration, m.track)
	m.pending = true
	return waitPreview(m.preview)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancelPreview()
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
			cmd := m.speculate()
			return m, cmd
		case "p":
			m.showPreview = !m.showPreview
			if !m.showPreview {
				m.cancelPreview()
				m.predicted = nil
				return m, nil
			}
			cmd := m.speculate()
			return m, cmd
		case "+", "=":
			m.viewport.Scale /= 1.25
		case "-", "_":
			m.viewport.Scale *= 1.25
		}

	case PreviewMsg:
		if msg.Preview != m.preview {
			return m, nil
		}
		m.pending = false
		if msg.Err == nil {
			m.predicted = msg.Trajectory
		}
		if m.running {
			cmd := m.speculate()
			return m, cmd
		}

	case TickMsg:
		var cmd tea.Cmd
		if m.running && m.err == nil {
			m.step()
			cmd = m.speculate()
		}
		return m, tea.Batch(tick(), cmd)
	}
	return m, nil
}

func (m *Model) step() {
	dt := m.scenario.Dt
	if err := m.sim.Step(dt, dt*float64(m.perTick)); err != nil {
		m.err = err
		m.running = false
		return
	}

	for _, b := range m.sim.Bodies() {
		trail := append(m.trails[b.ID()], b.Position())
		if len(trail) > trailCapacity {
			trail = trail[len(trail)-trailCapacity:]
		}
		m.trails[b.ID()] = trail
	}

	m.energy = append(m.energy, metrics.TotalEnergy(m.sim))
	if len(m.energy) > energyHistory {
		m.energy = m.energy[len(m.energy)-energyHistory:]
	}
}

func (m *Model) cancelPreview() {
	if m.preview != nil {
		m.preview.Cancel()
	}
	m.preview = nil
	m.pending = false
}

func (m *Model) reset() {
	m.cancelPreview()
	m.predicted = nil
	m.sim = m.initial.Clone()
	m.trails = make(map[orbital.ID][]vecmath.Vector)
	m.energy = m.energy[:0]
	m.err = nil
	m.running = true
}

func (m *Model) draw() {
	m.canvas.Clear()
	for _, trail := range m.trails {
		for _, p := range trail {
			m.canvas.Plot(m.viewport, p)
		}
	}
	if m.showPreview {
		for i, p := range m.predicted {
			if i%2 == 0 {
				m.canvas.Plot(m.viewport, p)
			}
		}
	}
	for _, b := range m.sim.Bodies() {
		m.canvas.Body(m.viewport, b.Position())
	}
}

func (m Model) status() string {
	switch {
	case m.err != nil:
		return StatusError.Render("ERROR")
	case m.running:
		return StatusRunning.Render("RUNNING")
	default:
		return StatusPaused.Render("PAUSED")
	}
}

func (m Model) previewPhase() orbital.Phase {
	if m.preview == nil {
		return orbital.Idle
	}
	return m.preview.Phase()
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(Title.Render(strings.ToUpper(m.scenario.Name)) + "\n")
	s.WriteString(m.status() + "\n\n")

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(Row("Time", fmt.Sprintf("%.6g s", m.sim.Elapsed())) + "\n")
	s.WriteString(Row("Bodies", fmt.Sprintf("%d", m.sim.Len())) + "\n")
	s.WriteString(Row("Step", fmt.Sprintf("%g x%d", m.scenario.Dt, m.perTick)) + "\n")
	s.WriteString(Row("Scale", fmt.Sprintf("%.3g /dot", m.viewport.Scale)) + "\n")
	if m.track != "" {
		s.WriteString(Row("Tracking", string(m.track)) + "\n")
		s.WriteString(Row("Preview", m.previewPhase().String()) + "\n")
		if b, ok := m.sim.Get(m.track); ok {
			s.WriteString(Row("Position", b.Position().String()) + "\n")
		}
	}
	if m.err != nil {
		s.WriteString("\n" + StatusError.Render(m.err.Error()) + "\n")
	}
	s.WriteString(KeyHint.Render("\nSP:Pause R:Reset Q:Quit\nP:Preview +/-:Zoom"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}
