package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

const (
	canvasWidth     = 60
	canvasHeight    = 24
	trailCapacity   = 240
	historyCapacity = 600
	maxStepsFrame   = 512
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(44)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// LiveModel steps a system on every tick and draws the bodies with their
// recent trails.
type LiveModel struct {
	name          string
	initial       *dynamo.System
	sys           *dynamo.System
	integ         dynamo.Integrator
	dt            float64
	stepsPerFrame int
	canvas        *Canvas
	camera        *Camera
	trails        [][]dynamo.Vector
	center        int
	energy0       float64
	drift         []float64
	running       bool
	showHelp      bool
}

// NewLiveModel builds a live view of sys. The view starts centered on the
// barycenter and scaled to fit every body.
func NewLiveModel(name string, sys *dynamo.System, integ dynamo.Integrator, dt float64) LiveModel {
	m := LiveModel{
		name:          name,
		initial:       sys,
		integ:         integ,
		dt:            dt,
		stepsPerFrame: 1,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		camera:        NewCamera(),
		center:        -1,
		running:       true,
	}
	m.reset()
	return m
}

func (m LiveModel) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "c":
			m.cycleCenter()
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "f":
			m.stepsPerFrame = min(m.stepsPerFrame*2, maxStepsFrame)
		case "s":
			m.stepsPerFrame = max(m.stepsPerFrame/2, 1)
		case "e":
			m.camera.ToggleEcliptic()
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "z":
			m.camera.RotateZ(0.1)
		case "Z":
			m.camera.RotateZ(-0.1)
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			for i := 0; i < m.stepsPerFrame; i++ {
				m.step()
			}
		}
		return m, tick()
	}
	return m, nil
}

// step advances the system by one increment and records trails and the
// energy drift.
func (m *LiveModel) step() {
	m.sys = m.integ.Step(m.sys, m.dt)

	for i := range m.trails {
		m.trails[i] = append(m.trails[i], m.sys.Position(i))
		if len(m.trails[i]) > trailCapacity {
			m.trails[i] = m.trails[i][1:]
		}
	}

	drift := 0.0
	if m.energy0 != 0 {
		drift = math.Abs(physics.Energy(m.sys)-m.energy0) / math.Abs(m.energy0)
	}
	m.drift = append(m.drift, drift)
	if len(m.drift) > historyCapacity {
		m.drift = m.drift[1:]
	}
}

// reset restores the initial system and refits the view.
func (m *LiveModel) reset() {
	m.sys = m.initial
	m.trails = make([][]dynamo.Vector, m.sys.Len())
	m.drift = m.drift[:0]
	m.energy0 = physics.Energy(m.sys)
	m.fit()
}

func (m *LiveModel) cycleCenter() {
	m.center++
	if m.center >= m.sys.Len() {
		m.center = -1
	}
	m.fit()
}

// origin is the point the view is centered on.
func (m *LiveModel) origin() dynamo.Vector {
	if m.center < 0 || m.center >= m.sys.Len() {
		return dynamo.Zero
	}
	return m.sys.Position(m.center)
}

func (m *LiveModel) fit() {
	o := m.origin()
	extent := 0.0
	for i := 0; i < m.sys.Len(); i++ {
		extent = math.Max(extent, m.sys.Position(i).Sub(o).Norm())
	}
	sw, sh := m.canvas.Dots()
	m.camera.Fit(extent, sw, sh)
}

// draw paints trails first and bodies on top.
func (m *LiveModel) draw() {
	m.canvas.Clear()
	sw, sh := m.canvas.Dots()
	o := m.origin()

	for i, trail := range m.trails {
		px, py, prev := 0, 0, false
		for _, p := range trail {
			x, y, ok := m.camera.Project(p.Sub(o), sw, sh)
			if ok && prev {
				m.canvas.DrawLine(px, py, x, y, i)
			} else if ok {
				m.canvas.Set(x, y, i)
			}
			px, py, prev = x, y, ok
		}
	}
	for i := 0; i < m.sys.Len(); i++ {
		if x, y, ok := m.camera.Project(m.sys.Position(i).Sub(o), sw, sh); ok {
			m.canvas.Blob(x, y, i)
		}
	}
}

// Time is the simulated time of the displayed state.
func (m LiveModel) Time() float64 { return m.sys.Time() }

// Running reports whether ticks advance the simulation.
func (m LiveModel) Running() bool { return m.running }

// View renders the TUI interface.
func (m LiveModel) View() string {
	m.draw()
	palette := BodyPalette(m.sys.Len())
	canvasView := canvasStyle.Render(m.canvas.Render(palette))

	var s strings.Builder
	s.WriteString(Title(m.name) + "\n")
	if m.running {
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	t := m.sys.Time()
	s.WriteString(MetricLabel.Render("Scheme") + MetricValue.Render(m.integ.Name()) + "\n")
	s.WriteString(MetricLabel.Render("Time") + MetricValue.Render(fmt.Sprintf("%.1f d (%.2f yr)", t, t/365.25)) + "\n")
	s.WriteString(MetricLabel.Render("Step") + MetricValue.Render(fmt.Sprintf("%g d x%d", m.dt, m.stepsPerFrame)) + "\n")

	centerName := "barycenter"
	if m.center >= 0 {
		centerName = m.sys.Body(m.center).Name
	}
	s.WriteString(MetricLabel.Render("Center") + MetricValue.Render(centerName) + "\n")
	view := "equatorial"
	if m.camera.Ecliptic() {
		view = "ecliptic"
	}
	s.WriteString(MetricLabel.Render("Plane") + MetricValue.Render(view) + "\n")

	if len(m.drift) > 1 {
		chart := asciigraph.Plot(m.drift, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy drift"))
		s.WriteString(graphStyle.Render(chart) + "\n")
		s.WriteString(SparklineChart(m.drift, 30) + "\n")
	}

	s.WriteString("\nBODIES\n")
	for i := 0; i < m.sys.Len(); i++ {
		swatch := lipgloss.NewStyle().Foreground(palette[i]).Render("●")
		r := m.sys.Position(i).Sub(m.origin()).Norm()
		s.WriteString(fmt.Sprintf("%s %-8s %8.3f AU\n", swatch, m.sys.Body(i).Name, r))
	}

	s.WriteString("\n" + Separator(30) + "\n")
	s.WriteString(KeyHint.Render("SP:Pause R:Reset C:Center Q:Quit\n+/-:Zoom F/S:Speed E:Ecliptic ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return GlassPanel.Render(helpText) + "\n\n" + mainView
	}
	return mainView
}

const helpText = `KEYBOARD SHORTCUTS

Space    Pause/Resume simulation
R        Reset simulation
C        Cycle view center
+/-      Zoom in/out
F/S      Faster/slower (steps per frame)
E        Toggle ecliptic plane
x/y/z    Rotate view (shift reverses)
T        Cycle themes
?        Toggle this help
Q        Quit`
