package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/orbitsim/internal/experiment"
)

var systemInfo = map[string]string{
	"solar":    "sun, eight planets and pluto",
	"sunearth": "circular two-body orbit",
}

var schemeInfo = map[string]string{
	"naive":     "constant acceleration, 1 eval",
	"averaged":  "predictor-corrector, 4 evals",
	"parabolic": "acceleration and jerk, 5 evals",
}

var (
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	descStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	idleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	idleDescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	hintKeyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

const (
	stateSystem = iota
	stateScheme
	stateLive
)

// Picker is a two-level menu: choose a system, then a scheme, then watch
// it run in a LiveModel.
type Picker struct {
	registry *experiment.Registry
	dt       float64
	state    int
	cursor   int
	systems  []string
	schemes  []string
	system   string
	err      error
	live     LiveModel
}

func NewPicker(registry *experiment.Registry, dt float64) Picker {
	return Picker{
		registry: registry,
		dt:       dt,
		systems:  registry.ListSystems(),
		schemes:  registry.ListIntegrators(),
	}
}

func (m Picker) Init() tea.Cmd { return nil }

// Selected returns the chosen system and scheme; either is empty until
// picked.
func (m Picker) Selected() (system, scheme string) {
	if m.state == stateLive {
		return m.system, m.live.integ.Name()
	}
	return m.system, ""
}

func (m Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateLive {
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "backspace" {
			m.state, m.cursor = stateScheme, 0
			return m, nil
		}
		next, cmd := m.live.Update(msg)
		m.live = next.(LiveModel)
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	items := m.items()
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case "esc", "backspace":
		if m.state == stateScheme {
			m.state, m.cursor, m.system = stateSystem, 0, ""
		}
	case "enter", " ":
		if len(items) == 0 {
			return m, nil
		}
		if m.state == stateSystem {
			m.system = items[m.cursor]
			m.state, m.cursor, m.err = stateScheme, 0, nil
			return m, nil
		}
		return m.start(items[m.cursor])
	}
	return m, nil
}

func (m Picker) start(scheme string) (tea.Model, tea.Cmd) {
	sys, err := m.registry.GetSystem(m.system)
	if err != nil {
		m.err = err
		return m, nil
	}
	integ, err := m.registry.GetIntegrator(scheme)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.live = NewLiveModel(m.system, sys, integ, m.dt)
	m.state = stateLive
	return m, m.live.Init()
}

func (m Picker) items() []string {
	if m.state == stateSystem {
		return m.systems
	}
	return m.schemes
}

func (m Picker) View() string {
	if m.state == stateLive {
		return m.live.View()
	}

	title, info := "ORBITSIM", systemInfo
	subtitle := "solar system integrator"
	if m.state == stateScheme {
		title, info = strings.ToUpper(m.system), schemeInfo
		subtitle = "choose a scheme"
	}

	var b strings.Builder
	b.WriteString("\n\n    " + GradientText(title, CurrentTheme.Primary, CurrentTheme.Secondary) + "\n")
	b.WriteString("    " + Subtle.Render(subtitle) + "\n    " + Subtle.Render(Separator(25)) + "\n\n")
	for i, name := range m.items() {
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", cursorStyle.Render("▸"), selectedStyle.Render(fmt.Sprintf("%-12s", name)), descStyle.Render(info[name])))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", idleStyle.Render(fmt.Sprintf("%-12s", name)), idleDescStyle.Render(info[name])))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + StatusPaused.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + hintKeyStyle.Render("j/k") + idleStyle.Render(" navigate  ") +
		hintKeyStyle.Render("enter") + idleStyle.Render(" select  ") +
		hintKeyStyle.Render("esc") + idleStyle.Render(" back  ") +
		hintKeyStyle.Render("q") + idleStyle.Render(" quit") + "\n")
	return b.String()
}

// RunPicker starts the menu on the alternate screen.
func RunPicker(registry *experiment.Registry, dt float64) error {
	_, err := tea.NewProgram(NewPicker(registry, dt), tea.WithAltScreen()).Run()
	return err
}

// RunLive runs a single LiveModel on the alternate screen.
func RunLive(m LiveModel) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
