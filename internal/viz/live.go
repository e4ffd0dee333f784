package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/lspline/internal/analysis"
	"github.com/san-kum/lspline/internal/experiment"
	"github.com/san-kum/lspline/internal/stoch"
)

const (
	width  = 72
	height = 20

	rateFactor   = 1.25
	autoInterval = time.Second
)

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(lipgloss.Color("240")).
	Padding(1, 2).
	Width(44)

type TickMsg time.Time

// Model is the interactive viewer. Every resample draws a new realization
// from the experiment and redraws the canvas.
type Model struct {
	exp      *experiment.Experiment
	res      *experiment.Result
	err      error
	canvas   *Canvas
	theme    int
	overlay  bool
	auto     bool
	showHelp bool
	draws    int
}

// NewModel runs the experiment once so the first frame has a path.
func NewModel(exp *experiment.Experiment) Model {
	m := Model{exp: exp, canvas: NewCanvas(width, height)}
	m.resample()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func tick() tea.Cmd {
	return tea.Tick(autoInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r", " ":
			m.resample()
		case "up", "k":
			m.scaleRate(rateFactor)
		case "down", "j":
			m.scaleRate(1 / rateFactor)
		case "c":
			m.overlay = !m.overlay
			m.draw()
		case "a":
			m.auto = !m.auto
			if m.auto {
				return m, tick()
			}
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.auto {
			m.resample()
			return m, tick()
		}
	}
	return m, nil
}

func (m *Model) scaleRate(f float64) {
	if err := m.exp.SetRate(m.exp.Config().Rate * f); err != nil {
		m.err = err
		return
	}
	m.resample()
}

func (m *Model) resample() {
	res, err := m.exp.Run(context.Background())
	if err != nil {
		m.err = err
		return
	}
	m.res, m.err = res, nil
	m.draws++
	m.draw()
}

func (m *Model) draw() {
	if m.res == nil {
		m.canvas.Clear()
		return
	}
	Plot(m.canvas, m.res.Path, m.res.Impulses.Stems())
	if m.overlay && m.res.Continuous.Len() > 0 {
		over := NewCanvas(width, height)
		Plot(over, m.res.Continuous, stoch.Series{})
		for i := range m.canvas.Grid {
			for j := range m.canvas.Grid[i] {
				m.canvas.Grid[i][j] |= over.Grid[i][j]
			}
		}
	}
}

func (m Model) View() string {
	th := Themes[m.theme]
	cfg := m.exp.Config()

	var s strings.Builder
	s.WriteString(th.Title.Render("L-SPLINE") + "\n")
	s.WriteString(th.Label.Render("Operator") + th.Value.Render(m.exp.Operator().String()) + "\n")
	s.WriteString(th.Label.Render("Law") + th.Value.Render(cfg.Law.Name) + "\n")
	s.WriteString(th.Label.Render("Rate") + th.Value.Render(fmt.Sprintf("%.3g", cfg.Rate)) + "\n")
	s.WriteString(th.Label.Render("Draw") + th.Value.Render(fmt.Sprintf("#%d", m.draws)) + "\n")

	if m.res != nil {
		sum := m.res.Summary
		s.WriteString(th.Label.Render("Impulses") + th.Value.Render(fmt.Sprintf("%d", len(m.res.Impulses))) + "\n")
		s.WriteString(th.Label.Render("Mean") + th.Value.Render(fmt.Sprintf("%.4g", sum.Mean)) + "\n")
		s.WriteString(th.Label.Render("Std dev") + th.Value.Render(fmt.Sprintf("%.4g", sum.StdDev)) + "\n")
		if spec, err := analysis.PowerSpectrum(m.res.Path); err == nil && len(spec.Power) > 2 {
			chart := asciigraph.Plot(spec.Power[1:], asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Power spectrum"))
			s.WriteString("\n" + chart + "\n")
		}
	}
	if !m.exp.Discrete().Stable() {
		s.WriteString(th.Warn.Render("inverse filter is unstable") + "\n")
	}
	if m.err != nil {
		s.WriteString(th.Warn.Render(m.err.Error()) + "\n")
	}
	status := "manual"
	if m.auto {
		status = "auto"
	}
	s.WriteString(th.Help.Render(fmt.Sprintf("R:Resample ↑↓:Rate C:Overlay\nA:Auto (%s) T:Theme ?:Help Q:Quit", status)))

	main := lipgloss.JoinHorizontal(lipgloss.Top, th.Canvas.Render(m.canvas.String()), panelStyle.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + main
	}
	return main
}

const helpText = `
  R, Space  draw a new realization
  Up, K     rate x1.25
  Down, J   rate /1.25
  C         overlay the continuous-time path
  A         resample every second
  T         cycle themes
  Q         quit
`
