package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/physics3/internal/physics3"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

type state int

const (
	stateList state = iota
	stateDetail
)

// probeStep is how far ←/→ moves the probe value in the detail view.
const probeStep = 0.5

type browser struct {
	doc    *physics3.Physics3
	state  state
	cursor int
	probe  float64

	width  int
	height int
}

func newBrowser(doc *physics3.Physics3) browser {
	return browser{doc: doc, width: 80, height: 24}
}

func (m browser) Init() tea.Cmd { return nil }

func (m browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m browser) handleKey(msg tea.KeyMsg) (browser, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.state {
	case stateList:
		return m.listKey(msg)
	case stateDetail:
		return m.detailKey(msg)
	}
	return m, nil
}

func (m browser) listKey(msg tea.KeyMsg) (browser, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.doc.Settings)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.doc.Settings) > 0 {
			m.state = stateDetail
			m.probe = 0
		}
	}
	return m, nil
}

func (m browser) detailKey(msg tea.KeyMsg) (browser, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.state = stateList
	case "left", "h":
		m.probe -= probeStep
	case "right", "l":
		m.probe += probeStep
	case "0":
		m.probe = 0
	}
	return m, nil
}

func (m browser) View() string {
	switch m.state {
	case stateList:
		return m.viewList()
	case stateDetail:
		return m.viewDetail()
	}
	return ""
}

func (m browser) label(id string) string {
	if name, ok := m.doc.Name(id); ok {
		return name
	}
	return ""
}

func (m browser) viewList() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("          " + cyan.Render("p h y s i c s 3") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString(dim.Render(fmt.Sprintf("      version %d  ·  %d settings", m.doc.Version, len(m.doc.Settings))) + "\n\n")

	if len(m.doc.Settings) == 0 {
		b.WriteString(dim.Render("        no physics settings") + "\n")
	}
	for i, s := range m.doc.Settings {
		name := m.label(s.ID)
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-20s", s.ID)) + dim.Render(name) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-20s", s.ID)) + dimmer.Render(name) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter open   q quit") + "\n")

	return b.String()
}

func (m browser) viewDetail() string {
	s := m.doc.Settings[m.cursor]
	var b strings.Builder
	rule := dimmer.Render("      "+strings.Repeat("─", 40)) + "\n"

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render(s.ID) + "  " + dim.Render(m.label(s.ID)) + "\n")
	b.WriteString(rule)

	b.WriteString("      " + yellow.Render(fmt.Sprintf("inputs (%d)", len(s.Inputs))) + "\n")
	for _, in := range s.Inputs {
		b.WriteString(dim.Render(fmt.Sprintf("        %-24s %-6s w=%-6g %s",
			targetID(in.Source), in.Type, in.Weight, reflectMark(in.Reflect))) + "\n")
	}

	b.WriteString("      " + yellow.Render(fmt.Sprintf("outputs (%d)", len(s.Outputs))) + "\n")
	for _, out := range s.Outputs {
		b.WriteString(dim.Render(fmt.Sprintf("        %-24s %-6s v=%-3d scale=%-6g w=%-6g %s",
			targetID(out.Destination), out.Type, out.VertexIndex, out.Scale, out.Weight, reflectMark(out.Reflect))) + "\n")
	}

	b.WriteString("      " + yellow.Render(fmt.Sprintf("vertices (%d)", len(s.Vertices))) + "\n")
	for i, v := range s.Vertices {
		b.WriteString(dim.Render(fmt.Sprintf("        %d  (%g, %g)  mob=%g delay=%g acc=%g r=%g",
			i, v.Position.X, v.Position.Y, v.Mobility, v.Delay, v.Acceleration, v.Radius)) + "\n")
	}

	b.WriteString(rule)
	if n := s.Normalization; n != nil {
		p := m.probe
		b.WriteString("      " + white.Render("probe ") + magenta.Render(fmt.Sprintf("%8.3f", p)) + "\n")
		b.WriteString(rangeLine("position", n.Position, p))
		b.WriteString(rangeLine("angle", n.Angle, p))
	} else {
		b.WriteString(dim.Render("      no normalization") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ←→ probe   0 reset   esc back   q quit") + "\n")

	return b.String()
}

func rangeLine(name string, r physics3.RangeParam, probe float64) string {
	return dim.Render(fmt.Sprintf("        %-9s [%g, %g] default %g", name, r.Minimum, r.Maximum, r.Default)) +
		"  " + cyan.Render(fmt.Sprintf("→ %g", r.Normalize(&probe))) + "\n"
}

func targetID(t physics3.Target) string {
	if p, ok := t.(physics3.ParameterTarget); ok {
		return p.ID
	}
	if t == nil {
		return "?"
	}
	return string(t.Kind())
}

func reflectMark(r bool) string {
	if r {
		return "reflect"
	}
	return ""
}

// Run opens the interactive settings browser for doc.
func Run(doc *physics3.Physics3) error {
	p := tea.NewProgram(newBrowser(doc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
