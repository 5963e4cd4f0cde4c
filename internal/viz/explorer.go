package viz

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/reaxsim/internal/atoms"
	"github.com/san-kum/reaxsim/internal/forcefield"
	"github.com/san-kum/reaxsim/internal/reaxff"
)

const (
	canvasWidth     = 44
	canvasHeight    = 18
	historyCapacity = 120
	defaultMoveStep = 0.05
	rotateStep      = math.Pi / 24
)

// Explorer is an interactive view of one snapshot. Every edit re-runs the
// full evaluation.
type Explorer struct {
	name      string
	ff        *forcefield.Repository
	opts      reaxff.Options
	threshold float64

	initial *atoms.System
	sys     *atoms.System
	result  *reaxff.Result
	err     error

	selected int
	step     float64
	camera   *Camera
	theme    int
	history  []float64
	showHelp bool

	width, height int
}

func NewExplorer(name string, sys *atoms.System, ff *forcefield.Repository, opts reaxff.Options, threshold float64) Explorer {
	m := Explorer{
		name:      name,
		ff:        ff,
		opts:      opts,
		threshold: threshold,
		initial:   sys.Clone(),
		sys:       sys.Clone(),
		step:      defaultMoveStep,
		camera:    NewCamera(),
		history:   make([]float64, 0, historyCapacity),
		width:     100,
		height:    30,
	}
	m.evaluate()
	return m
}

func (m *Explorer) evaluate() {
	res, err := reaxff.Evaluate(m.sys, m.ff, m.opts)
	m.err = err
	if err != nil {
		return
	}
	m.result = res
	m.history = append(m.history, res.Energies.Total())
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

// Result is the last successful evaluation.
func (m Explorer) Result() *reaxff.Result { return m.result }

// Err is the error of the last evaluation, if it failed.
func (m Explorer) Err() error { return m.err }

func (m Explorer) Selected() int { return m.selected }

func (m Explorer) System() *atoms.System { return m.sys }

func (m Explorer) Init() tea.Cmd { return nil }

func (m Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Explorer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.sys.Len()
	key := msg.String()
	if n == 0 && key != "q" && key != "ctrl+c" && key != "esc" {
		return m, nil
	}
	switch key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "tab":
		m.selected = (m.selected + 1) % n
	case "shift+tab":
		m.selected = (m.selected + n - 1) % n
	case "x", "y", "z", "X", "Y", "Z":
		axis := int(strings.ToLower(key)[0] - 'x')
		delta := m.step
		if strings.ToUpper(key) == key {
			delta = -delta
		}
		m.move(axis, delta)
	case "+", "=":
		m.step = math.Min(m.step*2, 1)
	case "-", "_":
		m.step = math.Max(m.step/2, 1e-3)
	case "left":
		m.camera.RotateY(-rotateStep)
	case "right":
		m.camera.RotateY(rotateStep)
	case "up":
		m.camera.RotateX(-rotateStep)
	case "down":
		m.camera.RotateX(rotateStep)
	case "]":
		m.camera.ZoomIn()
	case "[":
		m.camera.ZoomOut()
	case "t":
		m.theme = (m.theme + 1) % len(Themes)
	case "r":
		m.sys = m.initial.Clone()
		m.history = m.history[:0]
		m.evaluate()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Explorer) move(axis int, delta float64) {
	m.sys.Atoms[m.selected].Position[axis] += delta
	m.evaluate()
}

func (m Explorer) symbol(i int) string {
	return m.ff.Type(m.sys.Atoms[i].Type).Symbol
}

func (m Explorer) View() string {
	theme := Themes[m.theme]

	title := GradientText(fmt.Sprintf(" reaxsim explore · %s · %s ", m.name, m.ff.Name), theme.Primary, theme.Secondary)

	canvas := NewCanvas(canvasWidth, canvasHeight)
	symbols := make([]string, m.sys.Len())
	styles := make([]lipgloss.Style, m.sys.Len())
	for i := range m.sys.Atoms {
		symbols[i] = m.symbol(i)
		styles[i] = theme.Element(symbols[i])
		if i == m.selected {
			styles[i] = NeonGlow
		}
	}
	var bonds []reaxff.Bond
	if m.result != nil && m.err == nil {
		bonds = m.result.BondOrders().Bonds(m.threshold)
	}
	RenderMolecule(canvas, m.sys, symbols, styles, bonds, m.camera)
	left := GlassPanel.Render(canvas.String())

	right := GlassPanel.Render(m.panel(bonds))

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	footer := KeyHint.Render("tab select · x/y/z move (shift reverses) · +/- step · arrows rotate · t theme · r reset · ? help · q quit")
	if m.showHelp {
		footer = GlassPanel.Render(helpText)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, body, footer)
}

func (m Explorer) panel(bonds []reaxff.Bond) string {
	var b strings.Builder
	if m.sys.Len() == 0 {
		b.WriteString(ErrorText.Render(m.err.Error()))
		return b.String()
	}

	a := m.sys.Atoms[m.selected]
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("atom %d (%s)", m.selected, m.symbol(m.selected))))
	b.WriteByte('\n')
	b.WriteString(MetricLabel.Render("position "))
	b.WriteString(MetricValue.Render(fmt.Sprintf("%7.3f %7.3f %7.3f", a.Position[0], a.Position[1], a.Position[2])))
	b.WriteByte('\n')
	b.WriteString(MetricLabel.Render("step     "))
	b.WriteString(MetricValue.Render(fmt.Sprintf("%.3f A", m.step)))
	b.WriteByte('\n')

	if m.err != nil {
		b.WriteString(ErrorText.Render(m.err.Error()))
		b.WriteByte('\n')
		return b.String()
	}

	bo := m.result.BondOrders()
	b.WriteString(MetricLabel.Render("sum BO   "))
	b.WriteString(MetricValue.Render(fmt.Sprintf("%.4f", bo.TotalBondOrder(m.selected))))
	b.WriteString(MetricLabel.Render("  delta "))
	b.WriteString(MetricValue.Render(fmt.Sprintf("%+.4f", bo.Dev.Delta[m.selected])))
	b.WriteByte('\n')
	b.WriteString(MetricLabel.Render("valence  "))
	if v := m.ff.Type(a.Type).Valency; v > 0 {
		b.WriteString(ProgressBar(bo.TotalBondOrder(m.selected)/v, 20))
	}
	b.WriteByte('\n')
	b.WriteString(MetricLabel.Render("charge   "))
	b.WriteString(MetricValue.Render(fmt.Sprintf("%+.4f", m.result.Evaluation.Charges[m.selected])))
	b.WriteByte('\n')

	b.WriteString(Separator(34) + "\n")
	b.WriteString(EnergyTable(m.result.Energies))
	b.WriteString("\n" + Separator(34) + "\n")
	b.WriteString(BondTable(bonds, m.symbol))
	b.WriteString("\n" + Separator(34) + "\n")
	b.WriteString(MetricLabel.Render("total "))
	b.WriteString(SparklineChart(m.history, 30))
	return b.String()
}

const helpText = `Tab / Shift+Tab   select next / previous atom
x y z             move the selected atom along +x, +y, +z
X Y Z             move along -x, -y, -z
+ / -             double / halve the move step
arrows            rotate the view
[ / ]             zoom out / in
t                 cycle color theme
r                 reset the geometry
q                 quit`
