package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/reaxsim/internal/reaxff"
)

var (
	GlassPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	GradientTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ffff"))

	NeonGlow = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff00ff")).
			Background(lipgloss.Color("#1a001a"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	ErrorText = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))

	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// GradientText colors text by interpolating between two hex colors.
func GradientText(text string, startColor, endColor lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	sr, sg, sb := parseHex(string(startColor))
	er, eg, eb := parseHex(string(endColor))

	var result strings.Builder
	n := len(runes)
	for i, c := range runes {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		r := int(float64(sr) + t*float64(er-sr))
		g := int(float64(sg) + t*float64(eg-sg))
		b := int(float64(sb) + t*float64(eb-sb))

		style := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(r, g, b)))
		result.WriteString(style.Render(string(c)))
	}

	return result.String()
}

// ProgressBar renders a fraction in [0, 1] as a bar of width cells, clamping
// values outside that range.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if percent > 0.8 {
		return SparkHigh.Render(bar)
	} else if percent > 0.4 {
		return SparkMid.Render(bar)
	}
	return SparkLow.Render(bar)
}

// SparklineChart renders a mini sparkline of the last width values. Lower is
// drawn green since lower energy is better.
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var result strings.Builder
	for _, v := range values {
		norm := (v - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))

		c := string(chars[idx])
		switch {
		case norm > 0.7:
			result.WriteString(SparkLow.Render(c))
		case norm > 0.3:
			result.WriteString(SparkMid.Render(c))
		default:
			result.WriteString(SparkHigh.Render(c))
		}
	}
	return result.String()
}

func Separator(width int) string {
	mid := width / 2
	left := strings.Repeat("─", max(mid-3, 0))
	right := strings.Repeat("─", max(width-mid-3, 0))
	return Subtle.Render(left + " ◆ " + right)
}

// EnergyTable lists every energy term and the total in kcal/mol.
func EnergyTable(e reaxff.Energies) string {
	var b strings.Builder
	for _, t := range e.Terms() {
		b.WriteString(MetricLabel.Width(20).Render(t.Name))
		b.WriteString(MetricValue.Render(fmt.Sprintf("%14.6f", t.Value)))
		b.WriteByte('\n')
	}
	b.WriteString(HeaderStyle.Render(strings.Repeat(" ", 34)))
	b.WriteByte('\n')
	b.WriteString(MetricLabel.Width(20).Render("total"))
	b.WriteString(NeonGlow.Render(fmt.Sprintf("%14.6f", e.Total())))
	return b.String()
}

// BondTable lists bonds with their order and multiplicity. symbol names
// atom i.
func BondTable(bonds []reaxff.Bond, symbol func(i int) string) string {
	if len(bonds) == 0 {
		return Subtle.Render("no bonds above threshold")
	}
	var b strings.Builder
	for i, bond := range bonds {
		if i > 0 {
			b.WriteByte('\n')
		}
		pair := fmt.Sprintf("%s%d-%s%d", symbol(bond.I), bond.I, symbol(bond.J), bond.J)
		b.WriteString(MetricLabel.Width(12).Render(pair))
		b.WriteString(MetricValue.Render(fmt.Sprintf("%8.4f", bond.Order)))
		b.WriteString("  " + strings.Repeat("━", bond.Multiplicity))
	}
	return b.String()
}

func parseHex(hex string) (r, g, b int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	return parseHexByte(hex[1:3]), parseHexByte(hex[3:5]), parseHexByte(hex[5:7])
}

func parseHexByte(s string) int {
	var val int
	for _, c := range s {
		val *= 16
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	return val
}

func hexColor(r, g, b int) string {
	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

func hexByte(v int) string {
	v = max(0, min(v, 255))
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}
