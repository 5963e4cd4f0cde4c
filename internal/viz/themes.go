package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the explorer palette. Elements maps a symbol to its color;
// unlisted symbols use Accent.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Elements  map[string]lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:      "cyberpunk",
		Primary:   lipgloss.Color("#ff00ff"),
		Secondary: lipgloss.Color("#00ffff"),
		Accent:    lipgloss.Color("#ffff00"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666666"),
		Elements: map[string]lipgloss.Color{
			"C": lipgloss.Color("#aaaaaa"),
			"H": lipgloss.Color("#ffffff"),
			"O": lipgloss.Color("#ff3355"),
		},
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Elements:  map[string]lipgloss.Color{},
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#0077be"),
		Secondary: lipgloss.Color("#00a8cc"),
		Accent:    lipgloss.Color("#ffd700"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Elements: map[string]lipgloss.Color{
			"C": lipgloss.Color("#88aacc"),
			"H": lipgloss.Color("#e0f0ff"),
			"O": lipgloss.Color("#ff6b6b"),
		},
	}

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeMinimal,
		ThemeOcean,
	}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func (t Theme) Element(symbol string) lipgloss.Style {
	c, ok := t.Elements[symbol]
	if !ok {
		c = t.Accent
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c)
}
