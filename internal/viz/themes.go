package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the chrome around the canvas; spheres keep their own colour.
type Theme struct {
	Name   string
	Accent lipgloss.Color
	Border lipgloss.Color
	Frame  lipgloss.Color
	Label  lipgloss.Color
	Value  lipgloss.Color
	Muted  lipgloss.Color
	Warn   lipgloss.Color
}

var (
	ThemeNeon = Theme{
		Name:   "neon",
		Accent: lipgloss.Color("#00ffff"),
		Border: lipgloss.Color("#444466"),
		Frame:  lipgloss.Color("#333355"),
		Label:  lipgloss.Color("#888899"),
		Value:  lipgloss.Color("#ff88ff"),
		Muted:  lipgloss.Color("#555566"),
		Warn:   lipgloss.Color("#ffaa00"),
	}

	ThemePhosphor = Theme{
		Name:   "phosphor",
		Accent: lipgloss.Color("#33ff33"),
		Border: lipgloss.Color("#115511"),
		Frame:  lipgloss.Color("#0a3a0a"),
		Label:  lipgloss.Color("#22aa22"),
		Value:  lipgloss.Color("#88ff88"),
		Muted:  lipgloss.Color("#116611"),
		Warn:   lipgloss.Color("#ffff00"),
	}

	ThemeMono = Theme{
		Name:   "mono",
		Accent: lipgloss.Color("#ffffff"),
		Border: lipgloss.Color("#666666"),
		Frame:  lipgloss.Color("#444444"),
		Label:  lipgloss.Color("#999999"),
		Value:  lipgloss.Color("#dddddd"),
		Muted:  lipgloss.Color("#666666"),
		Warn:   lipgloss.Color("#ffffff"),
	}

	CurrentTheme = ThemeNeon

	Themes = []Theme{ThemeNeon, ThemePhosphor, ThemeMono}
)

func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNeon
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return
		}
	}
}
