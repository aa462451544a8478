package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the color scheme of the panels and the orbit guides. Body
// colors come from the catalogue and never change.
type Theme struct {
	Name     string
	Title    lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Controls lipgloss.Color
	Tracker  lipgloss.Color
	Info     lipgloss.Color
	Alert    lipgloss.Color
	Orbit    lipgloss.Color
}

var (
	ThemeClassic = Theme{
		Name:     "classic",
		Title:    lipgloss.Color("#ffffff"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#888888"),
		Controls: lipgloss.Color("#32cd32"),
		Tracker:  lipgloss.Color("#add8e6"),
		Info:     lipgloss.Color("#ffd700"),
		Alert:    lipgloss.Color("#ff0000"),
		Orbit:    lipgloss.Color("#323232"),
	}

	ThemeCyberpunk = Theme{
		Name:     "cyberpunk",
		Title:    lipgloss.Color("#00ffff"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#666666"),
		Controls: lipgloss.Color("#ff00ff"),
		Tracker:  lipgloss.Color("#00ffff"),
		Info:     lipgloss.Color("#ffff00"),
		Alert:    lipgloss.Color("#ff0055"),
		Orbit:    lipgloss.Color("#3a1a4a"),
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Title:    lipgloss.Color("#88ff88"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
		Controls: lipgloss.Color("#00cc00"),
		Tracker:  lipgloss.Color("#00ff00"),
		Info:     lipgloss.Color("#88ff88"),
		Alert:    lipgloss.Color("#ffff00"),
		Orbit:    lipgloss.Color("#003300"),
	}

	ThemeMinimal = Theme{
		Name:     "minimal",
		Title:    lipgloss.Color("#ffffff"),
		Text:     lipgloss.Color("#cccccc"),
		Muted:    lipgloss.Color("#777777"),
		Controls: lipgloss.Color("#aaaaaa"),
		Tracker:  lipgloss.Color("#aaaaaa"),
		Info:     lipgloss.Color("#0088ff"),
		Alert:    lipgloss.Color("#ff4444"),
		Orbit:    lipgloss.Color("#333333"),
	}

	Themes = []Theme{
		ThemeClassic,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to classic.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
