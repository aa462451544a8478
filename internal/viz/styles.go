package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/eclipsehunter/internal/eclipse"
	"github.com/san-kum/eclipsehunter/internal/orrery"
	"github.com/san-kum/eclipsehunter/internal/sim"
)

const panelWidth = 32

var (
	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusPaused = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)
)

func panel(border lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(panelWidth)
}

func titled(title string, color lipgloss.Color, lines []string, text lipgloss.Color) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(color).Render(title))
	for _, l := range lines {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(text).Render(l))
	}
	return panel(color).Render(b.String())
}

func controlsPanel(t Theme, speed float64) string {
	return titled("CONTROLS", t.Controls, controlLines(speed), t.Text)
}

func trackerPanel(t Theme, s eclipse.Stats) string {
	return titled("ECLIPSE TRACKER", t.Tracker, sim.TrackerLines(s), t.Text)
}

func infoPanel(t Theme, b *orrery.Body) string {
	title := lipgloss.NewStyle().Foreground(lipgloss.Color(b.Color.Hex())).Render("● ") + b.Name
	return titled(title, t.Info, b.Info, t.Text)
}

// controlLines adds the keyboard alternatives the terminal needs.
func controlLines(speed float64) []string {
	lines := sim.ControlLines(speed)
	return append(lines[:len(lines)-1:len(lines)-1],
		"TAB/ESC: Cycle/Clear Planet",
		"R: Reset  T: Theme  S: Snapshot",
		"Q: Quit",
		lines[len(lines)-1])
}
