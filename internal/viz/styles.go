package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899")).
			Width(16)

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusPaused = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	StatusError = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)
)

func Row(label, value string) string {
	return MetricLabel.Render(label) + MetricValue.Render(value)
}

// Summary renders a titled panel of label/value rows.
func Summary(title string, rows [][2]string) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, Title.Render(title))
	for _, r := range rows {
		lines = append(lines, Row(r[0], r[1]))
	}
	return Panel.Render(strings.Join(lines, "\n"))
}

// MetricRows formats a metrics map in name order.
func MetricRows(m map[string]float64) [][2]string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][2]string, len(names))
	for i, name := range names {
		rows[i] = [2]string{name, fmt.Sprintf("%.6g", m[name])}
	}
	return rows
}
