package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const panelWidth = 44

func headerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Accent).Bold(true).MarginBottom(1)
}

func labelStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Label).Width(16)
}

func valueStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Value)
}

func mutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted)
}

func warnStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Warn).Bold(true)
}

func panelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(CurrentTheme.Border).
		Padding(1, 2).
		Width(panelWidth)
}

func canvasStyle() lipgloss.Style {
	return lipgloss.NewStyle().Padding(1, 2)
}

// StatLine renders one "label value" row.
func StatLine(label string, value any) string {
	return labelStyle().Render(label) + valueStyle().Render(fmt.Sprint(value)) + "\n"
}

// ProgressBar renders how full something is, turning to the warning colour
// past 80%.
func ProgressBar(percent float64, width int) string {
	filled := min(max(int(percent*float64(width)), 0), width)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if percent > 0.8 {
		return warnStyle().Render(bar)
	}
	return valueStyle().Render(bar)
}

// SparklineChart renders the last width values as block characters.
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 {
		return mutedStyle().Render(strings.Repeat("─", width))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	hi := 0.0
	for _, v := range values {
		hi = max(hi, v)
	}
	if hi == 0 {
		hi = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := min(max(int(v/hi*float64(len(chars)-1)), 0), len(chars)-1)
		b.WriteRune(chars[idx])
	}
	return valueStyle().Render(b.String())
}

// FormatTotal prints a global counter, keeping -1 for an unavailable store.
func FormatTotal(v int64) string {
	if v < 0 {
		return "-1"
	}
	return fmt.Sprint(v)
}
