// Package heatmap renders the 66-day journey grid.
package heatmap

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/onefocus/internal/models"
)

// Columns is the number of cells per row; 66 days fill six rows.
const Columns = 11

var (
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	missedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	futureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	todayStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	legendStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Glyph returns the unstyled symbol for a cell.
func Glyph(d models.HeatmapDay) string {
	switch {
	case d.Completed:
		return "■"
	case d.Today:
		return "◆"
	case d.Future:
		return "·"
	default:
		return "□"
	}
}

func cellStyle(d models.HeatmapDay) lipgloss.Style {
	switch {
	case d.Today:
		return todayStyle
	case d.Completed:
		return doneStyle
	case d.Future:
		return futureStyle
	default:
		return missedStyle
	}
}

// Render draws the grid row by row with a legend underneath.
func Render(days []models.HeatmapDay) string {
	var b strings.Builder
	for i, d := range days {
		if i > 0 && i%Columns == 0 {
			b.WriteString("\n")
		} else if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(cellStyle(d).Render(Glyph(d)))
	}

	done := 0
	for _, d := range days {
		if d.Completed {
			done++
		}
	}
	b.WriteString("\n\n")
	b.WriteString(legendStyle.Render(fmt.Sprintf("■ done  □ missed  ◆ today  · upcoming   %d/%d days", done, len(days))))
	return b.String()
}

// RenderWeeks draws one bar per week.
func RenderWeeks(weeks []models.WeekCompletion) string {
	var b strings.Builder
	for _, w := range weeks {
		bar := strings.Repeat("█", w.CompletedDays) + strings.Repeat("░", w.TotalDays-w.CompletedDays)
		fmt.Fprintf(&b, "Week %-2d %s %3.0f%%\n", w.WeekNumber, doneStyle.Render(bar), w.CompletionRate*100)
	}
	return strings.TrimRight(b.String(), "\n")
}
