package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	chartBarWidth   = 40
	chartLabelWidth = 36
)

var (
	chartTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")).
			Bold(true)

	chartLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("45"))

	chartBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	chartValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Bold(true)

	chartDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

// barRow is one row of a horizontal bar chart.
type barRow struct {
	Label string
	Value int
	Note  string // dim text after the value, optional
}

// barLength scales value against max into at most width cells. Non-zero
// values always get at least one cell.
func barLength(value, max, width int) int {
	if value <= 0 || max <= 0 {
		return 0
	}
	n := value * width / max
	if n == 0 {
		n = 1
	}
	return n
}

// renderBarChart renders rows as a titled horizontal bar chart.
func renderBarChart(title string, rows []barRow) string {
	var b strings.Builder
	b.WriteString(chartTitleStyle.Render(title))
	b.WriteString("\n\n")

	if len(rows) == 0 {
		b.WriteString(chartDimStyle.Render("  (nothing to show)"))
		b.WriteString("\n")
		return b.String()
	}

	max := 0
	for _, r := range rows {
		if r.Value > max {
			max = r.Value
		}
	}

	for _, r := range rows {
		label := fmt.Sprintf("%-*s", chartLabelWidth, truncateString(r.Label, chartLabelWidth))
		bar := strings.Repeat("█", barLength(r.Value, max, chartBarWidth))
		b.WriteString(chartLabelStyle.Render(label))
		b.WriteString(" ")
		b.WriteString(chartBarStyle.Render(bar))
		b.WriteString(" ")
		b.WriteString(chartValueStyle.Render(fmt.Sprintf("%d", r.Value)))
		if r.Note != "" {
			b.WriteString(" ")
			b.WriteString(chartDimStyle.Render(r.Note))
		}
		b.WriteString("\n")
	}
	return b.String()
}
