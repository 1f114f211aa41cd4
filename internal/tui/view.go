package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/onefocus/internal/journey"
	"github.com/julianstephens/onefocus/internal/tui/components/heatmap"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = docStyle.Render(m.dashboard.View())
	case StateProgress:
		content = docStyle.Render(m.viewProgress())
	case StateReflections:
		content = docStyle.Render(m.viewReflections())
	case StateFocus:
		content = lipgloss.Place(m.width, max(m.height-4, 12), lipgloss.Center, lipgloss.Center, m.breathing.View())
	case StateMoodForm, StateReflectionForm, StateFailureForm:
		content = docStyle.Render(m.form.View())
	}

	var footer string
	switch {
	case m.err != nil:
		footer = errorStyle.Render("Error: " + m.err.Error())
	case m.status != "":
		footer = statusStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		footer,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewProgress() string {
	best, worst := journey.BestAndWorstWeek(m.weeks)
	return strings.Join([]string{
		headingStyle.Render("66-day map"),
		heatmap.Render(m.heatmap),
		"",
		headingStyle.Render("Weeks"),
		heatmap.RenderWeeks(m.weeks),
		mutedStyle.Render(fmt.Sprintf("best week %d, toughest week %d", best, worst)),
	}, "\n")
}

func (m Model) viewReflections() string {
	if len(m.reflections) == 0 {
		return mutedStyle.Render("No reflections yet. One is offered at the end of every week.")
	}
	var b strings.Builder
	for _, r := range m.reflections {
		b.WriteString(headingStyle.Render(r.WeekLabel()))
		b.WriteString("\n")
		if r.Skipped {
			b.WriteString(mutedStyle.Render("skipped"))
			b.WriteString("\n\n")
			continue
		}
		for _, qa := range [][2]string{
			{"Helped", r.WhatHelped},
			{"Hindered", r.WhatHindered},
			{"Patterns", r.PatternsNoticed},
		} {
			if qa[1] != "" {
				fmt.Fprintf(&b, "%s %s\n", mutedStyle.Render(qa[0]+":"), qa[1])
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
