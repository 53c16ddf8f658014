package tui

import (
	"fmt"
	"strings"
)

const barWidth = 40

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Company Research Assistant"))
	b.WriteString("\n")

	input := m.Input
	if !m.Running {
		input += "█"
	}
	b.WriteString(InputStyle.Render(input))
	b.WriteString("\n\n")

	if m.Status != "" {
		b.WriteString(StatusStyle.Render(m.Status))
		b.WriteString("\n")
	}
	if m.Err != nil {
		b.WriteString(ErrorStyle.Render("Error: " + m.Err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(progressBar(m.Progress))
	b.WriteString("\n\n")

	if m.Summary != "" {
		b.WriteString(HeadingStyle.Render(fmt.Sprintf("Summary for %s:", m.Company)))
		b.WriteString("\n")
		b.WriteString(BoxStyle.Render(m.Summary))
		b.WriteString("\n\n")
	}

	if len(m.Results) > 0 {
		b.WriteString(HeadingStyle.Render("URLs identified"))
		b.WriteString("\n")
		for _, r := range m.Results {
			b.WriteString("  " + r.URL + "\n")
			if r.Snippet != "" {
				b.WriteString(InfoStyle.Render("    "+r.Snippet) + "\n")
			}
		}
		b.WriteString("\n")
	}

	if len(m.News) > 0 {
		b.WriteString(HeadingStyle.Render("Latest news"))
		b.WriteString("\n")
		for _, n := range m.News {
			b.WriteString(fmt.Sprintf("  %s\n", n.Title))
			b.WriteString(InfoStyle.Render("    "+n.URL) + "\n")
			if n.Snippet != "" {
				b.WriteString(InfoStyle.Render("    "+n.Snippet) + "\n")
			}
		}
		b.WriteString("\n")
	}

	if m.Running {
		b.WriteString(InfoStyle.Render("Researching... | Esc or Ctrl+C to quit"))
	} else {
		b.WriteString(InfoStyle.Render("Type a company name and press Enter | Esc or Ctrl+C to quit"))
	}
	return b.String()
}

func progressBar(fraction float64) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction * barWidth)
	return barFilled.Render(strings.Repeat("█", filled)) +
		barEmpty.Render(strings.Repeat("░", barWidth-filled)) +
		InfoStyle.Render(fmt.Sprintf(" %3.0f%%", fraction*100))
}
