package tui

import (
	"strings"

	"compass/compass/utils/types"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case streamStartedMsg:
		m.events, m.errs = msg.events, msg.errs
		return m, waitForEvent(m.events, m.errs)
	case EventMsg:
		m = m.applyEvent(msg.Event)
		return m, waitForEvent(m.events, m.errs)
	case StreamClosedMsg:
		m.Running = false
		m.Err = msg.Err
		m.events, m.errs = nil, nil
		return m, nil
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.cancel()
		return m, tea.Quit
	case tea.KeyEnter:
		if m.Running {
			return m, nil
		}
		m = m.reset()
		m.Company = strings.TrimSpace(m.Input)
		m.Running = true
		return m, startResearch(m.ctx, m.streamer, m.Input)
	case tea.KeyBackspace:
		if r := []rune(m.Input); len(r) > 0 {
			m.Input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.Input += " "
	case tea.KeyRunes:
		m.Input += string(msg.Runes)
	}
	return m, nil
}

func (m Model) applyEvent(ev types.ResearchEvent) Model {
	m.Progress = ev.Progress
	switch ev.Type {
	case types.EventStatus, types.EventError:
		m.Status = ev.Message
	case types.EventSummary:
		m.Summary = ev.Summary
	case types.EventResults:
		m.Results = ev.Results
	case types.EventNews:
		m.News = ev.News
	}
	return m
}
