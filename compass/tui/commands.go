package tui

import (
	"context"

	"compass/compass/utils/types"

	tea "github.com/charmbracelet/bubbletea"
)

// startResearch kicks off a streamed run for company.
func startResearch(ctx context.Context, s Streamer, company string) tea.Cmd {
	return func() tea.Msg {
		events, errs := s.ResearchStream(ctx, types.ResearchRequest{Company: company})
		return streamStartedMsg{events: events, errs: errs}
	}
}

// waitForEvent blocks until the next event, or reports the stream's end.
func waitForEvent(events <-chan types.ResearchEvent, errs <-chan error) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return StreamClosedMsg{Err: <-errs}
		}
		return EventMsg{Event: ev}
	}
}
