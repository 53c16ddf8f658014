package tui

import (
	"context"

	"compass/compass/utils/types"

	tea "github.com/charmbracelet/bubbletea"
)

// Streamer runs one research request and streams its events.
// *controllers.ResearchController satisfies it.
type Streamer interface {
	ResearchStream(ctx context.Context, req types.ResearchRequest) (<-chan types.ResearchEvent, <-chan error)
}

// Model is the terminal research UI.
type Model struct {
	streamer Streamer
	ctx      context.Context
	cancel   context.CancelFunc

	Input    string
	Company  string
	Running  bool
	Status   string
	Progress float64
	Summary  string
	Results  []types.SearchResult
	News     []types.NewsItem
	Err      error

	events <-chan types.ResearchEvent
	errs   <-chan error
}

func NewModel(s Streamer) Model {
	ctx, cancel := context.WithCancel(context.Background())
	return Model{streamer: s, ctx: ctx, cancel: cancel}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// reset clears the output of the previous run.
func (m Model) reset() Model {
	m.Status = ""
	m.Progress = 0
	m.Summary = ""
	m.Results = nil
	m.News = nil
	m.Err = nil
	return m
}
