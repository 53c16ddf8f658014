package research

import (
	"sync"

	"compass/compass/utils/types"
)

// Reporter is the UI side of a run. Calls arrive in pipeline order from a
// single goroutine.
type Reporter interface {
	Status(msg string)
	Progress(fraction float64)
	Results(results []types.SearchResult)
	Summary(text string)
	News(items []types.NewsItem)
	// Done marks the end of a run; progress goes back to zero.
	Done()
}

// NopReporter drops every update. Use it when only the final report matters.
type NopReporter struct{}

func (NopReporter) Status(string)                {}
func (NopReporter) Progress(float64)             {}
func (NopReporter) Results([]types.SearchResult) {}
func (NopReporter) Summary(string)               {}
func (NopReporter) News([]types.NewsItem)        {}
func (NopReporter) Done()                        {}

// EventReporter turns reporter calls into ResearchEvents for streaming UIs.
type EventReporter struct {
	mu       sync.Mutex
	emit     func(types.ResearchEvent)
	progress float64
}

func NewEventReporter(emit func(types.ResearchEvent)) *EventReporter {
	return &EventReporter{emit: emit}
}

func (r *EventReporter) send(ev types.ResearchEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ev.Type == types.EventProgress {
		r.progress = ev.Progress
	}
	if ev.Type == types.EventDone {
		r.progress = 0
	}
	ev.Progress = r.progress
	r.emit(ev)
}

func (r *EventReporter) Status(msg string) {
	r.send(types.ResearchEvent{Type: types.EventStatus, Message: msg})
}

func (r *EventReporter) Progress(fraction float64) {
	r.send(types.ResearchEvent{Type: types.EventProgress, Progress: fraction})
}

func (r *EventReporter) Results(results []types.SearchResult) {
	r.send(types.ResearchEvent{Type: types.EventResults, Results: results})
}

func (r *EventReporter) Summary(text string) {
	r.send(types.ResearchEvent{Type: types.EventSummary, Summary: text})
}

func (r *EventReporter) News(items []types.NewsItem) {
	r.send(types.ResearchEvent{Type: types.EventNews, News: items})
}

func (r *EventReporter) Done() {
	r.send(types.ResearchEvent{Type: types.EventDone})
}

// monotonic keeps the progress a run reports from ever moving backwards.
type monotonic struct {
	rep  Reporter
	last float64
}

func (m *monotonic) Progress(fraction float64) {
	if fraction < m.last {
		fraction = m.last
	}
	if fraction > 1 {
		fraction = 1
	}
	m.last = fraction
	m.rep.Progress(fraction)
}
