// compass/utils/types/research.go
package types

import (
	"time"
)

// SearchResult is one organic web hit.
type SearchResult struct {
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

type NewsItem struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Source  string `json:"source,omitempty"`
	Date    string `json:"date,omitempty"`
}

// ScrapedPage is what the extractor pulls out of one page. Any field may be
// empty; a failed fetch yields the zero value.
type ScrapedPage struct {
	URL             string `json:"url"`
	Title           string `json:"title"`
	MetaDescription string `json:"meta_description"`
	BodyText        string `json:"body_text"`
}

// IsEmpty reports whether nothing was extracted.
func (p ScrapedPage) IsEmpty() bool {
	return p.Title == "" && p.MetaDescription == "" && p.BodyText == ""
}

type ResearchRequest struct {
	Company string `json:"company"`
}

// ResearchReport is everything one pipeline run produced.
type ResearchReport struct {
	RunID        string         `json:"run_id"`
	Company      string         `json:"company"`
	Results      []SearchResult `json:"results"`
	Pages        []ScrapedPage  `json:"pages,omitempty"`
	Summary      string         `json:"summary,omitempty"`
	SummaryError string         `json:"summary_error,omitempty"`
	News         []NewsItem     `json:"news"`
	NewsError    string         `json:"news_error,omitempty"`
	SearchError  string         `json:"search_error,omitempty"`
	StartedAt    time.Time      `json:"started_at"`
	FinishedAt   time.Time      `json:"finished_at"`
}

type EventType string

const (
	EventStatus   EventType = "status"
	EventProgress EventType = "progress"
	EventResults  EventType = "results"
	EventSummary  EventType = "summary"
	EventNews     EventType = "news"
	EventDone     EventType = "done"
	EventError    EventType = "error"
)

// ResearchEvent is one frame streamed to a UI while a run is in flight.
type ResearchEvent struct {
	Type     EventType      `json:"type"`
	Message  string         `json:"message,omitempty"`
	Progress float64        `json:"progress"`
	Results  []SearchResult `json:"results,omitempty"`
	Summary  string         `json:"summary,omitempty"`
	News     []NewsItem     `json:"news,omitempty"`
}
