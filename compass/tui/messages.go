package tui

import "compass/compass/utils/types"

// streamStartedMsg carries the channels of a run that just began.
type streamStartedMsg struct {
	events <-chan types.ResearchEvent
	errs   <-chan error
}

// EventMsg is one pipeline event.
type EventMsg struct {
	Event types.ResearchEvent
}

// StreamClosedMsg is sent once a run's event stream is drained.
type StreamClosedMsg struct {
	Err error
}
