package tui

import (
	"time"

	"github.com/caldwell/strand/internal/domain"
)

// Message types for the TUI

// ErrMsg represents a failed page fetch. Generation ties it to the fetch
// epoch that issued it.
type ErrMsg struct {
	Err        error
	Context    string
	Generation int
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// FrameTickMsg drives the per-frame poll loop: the pagination trigger is
// sampled on every one of these, not on scroll events.
type FrameTickMsg struct {
	Time time.Time
}

// PageLoadedMsg signals that a feed page arrived. Generation is the fetch
// epoch the request was issued under; a response from a past epoch (the
// feed was reset while it was in flight) is discarded, not applied.
type PageLoadedMsg struct {
	Page       domain.Page
	Generation int
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
