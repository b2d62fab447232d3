package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/caldwell/strand/internal/feed"
)

// Command factories for async operations

// frameInterval is the poll cadence for the trigger/animation loop.
const frameInterval = 50 * time.Millisecond

// FrameTickCmd schedules the next frame tick.
func FrameTickCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return FrameTickMsg{Time: t}
	})
}

// FetchPageCmd loads one feed page. The service's sequence state is only
// touched back on the update loop when the resulting message lands. The
// generation is captured on the update loop, before the command runs, so
// the message identifies the fetch epoch that issued it.
func FetchPageCmd(svc *feed.Service, page int) tea.Cmd {
	gen := svc.Generation()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		p, err := svc.LoadPage(ctx, page)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading feed page", Generation: gen}
		}
		return PageLoadedMsg{Page: p, Generation: gen}
	}
}

// ClearStatusCmd clears the status bar after a delay
func ClearStatusCmd() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
