package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/tvshelf/internal/domain"
	"github.com/mmcdole/tvshelf/internal/resource"
)

// Events funnels store invalidations into Bubble Tea messages.
type Events struct {
	ch chan tea.Msg
}

// NewEvents creates an event bridge with the given buffer size.
func NewEvents(size int) *Events {
	return &Events{ch: make(chan tea.Msg, size)}
}

// send delivers msg without blocking if the buffer is full.
// One pending refresh covers any dropped invalidations.
func (e *Events) send(msg tea.Msg) {
	select {
	case e.ch <- msg:
	default:
	}
}

// invalidation returns a subscriber that emits msg whenever a snapshot is
// stale outside of a load. That includes a load that finished after a
// concurrent Invalidate. Failed loads stay stale but carry Err and are not
// retried.
func invalidation[T any](e *Events, msg tea.Msg) func(resource.Snapshot[T]) {
	return func(snap resource.Snapshot[T]) {
		if snap.Stale && !snap.IsLoading && snap.Err == nil {
			e.send(msg)
		}
	}
}

// WaitForEventCmd waits for the next store event
func WaitForEventCmd(e *Events) tea.Cmd {
	return func() tea.Msg {
		return <-e.ch
	}
}

// WaitForNoticeCmd waits for the next notice from the channel notifier
func WaitForNoticeCmd(ch <-chan domain.Notice) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		notice, ok := <-ch
		if !ok {
			return nil
		}
		return NoticeMsg{Notice: notice}
	}
}
