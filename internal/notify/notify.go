package notify

import (
	"log/slog"

	"github.com/mmcdole/tvshelf/internal/domain"
)

// Log writes notices to a structured logger
type Log struct {
	logger *slog.Logger
}

// NewLog creates a notifier that logs failures as warnings and the rest as info
func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger}
}

func (l *Log) Notify(style domain.NoticeStyle, title, detail string) {
	if style == domain.NoticeFailure {
		l.logger.Warn(title, "detail", detail, "style", style.String())
		return
	}
	l.logger.Info(title, "detail", detail, "style", style.String())
}

// Channel adapts domain.Notifier to a channel for Bubble Tea.
type Channel struct {
	ch chan<- domain.Notice
}

// NewChannel creates a new channel-based notifier.
func NewChannel(ch chan<- domain.Notice) *Channel {
	return &Channel{ch: ch}
}

// Notify sends the notice to the channel (non-blocking if full).
func (c *Channel) Notify(style domain.NoticeStyle, title, detail string) {
	select {
	case c.ch <- domain.Notice{Style: style, Title: title, Detail: detail}:
	default: // Non-blocking if channel full
	}
}

// Tee forwards every notice to each notifier in order
func Tee(notifiers ...domain.Notifier) domain.Notifier {
	return tee(notifiers)
}

type tee []domain.Notifier

func (t tee) Notify(style domain.NoticeStyle, title, detail string) {
	for _, n := range t {
		n.Notify(style, title, detail)
	}
}
