package sentiment

import (
	"context"
	"log/slog"
)

type NoticeLevel string

const (
	NoticeInfo     NoticeLevel = "info"
	NoticeProgress NoticeLevel = "progress"
	NoticeWarning  NoticeLevel = "warning"
	NoticeError    NoticeLevel = "error"
)

// Notice is a user-visible status message emitted while reconciling.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

// Notifier receives notices as they are produced.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, n Notice)

func (f NotifierFunc) Notify(ctx context.Context, n Notice) { f(ctx, n) }

// SlogNotifier writes notices to a structured logger.
type SlogNotifier struct {
	Logger *slog.Logger
}

func (s SlogNotifier) Notify(ctx context.Context, n Notice) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	level := slog.LevelInfo
	switch n.Level {
	case NoticeProgress:
		level = slog.LevelDebug
	case NoticeWarning:
		level = slog.LevelWarn
	case NoticeError:
		level = slog.LevelError
	}
	logger.Log(ctx, level, "[Reconciler] "+n.Message)
}
