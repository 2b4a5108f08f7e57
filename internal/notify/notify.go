package notify

import "log/slog"

// Level classifies a user-facing message.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notifier surfaces messages to the user. Transient messages disappear on
// their own; sticky ones stay until the user dismisses them.
type Notifier interface {
	Notify(level Level, message string)
	NotifySticky(level Level, message string)
}

// LogNotifier writes notifications to the structured log. Frontends wrap or
// replace it with something visible.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(level Level, message string) {
	n.log(level, message, false)
}

func (n *LogNotifier) NotifySticky(level Level, message string) {
	n.log(level, message, true)
}

func (n *LogNotifier) log(level Level, message string, sticky bool) {
	attrs := []any{"level", string(level), "sticky", sticky}
	switch level {
	case LevelError:
		n.logger.Error(message, attrs...)
	default:
		n.logger.Info(message, attrs...)
	}
}
