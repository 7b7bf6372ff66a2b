package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Levels recognised by downstream notifiers.
const (
	LevelWarning = "warning"
	LevelInfo    = "info"
)

// Event is one transient user-visible notification, e.g. the session
// expiry warning shown before a forced login redirect.
type Event struct {
	// ID correlates the notification with log lines for the same episode.
	ID         string
	Level      string
	Message    string
	OccurredAt time.Time
}

// Warning builds a warning-level event with a fresh correlation ID.
func Warning(message string) Event {
	return Event{
		ID:         uuid.NewString(),
		Level:      LevelWarning,
		Message:    message,
		OccurredAt: time.Now(),
	}
}

// Notifier describes a destination capable of showing events to the user.
type Notifier interface {
	Notify(ctx context.Context, ev Event)
}

// NotifierFunc adapts a function to the Notifier interface (useful for tests).
type NotifierFunc func(ctx context.Context, ev Event)

// Notify implements the Notifier interface.
func (f NotifierFunc) Notify(ctx context.Context, ev Event) {
	if f == nil {
		return
	}
	f(ctx, ev)
}
