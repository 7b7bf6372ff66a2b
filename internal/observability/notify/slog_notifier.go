package notify

import (
	"context"
	"log/slog"
)

// SlogNotifier writes events to structured logs. Headless consumers (the
// CLI, tests, kiosk agents without a banner surface) use this as the
// default notifier.
type SlogNotifier struct {
	logger *slog.Logger
}

// NewSlogNotifier constructs a SlogNotifier. A nil logger falls back to
// slog.Default().
func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogNotifier{logger: logger}
}

// Notify implements the Notifier interface.
func (n *SlogNotifier) Notify(ctx context.Context, ev Event) {
	n.logger.WarnContext(ctx, "user notification",
		slog.String("id", ev.ID),
		slog.String("level", ev.Level),
		slog.String("message", ev.Message),
	)
}
