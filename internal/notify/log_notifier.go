package notify

import (
	"context"
	"log"
)

// LogNotifier implements Notifier by writing notifications to a logger.
type LogNotifier struct {
	logger *log.Logger
}

func NewLogNotifier(logger *log.Logger) *LogNotifier {
	if logger == nil {
		logger = log.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Publish(ctx context.Context, notification Notification) error {
	n.logger.Printf("🔔 [%s] %s", notification.Severity, notification.Message)
	return nil
}
