package notify

import (
	"context"
	"time"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

const (
	ShowDelay    = 100 * time.Millisecond
	DismissAfter = 3 * time.Second
)

var colors = map[Severity]string{
	SeverityInfo:    "#ff1493",
	SeveritySuccess: "#4CAF50",
	SeverityWarning: "#FF9800",
	SeverityError:   "#f44336",
}

// Color returns the accent color for a severity. Unknown severities use the info color.
func (s Severity) Color() string {
	if c, ok := colors[s]; ok {
		return c
	}
	return colors[SeverityInfo]
}

// Notification is a toast shown to the user by the page script.
type Notification struct {
	Message        string   `json:"message"`
	Severity       Severity `json:"severity"`
	Color          string   `json:"color"`
	ShowAfterMs    int64    `json:"showAfterMs"`
	DismissAfterMs int64    `json:"dismissAfterMs"`
}

// New builds a notification with the fixed display timings.
func New(message string, severity Severity) Notification {
	if _, ok := colors[severity]; !ok {
		severity = SeverityInfo
	}
	return Notification{
		Message:        message,
		Severity:       severity,
		Color:          severity.Color(),
		ShowAfterMs:    ShowDelay.Milliseconds(),
		DismissAfterMs: DismissAfter.Milliseconds(),
	}
}

// Notifier defines the interface for publishing notifications to a display channel.
type Notifier interface {
	Publish(ctx context.Context, n Notification) error
}
