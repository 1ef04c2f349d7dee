package mailer

import (
	"context"
	"log"

	"github.com/google/uuid"
)

// LogTransport only logs messages. Used in development when no mail
// provider is configured.
type LogTransport struct {
	logger *log.Logger
}

func NewLogTransport(logger *log.Logger) *LogTransport {
	if logger == nil {
		logger = log.Default()
	}
	return &LogTransport{logger: logger}
}

func (t *LogTransport) Send(ctx context.Context, msg Message) error {
	t.logger.Printf("📧 [Dev Mode] Email %s to %s: %s", uuid.NewString(), msg.To, msg.Subject)
	return nil
}
