package mailer

import "context"

// Transport hands a message to a mail delivery service. A nil error means the
// service accepted the message, not that it was delivered.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}
