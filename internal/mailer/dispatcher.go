package mailer

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout is reported when the transport does not answer within the
// dispatcher's timeout.
var ErrTimeout = errors.New("mail transport timed out")

const DefaultTimeout = 10 * time.Second

// Dispatcher runs transport calls off the caller's goroutine with a bounded wait.
type Dispatcher struct {
	transport Transport
	timeout   time.Duration
}

func NewDispatcher(transport Transport, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Dispatcher{
		transport: transport,
		timeout:   timeout,
	}
}

// Dispatch starts sending msg and returns a channel that receives exactly one
// result. The channel is buffered so the sender never blocks on an absent reader.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) <-chan error {
	result := make(chan error, 1)
	sendCtx, cancel := context.WithTimeout(ctx, d.timeout)

	go func() {
		defer cancel()

		done := make(chan error, 1)
		go func() {
			done <- d.transport.Send(sendCtx, msg)
		}()

		select {
		case err := <-done:
			if err != nil && sendCtx.Err() != nil {
				err = contextError(sendCtx)
			}
			result <- err
		case <-sendCtx.Done():
			result <- contextError(sendCtx)
		}
	}()

	return result
}

func contextError(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrTimeout
	}
	return ctx.Err()
}

// Send dispatches msg and waits for the result.
func (d *Dispatcher) Send(ctx context.Context, msg Message) error {
	return <-d.Dispatch(ctx, msg)
}
