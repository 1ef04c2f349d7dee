package mailer

import (
	"context"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type SendGridTransport struct {
	client *sendgrid.Client
}

func NewSendGridTransport(apiKey string) *SendGridTransport {
	return &SendGridTransport{
		client: sendgrid.NewSendClient(apiKey),
	}
}

func (t *SendGridTransport) Send(ctx context.Context, msg Message) error {
	from := mail.NewEmail("", msg.From)
	to := mail.NewEmail("", msg.To)
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.Text, msg.HTML)
	message.SetReplyTo(from)

	response, err := t.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: unexpected status %d: %s", response.StatusCode, response.Body)
	}
	log.Printf("📧 Email sent via SendGrid (status %d)", response.StatusCode)
	return nil
}
