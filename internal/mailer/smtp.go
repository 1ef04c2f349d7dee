package mailer

import (
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
)

// SMTPTransport relays through a local or remote SMTP server. net/smtp has no
// context support, so cancellation is left to the Dispatcher.
type SMTPTransport struct {
	addr string
	auth smtp.Auth
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPTransport(host string, port int, username, password string) *SMTPTransport {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPTransport{
		addr: net.JoinHostPort(host, strconv.Itoa(port)),
		auth: auth,
		send: smtp.SendMail,
	}
}

func (t *SMTPTransport) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := t.send(t.addr, t.auth, msg.From, []string{msg.To}, buildMIME(msg)); err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	return nil
}

func buildMIME(msg Message) []byte {
	headers := []string{
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=utf-8",
		"From: " + msg.From,
		"Reply-To: " + msg.From,
		"To: " + msg.To,
		"Subject: " + mime.QEncoding.Encode("utf-8", msg.Subject),
	}
	return []byte(strings.Join(headers, "\r\n") + "\r\n\r\n" + msg.HTML)
}
