package mailer

import (
	"fmt"
	"html"
)

// Message is a single outgoing email.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
	Text    string
}

const verificationSubject = "Password recovery verification code"

// VerificationCodeMessage builds the password-recovery email carrying code.
// The validity window in the body is informational; nothing enforces it.
func VerificationCodeMessage(from, to, code string) Message {
	escaped := html.EscapeString(code)
	return Message{
		From:    from,
		To:      to,
		Subject: verificationSubject,
		HTML: fmt.Sprintf(`<html>
<head>
	<title>Verification code</title>
</head>
<body>
	<h2>Password recovery</h2>
	<p>Your verification code: <strong>%s</strong></p>
	<p>The code is valid for 10 minutes.</p>
</body>
</html>`, escaped),
		Text: fmt.Sprintf("Your verification code: %s\nThe code is valid for 10 minutes.", code),
	}
}
