// Package mailer delivers account emails. The core only hands it a user and
// a verification token; rendering and transport live here.
package mailer

import (
	"fmt"
	"net/smtp"

	"socialite/backend/internal/models"
)

// Mailer sends the verification email for a freshly issued token.
type Mailer interface {
	SendVerification(user models.User, token string) error
}

// SMTPMailer delivers mail over plain-auth SMTP.
type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// BaseURL is the public root the verification link is built on.
	BaseURL string
}

// SendVerification emails user a link of the form
// <base>/api/v1/users/<username>/verify/<token>.
func (m *SMTPMailer) SendVerification(user models.User, token string) error {
	link := fmt.Sprintf("%s/api/v1/users/%s/verify/%s", m.BaseURL, user.Username, token)

	headers := "From: " + m.From + "\n" +
		"To: " + user.Email + "\n" +
		"Subject: [Socialite] User Verification\n" +
		"MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	body := "<html><body><div>" +
		"<p>Hi " + user.FirstName + ",</p>" +
		"<p>To verify your account, visit the following link:</p>" +
		"<p><a href=\"" + link + "\">" + link + "</a></p>" +
		"<p>If you did not register, simply ignore this email.</p>" +
		"</div></body></html>"

	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
	addr := fmt.Sprintf("%s:%d", m.Host, m.Port)
	err := smtp.SendMail(addr, auth, m.From, []string{user.Email}, []byte(headers+body))
	if err != nil {
		return fmt.Errorf("sending verification email: %w", err)
	}
	return nil
}
