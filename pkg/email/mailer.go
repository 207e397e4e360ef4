package email

import (
	"fmt"
	"net/smtp"
)

// Sender is the outbound mail transport. Implementations must treat each
// message independently; the dispatcher relies on one failed send not
// affecting the next.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends plain-text mail over a submission connection (STARTTLS)
// with a single fixed sender credential.
type SMTPMailer struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func NewSMTPMailer(host, port, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s", m.From, to, subject, body)

	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
	addr := m.Host + ":" + m.Port

	if err := smtp.SendMail(addr, auth, m.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("could not send email to %s: %w", to, err)
	}
	return nil
}
