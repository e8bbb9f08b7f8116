package core

import (
	"net/mail"
	"strings"
)

type (
	EmailMessage struct {
		To          []mail.Address
		Cc          []mail.Address
		Bcc         []mail.Address
		Subject     string
		TextContent string
		HTMLContent string
	}

	// EmailService is any service that can send emails.
	EmailService interface {
		// SendMessages sends messages concurrently.
		SendMessages(messages ...*EmailMessage)
	}
)

func (m *EmailMessage) HasRecipients() bool {
	return len(m.To) > 0 || len(m.Cc) > 0 || len(m.Bcc) > 0
}

func (m *EmailMessage) HasContent() bool {
	return m.TextContent != "" || m.HTMLContent != ""
}

func (m *EmailMessage) Recipients() string {
	addrs := make([]string, 0, len(m.To)+len(m.Cc)+len(m.Bcc))
	for _, lst := range [][]mail.Address{m.To, m.Cc, m.Bcc} {
		for _, addr := range lst {
			addrs = append(addrs, addr.String())
		}
	}
	return strings.Join(addrs, ", ")
}
