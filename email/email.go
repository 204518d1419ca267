// Package email is the mail transport for the report pipelines, built on
// SendGrid. The pipelines depend on the Sender interface so tests can swap
// in a fake.
package email

import (
	"encoding/base64"
	"fmt"

	"auditmail/config"

	"github.com/apex/log"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Attachment is a file blob attached to a message.
type Attachment struct {
	Filename string
	MIMEType string
	Content  []byte
}

// Message is a single outbound email.
type Message struct {
	To          []string
	Cc          []string
	Subject     string
	HTMLBody    string
	Attachments []Attachment
}

// Sender sends a message, or fails atomically per call.
type Sender interface {
	Send(msg *Message) error
}

// Mailer sends messages through SendGrid.
type Mailer struct {
	config *config.Config
	client *sendgrid.Client
}

// NewMailer creates a new mailer
func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		config: cfg,
		client: sendgrid.NewSendClient(cfg.SendGridAPIKey),
	}
}

// Send sends a single message.
func (m *Mailer) Send(msg *Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("message has no recipients")
	}

	from := mail.NewEmail(m.config.SendGridFromName, m.config.SendGridFromEmail)

	message := mail.NewV3Mail()
	message.SetFrom(from)
	message.Subject = msg.Subject

	p := mail.NewPersonalization()
	for _, to := range msg.To {
		p.AddTos(mail.NewEmail(to, to))
	}
	for _, cc := range msg.Cc {
		p.AddCCs(mail.NewEmail(cc, cc))
	}
	message.AddPersonalizations(p)

	message.AddContent(mail.NewContent("text/html", msg.HTMLBody))

	for _, a := range msg.Attachments {
		attachment := mail.NewAttachment()
		attachment.SetContent(base64.StdEncoding.EncodeToString(a.Content))
		attachment.SetType(a.MIMEType)
		attachment.SetFilename(a.Filename)
		attachment.SetDisposition("attachment")
		message.AddAttachment(attachment)
	}

	response, err := m.client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}

	log.Infof("Email sent to %v! Status: %d", msg.To, response.StatusCode)
	return nil
}
