package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailChannel delivers found-pet alerts through SendGrid.
type EmailChannel struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
}

func NewEmailChannel(apiKey, fromName, fromEmail string) *EmailChannel {
	return &EmailChannel{
		client:    sendgrid.NewSendClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (e *EmailChannel) Send(ctx context.Context, notif Notification) error {
	from := mail.NewEmail(e.fromName, e.fromEmail)
	to := mail.NewEmail(notif.Recipient, notif.Recipient)

	message := mail.NewV3Mail()
	message.SetFrom(from)
	message.Subject = notif.Message.Title()

	p := mail.NewPersonalization()
	p.AddTos(to)
	message.AddPersonalizations(p)

	message.AddContent(mail.NewContent("text/plain", notif.Message.Body()))
	message.AddContent(mail.NewContent("text/html", fmt.Sprintf("<p>%s</p>", notif.Message.Body())))

	resp, err := e.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status=%d body=%s", resp.StatusCode, resp.Body)
	}
	return nil
}
