package mailer

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"
)

const sendTimeout = 10 * time.Second

type MailerSend struct {
	client *mailersend.Mailersend
	from   mailersend.From
}

func NewMailerSend(apiKey, fromName, fromEmail string) *MailerSend {
	return &MailerSend{
		client: mailersend.NewMailersend(apiKey),
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}
}

func (m *MailerSend) Send(ctx context.Context, email Email) (string, error) {
	if err := email.validate(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Name: email.ToName, Email: email.ToEmail}})
	msg.SetSubject(email.Subject)
	if strings.TrimSpace(email.Text) != "" {
		msg.SetText(email.Text)
	}
	if strings.TrimSpace(email.HTML) != "" {
		msg.SetHTML(email.HTML)
	}

	res, err := m.client.Email.Send(ctx, msg)
	status := 0
	if res != nil && res.Response != nil {
		status = res.StatusCode
	}
	if err != nil {
		return "", classify(status, err)
	}
	if status < 200 || status >= 300 {
		return "", classify(status, fmt.Errorf("unexpected status %d", status))
	}
	return res.Header.Get("X-Message-Id"), nil
}

// classify wraps err with ErrTemporary when retrying could help. A zero
// status means the request never got an answer.
func classify(status int, err error) error {
	if status == 0 || status == http.StatusTooManyRequests || status >= http.StatusInternalServerError {
		return fmt.Errorf("mailersend: %w: %v", ErrTemporary, err)
	}
	return fmt.Errorf("mailersend: status=%d: %w", status, err)
}
