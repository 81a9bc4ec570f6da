package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tablebooker/pkg/logger"
)

// ErrTemporary marks failures worth retrying: network errors, throttling and
// provider outages.
var ErrTemporary = errors.New("temporary mail failure")

type Email struct {
	ToEmail string
	ToName  string
	Subject string
	Text    string
	HTML    string
}

func (e Email) validate() error {
	if strings.TrimSpace(e.ToEmail) == "" {
		return fmt.Errorf("recipient email is required")
	}
	if strings.TrimSpace(e.Subject) == "" {
		return fmt.Errorf("subject is required")
	}
	return nil
}

// Sender delivers one email and returns the provider's message id, if any.
type Sender interface {
	Send(ctx context.Context, email Email) (string, error)
}

type Config struct {
	APIKey    string
	FromName  string
	FromEmail string
}

// New returns the MailerSend sender when an API key is configured and the
// log sender otherwise.
func New(cfg Config, log *logger.Logger) Sender {
	if cfg.APIKey == "" {
		log.Warn("MAILERSEND_API_KEY not set, confirmation emails will only be logged")
		return NewLogSender(log)
	}
	return NewMailerSend(cfg.APIKey, cfg.FromName, cfg.FromEmail)
}
