package mailer

import (
	"context"

	"tablebooker/pkg/logger"

	"github.com/google/uuid"
)

// LogSender writes emails to the log instead of sending them. Used in local
// development.
type LogSender struct {
	log *logger.Logger
}

func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, email Email) (string, error) {
	if err := email.validate(); err != nil {
		return "", err
	}

	id := "dev-" + uuid.NewString()
	s.log.Info("[DEV MAIL] email not sent",
		"message_id", id,
		"to", email.ToEmail,
		"name", email.ToName,
		"subject", email.Subject,
		"text", email.Text,
	)
	return id, nil
}
