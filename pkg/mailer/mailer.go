package mailer

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Mailer sends a single email. Implementations are chosen once at startup;
// there is no runtime feature detection beyond that.
type Mailer interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// LogMailer records the send instead of delivering it. Used when real sending
// is disabled or no provider is configured.
type LogMailer struct {
	Logger *logrus.Logger
}

func (m *LogMailer) Send(_ context.Context, to, subject, _, _ string) error {
	if m.Logger != nil {
		m.Logger.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("email send skipped (log mailer)")
	}
	return nil
}
