package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/xw1nchester/tca-backend/internal/config"
	"go.uber.org/zap"
)

type Message struct {
	To      []string
	Subject string
	HTML    string
	ReplyTo string
}

// Sender delivers mail through Resend. Without an API key messages are only logged.
type Sender struct {
	client *resend.Client
	from   string
	inbox  string
	logger *zap.Logger
}

func New(cfg config.Resend, logger *zap.Logger) *Sender {
	s := &Sender{
		from:   cfg.From,
		inbox:  cfg.Inbox,
		logger: logger,
	}

	if cfg.Configured() {
		s.client = resend.NewClient(cfg.APIKey)
	}

	return s
}

// Inbox is the association's own address for form notifications.
func (s *Sender) Inbox() string {
	return s.inbox
}

func (s *Sender) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		s.logger.Warn("mail has no recipients, skipping", zap.String("subject", msg.Subject))
		return nil
	}

	if s.client == nil {
		s.logger.Info("mail delivery is not configured, message logged only",
			zap.Strings("to", msg.To),
			zap.String("subject", msg.Subject),
		)
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	}
	if msg.ReplyTo != "" {
		params.ReplyTo = msg.ReplyTo
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		s.logger.Error("unexpected error when sending email", zap.Strings("to", msg.To), zap.Error(err))
		return fmt.Errorf("resend send failed: %w", err)
	}

	s.logger.Info("email sent", zap.String("message_id", sent.Id), zap.String("subject", msg.Subject))

	return nil
}
