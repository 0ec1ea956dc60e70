package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/heavyrent/backend/pkg/config"
)

// Sender delivers transactional email. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SendgridSender sends mail through the SendGrid v3 API.
type SendgridSender struct {
	client *sendgrid.Client
	from   string
}

// NewSendgridSender returns a Sender backed by SendGrid, or nil when no API
// key is configured so callers can treat mail as disabled.
func NewSendgridSender(cfg config.SendgridConfig) *SendgridSender {
	if cfg.APIKey == "" {
		return nil
	}
	return &SendgridSender{
		client: sendgrid.NewSendClient(cfg.APIKey),
		from:   cfg.DefaultFrom,
	}
}

func (s *SendgridSender) Send(ctx context.Context, to, subject, body string) error {
	if s == nil || s.client == nil {
		return nil
	}
	if to == "" {
		return fmt.Errorf("recipient is required")
	}

	message := mail.NewSingleEmail(
		mail.NewEmail("HeavyRent", s.from),
		subject,
		mail.NewEmail("", to),
		body,
		body,
	)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d", resp.StatusCode)
	}
	return nil
}
