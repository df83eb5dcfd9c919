package mailer

import (
	"context"
	"fmt"

	"github.com/foodsaver/foodsaver-backend/pkg/config"
	mail "github.com/wneessen/go-mail"
)

// Sender dispatches a plain-text message to the configured recipients.
type Sender interface {
	Enabled() bool
	Send(ctx context.Context, subject, body string) error
}

// Client sends mail over SMTP with STARTTLS and plain auth, matching the
// settings carried in config.SMTPConfig.
type Client struct {
	cfg config.SMTPConfig
}

// New builds an SMTP client. The client is always constructable; callers
// check Enabled before dispatching.
func New(cfg config.SMTPConfig) *Client {
	return &Client{cfg: cfg}
}

// Enabled reports whether the transport has a complete configuration.
func (c *Client) Enabled() bool {
	return c.cfg.Enabled()
}

// Send delivers one message. The dial and send are bounded by the configured
// timeout so a hung server cannot stall the caller.
func (c *Client) Send(ctx context.Context, subject, body string) error {
	if !c.Enabled() {
		return fmt.Errorf("smtp transport is not configured")
	}

	msg := mail.NewMsg()
	if err := msg.From(c.cfg.FromAddress()); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(c.cfg.Recipients()...); err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(c.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(c.cfg.Username),
		mail.WithPassword(c.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	}
	if c.cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(c.cfg.Timeout))
	}

	client, err := mail.NewClient(c.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("building smtp client: %w", err)
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
