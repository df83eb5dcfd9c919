package reminders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/foodsaver/foodsaver-backend/pkg/db/models"
	pkgerrors "github.com/foodsaver/foodsaver-backend/pkg/errors"
	"github.com/foodsaver/foodsaver-backend/pkg/logger"
	"github.com/foodsaver/foodsaver-backend/pkg/mailer"
)

const reminderSubject = "FoodSaver: items expiring soon"

// Result reports the outcome of a reminder dispatch attempt.
type Result struct {
	// Sent is true when the batch was handled successfully, including the
	// no-op cases (empty batch, transport not configured).
	Sent bool
	// Dispatched is true only when a message actually left over the wire.
	Dispatched bool
	Detail     string
}

// Notifier delivers a reminder for a batch of due items.
type Notifier interface {
	Notify(ctx context.Context, batch []models.Item, asOf time.Time) (Result, error)
}

type emailNotifier struct {
	sender mailer.Sender
	logg   *logger.Logger
}

// NewEmailNotifier builds a Notifier on top of the mail transport. When the
// transport is not configured the notifier reports success without sending.
func NewEmailNotifier(sender mailer.Sender, logg *logger.Logger) (Notifier, error) {
	if sender == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "mail sender required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &emailNotifier{sender: sender, logg: logg}, nil
}

func (n *emailNotifier) Notify(ctx context.Context, batch []models.Item, asOf time.Time) (Result, error) {
	if len(batch) == 0 {
		return Result{Sent: true, Detail: "no items due"}, nil
	}
	if !n.sender.Enabled() {
		n.logg.Warn(ctx, "email transport not configured, skipping reminder dispatch")
		return Result{Sent: true, Detail: "email transport not configured"}, nil
	}

	body := FormatReminderBody(batch, asOf)
	if err := n.sender.Send(ctx, reminderSubject, body); err != nil {
		werr := pkgerrors.Wrap(pkgerrors.CodeTransport, err, "reminder dispatch failed")
		return Result{Sent: false, Detail: werr.Error()}, werr
	}
	return Result{
		Sent:       true,
		Dispatched: true,
		Detail:     fmt.Sprintf("reminder sent for %d item(s)", len(batch)),
	}, nil
}

// FormatReminderBody renders the plain-text reminder listing each due item
// with its remaining days and expiry date.
func FormatReminderBody(batch []models.Item, asOf time.Time) string {
	var b strings.Builder
	b.WriteString("The following items are expiring soon:\n\n")
	for _, it := range batch {
		b.WriteString(formatReminderLine(it, asOf))
		b.WriteByte('\n')
	}
	b.WriteString("\nOpen FoodSaver to review your pantry.\n")
	return b.String()
}

func formatReminderLine(it models.Item, asOf time.Time) string {
	days := it.DaysUntilExpiry(asOf)
	date := it.ExpiryDate.Format(time.DateOnly)
	switch {
	case days < 0:
		return fmt.Sprintf("- %s x%g (expired %d day(s) ago), expiry date %s", it.Name, it.Quantity, -days, date)
	case days == 0:
		return fmt.Sprintf("- %s x%g (expires today), expiry date %s", it.Name, it.Quantity, date)
	default:
		return fmt.Sprintf("- %s x%g (in %d day(s)), expiry date %s", it.Name, it.Quantity, days, date)
	}
}
