// Package reminder delivers generated payment reminders to the invoice
// recipient by email.
package reminder

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"

	"github.com/invogen/invogen-client/internal/apierrors"
	"github.com/invogen/invogen-client/internal/interfaces"
	"github.com/invogen/invogen-client/internal/invoice"
)

type Sender struct {
	client    *resend.Client
	logger    *zap.Logger
	fromEmail string
	fromName  string
}

func NewSender(apiKey string, fromEmail string, fromName string, logger *zap.Logger) *Sender {
	client := resend.NewClient(apiKey)

	return &Sender{
		client:    client,
		logger:    logger,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// bodyTemplate wraps the generated reminder text in a minimal HTML shell.
// The wording itself comes from the backend; only layout lives here.
var bodyTemplate = template.Must(template.New("reminder").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <p style="white-space: pre-line;">{{.Text}}</p>
    <hr style="border: none; border-top: 1px solid #ddd;">
    <p style="font-size: 12px; color: #666;">Invoice {{.InvoiceNumber}} &middot; {{.Total}} due {{.DueDate}}</p>
  </div>
</body>
</html>`))

type bodyData struct {
	Text          string
	InvoiceNumber string
	Total         string
	DueDate       string
}

// Send emails the generated reminder to the invoice's bill-to address.
func (s *Sender) Send(ctx context.Context, inv invoice.Invoice, rem interfaces.Reminder) error {
	toEmail := inv.BillTo.Email
	if toEmail == "" {
		return apierrors.Validation("invoice %s has no client email", inv.InvoiceNumber)
	}

	htmlContent, err := s.renderBody(inv, rem)
	if err != nil {
		return fmt.Errorf("failed to render reminder body: %w", err)
	}

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	params := &resend.SendEmailRequest{
		From:    from,
		To:      []string{toEmail},
		Subject: rem.Subject,
		Html:    htmlContent,
		Text:    rem.Text,
		Headers: map[string]string{
			"X-Entity-Ref-ID": uuid.New().String(),
		},
		Tags: []resend.Tag{
			{Name: "category", Value: "payment_reminder"},
			{Name: "invoice_number", Value: inv.InvoiceNumber},
		},
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		s.logger.Error("failed to send payment reminder",
			zap.Error(err),
			zap.String("to", toEmail),
			zap.String("invoice_number", inv.InvoiceNumber))
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("payment reminder sent",
		zap.String("email_id", sent.Id),
		zap.String("to", toEmail),
		zap.String("invoice_number", inv.InvoiceNumber))

	return nil
}

func (s *Sender) renderBody(inv invoice.Invoice, rem interfaces.Reminder) (string, error) {
	data := bodyData{
		Text:          rem.Text,
		InvoiceNumber: inv.InvoiceNumber,
		Total:         inv.Total.StringFixed(2),
		DueDate:       inv.DueDate.Format(invoice.DateLayout),
	}

	var buf bytes.Buffer
	if err := bodyTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
