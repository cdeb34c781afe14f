package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/invogen/invogen-client/internal/apierrors"
	"github.com/invogen/invogen-client/internal/interfaces"
	"github.com/invogen/invogen-client/internal/invoice"
)

func testInvoice() invoice.Invoice {
	return invoice.Invoice{
		InvoiceNumber: "INV-007",
		DueDate:       time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		BillTo:        invoice.BillTo{ClientName: "Acme Corp", Email: "billing@acme.test"},
		Total:         decimal.RequireFromString("275000"),
	}
}

func TestSender_RenderBody(t *testing.T) {
	s := NewSender("test-key", "billing@invogen.app", "Studio North", zap.NewNop())

	html, err := s.renderBody(testInvoice(), interfaces.Reminder{
		Subject: "Friendly reminder",
		Text:    "Hi Acme,\nplease pay invoice INV-007.",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "INV-007")
	assert.Contains(t, html, "275000.00")
	assert.Contains(t, html, "2026-04-01")
	assert.Contains(t, html, "please pay invoice INV-007.")
}

func TestSender_RejectsMissingRecipient(t *testing.T) {
	s := NewSender("test-key", "billing@invogen.app", "Studio North", zap.NewNop())

	inv := testInvoice()
	inv.BillTo.Email = ""

	err := s.Send(context.Background(), inv, interfaces.Reminder{Subject: "x", Text: "y"})
	require.Error(t, err)
	assert.True(t, apierrors.IsValidation(err), "no recipient means no API call at all")
}
