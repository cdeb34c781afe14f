// Package interfaces declares the contracts the core calls external
// collaborators through. The collection controller and CLI depend on
// these, never on a concrete transport.
package interfaces

import (
	"context"

	"github.com/invogen/invogen-client/internal/invoice"
)

//go:generate mockgen -source=clients.go -destination=../mocks/invoice_api_mock.go -package=mocks

// InvoiceAPI is the remote data service owning the persisted invoices.
// The wire format behind it belongs to the backend; the core only sees
// these typed operations.
type InvoiceAPI interface {
	ListInvoices(ctx context.Context) (*InvoiceList, error)
	GetInvoice(ctx context.Context, id string) (*invoice.Invoice, error)
	CreateInvoice(ctx context.Context, draft invoice.Draft) (*invoice.Invoice, error)
	UpdateInvoice(ctx context.Context, id string, update InvoiceUpdate) (*invoice.Invoice, error)
	DeleteInvoice(ctx context.Context, id string) error
	ParseInvoiceText(ctx context.Context, text string) (*invoice.Extraction, error)
	GenerateReminder(ctx context.Context, invoiceID string, tone ReminderTone) (*Reminder, error)
	GetDashboardSummary(ctx context.Context) (*DashboardSummary, error)
}

// Pagination is the backend's list envelope metadata.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// InvoiceList is a full fetch result.
type InvoiceList struct {
	Invoices   []invoice.Invoice
	Pagination Pagination
}

// InvoiceUpdate carries the fields of a partial invoice update. Nil
// fields are left untouched by the backend.
type InvoiceUpdate struct {
	Draft  *invoice.Draft  `json:"draft,omitempty"`
	Status *invoice.Status `json:"status,omitempty"`
}

// ReminderTone selects how firmly a payment reminder is worded.
type ReminderTone string

const (
	ToneGentle ReminderTone = "gentle"
	ToneFirm   ReminderTone = "firm"
	ToneFinal  ReminderTone = "final"
)

// Valid reports whether t is one of the supported tones.
func (t ReminderTone) Valid() bool {
	return t == ToneGentle || t == ToneFirm || t == ToneFinal
}

// Reminder is a generated payment-reminder message.
type Reminder struct {
	Subject string `json:"subject"`
	Text    string `json:"reminderText"`
}

// DashboardSummary is the AI-produced account overview.
type DashboardSummary struct {
	InvoiceCount     int      `json:"invoiceCount"`
	TotalRevenue     string   `json:"totalRevenue"`
	TotalOutstanding string   `json:"totalOutstanding"`
	Insights         []string `json:"insights"`
}
