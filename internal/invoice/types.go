// Package invoice holds the domain model for the invoice editor: line
// items, drafts under edit, persisted invoices, and the logic that keeps
// their derived money fields consistent while the user types.
package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/invogen/invogen-client/internal/money"
	"github.com/invogen/invogen-client/internal/session"
)

func init() {
	// The backend speaks plain JSON numbers for money fields.
	decimal.MarshalJSONWithoutQuotes = true
}

// Status is the lifecycle state the backend stores on an invoice.
type Status string

const (
	StatusPaid    Status = "Paid"
	StatusUnpaid  Status = "Unpaid"
	StatusPending Status = "Pending"

	// StatusAll is a filter-only sentinel. It is never stored on a record.
	StatusAll Status = "All Statuses"
)

// Valid reports whether s is a storable status (the filter sentinel is not).
func (s Status) Valid() bool {
	return s == StatusPaid || s == StatusUnpaid || s == StatusPending
}

// LineItem is one billable row. Total is derived and cached: it always
// equals quantity * unitPrice * (1 + taxPercent/100) for the item's
// current fields and is never set independently by a caller.
type LineItem struct {
	ID          string          `json:"_id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Quantity    int64           `json:"quantity" validate:"min=1"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TaxPercent  decimal.Decimal `json:"taxPercent"`
	Total       decimal.Decimal `json:"total"`
}

func (li LineItem) line() money.Line {
	return money.Line{Quantity: li.Quantity, UnitPrice: li.UnitPrice, TaxPercent: li.TaxPercent}
}

// recompute refreshes the cached Total from the item's current fields.
func (li *LineItem) recompute() {
	li.Total = money.LineTotal(li.line())
}

// BillFrom is the issuing party's snapshot on an invoice.
type BillFrom struct {
	BusinessName string `json:"businessName"`
	Email        string `json:"email" validate:"omitempty,email"`
	Address      string `json:"address"`
	PhoneNumber  string `json:"phoneNumber"`
}

// BillTo is the client party's snapshot on an invoice.
type BillTo struct {
	ClientName  string `json:"clientName"`
	Email       string `json:"email" validate:"omitempty,email"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
}

// DateLayout is the canonical form dates are edited and sent in.
const DateLayout = "2006-01-02"

// Draft is an invoice being edited client-side, not yet confirmed
// persisted. Items never goes empty: removal of the last item is rejected.
type Draft struct {
	InvoiceNumber string     `json:"invoiceNumber,omitempty"`
	InvoiceDate   string     `json:"invoiceDate" validate:"required"`
	DueDate       string     `json:"dueDate,omitempty"`
	BillFrom      BillFrom   `json:"billFrom"`
	BillTo        BillTo     `json:"billTo"`
	Items         []LineItem `json:"items" validate:"min=1,dive"`
	Notes         string     `json:"notes,omitempty"`
	PaymentTerms  string     `json:"paymentTerms"`
	Status        Status     `json:"status,omitempty"`
}

// Totals derives the draft's money summary from its current items.
func (d Draft) Totals() money.Totals {
	lines := make([]money.Line, len(d.Items))
	for i, it := range d.Items {
		lines[i] = it.line()
	}
	return money.Compute(lines)
}

// Invoice is the persisted record as the backend returns it. The client
// holds a read-mostly cached copy; the backend's object is always
// authoritative after any mutation.
type Invoice struct {
	ID            string          `json:"_id"`
	User          session.User    `json:"user"`
	InvoiceNumber string          `json:"invoiceNumber"`
	InvoiceDate   time.Time       `json:"invoiceDate"`
	DueDate       time.Time       `json:"dueDate"`
	BillFrom      BillFrom        `json:"billFrom"`
	BillTo        BillTo          `json:"billTo"`
	Items         []LineItem      `json:"items"`
	Notes         string          `json:"notes,omitempty"`
	PaymentTerms  string          `json:"paymentTerms"`
	Status        Status          `json:"status"`
	SubTotal      decimal.Decimal `json:"subTotal"`
	TaxTotal      decimal.Decimal `json:"taxTotal"`
	Total         decimal.Decimal `json:"total"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Extraction is a best-effort result from the AI text parser. Missing
// fields stay nil/empty; the reconciler substitutes defaults for them.
type Extraction struct {
	ClientName  string          `json:"clientName,omitempty"`
	Email       string          `json:"email,omitempty"`
	Address     string          `json:"address,omitempty"`
	PhoneNumber string          `json:"phoneNumber,omitempty"`
	Items       []ExtractedItem `json:"items,omitempty"`
	Confidence  float64         `json:"confidence,omitempty"`
}

// ExtractedItem mirrors LineItem with every numeric field optional.
type ExtractedItem struct {
	Name        string           `json:"name,omitempty"`
	Description string           `json:"description,omitempty"`
	Quantity    *int64           `json:"quantity,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unitPrice,omitempty"`
	TaxPercent  *decimal.Decimal `json:"taxPercent,omitempty"`
}
