package stubserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/invogen/invogen-client/internal/invoice"
	"github.com/invogen/invogen-client/internal/money"
)

func newID() string {
	return uuid.NewString()
}

func (s *Server) listInvoices(c *gin.Context) {
	s.mu.Lock()
	out := make([]invoice.Invoice, len(s.invoices))
	copy(out, s.invoices)
	s.mu.Unlock()

	c.JSON(http.StatusOK, envelope{
		Success: true,
		Data:    out,
		Pagination: &pagination{
			Total: len(out),
			Page:  1,
			Limit: len(out),
			Pages: 1,
		},
	})
}

func (s *Server) getInvoice(c *gin.Context) {
	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		respondError(c, http.StatusNotFound, "invoice not found")
		return
	}
	respond(c, http.StatusOK, s.invoices[idx])
}

func (s *Server) createInvoice(c *gin.Context) {
	var draft invoice.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := invoice.ValidateDraft(draft); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if draft.InvoiceNumber == "" {
		draft.InvoiceNumber = invoice.NextNumber(s.invoices)
	}

	inv, err := s.materialize(draft)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	s.invoices = append(s.invoices, inv)

	s.logger.Info("stub invoice created",
		zap.String("invoice_id", inv.ID),
		zap.String("invoice_number", inv.InvoiceNumber))
	respond(c, http.StatusCreated, inv)
}

// materialize turns a validated draft into a stored invoice. The store
// owns the id, timestamps and recomputed money fields; client-supplied
// totals are ignored.
func (s *Server) materialize(draft invoice.Draft) (invoice.Invoice, error) {
	invoiceDate, err := time.Parse(invoice.DateLayout, draft.InvoiceDate)
	if err != nil {
		return invoice.Invoice{}, fmt.Errorf("invalid invoice date %q", draft.InvoiceDate)
	}
	var dueDate time.Time
	if draft.DueDate != "" {
		dueDate, err = time.Parse(invoice.DateLayout, draft.DueDate)
		if err != nil {
			return invoice.Invoice{}, fmt.Errorf("invalid due date %q", draft.DueDate)
		}
	}

	status := draft.Status
	if !status.Valid() {
		status = invoice.StatusUnpaid
	}

	items := make([]invoice.LineItem, len(draft.Items))
	copy(items, draft.Items)
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = newID()
		}
		items[i].Total = money.LineTotal(money.Line{
			Quantity:   items[i].Quantity,
			UnitPrice:  items[i].UnitPrice,
			TaxPercent: items[i].TaxPercent,
		})
	}
	totals := draft.Totals()

	now := s.now()
	return invoice.Invoice{
		ID:            newID(),
		User:          s.user,
		InvoiceNumber: draft.InvoiceNumber,
		InvoiceDate:   invoiceDate,
		DueDate:       dueDate,
		BillFrom:      draft.BillFrom,
		BillTo:        draft.BillTo,
		Items:         items,
		Notes:         draft.Notes,
		PaymentTerms:  draft.PaymentTerms,
		Status:        status,
		SubTotal:      totals.Subtotal,
		TaxTotal:      totals.TaxTotal,
		Total:         totals.Total,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// updateInvoiceRequest is a partial patch: nil fields stay untouched.
type updateInvoiceRequest struct {
	InvoiceNumber *string            `json:"invoiceNumber"`
	InvoiceDate   *string            `json:"invoiceDate"`
	DueDate       *string            `json:"dueDate"`
	BillFrom      *invoice.BillFrom  `json:"billFrom"`
	BillTo        *invoice.BillTo    `json:"billTo"`
	Items         []invoice.LineItem `json:"items"`
	Notes         *string            `json:"notes"`
	PaymentTerms  *string            `json:"paymentTerms"`
	Status        *invoice.Status    `json:"status"`
}

func (s *Server) updateInvoice(c *gin.Context) {
	id := c.Param("id")

	var req updateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		respondError(c, http.StatusNotFound, "invoice not found")
		return
	}
	inv := s.invoices[idx]

	if req.InvoiceNumber != nil {
		inv.InvoiceNumber = *req.InvoiceNumber
	}
	if req.InvoiceDate != nil {
		parsed, err := time.Parse(invoice.DateLayout, *req.InvoiceDate)
		if err != nil {
			respondError(c, http.StatusBadRequest, fmt.Sprintf("invalid invoice date %q", *req.InvoiceDate))
			return
		}
		inv.InvoiceDate = parsed
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			inv.DueDate = time.Time{}
		} else {
			parsed, err := time.Parse(invoice.DateLayout, *req.DueDate)
			if err != nil {
				respondError(c, http.StatusBadRequest, fmt.Sprintf("invalid due date %q", *req.DueDate))
				return
			}
			inv.DueDate = parsed
		}
	}
	if req.BillFrom != nil {
		inv.BillFrom = *req.BillFrom
	}
	if req.BillTo != nil {
		inv.BillTo = *req.BillTo
	}
	if req.Items != nil {
		if len(req.Items) == 0 {
			respondError(c, http.StatusBadRequest, "an invoice needs at least one item")
			return
		}
		items := make([]invoice.LineItem, len(req.Items))
		copy(items, req.Items)
		lines := make([]money.Line, len(items))
		for i := range items {
			if items[i].ID == "" {
				items[i].ID = newID()
			}
			lines[i] = money.Line{
				Quantity:   items[i].Quantity,
				UnitPrice:  items[i].UnitPrice,
				TaxPercent: items[i].TaxPercent,
			}
			items[i].Total = money.LineTotal(lines[i])
		}
		totals := money.Compute(lines)
		inv.Items = items
		inv.SubTotal = totals.Subtotal
		inv.TaxTotal = totals.TaxTotal
		inv.Total = totals.Total
	}
	if req.Notes != nil {
		inv.Notes = *req.Notes
	}
	if req.PaymentTerms != nil {
		inv.PaymentTerms = *req.PaymentTerms
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			respondError(c, http.StatusBadRequest, fmt.Sprintf("status %q is not storable", *req.Status))
			return
		}
		inv.Status = *req.Status
	}

	inv.UpdatedAt = s.now()
	s.invoices[idx] = inv
	respond(c, http.StatusOK, inv)
}

func (s *Server) deleteInvoice(c *gin.Context) {
	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		respondError(c, http.StatusNotFound, "invoice not found")
		return
	}
	s.invoices = append(s.invoices[:idx], s.invoices[idx+1:]...)

	c.JSON(http.StatusOK, envelope{Success: true, Message: "invoice deleted"})
}

type generateReminderRequest struct {
	InvoiceID    string `json:"invoiceId"`
	ReminderType string `json:"reminderType"`
}

type reminderResponse struct {
	Subject string `json:"subject"`
	Text    string `json:"reminderText"`
}

func (s *Server) generateReminder(c *gin.Context) {
	var req generateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	idx := s.indexLocked(req.InvoiceID)
	var inv invoice.Invoice
	if idx >= 0 {
		inv = s.invoices[idx]
	}
	s.mu.Unlock()
	if idx < 0 {
		respondError(c, http.StatusNotFound, "invoice not found")
		return
	}

	total := inv.Total.StringFixed(2)
	var subject, text string
	switch req.ReminderType {
	case "gentle":
		subject = fmt.Sprintf("Friendly reminder: invoice %s", inv.InvoiceNumber)
		text = fmt.Sprintf("Hi %s,\n\nJust a gentle reminder that invoice %s for %s is awaiting payment. Please let us know if you have any questions.\n\nThank you!",
			inv.BillTo.ClientName, inv.InvoiceNumber, total)
	case "firm":
		subject = fmt.Sprintf("Payment overdue: invoice %s", inv.InvoiceNumber)
		text = fmt.Sprintf("Hello %s,\n\nInvoice %s for %s is now overdue. Please arrange payment at your earliest convenience.\n\nRegards,",
			inv.BillTo.ClientName, inv.InvoiceNumber, total)
	case "final":
		subject = fmt.Sprintf("Final notice: invoice %s", inv.InvoiceNumber)
		text = fmt.Sprintf("Dear %s,\n\nThis is a final notice for invoice %s totaling %s. Please settle the outstanding balance immediately to avoid further action.\n\nRegards,",
			inv.BillTo.ClientName, inv.InvoiceNumber, total)
	default:
		respondError(c, http.StatusBadRequest, fmt.Sprintf("unknown reminder type %q", req.ReminderType))
		return
	}

	respond(c, http.StatusOK, reminderResponse{Subject: subject, Text: text})
}

type dashboardSummaryResponse struct {
	InvoiceCount     int      `json:"invoiceCount"`
	TotalRevenue     string   `json:"totalRevenue"`
	TotalOutstanding string   `json:"totalOutstanding"`
	Insights         []string `json:"insights"`
}

func (s *Server) dashboardSummary(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	revenue := decimal.Zero
	outstanding := decimal.Zero
	unpaid := 0
	for _, inv := range s.invoices {
		if inv.Status == invoice.StatusPaid {
			revenue = revenue.Add(inv.Total)
		} else {
			outstanding = outstanding.Add(inv.Total)
			unpaid++
		}
	}

	insights := []string{
		fmt.Sprintf("You have %d invoices on file.", len(s.invoices)),
	}
	if unpaid > 0 {
		insights = append(insights, fmt.Sprintf("%d invoices are awaiting payment, totaling %s.", unpaid, outstanding.StringFixed(2)))
	} else if len(s.invoices) > 0 {
		insights = append(insights, "All invoices are paid. Nice work.")
	}

	respond(c, http.StatusOK, dashboardSummaryResponse{
		InvoiceCount:     len(s.invoices),
		TotalRevenue:     revenue.StringFixed(2),
		TotalOutstanding: outstanding.StringFixed(2),
		Insights:         insights,
	})
}
