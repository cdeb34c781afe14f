// Package collection mediates between the UI's cached invoice list and
// the backend that owns it. Mutations go remote first; local state only
// changes once the server's authoritative object comes back.
package collection

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/invogen/invogen-client/internal/apierrors"
	"github.com/invogen/invogen-client/internal/interfaces"
	"github.com/invogen/invogen-client/internal/invoice"
	"github.com/invogen/invogen-client/internal/session"
)

// State is the collection's load lifecycle.
type State int

const (
	StateLoading State = iota
	StateReady
)

// Controller holds the fetched invoice collection and serializes every
// local mutation through one mutex, so async completions replace whole
// records atomically and never interleave partial updates.
//
// A Refresh in flight is not ordered against a concurrent mutation:
// whichever response completes last wins at the list level. Callers that
// care should refresh after mutating.
type Controller struct {
	api  interfaces.InvoiceAPI
	sess *session.Session
	log  *zap.Logger

	mu         sync.Mutex
	state      State
	invoices   []invoice.Invoice
	pagination interfaces.Pagination
	pending    map[string]bool
}

// New builds a controller in the Loading state; call Refresh to populate.
func New(api interfaces.InvoiceAPI, sess *session.Session, log *zap.Logger) *Controller {
	return &Controller{
		api:     api,
		sess:    sess,
		log:     log,
		state:   StateLoading,
		pending: map[string]bool{},
	}
}

// State returns the load lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Invoices returns a snapshot copy of the cached list in server order.
func (c *Controller) Invoices() []invoice.Invoice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]invoice.Invoice, len(c.invoices))
	copy(out, c.invoices)
	return out
}

// Pagination returns the envelope metadata from the last full fetch.
func (c *Controller) Pagination() interfaces.Pagination {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pagination
}

// StatusPending reports whether a status toggle is in flight for id.
func (c *Controller) StatusPending(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending[id]
}

// Refresh replaces the entire local list with the server's set. On
// failure the prior list stays untouched and the error goes back to the
// caller; the controller never retries on its own.
func (c *Controller) Refresh(ctx context.Context) error {
	if err := c.ensureSession(); err != nil {
		return err
	}

	list, err := c.api.ListInvoices(ctx)
	if err != nil {
		c.log.Error("failed to fetch invoices", zap.Error(err))
		return err
	}

	c.mu.Lock()
	c.invoices = list.Invoices
	c.pagination = list.Pagination
	c.state = StateReady
	c.mu.Unlock()

	c.log.Info("invoice collection refreshed", zap.Int("count", len(list.Invoices)))
	return nil
}

// Create validates and persists a draft. There is no optimistic insert:
// the draft only appears locally as the server-returned invoice, so a
// failed create never leaves an unsaved record on screen.
func (c *Controller) Create(ctx context.Context, draft invoice.Draft) (*invoice.Invoice, error) {
	if err := c.ensureSession(); err != nil {
		return nil, err
	}
	if err := invoice.ValidateDraft(draft); err != nil {
		return nil, err
	}

	created, err := c.api.CreateInvoice(ctx, draft)
	if err != nil {
		c.log.Error("failed to create invoice", zap.Error(err))
		return nil, err
	}

	c.mu.Lock()
	c.upsertLocked(*created)
	c.mu.Unlock()

	c.log.Info("invoice created",
		zap.String("invoice_id", created.ID),
		zap.String("invoice_number", created.InvoiceNumber))
	return created, nil
}

// Update sends an edited draft for an existing invoice and swaps in the
// server's post-mutation object.
func (c *Controller) Update(ctx context.Context, id string, draft invoice.Draft) (*invoice.Invoice, error) {
	if err := c.ensureSession(); err != nil {
		return nil, err
	}
	if err := invoice.ValidateDraft(draft); err != nil {
		return nil, err
	}

	updated, err := c.api.UpdateInvoice(ctx, id, interfaces.InvoiceUpdate{Draft: &draft})
	if err != nil {
		c.log.Error("failed to update invoice", zap.String("invoice_id", id), zap.Error(err))
		return nil, err
	}

	c.mu.Lock()
	c.upsertLocked(*updated)
	c.mu.Unlock()
	return updated, nil
}

// UpdateStatus toggles an invoice's status. The item is marked pending
// while the request is in flight; a second toggle for the same id during
// that window is a no-op returning (nil, nil). On success the local copy
// is replaced with the server's object — the server decides the final
// status, not the caller. On failure the pending flag clears and the
// prior status is exactly as before.
func (c *Controller) UpdateStatus(ctx context.Context, id string, status invoice.Status) (*invoice.Invoice, error) {
	if err := c.ensureSession(); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, apierrors.Validation("status %q is not storable", status)
	}

	c.mu.Lock()
	if c.pending[id] {
		c.mu.Unlock()
		return nil, nil
	}
	if c.indexLocked(id) < 0 {
		c.mu.Unlock()
		return nil, apierrors.NotFound("invoice %s is not in the collection", id)
	}
	c.pending[id] = true
	c.mu.Unlock()

	updated, err := c.api.UpdateInvoice(ctx, id, interfaces.InvoiceUpdate{Status: &status})

	c.mu.Lock()
	delete(c.pending, id)
	if err == nil {
		c.upsertLocked(*updated)
	}
	c.mu.Unlock()

	if err != nil {
		c.log.Error("failed to change invoice status",
			zap.String("invoice_id", id),
			zap.String("requested_status", string(status)),
			zap.Error(err))
		return nil, err
	}
	return updated, nil
}

// Remove deletes an invoice. The local copy stays until the server
// acknowledges, so a failed delete never ghosts a record off screen.
func (c *Controller) Remove(ctx context.Context, id string) error {
	if err := c.ensureSession(); err != nil {
		return err
	}
	if err := c.api.DeleteInvoice(ctx, id); err != nil {
		c.log.Error("failed to delete invoice", zap.String("invoice_id", id), zap.Error(err))
		return err
	}

	c.mu.Lock()
	if idx := c.indexLocked(id); idx >= 0 {
		c.invoices = append(c.invoices[:idx], c.invoices[idx+1:]...)
	}
	c.mu.Unlock()

	c.log.Info("invoice deleted", zap.String("invoice_id", id))
	return nil
}

// Filter recomputes the visible subset from the full local list: a
// case-insensitive substring match on invoice number or client name,
// combined (AND) with status equality. StatusAll bypasses the status
// predicate.
func (c *Controller) Filter(searchTerm string, status invoice.Status) []invoice.Invoice {
	c.mu.Lock()
	defer c.mu.Unlock()

	needle := strings.ToLower(searchTerm)
	out := make([]invoice.Invoice, 0, len(c.invoices))
	for _, inv := range c.invoices {
		if status != invoice.StatusAll && inv.Status != status {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(inv.InvoiceNumber), needle) &&
			!strings.Contains(strings.ToLower(inv.BillTo.ClientName), needle) {
			continue
		}
		out = append(out, inv)
	}
	return out
}

// Stats is the dashboard summary computed from the cached collection.
type Stats struct {
	TotalInvoices int
	TotalPaid     decimal.Decimal
	TotalUnpaid   decimal.Decimal
	Recent        []invoice.Invoice
}

// Stats sums paid and outstanding totals and picks the five most recent
// invoices in server order.
func (c *Controller) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := Stats{
		TotalInvoices: len(c.invoices),
		TotalPaid:     decimal.Zero,
		TotalUnpaid:   decimal.Zero,
	}
	for _, inv := range c.invoices {
		if inv.Status == invoice.StatusPaid {
			stats.TotalPaid = stats.TotalPaid.Add(inv.Total)
		} else {
			stats.TotalUnpaid = stats.TotalUnpaid.Add(inv.Total)
		}
	}

	n := len(c.invoices)
	if n > 5 {
		n = 5
	}
	stats.Recent = make([]invoice.Invoice, n)
	copy(stats.Recent, c.invoices[:n])
	return stats
}

// upsertLocked replaces the record with the same id wholesale, or
// appends when it is new. Callers hold c.mu.
func (c *Controller) upsertLocked(inv invoice.Invoice) {
	if idx := c.indexLocked(inv.ID); idx >= 0 {
		c.invoices[idx] = inv
		return
	}
	c.invoices = append(c.invoices, inv)
}

// ensureSession rejects operations once the owning session is torn
// down; late async completions after teardown are simply discarded.
func (c *Controller) ensureSession() error {
	if !c.sess.Active() {
		return apierrors.Validation("session is closed")
	}
	return nil
}

func (c *Controller) indexLocked(id string) int {
	for i := range c.invoices {
		if c.invoices[i].ID == id {
			return i
		}
	}
	return -1
}
