// Package invoiceapi is the typed REST client for the invoice backend.
// It owns the wire envelope and path layout and translates transport
// failures into the core's error taxonomy; callers only ever see the
// interfaces.InvoiceAPI contract.
package invoiceapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/invogen/invogen-client/internal/apierrors"
	httpclient "github.com/invogen/invogen-client/internal/client/http"
	"github.com/invogen/invogen-client/internal/interfaces"
	"github.com/invogen/invogen-client/internal/invoice"
)

const (
	pathInvoices         = "/api/v1/invoices/"
	pathInvoiceByID      = "/api/v1/invoices/%s"
	pathParseText        = "/api/v1/ai/parse-text"
	pathGenerateReminder = "/api/v1/ai/generate-reminder"
	pathDashboardSummary = "/api/v1/ai/dashboard-summary"

	defaultTimeout = 30 * time.Second
)

// Config carries what the client needs to reach the backend.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Client implements interfaces.InvoiceAPI over HTTP.
type Client struct {
	http *httpclient.Client
}

var _ interfaces.InvoiceAPI = (*Client)(nil)

// New builds a client for the given backend.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	opts := []httpclient.Option{
		httpclient.WithBaseURL(cfg.BaseURL),
		httpclient.WithTimeout(timeout),
	}
	if cfg.Token != "" {
		opts = append(opts, httpclient.WithBearerToken(cfg.Token))
	}
	return &Client{http: httpclient.New(opts...)}
}

// envelope is the backend's uniform response wrapper.
type envelope[T any] struct {
	Success    bool                   `json:"success"`
	Message    string                 `json:"message"`
	Data       T                      `json:"data"`
	Pagination *interfaces.Pagination `json:"pagination,omitempty"`
}

// ListInvoices fetches the full collection.
func (c *Client) ListInvoices(ctx context.Context) (*interfaces.InvoiceList, error) {
	resp, err := c.http.Get(ctx, pathInvoices)
	if err != nil {
		return nil, classify(err, "list invoices")
	}

	var env envelope[[]invoice.Invoice]
	if err := httpclient.DecodeJSON(resp, &env); err != nil {
		return nil, apierrors.Remote(err, "decode invoice list")
	}

	list := &interfaces.InvoiceList{Invoices: env.Data}
	if env.Pagination != nil {
		list.Pagination = *env.Pagination
	}
	return list, nil
}

// GetInvoice fetches one invoice by id.
func (c *Client) GetInvoice(ctx context.Context, id string) (*invoice.Invoice, error) {
	resp, err := c.http.Get(ctx, fmt.Sprintf(pathInvoiceByID, id))
	if err != nil {
		return nil, classify(err, "get invoice %s", id)
	}

	var env envelope[invoice.Invoice]
	if err := httpclient.DecodeJSON(resp, &env); err != nil {
		return nil, apierrors.Remote(err, "decode invoice %s", id)
	}
	return &env.Data, nil
}

// CreateInvoice persists a draft; the server assigns id, timestamps and
// the authoritative totals.
func (c *Client) CreateInvoice(ctx context.Context, draft invoice.Draft) (*invoice.Invoice, error) {
	resp, err := c.http.Post(ctx, pathInvoices, draft)
	if err != nil {
		return nil, classify(err, "create invoice")
	}

	var env envelope[invoice.Invoice]
	if err := httpclient.DecodeJSON(resp, &env); err != nil {
		return nil, apierrors.Remote(err, "decode created invoice")
	}
	return &env.Data, nil
}

// updatePayload flattens the optional draft fields next to the optional
// status, matching the backend's partial-update body.
type updatePayload struct {
	*invoice.Draft
	Status *invoice.Status `json:"status,omitempty"`
}

// UpdateInvoice sends a partial update and returns the server's
// post-mutation object.
func (c *Client) UpdateInvoice(ctx context.Context, id string, update interfaces.InvoiceUpdate) (*invoice.Invoice, error) {
	resp, err := c.http.Put(ctx, fmt.Sprintf(pathInvoiceByID, id), updatePayload{
		Draft:  update.Draft,
		Status: update.Status,
	})
	if err != nil {
		return nil, classify(err, "update invoice %s", id)
	}

	var env envelope[invoice.Invoice]
	if err := httpclient.DecodeJSON(resp, &env); err != nil {
		return nil, apierrors.Remote(err, "decode updated invoice %s", id)
	}
	return &env.Data, nil
}

// DeleteInvoice removes an invoice; success means the server has
// acknowledged the deletion.
func (c *Client) DeleteInvoice(ctx context.Context, id string) error {
	resp, err := c.http.Delete(ctx, fmt.Sprintf(pathInvoiceByID, id))
	if err != nil {
		return classify(err, "delete invoice %s", id)
	}
	resp.Body.Close()
	return nil
}

// parseResult is the AI parser's wire shape.
type parseResult struct {
	InvoiceData invoice.Extraction `json:"invoiceData"`
	Confidence  float64            `json:"confidence"`
}

// ParseInvoiceText submits free text for extraction. The result may be
// empty or partial; that is not an error.
func (c *Client) ParseInvoiceText(ctx context.Context, text string) (*invoice.Extraction, error) {
	resp, err := c.http.Post(ctx, pathParseText, map[string]string{"text": text})
	if err != nil {
		return nil, classify(err, "parse invoice text")
	}

	var env envelope[parseResult]
	if err := httpclient.DecodeJSON(resp, &env); err != nil {
		return nil, apierrors.Remote(err, "decode extraction")
	}
	ex := env.Data.InvoiceData
	ex.Confidence = env.Data.Confidence
	return &ex, nil
}

// GenerateReminder asks the backend to word a payment reminder.
func (c *Client) GenerateReminder(ctx context.Context, invoiceID string, tone interfaces.ReminderTone) (*interfaces.Reminder, error) {
	body := map[string]string{
		"invoiceId":    invoiceID,
		"reminderType": string(tone),
	}
	resp, err := c.http.Post(ctx, pathGenerateReminder, body)
	if err != nil {
		return nil, classify(err, "generate reminder for %s", invoiceID)
	}

	var env envelope[interfaces.Reminder]
	if err := httpclient.DecodeJSON(resp, &env); err != nil {
		return nil, apierrors.Remote(err, "decode reminder")
	}
	return &env.Data, nil
}

// GetDashboardSummary fetches the AI account overview.
func (c *Client) GetDashboardSummary(ctx context.Context) (*interfaces.DashboardSummary, error) {
	resp, err := c.http.Get(ctx, pathDashboardSummary)
	if err != nil {
		return nil, classify(err, "get dashboard summary")
	}

	var env envelope[interfaces.DashboardSummary]
	if err := httpclient.DecodeJSON(resp, &env); err != nil {
		return nil, apierrors.Remote(err, "decode dashboard summary")
	}
	return &env.Data, nil
}

// classify maps transport failures onto the core taxonomy: 404 means the
// record is gone (stale id), everything else is a remote failure.
func classify(err error, format string, args ...interface{}) error {
	var httpErr *httpclient.Error
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
		return apierrors.NotFound(format, args...)
	}
	return apierrors.Remote(err, format, args...)
}
