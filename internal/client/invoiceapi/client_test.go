package invoiceapi_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invogen/invogen-client/internal/apierrors"
	"github.com/invogen/invogen-client/internal/client/invoiceapi"
	"github.com/invogen/invogen-client/internal/interfaces"
	"github.com/invogen/invogen-client/internal/invoice"
	"github.com/invogen/invogen-client/internal/logger"
)

func init() {
	// Initialize logger for tests
	logger.InitLogger("test")
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newClient(t *testing.T, handler http.HandlerFunc) *invoiceapi.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return invoiceapi.New(invoiceapi.Config{BaseURL: server.URL, Token: "test-token"})
}

func writeEnvelope(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprint(w, body)
}

func TestClient_ListInvoices(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/invoices/", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		writeEnvelope(w, http.StatusOK, `{
			"success": true,
			"data": [
				{"_id": "a", "invoiceNumber": "INV-001", "status": "Unpaid", "total": 275000},
				{"_id": "b", "invoiceNumber": "INV-002", "status": "Paid", "total": 99.95}
			],
			"pagination": {"total": 2, "page": 1, "limit": 10, "pages": 1}
		}`)
	})

	list, err := client.ListInvoices(context.Background())
	require.NoError(t, err)

	require.Len(t, list.Invoices, 2)
	assert.Equal(t, "a", list.Invoices[0].ID)
	assert.Equal(t, "INV-001", list.Invoices[0].InvoiceNumber)
	assert.Equal(t, invoice.StatusUnpaid, list.Invoices[0].Status)
	assert.Equal(t, "275000", list.Invoices[0].Total.String())
	assert.Equal(t, "99.95", list.Invoices[1].Total.String())
	assert.Equal(t, interfaces.Pagination{Total: 2, Page: 1, Limit: 10, Pages: 1}, list.Pagination)
}

func TestClient_GetInvoice_NotFound(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusNotFound, `{"success": false, "message": "invoice not found"}`)
	})

	_, err := client.GetInvoice(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, apierrors.IsNotFound(err), "404 must classify as not-found, got %v", err)
}

func TestClient_CreateInvoice(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/invoices/", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "INV-001", body["invoiceNumber"])
		items, ok := body["items"].([]interface{})
		require.True(t, ok)
		require.Len(t, items, 1)
		first := items[0].(map[string]interface{})
		assert.Equal(t, float64(25000), first["unitPrice"], "money fields travel as JSON numbers")

		writeEnvelope(w, http.StatusCreated, `{
			"success": true,
			"data": {"_id": "new", "invoiceNumber": "INV-001", "status": "Unpaid", "total": 125000}
		}`)
	})

	draft := invoice.Draft{
		InvoiceNumber: "INV-001",
		InvoiceDate:   "2026-03-01",
		Items: []invoice.LineItem{
			{Name: "Consulting", Quantity: 5, UnitPrice: dec("25000")},
		},
		PaymentTerms: "Net 15",
	}

	created, err := client.CreateInvoice(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, "new", created.ID)
	assert.Equal(t, "125000", created.Total.String())
}

func TestClient_UpdateInvoice_StatusOnly(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/invoices/a", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Paid", body["status"])
		assert.NotContains(t, body, "invoiceDate", "a status-only update carries no draft fields")
		assert.NotContains(t, body, "items")

		writeEnvelope(w, http.StatusOK, `{
			"success": true,
			"data": {"_id": "a", "invoiceNumber": "INV-001", "status": "Paid", "total": 100}
		}`)
	})

	status := invoice.StatusPaid
	updated, err := client.UpdateInvoice(context.Background(), "a", interfaces.InvoiceUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, invoice.StatusPaid, updated.Status)
}

func TestClient_DeleteInvoice(t *testing.T) {
	var called bool
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/invoices/a", r.URL.Path)
		writeEnvelope(w, http.StatusOK, `{"success": true, "message": "invoice deleted"}`)
	})

	require.NoError(t, client.DeleteInvoice(context.Background(), "a"))
	assert.True(t, called)
}

func TestClient_ParseInvoiceText(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/ai/parse-text", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "3 widgets for Acme", body["text"])

		writeEnvelope(w, http.StatusOK, `{
			"success": true,
			"data": {
				"invoiceData": {
					"clientName": "Acme Corp",
					"items": [{"name": "Widget", "quantity": 3, "unitPrice": 25}]
				},
				"confidence": 0.82
			}
		}`)
	})

	ex, err := client.ParseInvoiceText(context.Background(), "3 widgets for Acme")
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", ex.ClientName)
	assert.InDelta(t, 0.82, ex.Confidence, 1e-9, "envelope-level confidence lands on the extraction")
	require.Len(t, ex.Items, 1)
	require.NotNil(t, ex.Items[0].Quantity)
	assert.Equal(t, int64(3), *ex.Items[0].Quantity)
}

func TestClient_GenerateReminder(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/ai/generate-reminder", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a", body["invoiceId"])
		assert.Equal(t, "firm", body["reminderType"])

		writeEnvelope(w, http.StatusOK, `{
			"success": true,
			"data": {"subject": "Payment overdue", "reminderText": "Please pay."}
		}`)
	})

	rem, err := client.GenerateReminder(context.Background(), "a", interfaces.ToneFirm)
	require.NoError(t, err)
	assert.Equal(t, "Payment overdue", rem.Subject)
	assert.Equal(t, "Please pay.", rem.Text)
}

func TestClient_GetDashboardSummary(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/ai/dashboard-summary", r.URL.Path)
		writeEnvelope(w, http.StatusOK, `{
			"success": true,
			"data": {
				"invoiceCount": 4,
				"totalRevenue": "1250.00",
				"totalOutstanding": "300.00",
				"insights": ["Most clients pay within terms."]
			}
		}`)
	})

	summary, err := client.GetDashboardSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, summary.InvoiceCount)
	assert.Equal(t, "1250.00", summary.TotalRevenue)
	assert.Len(t, summary.Insights, 1)
}

func TestClient_RemoteFailureClassification(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusBadRequest, `{"success": false, "message": "bad request"}`)
	})

	_, err := client.ListInvoices(context.Background())
	require.Error(t, err)
	assert.True(t, apierrors.IsRemote(err))
	assert.False(t, apierrors.IsNotFound(err))
}
