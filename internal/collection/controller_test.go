package collection_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/invogen/invogen-client/internal/apierrors"
	"github.com/invogen/invogen-client/internal/collection"
	"github.com/invogen/invogen-client/internal/interfaces"
	"github.com/invogen/invogen-client/internal/invoice"
	"github.com/invogen/invogen-client/internal/mocks"
	"github.com/invogen/invogen-client/internal/session"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testSession() *session.Session {
	return session.New(session.User{ID: "u-1", Name: "Jordan"}, "token")
}

func record(id, number, client string, status invoice.Status, total string) invoice.Invoice {
	return invoice.Invoice{
		ID:            id,
		InvoiceNumber: number,
		BillTo:        invoice.BillTo{ClientName: client},
		Status:        status,
		Total:         dec(total),
	}
}

func validDraft() invoice.Draft {
	return invoice.Draft{
		InvoiceNumber: "INV-001",
		InvoiceDate:   "2026-03-01",
		Items: []invoice.LineItem{
			{Name: "Consulting", Quantity: 5, UnitPrice: dec("25000")},
		},
		PaymentTerms: "Net 15",
	}
}

func seeded(t *testing.T, api *mocks.MockInvoiceAPI, invoices ...invoice.Invoice) *collection.Controller {
	t.Helper()
	c := collection.New(api, testSession(), zap.NewNop())
	api.EXPECT().ListInvoices(gomock.Any()).Return(&interfaces.InvoiceList{
		Invoices:   invoices,
		Pagination: interfaces.Pagination{Total: len(invoices), Page: 1, Limit: 10, Pages: 1},
	}, nil)
	require.NoError(t, c.Refresh(context.Background()))
	return c
}

func TestController_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the list wholesale", func(t *testing.T) {
		api := mocks.NewMockInvoiceAPIForTest(t)
		c := seeded(t, api,
			record("a", "INV-001", "Acme Corp", invoice.StatusUnpaid, "100"),
			record("b", "INV-002", "Beta LLC", invoice.StatusPaid, "200"),
		)

		assert.Equal(t, collection.StateReady, c.State())
		assert.Len(t, c.Invoices(), 2)
		assert.Equal(t, 2, c.Pagination().Total)

		api.EXPECT().ListInvoices(gomock.Any()).Return(&interfaces.InvoiceList{
			Invoices: []invoice.Invoice{record("c", "INV-003", "Gamma", invoice.StatusPending, "300")},
		}, nil)
		require.NoError(t, c.Refresh(ctx))

		got := c.Invoices()
		require.Len(t, got, 1, "locally known records absent from the server's set are dropped")
		assert.Equal(t, "c", got[0].ID)
	})

	t.Run("failure leaves prior state intact", func(t *testing.T) {
		api := mocks.NewMockInvoiceAPIForTest(t)
		c := seeded(t, api, record("a", "INV-001", "Acme Corp", invoice.StatusUnpaid, "100"))

		api.EXPECT().ListInvoices(gomock.Any()).Return(nil, apierrors.Remote(assert.AnError, "list invoices"))
		err := c.Refresh(ctx)

		require.Error(t, err)
		assert.True(t, apierrors.IsRemote(err))
		assert.Len(t, c.Invoices(), 1)
		assert.Equal(t, collection.StateReady, c.State())
	})

	t.Run("rejected after session teardown", func(t *testing.T) {
		api := mocks.NewMockInvoiceAPIForTest(t)
		sess := testSession()
		c := collection.New(api, sess, zap.NewNop())
		sess.Close()

		err := c.Refresh(ctx)
		require.Error(t, err)
		assert.True(t, apierrors.IsValidation(err))
	})
}

func TestController_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("appends the server's object on success", func(t *testing.T) {
		api := mocks.NewMockInvoiceAPIForTest(t)
		c := seeded(t, api)

		created := record("new", "INV-001", "Acme Corp", invoice.StatusUnpaid, "125000")
		api.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Return(&created, nil)

		got, err := c.Create(ctx, validDraft())
		require.NoError(t, err)
		assert.Equal(t, "new", got.ID)

		list := c.Invoices()
		require.Len(t, list, 1)
		assert.Equal(t, created, list[0], "the cached copy is the server object, not the draft")
	})

	t.Run("invalid draft never reaches the backend", func(t *testing.T) {
		api := mocks.NewMockInvoiceAPIForTest(t)
		c := seeded(t, api)

		bad := validDraft()
		bad.Items = nil

		_, err := c.Create(ctx, bad)
		require.Error(t, err)
		assert.True(t, apierrors.IsValidation(err))
		assert.Empty(t, c.Invoices())
	})

	t.Run("no optimistic insert on remote failure", func(t *testing.T) {
		api := mocks.NewMockInvoiceAPIForTest(t)
		c := seeded(t, api)

		api.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Return(nil, apierrors.Remote(assert.AnError, "create invoice"))

		_, err := c.Create(ctx, validDraft())
		require.Error(t, err)
		assert.Empty(t, c.Invoices(), "a failed create leaves nothing on screen")
	})
}

func TestController_Update(t *testing.T) {
	ctx := context.Background()
	api := mocks.NewMockInvoiceAPIForTest(t)
	c := seeded(t, api, record("a", "INV-001", "Acme Corp", invoice.StatusUnpaid, "100"))

	updated := record("a", "INV-001", "Acme Corporation", invoice.StatusUnpaid, "150")
	api.EXPECT().
		UpdateInvoice(gomock.Any(), "a", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, u interfaces.InvoiceUpdate) (*invoice.Invoice, error) {
			require.NotNil(t, u.Draft)
			assert.Nil(t, u.Status)
			return &updated, nil
		})

	got, err := c.Update(ctx, "a", validDraft())
	require.NoError(t, err)
	assert.Equal(t, "Acme Corporation", got.BillTo.ClientName)

	list := c.Invoices()
	require.Len(t, list, 1)
	assert.Equal(t, updated, list[0])
}

func TestController_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("swaps in the server object on success", func(t *testing.T) {
		api := mocks.NewMockInvoiceAPIForTest(t)
		c := seeded(t, api, record("a", "INV-001", "Acme Corp", invoice.StatusUnpaid, "100"))

		// The server is authoritative: it may settle on a different total too.
		fromServer := record("a", "INV-001", "Acme Corp", invoice.StatusPaid, "101")
		api.EXPECT().
			UpdateInvoice(gomock.Any(), "a", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, u interfaces.InvoiceUpdate) (*invoice.Invoice, error) {
				require.NotNil(t, u.Status)
				assert.Equal(t, invoice.StatusPaid, *u.Status)
				assert.Nil(t, u.Draft)
				return &fromServer, nil
			})

		got, err := c.UpdateStatus(ctx, "a", invoice.StatusPaid)
		require.NoError(t, err)
		assert.Equal(t, invoice.StatusPaid, got.Status)

		list := c.Invoices()
		assert.Equal(t, fromServer, list[0])
		assert.False(t, c.StatusPending("a"))
	})

	t.Run("failure restores the prior record exactly", func(t *testing.T) {
		api := mocks.NewMockInvoiceAPIForTest(t)
		before := record("a", "INV-001", "Acme Corp", invoice.StatusUnpaid, "100")
		c := seeded(t, api, before)

		api.EXPECT().
			UpdateInvoice(gomock.Any(), "a", gomock.Any()).
			Return(nil, apierrors.Remote(assert.AnError, "update invoice"))

		_, err := c.UpdateStatus(ctx, "a", invoice.StatusPaid)
		require.Error(t, err)
		assert.True(t, apierrors.IsRemote(err))

		list := c.Invoices()
		assert.Equal(t, before, list[0])
		assert.False(t, c.StatusPending("a"), "pending flag clears on failure")
	})

	t.Run("second toggle while in flight is a no-op", func(t *testing.T) {
		api := mocks.NewMockInvoiceAPIForTest(t)
		c := seeded(t, api, record("a", "INV-001", "Acme Corp", invoice.StatusUnpaid, "100"))

		inFlight := make(chan struct{})
		release := make(chan struct{})
		fromServer := record("a", "INV-001", "Acme Corp", invoice.StatusPaid, "100")
		api.EXPECT().
			UpdateInvoice(gomock.Any(), "a", gomock.Any()).
			DoAndReturn(func(context.Context, string, interfaces.InvoiceUpdate) (*invoice.Invoice, error) {
				close(inFlight)
				<-release
				return &fromServer, nil
			})

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.UpdateStatus(ctx, "a", invoice.StatusPaid)
			assert.NoError(t, err)
		}()

		<-inFlight
		assert.True(t, c.StatusPending("a"))

		got, err := c.UpdateStatus(ctx, "a", invoice.StatusUnpaid)
		assert.NoError(t, err)
		assert.Nil(t, got, "concurrent toggle for the same id is ignored")

		close(release)
		wg.Wait()
		assert.Equal(t, invoice.StatusPaid, c.Invoices()[0].Status)
	})

	t.Run("unknown id", func(t *testing.T) {
		api := mocks.NewMockInvoiceAPIForTest(t)
		c := seeded(t, api)

		_, err := c.UpdateStatus(ctx, "ghost", invoice.StatusPaid)
		require.Error(t, err)
		assert.True(t, apierrors.IsNotFound(err))
	})

	t.Run("filter sentinel is rejected", func(t *testing.T) {
		api := mocks.NewMockInvoiceAPIForTest(t)
		c := seeded(t, api, record("a", "INV-001", "Acme Corp", invoice.StatusUnpaid, "100"))

		_, err := c.UpdateStatus(ctx, "a", invoice.StatusAll)
		require.Error(t, err)
		assert.True(t, apierrors.IsValidation(err))
	})
}

func TestController_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("drops the record only after the server acknowledges", func(t *testing.T) {
		api := mocks.NewMockInvoiceAPIForTest(t)
		c := seeded(t, api,
			record("a", "INV-001", "Acme Corp", invoice.StatusUnpaid, "100"),
			record("b", "INV-002", "Beta LLC", invoice.StatusPaid, "200"),
		)

		api.EXPECT().DeleteInvoice(gomock.Any(), "a").Return(nil)
		require.NoError(t, c.Remove(ctx, "a"))

		list := c.Invoices()
		require.Len(t, list, 1)
		assert.Equal(t, "b", list[0].ID)
	})

	t.Run("failed delete keeps the record", func(t *testing.T) {
		api := mocks.NewMockInvoiceAPIForTest(t)
		c := seeded(t, api, record("a", "INV-001", "Acme Corp", invoice.StatusUnpaid, "100"))

		api.EXPECT().DeleteInvoice(gomock.Any(), "a").Return(apierrors.Remote(assert.AnError, "delete invoice"))
		err := c.Remove(ctx, "a")

		require.Error(t, err)
		assert.Len(t, c.Invoices(), 1, "no ghosting before the server acknowledges")
	})
}

func TestController_Filter(t *testing.T) {
	api := mocks.NewMockInvoiceAPIForTest(t)
	c := seeded(t, api,
		record("a", "INV-001", "Acme Corp", invoice.StatusUnpaid, "100"),
		record("b", "INV-002", "Beta LLC", invoice.StatusPaid, "200"),
		record("c", "INV-010", "acme industries", invoice.StatusPaid, "300"),
	)

	tests := []struct {
		name    string
		search  string
		status  invoice.Status
		wantIDs []string
	}{
		{
			name:    "empty search with sentinel matches everything",
			status:  invoice.StatusAll,
			wantIDs: []string{"a", "b", "c"},
		},
		{
			name:    "case-insensitive client name match",
			search:  "ACME",
			status:  invoice.StatusAll,
			wantIDs: []string{"a", "c"},
		},
		{
			name:    "invoice number substring match",
			search:  "002",
			status:  invoice.StatusAll,
			wantIDs: []string{"b"},
		},
		{
			name:    "status equality",
			status:  invoice.StatusPaid,
			wantIDs: []string{"b", "c"},
		},
		{
			name:    "search and status combine with AND",
			search:  "acme",
			status:  invoice.StatusPaid,
			wantIDs: []string{"c"},
		},
		{
			name:    "no matches",
			search:  "zeta",
			status:  invoice.StatusAll,
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Filter(tt.search, tt.status)
			ids := make([]string, 0, len(got))
			for _, inv := range got {
				ids = append(ids, inv.ID)
			}
			assert.Equal(t, tt.wantIDs, ids, "filter preserves server order")
		})
	}
}

func TestController_Stats(t *testing.T) {
	api := mocks.NewMockInvoiceAPIForTest(t)
	c := seeded(t, api,
		record("a", "INV-001", "Acme Corp", invoice.StatusPaid, "100"),
		record("b", "INV-002", "Beta LLC", invoice.StatusUnpaid, "200"),
		record("c", "INV-003", "Gamma", invoice.StatusPending, "50"),
		record("d", "INV-004", "Delta", invoice.StatusPaid, "25"),
		record("e", "INV-005", "Epsilon", invoice.StatusUnpaid, "10"),
		record("f", "INV-006", "Zeta", invoice.StatusUnpaid, "5"),
	)

	stats := c.Stats()

	assert.Equal(t, 6, stats.TotalInvoices)
	assert.True(t, dec("125").Equal(stats.TotalPaid), "got %s", stats.TotalPaid)
	assert.True(t, dec("265").Equal(stats.TotalUnpaid), "pending counts as outstanding, got %s", stats.TotalUnpaid)
	require.Len(t, stats.Recent, 5)
	assert.Equal(t, "a", stats.Recent[0].ID)
}
