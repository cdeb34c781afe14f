package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/invogen/invogen-client/internal/session"
)

// DefaultPaymentTerms is what a fresh draft starts with.
const DefaultPaymentTerms = "Net 15"

// Source is the tagged union of places a draft can be built from.
type Source interface{ isSource() }

// Blank starts a fresh draft seeded from the signed-in user's profile.
type Blank struct{}

// FromExisting edits a persisted invoice.
type FromExisting struct{ Invoice Invoice }

// FromExtraction seeds a draft from an AI text-parse result.
type FromExtraction struct{ Extraction Extraction }

func (Blank) isSource()          {}
func (FromExisting) isSource()   {}
func (FromExtraction) isSource() {}

// Reconciler merges heterogeneous draft sources into the one canonical
// draft shape the editor works on. It is total: no source variant can
// fail, missing fields get defaults instead.
type Reconciler struct {
	sess *session.Session
	now  func() time.Time
}

// NewReconciler builds a reconciler bound to the given session; the
// session's user profile seeds the bill-from section of new drafts.
func NewReconciler(sess *session.Session) *Reconciler {
	return &Reconciler{sess: sess, now: time.Now}
}

// BuildDraft dispatches on the source variant.
func (r *Reconciler) BuildDraft(src Source) Draft {
	switch s := src.(type) {
	case FromExisting:
		return r.fromExisting(s.Invoice)
	case FromExtraction:
		return r.fromExtraction(s.Extraction)
	default:
		return r.blank()
	}
}

// blank seeds bill-from with whatever profile fields the user has;
// absent fields stay empty strings. The invoice number is left blank
// pending async proposal.
func (r *Reconciler) blank() Draft {
	user := r.sess.User()
	return Draft{
		InvoiceDate: r.now().Format(DateLayout),
		BillFrom: BillFrom{
			BusinessName: user.BusinessName,
			Email:        user.Email,
			Address:      user.Address,
			PhoneNumber:  user.PhoneNumber,
		},
		Items:        []LineItem{NewLineItem()},
		PaymentTerms: DefaultPaymentTerms,
	}
}

// fromExisting copies the invoice verbatim, normalizing dates to the
// canonical YYYY-MM-DD edit representation.
func (r *Reconciler) fromExisting(inv Invoice) Draft {
	items := make([]LineItem, len(inv.Items))
	copy(items, inv.Items)

	d := Draft{
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   inv.InvoiceDate.Format(DateLayout),
		BillFrom:      inv.BillFrom,
		BillTo:        inv.BillTo,
		Items:         items,
		Notes:         inv.Notes,
		PaymentTerms:  inv.PaymentTerms,
		Status:        inv.Status,
	}
	if !inv.DueDate.IsZero() {
		d.DueDate = inv.DueDate.Format(DateLayout)
	}
	return d
}

// fromExtraction overlays the extraction onto a blank draft. Extraction
// confidence is not guaranteed, so every missing field substitutes the
// blank default: quantity 1, price 0, tax 0.
func (r *Reconciler) fromExtraction(ex Extraction) Draft {
	d := r.blank()

	d.BillTo = BillTo{
		ClientName:  ex.ClientName,
		Email:       ex.Email,
		Address:     ex.Address,
		PhoneNumber: ex.PhoneNumber,
	}

	if len(ex.Items) == 0 {
		return d
	}

	items := make([]LineItem, len(ex.Items))
	for i, raw := range ex.Items {
		li := LineItem{
			Name:        raw.Name,
			Description: raw.Description,
			Quantity:    1,
			UnitPrice:   decimal.Zero,
			TaxPercent:  decimal.Zero,
		}
		if raw.Quantity != nil {
			li.Quantity = *raw.Quantity
		}
		if raw.UnitPrice != nil {
			li.UnitPrice = *raw.UnitPrice
		}
		if raw.TaxPercent != nil {
			li.TaxPercent = *raw.TaxPercent
		}
		li.recompute()
		items[i] = li
	}
	d.Items = items
	return d
}
