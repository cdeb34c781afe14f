package invoice

import (
	"github.com/shopspring/decimal"

	"github.com/invogen/invogen-client/internal/apierrors"
)

// ItemField names the editable fields of a line item for UpdateItem.
type ItemField string

const (
	ItemName        ItemField = "name"
	ItemDescription ItemField = "description"
	ItemQuantity    ItemField = "quantity"
	ItemUnitPrice   ItemField = "unitPrice"
	ItemTaxPercent  ItemField = "taxPercent"
)

// NewLineItem returns the zero-valued row appended by AddItem:
// one unit at price zero with no tax, total zero.
func NewLineItem() LineItem {
	li := LineItem{
		Quantity:   1,
		UnitPrice:  decimal.Zero,
		TaxPercent: decimal.Zero,
	}
	li.recompute()
	return li
}

// AddItem appends a zero-valued item and returns the updated draft.
// The receiver is never mutated; insertion order is display order.
func (d Draft) AddItem() Draft {
	items := make([]LineItem, len(d.Items)+1)
	copy(items, d.Items)
	items[len(d.Items)] = NewLineItem()
	d.Items = items
	return d
}

// UpdateItem sets one field on the item at index and recomputes that
// item's cached total. The updated draft is returned; the receiver and
// any previously returned drafts are untouched.
func (d Draft) UpdateItem(index int, field ItemField, value interface{}) (Draft, error) {
	if index < 0 || index >= len(d.Items) {
		return d, apierrors.Validation("line item index %d out of range [0,%d)", index, len(d.Items))
	}

	items := make([]LineItem, len(d.Items))
	copy(items, d.Items)
	item := &items[index]

	switch field {
	case ItemName:
		s, ok := value.(string)
		if !ok {
			return d, apierrors.Validation("field %q expects a string", field)
		}
		item.Name = s
	case ItemDescription:
		s, ok := value.(string)
		if !ok {
			return d, apierrors.Validation("field %q expects a string", field)
		}
		item.Description = s
	case ItemQuantity:
		q, ok := value.(int64)
		if !ok {
			return d, apierrors.Validation("field %q expects an int64", field)
		}
		if q < 1 {
			return d, apierrors.Validation("quantity must be at least 1, got %d", q)
		}
		item.Quantity = q
	case ItemUnitPrice:
		p, ok := value.(decimal.Decimal)
		if !ok {
			return d, apierrors.Validation("field %q expects a decimal", field)
		}
		if p.IsNegative() {
			return d, apierrors.Validation("unit price cannot be negative")
		}
		item.UnitPrice = p
	case ItemTaxPercent:
		t, ok := value.(decimal.Decimal)
		if !ok {
			return d, apierrors.Validation("field %q expects a decimal", field)
		}
		if t.IsNegative() || t.GreaterThan(decimal.NewFromInt(100)) {
			return d, apierrors.Validation("tax percent must be within [0,100]")
		}
		item.TaxPercent = t
	default:
		return d, apierrors.Validation("unknown line item field %q", field)
	}

	item.recompute()
	d.Items = items
	return d, nil
}

// RemoveItem deletes the item at index. An invoice always keeps at least
// one line item, so removing the last remaining one is rejected and the
// draft is returned unchanged.
func (d Draft) RemoveItem(index int) (Draft, error) {
	if index < 0 || index >= len(d.Items) {
		return d, apierrors.Validation("line item index %d out of range [0,%d)", index, len(d.Items))
	}
	if len(d.Items) == 1 {
		return d, apierrors.Validation("an invoice must have at least one line item")
	}

	items := make([]LineItem, 0, len(d.Items)-1)
	items = append(items, d.Items[:index]...)
	items = append(items, d.Items[index+1:]...)
	d.Items = items
	return d, nil
}
