package invoice

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/invogen/invogen-client/internal/apierrors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateDraft checks a draft at the edit-form boundary before it is
// submitted: structural rules via struct tags (emails well formed, at
// least one item, quantities >= 1) plus the money-field ranges the tag
// engine cannot express on decimals.
func ValidateDraft(d Draft) error {
	if err := validate.Struct(d); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			fe := errs[0]
			return apierrors.Validation("invalid field %s (%s rule)", fe.Namespace(), fe.Tag())
		}
		return apierrors.Validation("invalid draft: %v", err)
	}

	if _, err := time.Parse(DateLayout, d.InvoiceDate); err != nil {
		return apierrors.Validation("invoice date must be YYYY-MM-DD, got %q", d.InvoiceDate)
	}
	if d.DueDate != "" {
		if _, err := time.Parse(DateLayout, d.DueDate); err != nil {
			return apierrors.Validation("due date must be YYYY-MM-DD, got %q", d.DueDate)
		}
	}

	hundred := decimal.NewFromInt(100)
	for i, item := range d.Items {
		if item.UnitPrice.IsNegative() {
			return apierrors.Validation("item %d: unit price cannot be negative", i)
		}
		if item.TaxPercent.IsNegative() || item.TaxPercent.GreaterThan(hundred) {
			return apierrors.Validation("item %d: tax percent must be within [0,100]", i)
		}
	}

	if d.Status != "" && !d.Status.Valid() {
		return apierrors.Validation("status %q is not storable", d.Status)
	}
	return nil
}
