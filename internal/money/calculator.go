// Package money implements the invoice arithmetic: per-line totals and
// invoice-level subtotal / tax / total aggregation. All computation is on
// decimals so cent-level drift cannot accumulate across many items.
package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Line is the arithmetic view of a billable row. Quantity is a whole
// number of units; UnitPrice and TaxPercent are validated upstream
// (price >= 0, tax in [0,100]) before reaching this package.
type Line struct {
	Quantity   int64
	UnitPrice  decimal.Decimal
	TaxPercent decimal.Decimal
}

// Totals is the derived summary of a list of lines.
// Total == Subtotal + TaxTotal always holds exactly.
type Totals struct {
	Subtotal decimal.Decimal
	TaxTotal decimal.Decimal
	Total    decimal.Decimal
}

// LineSubtotal returns quantity * unitPrice.
func LineSubtotal(l Line) decimal.Decimal {
	return decimal.NewFromInt(l.Quantity).Mul(l.UnitPrice)
}

// LineTax returns quantity * unitPrice * taxPercent / 100.
func LineTax(l Line) decimal.Decimal {
	return LineSubtotal(l).Mul(l.TaxPercent).Div(hundred)
}

// LineTotal returns quantity * unitPrice * (1 + taxPercent/100).
func LineTotal(l Line) decimal.Decimal {
	return LineSubtotal(l).Add(LineTax(l))
}

// Compute aggregates the lines. Summation is order-independent; totals
// are accumulated unrounded.
func Compute(lines []Line) Totals {
	subtotal := decimal.Zero
	taxTotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(LineSubtotal(l))
		taxTotal = taxTotal.Add(LineTax(l))
	}
	return Totals{
		Subtotal: subtotal,
		TaxTotal: taxTotal,
		Total:    subtotal.Add(taxTotal),
	}
}

// Round2 rounds an amount to two decimal places for presentation.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
