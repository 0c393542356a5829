package model

import "github.com/shopspring/decimal"

// Pricing constants. GST applies at a single flat rate; shipping is a
// flat fee waived above the free-shipping threshold.
var (
	TaxRate               = decimal.NewFromFloat(0.18)
	FreeShippingThreshold = decimal.NewFromInt(2000)
	FlatShippingFee       = decimal.NewFromInt(100)
)

// Totals are the four derived amounts shown on a cart or order draft.
type Totals struct {
	Subtotal          decimal.Decimal `json:"subtotal"`
	EstimatedTax      decimal.Decimal `json:"estimated_tax"`
	EstimatedShipping decimal.Decimal `json:"estimated_shipping"`
	EstimatedTotal    decimal.Decimal `json:"estimated_total"`
}

// TotalsLine is the minimal item view the calculator needs.
type TotalsLine struct {
	Quantity  int
	UnitPrice decimal.Decimal
}

// ComputeTotals derives all four amounts from the authoritative line
// items. Callers must never adjust a stored total incrementally; every
// mutation recomputes from scratch so the fields cannot drift.
//
// subtotal  = sum(quantity * unitPrice), rounded to 2 decimals
// tax       = subtotal * 18%
// shipping  = 0 when subtotal > 2000, else flat 100
// total     = subtotal + tax + shipping - discount, floored at 0
func ComputeTotals(lines []TotalsLine, discount decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	subtotal = subtotal.Round(2)

	tax := subtotal.Mul(TaxRate).Round(2)

	shipping := FlatShippingFee
	if subtotal.GreaterThan(FreeShippingThreshold) {
		shipping = decimal.Zero
	}
	// An empty cart ships nothing.
	if subtotal.IsZero() {
		shipping = decimal.Zero
	}

	total := subtotal.Add(tax).Add(shipping).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Totals{
		Subtotal:          subtotal,
		EstimatedTax:      tax,
		EstimatedShipping: shipping,
		EstimatedTotal:    total.Round(2),
	}
}
