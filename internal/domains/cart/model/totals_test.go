package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name         string
		lines        []TotalsLine
		discount     string
		wantSubtotal string
		wantTax      string
		wantShipping string
		wantTotal    string
	}{
		{
			name:         "flat shipping below threshold",
			lines:        []TotalsLine{{Quantity: 2, UnitPrice: d("500")}},
			discount:     "0",
			wantSubtotal: "1000",
			wantTax:      "180",
			wantShipping: "100",
			wantTotal:    "1280",
		},
		{
			name:         "free shipping above threshold",
			lines:        []TotalsLine{{Quantity: 1, UnitPrice: d("2500")}},
			discount:     "0",
			wantSubtotal: "2500",
			wantTax:      "450",
			wantShipping: "0",
			wantTotal:    "2950",
		},
		{
			name:         "threshold is exclusive",
			lines:        []TotalsLine{{Quantity: 4, UnitPrice: d("500")}},
			discount:     "0",
			wantSubtotal: "2000",
			wantTax:      "360",
			wantShipping: "100",
			wantTotal:    "2460",
		},
		{
			name:         "discount subtracts from total",
			lines:        []TotalsLine{{Quantity: 2, UnitPrice: d("500")}},
			discount:     "200",
			wantSubtotal: "1000",
			wantTax:      "180",
			wantShipping: "100",
			wantTotal:    "1080",
		},
		{
			name:         "total floors at zero",
			lines:        []TotalsLine{{Quantity: 1, UnitPrice: d("100")}},
			discount:     "10000",
			wantSubtotal: "100",
			wantTax:      "18",
			wantShipping: "100",
			wantTotal:    "0",
		},
		{
			name:         "empty cart",
			lines:        nil,
			discount:     "0",
			wantSubtotal: "0",
			wantTax:      "0",
			wantShipping: "0",
			wantTotal:    "0",
		},
		{
			name: "fractional prices round to 2 decimals",
			lines: []TotalsLine{
				{Quantity: 3, UnitPrice: d("33.33")},
				{Quantity: 1, UnitPrice: d("0.01")},
			},
			discount:     "0",
			wantSubtotal: "100",
			wantTax:      "18",
			wantShipping: "100",
			wantTotal:    "218",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.lines, d(tt.discount))

			assert.True(t, got.Subtotal.Equal(d(tt.wantSubtotal)), "subtotal: got %s want %s", got.Subtotal, tt.wantSubtotal)
			assert.True(t, got.EstimatedTax.Equal(d(tt.wantTax)), "tax: got %s want %s", got.EstimatedTax, tt.wantTax)
			assert.True(t, got.EstimatedShipping.Equal(d(tt.wantShipping)), "shipping: got %s want %s", got.EstimatedShipping, tt.wantShipping)
			assert.True(t, got.EstimatedTotal.Equal(d(tt.wantTotal)), "total: got %s want %s", got.EstimatedTotal, tt.wantTotal)
		})
	}
}

func TestComputeTotals_NeverNegative(t *testing.T) {
	got := ComputeTotals([]TotalsLine{{Quantity: 1, UnitPrice: d("50")}}, d("999999"))
	assert.False(t, got.EstimatedTotal.IsNegative())
	assert.True(t, got.EstimatedTotal.IsZero())
}
