package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jewelstore-backend/internal/domains/coupon/model"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func dptr(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func TestCalculate_Percentage(t *testing.T) {
	calc := NewDiscountCalculator()

	tests := []struct {
		name     string
		coupon   *model.Coupon
		subtotal string
		want     string
	}{
		{
			name: "basic percentage",
			coupon: &model.Coupon{
				Type:  model.DiscountPercentage,
				Value: d("10"),
			},
			subtotal: "1000",
			want:     "100",
		},
		{
			name: "percentage capped at maximum discount",
			coupon: &model.Coupon{
				Type:                  model.DiscountPercentage,
				Value:                 d("20"),
				MaximumDiscountAmount: dptr("500"),
			},
			subtotal: "10000",
			want:     "500",
		},
		{
			name: "percentage below cap unaffected",
			coupon: &model.Coupon{
				Type:                  model.DiscountPercentage,
				Value:                 d("20"),
				MaximumDiscountAmount: dptr("500"),
			},
			subtotal: "2000",
			want:     "400",
		},
		{
			name: "percentage rounds to 2 decimals",
			coupon: &model.Coupon{
				Type:  model.DiscountPercentage,
				Value: d("15"),
			},
			subtotal: "333.33",
			want:     "50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.Calculate(tt.coupon, d(tt.subtotal))
			require.NoError(t, err)
			assert.True(t, got.Equal(d(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestCalculate_FixedAmount(t *testing.T) {
	calc := NewDiscountCalculator()

	t.Run("fixed below subtotal", func(t *testing.T) {
		coupon := &model.Coupon{Type: model.DiscountFixedAmount, Value: d("100")}

		got, err := calc.Calculate(coupon, d("500"))
		require.NoError(t, err)
		assert.True(t, got.Equal(d("100")))
	})

	t.Run("fixed clamped to subtotal", func(t *testing.T) {
		coupon := &model.Coupon{Type: model.DiscountFixedAmount, Value: d("100")}

		got, err := calc.Calculate(coupon, d("50"))
		require.NoError(t, err)
		assert.True(t, got.Equal(d("50")), "discount must never exceed the subtotal")
	})
}

func TestCalculate_MinimumOrderAmount(t *testing.T) {
	calc := NewDiscountCalculator()
	coupon := &model.Coupon{
		Type:               model.DiscountFixedAmount,
		Value:              d("100"),
		MinimumOrderAmount: d("1000"),
	}

	_, err := calc.Calculate(coupon, d("999.99"))
	assert.ErrorIs(t, err, model.ErrMinimumOrderNotMet)

	got, err := calc.Calculate(coupon, d("1000"))
	require.NoError(t, err)
	assert.True(t, got.Equal(d("100")))
}

func TestCalculate_InvalidType(t *testing.T) {
	calc := NewDiscountCalculator()
	coupon := &model.Coupon{Type: model.DiscountType("bogus"), Value: d("10")}

	_, err := calc.Calculate(coupon, d("100"))
	assert.ErrorIs(t, err, model.ErrInvalidDiscountType)
}
