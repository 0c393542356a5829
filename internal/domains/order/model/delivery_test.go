package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Monday, 5 January 2026.
var monday = time.Date(2026, time.January, 5, 10, 0, 0, 0, time.UTC)

func day(d int) time.Time {
	return time.Date(2026, time.January, d, 10, 0, 0, 0, time.UTC)
}

func TestEstimateDeliveryDate_Methods(t *testing.T) {
	tests := []struct {
		name   string
		method ShippingMethod
		state  string
		want   time.Time
	}{
		// 7 business days from Monday skips one weekend.
		{"standard", ShippingStandard, "Maharashtra", day(14)},
		{"express", ShippingExpress, "Maharashtra", day(8)},
		{"overnight", ShippingOvernight, "Maharashtra", day(6)},
		// +2 business days for remote states: express becomes 5.
		{"express to remote state", ShippingExpress, "Sikkim", day(12)},
		{"remote match is case-insensitive", ShippingExpress, "  MIZORAM ", day(12)},
		// Unknown method falls back to standard.
		{"unknown method", ShippingMethod("pigeon"), "Maharashtra", day(14)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateDeliveryDate(monday, tt.method, tt.state)
			assert.Equal(t, tt.want.Truncate(24*time.Hour), got.Truncate(24*time.Hour))
		})
	}
}

func TestEstimateDeliveryDate_SkipsWeekends(t *testing.T) {
	// Friday, 9 January 2026. Overnight lands on Monday.
	friday := time.Date(2026, time.January, 9, 16, 0, 0, 0, time.UTC)
	got := EstimateDeliveryDate(friday, ShippingOvernight, "Karnataka")

	assert.Equal(t, time.Monday, got.Weekday())
	assert.Equal(t, 12, got.Day())
}

func TestEstimateDeliveryDate_NeverOnWeekend(t *testing.T) {
	for d := 5; d <= 11; d++ {
		shipped := day(d)
		for _, method := range []ShippingMethod{ShippingStandard, ShippingExpress, ShippingOvernight} {
			got := EstimateDeliveryDate(shipped, method, "Assam")
			assert.NotEqual(t, time.Saturday, got.Weekday(), "shipped %s via %s", shipped, method)
			assert.NotEqual(t, time.Sunday, got.Weekday(), "shipped %s via %s", shipped, method)
		}
	}
}

func TestIsRemoteRegion(t *testing.T) {
	assert.True(t, IsRemoteRegion("Ladakh"))
	assert.True(t, IsRemoteRegion("arunachal pradesh"))
	assert.False(t, IsRemoteRegion("Tamil Nadu"))
	assert.False(t, IsRemoteRegion(""))
}
