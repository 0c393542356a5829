package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTransition_AllowedEdges(t *testing.T) {
	tests := []struct {
		name        string
		from, to    OrderStatus
		actor       Actor
		hasTracking bool
	}{
		{"system confirms pending", StatusPending, StatusProcessing, ActorSystem, false},
		{"customer cancels pending", StatusPending, StatusCancelled, ActorCustomer, false},
		{"admin ships with tracking", StatusProcessing, StatusShipped, ActorAdmin, true},
		{"admin cancels processing", StatusProcessing, StatusCancelled, ActorAdmin, false},
		{"admin delivers shipped", StatusShipped, StatusDelivered, ActorAdmin, true},
		{"system delivers shipped", StatusShipped, StatusDelivered, ActorSystem, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, ValidateTransition(tt.from, tt.to, tt.actor, tt.hasTracking))
		})
	}
}

func TestValidateTransition_RejectedEdges(t *testing.T) {
	tests := []struct {
		name     string
		from, to OrderStatus
		actor    Actor
	}{
		{"pending cannot ship", StatusPending, StatusShipped, ActorAdmin},
		{"pending cannot deliver", StatusPending, StatusDelivered, ActorSystem},
		{"shipped cannot cancel", StatusShipped, StatusCancelled, ActorAdmin},
		{"delivered is terminal", StatusDelivered, StatusProcessing, ActorAdmin},
		{"cancelled is terminal", StatusCancelled, StatusPending, ActorSystem},
		{"no edge into refunded", StatusDelivered, StatusRefunded, ActorAdmin},
		{"no backward move", StatusShipped, StatusProcessing, ActorAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransition(tt.from, tt.to, tt.actor, true)
			require.Error(t, err)

			var tErr *TransitionError
			require.ErrorAs(t, err, &tErr)
			assert.Equal(t, tt.from, tErr.From)
			assert.Equal(t, tt.to, tErr.To)
			assert.Contains(t, err.Error(), string(tt.from))
			assert.Contains(t, err.Error(), string(tt.to))
		})
	}
}

func TestValidateTransition_ActorRestrictions(t *testing.T) {
	t.Run("customer cannot confirm", func(t *testing.T) {
		err := ValidateTransition(StatusPending, StatusProcessing, ActorCustomer, false)
		assert.Error(t, err)
	})

	t.Run("admin cannot cancel pending", func(t *testing.T) {
		err := ValidateTransition(StatusPending, StatusCancelled, ActorAdmin, false)
		assert.Error(t, err)
	})

	t.Run("customer cannot ship", func(t *testing.T) {
		err := ValidateTransition(StatusProcessing, StatusShipped, ActorCustomer, true)
		assert.Error(t, err)
	})

	t.Run("customer cannot deliver", func(t *testing.T) {
		err := ValidateTransition(StatusShipped, StatusDelivered, ActorCustomer, true)
		assert.Error(t, err)
	})
}

func TestValidateTransition_TrackingRequired(t *testing.T) {
	err := ValidateTransition(StatusProcessing, StatusShipped, ActorAdmin, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tracking number")

	assert.NoError(t, ValidateTransition(StatusProcessing, StatusShipped, ActorAdmin, true))
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.True(t, StatusDelivered.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusRefunded.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusProcessing.IsTerminal())
	assert.False(t, StatusShipped.IsTerminal())
}
