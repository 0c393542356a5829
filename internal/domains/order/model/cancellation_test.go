package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func customerOrder(status OrderStatus, customerID uuid.UUID) *Order {
	return &Order{
		ID:         uuid.New(),
		CustomerID: customerID,
		Status:     status,
		Email:      "priya@example.com",
		Phone:      "+91 98765 43210",
	}
}

func guestOrder(status OrderStatus) *Order {
	o := customerOrder(status, uuid.New())
	o.IsGuestOrder = true
	return o
}

func TestCheckCancellation_StatusGate(t *testing.T) {
	userID := uuid.New()
	req := CancellationRequest{UserID: &userID}

	for _, status := range []OrderStatus{StatusShipped, StatusDelivered, StatusCancelled, StatusRefunded} {
		t.Run(string(status), func(t *testing.T) {
			err := CheckCancellation(customerOrder(status, userID), req)
			assert.ErrorIs(t, err, ErrNotCancellable)
		})
	}

	for _, status := range []OrderStatus{StatusPending, StatusProcessing} {
		t.Run(string(status), func(t *testing.T) {
			err := CheckCancellation(customerOrder(status, userID), req)
			assert.NoError(t, err)
		})
	}
}

func TestCheckCancellation_Ownership(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	t.Run("owner may cancel", func(t *testing.T) {
		err := CheckCancellation(customerOrder(StatusPending, owner), CancellationRequest{UserID: &owner})
		assert.NoError(t, err)
	})

	t.Run("stranger may not", func(t *testing.T) {
		err := CheckCancellation(customerOrder(StatusPending, owner), CancellationRequest{UserID: &stranger})
		assert.ErrorIs(t, err, ErrNotYourOrder)
	})

	t.Run("missing user id", func(t *testing.T) {
		err := CheckCancellation(customerOrder(StatusPending, owner), CancellationRequest{})
		assert.ErrorIs(t, err, ErrNotYourOrder)
	})

	t.Run("guest order not cancellable via account", func(t *testing.T) {
		o := guestOrder(StatusPending)
		err := CheckCancellation(o, CancellationRequest{UserID: &o.CustomerID})
		assert.ErrorIs(t, err, ErrGuestOrderViaAccount)
	})
}

func TestCheckCancellation_GuestPath(t *testing.T) {
	t.Run("matching credentials", func(t *testing.T) {
		o := guestOrder(StatusProcessing)
		err := CheckCancellation(o, CancellationRequest{
			IsGuest: true,
			Email:   "priya@example.com",
			Phone:   "9876543210",
		})
		assert.NoError(t, err)
	})

	t.Run("email case and whitespace ignored", func(t *testing.T) {
		o := guestOrder(StatusPending)
		err := CheckCancellation(o, CancellationRequest{
			IsGuest: true,
			Email:   "  PRIYA@Example.COM ",
			Phone:   "+919876543210",
		})
		assert.NoError(t, err)
	})

	t.Run("wrong email", func(t *testing.T) {
		o := guestOrder(StatusPending)
		err := CheckCancellation(o, CancellationRequest{
			IsGuest: true,
			Email:   "someone@else.com",
			Phone:   "9876543210",
		})
		assert.ErrorIs(t, err, ErrGuestOrderMismatch)
	})

	t.Run("wrong phone", func(t *testing.T) {
		o := guestOrder(StatusPending)
		err := CheckCancellation(o, CancellationRequest{
			IsGuest: true,
			Email:   "priya@example.com",
			Phone:   "9999999999",
		})
		assert.ErrorIs(t, err, ErrGuestOrderMismatch)
	})

	t.Run("guest path rejects registered order", func(t *testing.T) {
		o := customerOrder(StatusPending, uuid.New())
		err := CheckCancellation(o, CancellationRequest{
			IsGuest: true,
			Email:   "priya@example.com",
			Phone:   "9876543210",
		})
		assert.ErrorIs(t, err, ErrNotYourOrder)
	})
}

func TestCancellationNote(t *testing.T) {
	t.Run("prepaid gets refund note", func(t *testing.T) {
		o := customerOrder(StatusPending, uuid.New())
		o.PaymentMethod = PaymentOnline
		o.PaymentStatus = PaymentStatusPaid
		assert.Equal(t, RefundNote, CancellationNote(o))
	})

	t.Run("cod has no note", func(t *testing.T) {
		o := customerOrder(StatusPending, uuid.New())
		o.PaymentMethod = PaymentCOD
		assert.Empty(t, CancellationNote(o))
	})

	t.Run("unpaid online has no note", func(t *testing.T) {
		o := customerOrder(StatusPending, uuid.New())
		o.PaymentMethod = PaymentOnline
		o.PaymentStatus = PaymentStatusPending
		assert.Empty(t, CancellationNote(o))
	})
}

func TestNewConfirmationNumber(t *testing.T) {
	n := NewConfirmationNumber(monday, 42)
	assert.Equal(t, "JW-20260105-000042", n)
}
