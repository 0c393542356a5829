package model

import (
	"strings"

	"github.com/google/uuid"
)

// CancellationRequest identifies who is asking to cancel. Exactly one
// identity shape is used: UserID for signed-in customers, Email+Phone
// for guests.
type CancellationRequest struct {
	UserID  *uuid.UUID
	Email   string
	Phone   string
	IsGuest bool
}

// RefundNote is shown to customers cancelling a prepaid order. The
// refund itself is executed by the payment side, not here.
const RefundNote = "Your refund will be processed within 5-7 business days."

// CheckCancellation decides whether the requester may cancel the order.
//
// Only pending and processing orders are cancellable. Ownership rules:
//   - Signed-in: the order must belong to the user AND must not be a
//     guest order. A guest order later claimed by an account still goes
//     through the track-order flow.
//   - Guest: the order must be a guest order and the supplied email and
//     phone must both match what was recorded at checkout.
func CheckCancellation(order *Order, req CancellationRequest) error {
	if order.Status != StatusPending && order.Status != StatusProcessing {
		return ErrNotCancellable
	}

	if req.IsGuest {
		if !order.IsGuestOrder {
			return ErrNotYourOrder
		}
		if !equalFold(order.Email, req.Email) || !samePhone(order.Phone, req.Phone) {
			return ErrGuestOrderMismatch
		}
		return nil
	}

	if req.UserID == nil || order.CustomerID != *req.UserID {
		return ErrNotYourOrder
	}
	if order.IsGuestOrder {
		return ErrGuestOrderViaAccount
	}
	return nil
}

// CancellationNote returns the customer-facing note for a successful
// cancellation. COD orders have no monetary side effect.
func CancellationNote(order *Order) string {
	if order.IsPrepaid() {
		return RefundNote
	}
	return ""
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// samePhone compares digits only, so "+91 98765-43210" matches
// "9876543210" with the country prefix intact on either side.
func samePhone(a, b string) bool {
	return normalizePhone(a) == normalizePhone(b) && normalizePhone(a) != ""
}

func normalizePhone(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	digits := sb.String()
	// Strip a leading country code so 91XXXXXXXXXX and XXXXXXXXXX match.
	if len(digits) > 10 {
		digits = digits[len(digits)-10:]
	}
	return digits
}
