package model

import "errors"

// Eligibility failures. One distinct error per failing rule so callers
// (and tests) can assert on the exact cause shown to the user.
var (
	ErrCouponInactive          = errors.New("coupon is not active")
	ErrCouponNotStarted        = errors.New("coupon is not valid yet")
	ErrCouponExpired           = errors.New("coupon has expired")
	ErrMinimumOrderNotMet      = errors.New("order amount is below the coupon minimum")
	ErrCouponExhausted         = errors.New("coupon usage limit reached")
	ErrUserNotAllowed          = errors.New("coupon is not available for this account")
	ErrUserExcluded            = errors.New("coupon cannot be used by this account")
	ErrProductsNotApplicable   = errors.New("coupon does not apply to any item in the cart")
	ErrProductExcluded         = errors.New("coupon cannot be used with an item in the cart")
	ErrUserUsageLimitReached   = errors.New("coupon usage limit for this account reached")
	ErrCouponRequiresSignIn    = errors.New("coupon requires a signed-in account")
	ErrInvalidDiscountType     = errors.New("invalid discount type")
	ErrCouponNotFound          = errors.New("coupon not found")
	ErrCouponCodeTaken         = errors.New("coupon code already exists")
	ErrRedemptionAlreadyExists = errors.New("coupon already redeemed for this order")
)

const (
	ErrCodeCouponNotFound     = "CPN001"
	ErrCodeCouponIneligible   = "CPN002"
	ErrCodeCouponExhausted    = "CPN003"
	ErrCodeCouponCodeTaken    = "CPN004"
	ErrCodeInvalidCoupon      = "CPN005"
	ErrCodeRedemptionConflict = "CPN006"
)

// CouponError wraps a coupon failure with a stable code for the API layer.
type CouponError struct {
	Code    string
	Message string
	Err     error
}

func (e *CouponError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CouponError) Unwrap() error {
	return e.Err
}

func NewCouponError(code, message string, err error) *CouponError {
	return &CouponError{Code: code, Message: message, Err: err}
}
