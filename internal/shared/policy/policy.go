// Package policy centralizes actor-role capability checks. Every mutating
// entry point asks this table instead of re-deriving role logic locally.
package policy

// Role is the actor role carried in the JWT (or guest when absent).
type Role string

const (
	RoleGuest      Role = "guest"
	RoleCustomer   Role = "customer"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Capability names one privileged action.
type Capability string

const (
	CapPlaceOrder     Capability = "place_order"
	CapCancelOwnOrder Capability = "cancel_own_order"
	CapManageOrders   Capability = "manage_orders"
	CapManageCatalog  Capability = "manage_catalog"
	CapManageCoupons  Capability = "manage_coupons"
	CapModerateReview Capability = "moderate_reviews"
	CapManageUsers    Capability = "manage_users"
)

var capabilities = map[Role]map[Capability]bool{
	RoleGuest: {
		CapPlaceOrder: true, // guest checkout
	},
	RoleCustomer: {
		CapPlaceOrder:     true,
		CapCancelOwnOrder: true,
	},
	RoleAdmin: {
		CapPlaceOrder:     true,
		CapCancelOwnOrder: true,
		CapManageOrders:   true,
		CapManageCatalog:  true,
		CapManageCoupons:  true,
		CapModerateReview: true,
	},
	RoleSuperAdmin: {
		CapPlaceOrder:     true,
		CapCancelOwnOrder: true,
		CapManageOrders:   true,
		CapManageCatalog:  true,
		CapManageCoupons:  true,
		CapModerateReview: true,
		CapManageUsers:    true,
	},
}

// Allows reports whether role carries the capability.
func Allows(role Role, cap Capability) bool {
	caps, ok := capabilities[role]
	if !ok {
		return false
	}
	return caps[cap]
}

// IsStaff reports whether the role belongs to back-office staff.
func IsStaff(role Role) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}
