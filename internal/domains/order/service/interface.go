package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"jewelstore-backend/internal/domains/order/model"
)

// StockReserver is the slice of the product domain checkout needs.
// Declared here to avoid a package cycle with product/service.
type StockReserver interface {
	// DecrementStockWithTx atomically takes quantity units off the
	// product's stock, failing when not enough remain.
	DecrementStockWithTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, quantity int) error
	RestoreStockWithTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, quantity int) error
}

// GatewayClient creates payment-gateway orders for online payments.
// The concrete client lives in the payment domain.
type GatewayClient interface {
	CreateGatewayOrder(ctx context.Context, receipt string, amount decimal.Decimal) (gatewayOrderID string, err error)
}

// CheckoutIdentity is who is placing the order.
type CheckoutIdentity struct {
	UserID    *uuid.UUID // nil for guests
	SessionID *string    // set for guests
}

// ServiceInterface is the order domain API.
type ServiceInterface interface {
	// Checkout converts the caller's cart into an order.
	Checkout(ctx context.Context, identity CheckoutIdentity, req *model.CheckoutRequest) (*model.CheckoutResponse, error)

	// Customer reads
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*model.OrderDetail, error)
	ListOrders(ctx context.Context, userID uuid.UUID, filter *model.ListOrdersFilter) ([]*model.Order, int, error)
	TrackOrder(ctx context.Context, req *model.TrackOrderRequest) (*model.OrderDetail, error)

	// Cancellation
	CancelByCustomer(ctx context.Context, userID, orderID uuid.UUID) (*model.CancelResponse, error)
	CancelByGuest(ctx context.Context, req *model.GuestCancelRequest) (*model.CancelResponse, error)

	// Admin
	GetOrderAdmin(ctx context.Context, orderID uuid.UUID) (*model.OrderDetail, error)
	ListOrdersAdmin(ctx context.Context, filter *model.ListOrdersFilter) ([]*model.Order, int, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, actor model.Actor, req *model.UpdateStatusRequest) (*model.Order, error)

	// ConfirmOrder moves a paid (or COD) pending order to processing.
	// Invoked by the payment webhook and the COD post-checkout hook.
	ConfirmOrder(ctx context.Context, orderID uuid.UUID) error

	// AutoDeliverOverdue marks shipped orders delivered once their
	// estimated delivery date has passed. Run by the worker.
	AutoDeliverOverdue(ctx context.Context) (int, error)
}
