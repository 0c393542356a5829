package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"jewelstore-backend/internal/domains/order/model"
)

// OrderRepository persists orders and their line items.
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	FindByConfirmationNumber(ctx context.Context, confirmationNumber string) (*model.Order, error)
	FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*model.Order, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, filter *model.ListOrdersFilter) ([]*model.Order, int, error)
	ListAdmin(ctx context.Context, filter *model.ListOrdersFilter) ([]*model.Order, int, error)
	ListItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error)

	// CreateWithTx inserts the order and its items inside the checkout
	// transaction, alongside coupon redemption and cart clearing.
	CreateWithTx(ctx context.Context, tx pgx.Tx, order *model.Order, items []model.OrderItem) error

	// NextConfirmationSequence returns today's next order sequence,
	// backed by a per-day database sequence so two concurrent checkouts
	// never share a confirmation number.
	NextConfirmationSequence(ctx context.Context, tx pgx.Tx, day time.Time) (int64, error)

	// UpdateStatus writes the new status and related fields guarded by
	// the version column. Returns model.ErrOrderConflict when another
	// writer got there first.
	UpdateStatus(ctx context.Context, order *model.Order) error
	UpdateStatusWithTx(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// UpdatePayment records the verified gateway outcome.
	UpdatePayment(ctx context.Context, orderID uuid.UUID, status model.PaymentStatus, gatewayPaymentID *string) error

	// ListShippedPastEstimate feeds the auto-deliver sweep: shipped
	// orders whose estimated delivery date has passed.
	ListShippedPastEstimate(ctx context.Context, asOf time.Time, limit int) ([]*model.Order, error)

	// HasDeliveredOrderItem backs review proof-of-purchase checks.
	HasDeliveredOrderItem(ctx context.Context, customerID, productID uuid.UUID) (bool, error)
}
