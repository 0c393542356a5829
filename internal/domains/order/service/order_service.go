package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	cartModel "jewelstore-backend/internal/domains/cart/model"
	cartService "jewelstore-backend/internal/domains/cart/service"
	couponService "jewelstore-backend/internal/domains/coupon/service"
	"jewelstore-backend/internal/domains/order/model"
	"jewelstore-backend/internal/domains/order/repository"
	"jewelstore-backend/internal/shared"
	"jewelstore-backend/internal/shared/utils"
	"jewelstore-backend/pkg/database"
	"jewelstore-backend/pkg/logger"
)

const autoDeliverBatchSize = 200

type orderService struct {
	repo    repository.OrderRepository
	pool    *pgxpool.Pool
	cart    cartService.ServiceInterface
	coupons couponService.ServiceInterface
	stock   StockReserver
	gateway GatewayClient
	asynq   *asynq.Client
}

// NewOrderService wires the order domain. The gateway may be nil when
// online payments are disabled (COD-only deployments).
func NewOrderService(
	repo repository.OrderRepository,
	pool *pgxpool.Pool,
	cart cartService.ServiceInterface,
	coupons couponService.ServiceInterface,
	stock StockReserver,
	gateway GatewayClient,
	asynqClient *asynq.Client,
) ServiceInterface {
	return &orderService{
		repo:    repo,
		pool:    pool,
		cart:    cart,
		coupons: coupons,
		stock:   stock,
		gateway: gateway,
		asynq:   asynqClient,
	}
}

// -------------------------------------------------------------------
// CHECKOUT
// -------------------------------------------------------------------

// Checkout converts the cart into an order in one transaction:
// reserve stock, redeem the coupon, insert the order and items, clear
// the cart. For online payments a gateway order is created first so a
// gateway failure aborts before anything is written.
func (s *orderService) Checkout(ctx context.Context, identity CheckoutIdentity, req *model.CheckoutRequest) (*model.CheckoutResponse, error) {
	owner := cartService.Owner{UserID: identity.UserID, SessionID: identity.SessionID}

	cart, details, err := s.cart.GetCartForCheckout(ctx, owner)
	if err != nil {
		return nil, err
	}

	order := s.buildOrder(identity, req, cart, details)

	if order.PaymentMethod == model.PaymentOnline {
		if s.gateway == nil {
			return nil, model.NewOrderError(model.ErrCodeCheckoutFailed, "online payments are not enabled", nil)
		}
		gatewayOrderID, err := s.gateway.CreateGatewayOrder(ctx, order.ID.String(), order.Total)
		if err != nil {
			return nil, model.NewOrderError(model.ErrCodeCheckoutFailed, "failed to create payment order", err)
		}
		order.GatewayOrderID = &gatewayOrderID
	}

	err = database.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		now := time.Now()
		seq, err := s.repo.NextConfirmationSequence(ctx, tx, now)
		if err != nil {
			return err
		}
		order.ConfirmationNumber = model.NewConfirmationNumber(now, seq)

		for i := range details {
			if err := s.stock.DecrementStockWithTx(ctx, tx, details[i].ProductID, details[i].Quantity); err != nil {
				return err
			}
		}

		if cart.CouponCode != nil {
			productIDs := make([]uuid.UUID, 0, len(details))
			for i := range details {
				productIDs = append(productIDs, details[i].ProductID)
			}
			discount, err := s.coupons.ApplyToOrder(ctx, tx, *cart.CouponCode, identity.UserID, order.Subtotal, productIDs, order.ID)
			if err != nil {
				return err
			}
			order.CouponDiscount = discount
			// Recompute the grand total with the redeemed (not
			// advisory) discount.
			total := order.Subtotal.Add(order.Tax).Add(order.Shipping).Sub(discount)
			if total.IsNegative() {
				total = decimal.Zero
			}
			order.Total = total.Round(2)
		}

		items := make([]model.OrderItem, 0, len(details))
		for i := range details {
			d := &details[i]
			items = append(items, model.OrderItem{
				ID:          uuid.New(),
				OrderID:     order.ID,
				ProductID:   d.ProductID,
				ProductName: d.ProductName,
				Quantity:    d.Quantity,
				UnitPrice:   d.UnitPrice,
				TotalPrice:  d.LineTotal(),
			})
		}
		if err := s.repo.CreateWithTx(ctx, tx, order, items); err != nil {
			return err
		}

		return s.cart.ClearAfterCheckout(ctx, tx, cart.ID)
	})
	if err != nil {
		return nil, err
	}

	s.enqueueConfirmationEmail(order)

	// COD orders have nothing to wait for; confirm immediately.
	if order.PaymentMethod == model.PaymentCOD {
		if err := s.ConfirmOrder(ctx, order.ID); err != nil {
			logger.Error("failed to confirm cod order", err)
		}
	}

	return &model.CheckoutResponse{
		OrderID:            order.ID.String(),
		ConfirmationNumber: order.ConfirmationNumber,
		Status:             order.Status,
		Total:              order.Total,
		GatewayOrderID:     order.GatewayOrderID,
	}, nil
}

func (s *orderService) buildOrder(identity CheckoutIdentity, req *model.CheckoutRequest, cart *cartModel.Cart, details []cartModel.CartItemDetail) *model.Order {
	customerID := uuid.New() // synthesized id for guests
	isGuest := true
	if identity.UserID != nil {
		customerID = *identity.UserID
		isGuest = false
	}

	billing := req.ShippingAddress
	if req.BillingAddress != nil {
		billing = *req.BillingAddress
	}

	order := &model.Order{
		ID:              uuid.New(),
		CustomerID:      customerID,
		IsGuestOrder:    isGuest,
		Email:           req.Email,
		Phone:           req.Phone,
		Subtotal:        cart.Subtotal,
		Tax:             cart.EstimatedTax,
		Shipping:        cart.EstimatedShipping,
		CouponCode:      cart.CouponCode,
		CouponDiscount:  cart.DiscountAmount,
		Total:           cart.EstimatedTotal,
		Status:          model.StatusPending,
		PaymentMethod:   model.PaymentMethod(req.PaymentMethod),
		PaymentStatus:   model.PaymentStatusPending,
		ShippingAddress: req.ShippingAddress.ToSnapshot(),
		BillingAddress:  billing.ToSnapshot(),
		ShippingMethod:  model.ShippingMethod(req.ShippingMethod),
	}
	return order
}

// -------------------------------------------------------------------
// CUSTOMER READS
// -------------------------------------------------------------------

func (s *orderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*model.OrderDetail, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.IsGuestOrder || order.CustomerID != userID {
		return nil, model.ErrNotYourOrder
	}
	return s.withItems(ctx, order)
}

func (s *orderService) ListOrders(ctx context.Context, userID uuid.UUID, filter *model.ListOrdersFilter) ([]*model.Order, int, error) {
	filter.Normalize()
	return s.repo.ListByCustomer(ctx, userID, filter)
}

// TrackOrder is the guest lookup: confirmation number plus the email
// recorded on the order.
func (s *orderService) TrackOrder(ctx context.Context, req *model.TrackOrderRequest) (*model.OrderDetail, error) {
	order, err := s.repo.FindByConfirmationNumber(ctx, req.ConfirmationNumber)
	if err != nil {
		return nil, err
	}
	if !equalFold(order.Email, req.Email) {
		// Same answer as an unknown confirmation number, so the
		// endpoint cannot be used to probe which orders exist.
		return nil, model.ErrOrderNotFound
	}
	return s.withItems(ctx, order)
}

// -------------------------------------------------------------------
// CANCELLATION
// -------------------------------------------------------------------

func (s *orderService) CancelByCustomer(ctx context.Context, userID, orderID uuid.UUID) (*model.CancelResponse, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	req := model.CancellationRequest{UserID: &userID}
	if err := model.CheckCancellation(order, req); err != nil {
		return nil, err
	}

	return s.cancel(ctx, order)
}

func (s *orderService) CancelByGuest(ctx context.Context, req *model.GuestCancelRequest) (*model.CancelResponse, error) {
	order, err := s.repo.FindByConfirmationNumber(ctx, req.ConfirmationNumber)
	if err != nil {
		return nil, err
	}

	check := model.CancellationRequest{Email: req.Email, Phone: req.Phone, IsGuest: true}
	if err := model.CheckCancellation(order, check); err != nil {
		return nil, err
	}

	return s.cancel(ctx, order)
}

// cancel applies the cancellation, restores stock and releases the
// coupon slot in one transaction. CheckCancellation has already
// authorized the requester, so the status edge is not re-validated
// against the actor table here.
func (s *orderService) cancel(ctx context.Context, order *model.Order) (*model.CancelResponse, error) {
	now := time.Now()
	order.Status = model.StatusCancelled
	order.CancelledAt = &now

	err := database.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.repo.UpdateStatusWithTx(ctx, tx, order); err != nil {
			return err
		}

		items, err := s.repo.ListItems(ctx, order.ID)
		if err != nil {
			return err
		}
		for i := range items {
			if err := s.stock.RestoreStockWithTx(ctx, tx, items[i].ProductID, items[i].Quantity); err != nil {
				return err
			}
		}

		return s.coupons.ReleaseFromOrder(ctx, tx, order.ID)
	})
	if err != nil {
		return nil, err
	}

	s.enqueueStatusEmail(order)

	return &model.CancelResponse{
		OrderID:            order.ID.String(),
		ConfirmationNumber: order.ConfirmationNumber,
		Status:             order.Status,
		Note:               model.CancellationNote(order),
	}, nil
}

// -------------------------------------------------------------------
// ADMIN
// -------------------------------------------------------------------

func (s *orderService) GetOrderAdmin(ctx context.Context, orderID uuid.UUID) (*model.OrderDetail, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, order)
}

func (s *orderService) ListOrdersAdmin(ctx context.Context, filter *model.ListOrdersFilter) ([]*model.Order, int, error) {
	filter.Normalize()
	return s.repo.ListAdmin(ctx, filter)
}

// UpdateStatus applies one transition on behalf of the given actor.
func (s *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, actor model.Actor, req *model.UpdateStatusRequest) (*model.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	target := model.OrderStatus(req.Status)
	hasTracking := order.HasTracking() || (req.TrackingNumber != nil && *req.TrackingNumber != "")

	if err := model.ValidateTransition(order.Status, target, actor, hasTracking); err != nil {
		return nil, err
	}

	now := time.Now()
	order.Status = target
	if req.TrackingNumber != nil && *req.TrackingNumber != "" {
		order.TrackingNumber = req.TrackingNumber
	}

	switch target {
	case model.StatusShipped:
		order.ShippedAt = &now
		if req.EstimatedDeliveryDate != nil {
			order.EstimatedDeliveryDate = req.EstimatedDeliveryDate
		} else if order.EstimatedDeliveryDate == nil {
			est := model.EstimateDeliveryDate(now, order.ShippingMethod, order.ShippingAddress.State)
			order.EstimatedDeliveryDate = &est
		}
	case model.StatusDelivered:
		order.DeliveredAt = &now
	case model.StatusCancelled:
		order.CancelledAt = &now
	}

	if err := s.repo.UpdateStatus(ctx, order); err != nil {
		return nil, err
	}

	s.enqueueStatusEmail(order)

	return order, nil
}

// ConfirmOrder moves pending to processing as the system actor.
func (s *orderService) ConfirmOrder(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status == model.StatusProcessing {
		return nil
	}
	if err := model.ValidateTransition(order.Status, model.StatusProcessing, model.ActorSystem, order.HasTracking()); err != nil {
		return err
	}

	order.Status = model.StatusProcessing
	if err := s.repo.UpdateStatus(ctx, order); err != nil {
		return err
	}

	s.enqueueStatusEmail(order)
	return nil
}

// AutoDeliverOverdue sweeps shipped orders whose estimated delivery
// date has passed and marks them delivered as the system actor.
func (s *orderService) AutoDeliverOverdue(ctx context.Context) (int, error) {
	orders, err := s.repo.ListShippedPastEstimate(ctx, time.Now(), autoDeliverBatchSize)
	if err != nil {
		return 0, err
	}

	delivered := 0
	for _, order := range orders {
		if err := model.ValidateTransition(order.Status, model.StatusDelivered, model.ActorSystem, order.HasTracking()); err != nil {
			continue
		}
		now := time.Now()
		order.Status = model.StatusDelivered
		order.DeliveredAt = &now

		if err := s.repo.UpdateStatus(ctx, order); err != nil {
			// A concurrent admin update is fine; skip and move on.
			if errors.Is(err, model.ErrOrderConflict) {
				continue
			}
			return delivered, err
		}
		delivered++
		s.enqueueStatusEmail(order)
	}

	if delivered > 0 {
		logger.Info("auto-delivered overdue orders", map[string]interface{}{"count": delivered})
	}
	return delivered, nil
}

// -------------------------------------------------------------------
// NOTIFICATIONS
// -------------------------------------------------------------------

// enqueueStatusEmail is fire-and-forget: a failed enqueue is logged
// and swallowed, never rolling back the status change.
func (s *orderService) enqueueStatusEmail(order *model.Order) {
	if s.asynq == nil {
		return
	}

	payload := shared.OrderStatusEmailPayload{
		ToAddress:          order.Email,
		OrderID:            order.ID.String(),
		ConfirmationNumber: order.ConfirmationNumber,
		NewStatus:          order.Status.String(),
	}
	if order.TrackingNumber != nil {
		payload.TrackingNumber = *order.TrackingNumber
	}

	task, err := utils.MarshalTask(shared.TypeSendOrderStatusEmail, payload)
	if err != nil {
		logger.Error("failed to build status email task", err)
		return
	}
	if _, err := s.asynq.Enqueue(task, asynq.Queue(shared.QueueDefault), asynq.MaxRetry(5)); err != nil {
		logger.Error("failed to enqueue status email", err)
	}
}

func (s *orderService) enqueueConfirmationEmail(order *model.Order) {
	if s.asynq == nil {
		return
	}

	payload := shared.OrderConfirmationEmailPayload{
		ToAddress:          order.Email,
		OrderID:            order.ID.String(),
		ConfirmationNumber: order.ConfirmationNumber,
		Total:              order.Total.StringFixed(2),
	}
	task, err := utils.MarshalTask(shared.TypeSendOrderConfirmation, payload)
	if err != nil {
		logger.Error("failed to build confirmation email task", err)
		return
	}
	if _, err := s.asynq.Enqueue(task, asynq.Queue(shared.QueueCritical), asynq.MaxRetry(5)); err != nil {
		logger.Error("failed to enqueue confirmation email", err)
	}
}

// -------------------------------------------------------------------
// HELPERS
// -------------------------------------------------------------------

func (s *orderService) withItems(ctx context.Context, order *model.Order) (*model.OrderDetail, error) {
	items, err := s.repo.ListItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return &model.OrderDetail{Order: *order, Items: items}, nil
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
