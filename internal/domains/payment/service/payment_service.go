package service

import (
	"context"

	"jewelstore-backend/internal/config"
	ordermodel "jewelstore-backend/internal/domains/order/model"
	orderrepo "jewelstore-backend/internal/domains/order/repository"
	orderservice "jewelstore-backend/internal/domains/order/service"
	"jewelstore-backend/internal/domains/payment/gateway"
	"jewelstore-backend/internal/domains/payment/model"
	"jewelstore-backend/pkg/logger"
)

// ServiceInterface verifies online payments and consumes gateway
// webhooks.
type ServiceInterface interface {
	// VerifyPayment handles the storefront callback after the gateway
	// checkout completes. A valid signature marks the order paid and
	// confirms it.
	VerifyPayment(ctx context.Context, req *model.VerifyPaymentRequest) (*ordermodel.Order, error)

	// HandleWebhook consumes a gateway event. The raw body and the
	// signature header must be passed through untouched.
	HandleWebhook(ctx context.Context, body []byte, signature string) error
}

type paymentService struct {
	cfg       config.RazorpayConfig
	orders    orderrepo.OrderRepository
	lifecycle orderservice.ServiceInterface
}

// NewPaymentService wires the payment domain.
func NewPaymentService(
	cfg config.RazorpayConfig,
	orders orderrepo.OrderRepository,
	lifecycle orderservice.ServiceInterface,
) ServiceInterface {
	return &paymentService{cfg: cfg, orders: orders, lifecycle: lifecycle}
}

func (s *paymentService) VerifyPayment(ctx context.Context, req *model.VerifyPaymentRequest) (*ordermodel.Order, error) {
	if !gateway.VerifyPaymentSignature(req.GatewayOrderID, req.GatewayPaymentID, req.Signature, s.cfg.KeySecret) {
		logger.Warn("payment signature rejected", map[string]interface{}{
			"gateway_order_id": req.GatewayOrderID,
		})
		return nil, model.ErrInvalidSignature
	}

	order, err := s.orders.FindByGatewayOrderID(ctx, req.GatewayOrderID)
	if err != nil {
		return nil, model.ErrOrderNotFound
	}

	if err := s.markPaid(ctx, order, req.GatewayPaymentID); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *paymentService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	if !gateway.VerifyWebhookSignature(body, signature, s.cfg.WebhookSecret) {
		return model.ErrInvalidSignature
	}

	event, err := model.ParseWebhookEvent(body)
	if err != nil {
		return err
	}

	switch event.Event {
	case model.EventPaymentCaptured:
		entity := event.Payload.Payment.Entity
		order, err := s.orders.FindByGatewayOrderID(ctx, entity.OrderID)
		if err != nil {
			return model.ErrOrderNotFound
		}
		return s.markPaid(ctx, order, entity.ID)

	case model.EventPaymentFailed:
		entity := event.Payload.Payment.Entity
		order, err := s.orders.FindByGatewayOrderID(ctx, entity.OrderID)
		if err != nil {
			return model.ErrOrderNotFound
		}
		if order.PaymentStatus == ordermodel.PaymentStatusPaid {
			// Stale failure arriving after a capture. Ignore it.
			return nil
		}
		return s.orders.UpdatePayment(ctx, order.ID, ordermodel.PaymentStatusFailed, &entity.ID)

	default:
		// Unhandled events are acknowledged so the gateway stops
		// retrying them.
		logger.Debug("ignoring gateway event", map[string]interface{}{
			"event": event.Event,
		})
		return nil
	}
}

// markPaid records the capture and confirms the order. Both the verify
// callback and the webhook land here, so a duplicate is a no-op.
func (s *paymentService) markPaid(ctx context.Context, order *ordermodel.Order, gatewayPaymentID string) error {
	if order.PaymentStatus == ordermodel.PaymentStatusPaid {
		return nil
	}

	if err := s.orders.UpdatePayment(ctx, order.ID, ordermodel.PaymentStatusPaid, &gatewayPaymentID); err != nil {
		return err
	}

	if err := s.lifecycle.ConfirmOrder(ctx, order.ID); err != nil {
		return err
	}

	logger.Info("payment captured", map[string]interface{}{
		"order_id":           order.ID,
		"gateway_payment_id": gatewayPaymentID,
	})
	return nil
}
