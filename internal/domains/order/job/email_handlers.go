package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"jewelstore-backend/internal/infrastructure/email"
	"jewelstore-backend/internal/shared"
	"jewelstore-backend/pkg/logger"
)

// EmailHandler consumes the order email queues. Delivery failures are
// returned so asynq retries with backoff.
type EmailHandler struct {
	email *email.EmailService
}

func NewEmailHandler(emailService *email.EmailService) *EmailHandler {
	return &EmailHandler{email: emailService}
}

// HandleOrderConfirmation sends the post-checkout receipt.
func (h *EmailHandler) HandleOrderConfirmation(ctx context.Context, t *asynq.Task) error {
	var payload shared.OrderConfirmationEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	if err := h.email.SendOrderConfirmation(payload.ToAddress, payload.ConfirmationNumber, payload.Total); err != nil {
		return err
	}

	logger.Info("order confirmation sent", map[string]interface{}{
		"order_id": payload.OrderID,
	})
	return nil
}

// HandleOrderStatus sends a lifecycle notification.
func (h *EmailHandler) HandleOrderStatus(ctx context.Context, t *asynq.Task) error {
	var payload shared.OrderStatusEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	if err := h.email.SendOrderStatusUpdate(payload.ToAddress, payload.ConfirmationNumber, payload.NewStatus, payload.TrackingNumber); err != nil {
		return err
	}

	logger.Info("order status email sent", map[string]interface{}{
		"order_id": payload.OrderID,
		"status":   payload.NewStatus,
	})
	return nil
}
