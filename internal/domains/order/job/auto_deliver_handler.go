package job

import (
	"context"

	"github.com/hibiken/asynq"

	"jewelstore-backend/internal/domains/order/service"
	"jewelstore-backend/pkg/logger"
)

// AutoDeliverHandler runs the scheduled sweep that marks shipped
// orders delivered once their estimated delivery date has passed.
type AutoDeliverHandler struct {
	orders service.ServiceInterface
}

func NewAutoDeliverHandler(orders service.ServiceInterface) *AutoDeliverHandler {
	return &AutoDeliverHandler{orders: orders}
}

func (h *AutoDeliverHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	delivered, err := h.orders.AutoDeliverOverdue(ctx)
	if err != nil {
		logger.Error("auto-deliver sweep failed", err)
		return err
	}

	logger.Debug("auto-deliver sweep finished", map[string]interface{}{
		"delivered": delivered,
	})
	return nil
}
