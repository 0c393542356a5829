package job

import (
	"context"

	"github.com/hibiken/asynq"

	"jewelstore-backend/internal/domains/cart/service"
	"jewelstore-backend/pkg/logger"
)

// CleanupHandler runs the scheduled sweep that drops expired carts.
type CleanupHandler struct {
	carts service.ServiceInterface
}

func NewCleanupHandler(carts service.ServiceInterface) *CleanupHandler {
	return &CleanupHandler{carts: carts}
}

func (h *CleanupHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	removed, err := h.carts.CleanupExpired(ctx)
	if err != nil {
		logger.Error("cart cleanup sweep failed", err)
		return err
	}

	logger.Debug("cart cleanup sweep finished", map[string]interface{}{
		"removed": removed,
	})
	return nil
}
