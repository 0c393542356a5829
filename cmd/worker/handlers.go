package main

import (
	"github.com/hibiken/asynq"

	cartJob "jewelstore-backend/internal/domains/cart/job"
	orderJob "jewelstore-backend/internal/domains/order/job"
	productJob "jewelstore-backend/internal/domains/product/job"
	"jewelstore-backend/internal/shared"
	"jewelstore-backend/pkg/container"
)

// handlerRegistry owns every task handler the worker serves.
type handlerRegistry struct {
	email       *orderJob.EmailHandler
	autoDeliver *orderJob.AutoDeliverHandler
	cartCleanup *cartJob.CleanupHandler
	images      *productJob.ImageHandler
}

func newHandlerRegistry(c *container.Container) *handlerRegistry {
	return &handlerRegistry{
		email:       orderJob.NewEmailHandler(c.EmailService),
		autoDeliver: orderJob.NewAutoDeliverHandler(c.OrderService),
		cartCleanup: cartJob.NewCleanupHandler(c.CartService),
		images:      productJob.NewImageHandler(c.ProductRepo, c.Storage, c.ImageProcessor),
	}
}

func (r *handlerRegistry) register(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeSendOrderConfirmation, r.email.HandleOrderConfirmation)
	mux.HandleFunc(shared.TypeSendOrderStatusEmail, r.email.HandleOrderStatus)
	mux.Handle(shared.TypeAutoDeliverOrders, r.autoDeliver)
	mux.Handle(shared.TypeCleanupExpiredCarts, r.cartCleanup)
	mux.HandleFunc(shared.TypeProcessProductImage, r.images.HandleProcessImage)
	mux.HandleFunc(shared.TypeDeleteProductImages, r.images.HandleDeleteImages)
}
