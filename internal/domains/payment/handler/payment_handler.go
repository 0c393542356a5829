package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"jewelstore-backend/internal/domains/payment/model"
	"jewelstore-backend/internal/domains/payment/service"
	"jewelstore-backend/internal/shared/response"
)

// Webhook bodies are small; anything bigger is not from the gateway.
const maxWebhookBytes = 1 << 20

// PaymentHandler serves the gateway callback and webhook endpoints.
type PaymentHandler struct {
	service service.ServiceInterface
}

func NewPaymentHandler(paymentService service.ServiceInterface) *PaymentHandler {
	return &PaymentHandler{service: paymentService}
}

// VerifyPayment handles the storefront callback after gateway checkout.
//
// POST /v1/payments/verify
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var req model.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeInvalidPayment, "validation failed", err)
		return
	}

	order, err := h.service.VerifyPayment(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"order_id":            order.ID,
		"confirmation_number": order.ConfirmationNumber,
		"payment_status":      order.PaymentStatus,
	})
}

// Webhook consumes gateway events. The body must reach the verifier
// byte for byte, so it is read raw rather than bound.
//
// POST /v1/payments/webhook
func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBytes))
	if err != nil {
		response.BadRequest(c, "cannot read webhook body")
		return
	}

	signature := c.GetHeader("X-Razorpay-Signature")
	if err := h.service.HandleWebhook(c.Request.Context(), body, signature); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"received": true})
}

func (h *PaymentHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidSignature):
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeInvalidSignature, "payment signature verification failed")
	case errors.Is(err, model.ErrOrderNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeOrderNotFound, "no order matches this payment")
	default:
		response.InternalServerError(c, "payment processing failed")
	}
}
