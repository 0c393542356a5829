package shared

// Asynq task type names and queue names shared between the API (producer)
// and the worker (consumer).
const (
	TypeSendOrderStatusEmail  = "email:order_status"
	TypeSendOrderConfirmation = "email:order_confirmation"
	TypeAutoDeliverOrders     = "order:auto_deliver"
	TypeCleanupExpiredCarts   = "cart:cleanup_expired"
	TypeProcessProductImage   = "product:process_image"
	TypeDeleteProductImages   = "product:delete_images"

	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// OrderStatusEmailPayload carries the data for a status-change notification.
// Failures sending this email never roll back the status change.
type OrderStatusEmailPayload struct {
	ToAddress          string `json:"toAddress"`
	OrderID            string `json:"orderId"`
	ConfirmationNumber string `json:"confirmationNumber"`
	NewStatus          string `json:"newStatus"`
	TrackingNumber     string `json:"trackingNumber,omitempty"`
}

// OrderConfirmationEmailPayload carries the data for a checkout confirmation.
type OrderConfirmationEmailPayload struct {
	ToAddress          string `json:"toAddress"`
	OrderID            string `json:"orderId"`
	ConfirmationNumber string `json:"confirmationNumber"`
	Total              string `json:"total"`
}

// ProductImagePayload identifies a product image to process or delete.
type ProductImagePayload struct {
	ProductID string `json:"productId"`
	ObjectKey string `json:"objectKey"`
}
