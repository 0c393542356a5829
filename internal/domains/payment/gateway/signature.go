package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifyPaymentSignature checks the checkout callback signature. The
// gateway signs "<gateway_order_id>|<gateway_payment_id>" with the key
// secret using HMAC-SHA256, hex encoded.
func VerifyPaymentSignature(gatewayOrderID, gatewayPaymentID, signature, keySecret string) bool {
	payload := gatewayOrderID + "|" + gatewayPaymentID
	return verifyHMAC([]byte(payload), signature, keySecret)
}

// VerifyWebhookSignature checks the X-Razorpay-Signature header against
// the raw request body, signed with the webhook secret.
func VerifyWebhookSignature(body []byte, signature, webhookSecret string) bool {
	return verifyHMAC(body, signature, webhookSecret)
}

func verifyHMAC(payload []byte, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
