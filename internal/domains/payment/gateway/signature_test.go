package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(payload, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyPaymentSignature(t *testing.T) {
	secret := "test_key_secret"
	orderID := "order_MhN4R2b3k9"
	paymentID := "pay_MhN5X8w1q2"

	good := sign(orderID+"|"+paymentID, secret)

	assert.True(t, VerifyPaymentSignature(orderID, paymentID, good, secret))
	assert.False(t, VerifyPaymentSignature(orderID, paymentID, good, "wrong_secret"))
	assert.False(t, VerifyPaymentSignature(orderID, "pay_other", good, secret))
	assert.False(t, VerifyPaymentSignature(orderID, paymentID, "deadbeef", secret))
	assert.False(t, VerifyPaymentSignature(orderID, paymentID, "", secret))
}

func TestVerifyWebhookSignature(t *testing.T) {
	secret := "webhook_secret"
	body := []byte(`{"event":"payment.captured","payload":{}}`)

	good := sign(string(body), secret)

	assert.True(t, VerifyWebhookSignature(body, good, secret))
	assert.False(t, VerifyWebhookSignature([]byte(`{"event":"tampered"}`), good, secret))
	assert.False(t, VerifyWebhookSignature(body, good, "other_secret"))
}
