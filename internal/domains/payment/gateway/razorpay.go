package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"jewelstore-backend/internal/config"
)

// RazorpayClient talks to the Razorpay Orders API. It implements the
// gateway interface the order domain checks out against.
type RazorpayClient struct {
	cfg        config.RazorpayConfig
	httpClient *http.Client
}

func NewRazorpayClient(cfg config.RazorpayConfig) *RazorpayClient {
	return &RazorpayClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// KeyID is the public key the storefront embeds in its checkout widget.
func (c *RazorpayClient) KeyID() string {
	return c.cfg.KeyID
}

// CreateGatewayOrder registers the order with the gateway before any
// local rows are written, so an unreachable gateway aborts checkout
// cleanly. Amount is rupees; the gateway wants paise.
func (c *RazorpayClient) CreateGatewayOrder(ctx context.Context, receipt string, amount decimal.Decimal) (string, error) {
	body, err := json.Marshal(map[string]interface{}{
		"amount":   amount.Mul(decimal.NewFromInt(100)).IntPart(),
		"currency": "INR",
		"receipt":  receipt,
	})
	if err != nil {
		return "", fmt.Errorf("marshal gateway order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cfg.KeyID, c.cfg.KeySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read gateway response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gateway returned %d: %s", resp.StatusCode, respBody)
	}

	var gatewayOrder struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &gatewayOrder); err != nil {
		return "", fmt.Errorf("decode gateway response: %w", err)
	}
	if gatewayOrder.ID == "" {
		return "", fmt.Errorf("gateway response missing order id")
	}
	return gatewayOrder.ID, nil
}
