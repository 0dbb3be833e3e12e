package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"eventhub/internal/data/entity"
	"eventhub/pkg/utils"

	"go.uber.org/zap"
)

const defaultTimeout = 10 * time.Second

// restClient talks to a Razorpay-style REST API with basic auth. Every
// call carries a deadline so a stalled provider cannot hang the caller.
type restClient struct {
	baseURL string
	keyID   string
	secret  string
	timeout time.Duration
	http    *http.Client
	log     *zap.Logger
}

func NewClient(config utils.GatewayConfig, log *zap.Logger) Client {
	timeout := defaultTimeout
	if config.TimeoutSeconds > 0 {
		timeout = time.Duration(config.TimeoutSeconds) * time.Second
	}

	return &restClient{
		baseURL: config.BaseURL,
		keyID:   config.KeyID,
		secret:  config.Secret,
		timeout: timeout,
		http:    &http.Client{},
		log:     log.With(zap.String("component", "gateway")),
	}
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type refundResponse struct {
	ID        string `json:"id"`
	PaymentID string `json:"payment_id"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
}

type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func (c *restClient) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error) {
	body := map[string]any{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}

	var resp orderResponse
	if err := c.post(ctx, "/v1/orders", body, &resp); err != nil {
		return nil, err
	}

	c.log.Info("Gateway order created",
		zap.String("order_id", resp.ID),
		zap.Int64("amount", resp.Amount),
		zap.String("currency", resp.Currency),
	)

	return &Order{
		ID:       resp.ID,
		Amount:   resp.Amount,
		Currency: resp.Currency,
		Receipt:  resp.Receipt,
	}, nil
}

func (c *restClient) Refund(ctx context.Context, providerPaymentID string, amount int64) (*RefundResult, error) {
	body := map[string]any{}
	if amount > 0 {
		body["amount"] = amount
	}

	path := fmt.Sprintf("/v1/payments/%s/refund", providerPaymentID)

	var resp refundResponse
	if err := c.post(ctx, path, body, &resp); err != nil {
		return nil, err
	}

	c.log.Info("Gateway refund issued",
		zap.String("refund_id", resp.ID),
		zap.String("provider_payment_id", providerPaymentID),
	)

	return &RefundResult{
		ID:        resp.ID,
		PaymentID: resp.PaymentID,
		Amount:    resp.Amount,
		Status:    resp.Status,
	}, nil
}

func (c *restClient) post(ctx context.Context, path string, body any, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal gateway request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build gateway request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.secret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			c.log.Warn("Gateway call timed out", zap.String("path", path))
			return fmt.Errorf("gateway call %s: %w", path, entity.ErrGatewayTimeout)
		}
		return fmt.Errorf("gateway call %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)

		c.log.Warn("Gateway rejected request",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("code", apiErr.Error.Code),
			zap.String("description", apiErr.Error.Description),
		)

		if apiErr.Error.Description != "" {
			return fmt.Errorf("gateway call %s (%d %s): %w",
				path, resp.StatusCode, apiErr.Error.Description, entity.ErrGateway)
		}
		return fmt.Errorf("gateway call %s (status %d): %w", path, resp.StatusCode, entity.ErrGateway)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode gateway response for %s: %w", path, err)
	}

	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Timeout()
}
