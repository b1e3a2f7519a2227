// Package razorpay is a thin client for the Razorpay orders API.
package razorpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"uhs-recruit/pkg/config"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

var (
	ErrNotConfigured = errors.New("razorpay: key id / secret not configured")
	ErrInvalidAmount = errors.New("razorpay: amount must be positive")
)

type OrderRequest struct {
	Amount   int64             `json:"amount"` // paise
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt,omitempty"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type Order struct {
	ID         string `json:"id"`
	Entity     string `json:"entity"`
	Amount     int64  `json:"amount"`
	AmountPaid int64  `json:"amount_paid"`
	AmountDue  int64  `json:"amount_due"`
	Currency   string `json:"currency"`
	Receipt    string `json:"receipt"`
	Status     string `json:"status"`
	CreatedAt  int64  `json:"created_at"`
}

type apiError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

type Client struct {
	keyID     string
	keySecret string
	http      *resty.Client
}

func New(cfg config.RazorpayConfig) *Client {
	return &Client{
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		http: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetBasicAuth(cfg.KeyID, cfg.KeySecret).
			SetTimeout(15 * time.Second).
			SetHeader("Content-Type", "application/json"),
	}
}

// KeyID is the public key the checkout widget needs.
func (c *Client) KeyID() string {
	return c.keyID
}

func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	if c.keyID == "" || c.keySecret == "" {
		return nil, ErrNotConfigured
	}
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var order Order
	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&order).
		SetError(&apiErr).
		Post("/v1/orders")
	if err != nil {
		return nil, fmt.Errorf("razorpay: create order: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("razorpay: create order: %s: %s", resp.Status(), apiErr.Error.Description)
	}
	return &order, nil
}

// VerifySignature checks hex(HMAC-SHA256(orderID|paymentID, keySecret)) in constant time.
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	if c.keySecret == "" {
		return false
	}
	expected, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hmac.Equal(mac.Sum(nil), expected)
}

// Sign produces the signature Razorpay would send for the pair.
func (c *Client) Sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// ToSubunits converts a major-unit amount ("499.99" rupees) to paise, rounding half away from zero.
func ToSubunits(amount decimal.Decimal) (int64, error) {
	paise := amount.Mul(decimal.NewFromInt(100)).Round(0)
	if !paise.IsPositive() {
		return 0, ErrInvalidAmount
	}
	return paise.IntPart(), nil
}
