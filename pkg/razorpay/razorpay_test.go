package razorpay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"uhs-recruit/pkg/config"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "rzp_test", user)
		assert.Equal(t, "s3cret", pass)

		var body OrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(49900), body.Amount)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"order_1","entity":"order","amount":49900,"currency":"INR","receipt":"r1","status":"created"}`))
	}))
	defer srv.Close()

	c := New(config.RazorpayConfig{KeyID: "rzp_test", KeySecret: "s3cret", BaseURL: srv.URL})
	order, err := c.CreateOrder(context.Background(), OrderRequest{Amount: 49900, Currency: "INR", Receipt: "r1"})
	require.NoError(t, err)
	assert.Equal(t, "order_1", order.ID)
	assert.Equal(t, "created", order.Status)
}

func TestClient_CreateOrderSurfacesGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"amount too small"}}`))
	}))
	defer srv.Close()

	c := New(config.RazorpayConfig{KeyID: "k", KeySecret: "s", BaseURL: srv.URL})
	_, err := c.CreateOrder(context.Background(), OrderRequest{Amount: 1, Currency: "INR"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount too small")
}

func TestClient_NotConfigured(t *testing.T) {
	_, err := New(config.RazorpayConfig{}).CreateOrder(context.Background(), OrderRequest{Amount: 100})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestVerifySignature(t *testing.T) {
	c := New(config.RazorpayConfig{KeyID: "k", KeySecret: "s3cret"})
	sig := c.Sign("order_1", "pay_1")

	assert.True(t, c.VerifySignature("order_1", "pay_1", sig))
	assert.False(t, c.VerifySignature("order_1", "pay_2", sig))
	assert.False(t, c.VerifySignature("order_1", "pay_1", "zz"))
}

func TestToSubunits(t *testing.T) {
	paise, err := ToSubunits(decimal.RequireFromString("499.995"))
	require.NoError(t, err)
	assert.Equal(t, int64(50000), paise)

	paise, err = ToSubunits(decimal.RequireFromString("1"))
	require.NoError(t, err)
	assert.Equal(t, int64(100), paise)

	_, err = ToSubunits(decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}
