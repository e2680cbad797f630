package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReference(t *testing.T) {
	c := NewPaystackClient("https://api.paystack.co", "sk_test")

	a := c.GenerateReference()
	b := c.GenerateReference()

	assert.True(t, strings.HasPrefix(a, "HSTL-"))
	assert.NotEqual(t, a, b)
}

func TestInitializeTransaction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		// 50000 Naira goes over the wire as kobo
		assert.Equal(t, float64(5000000), body["amount"])
		assert.Equal(t, "NGN", body["currency"])

		json.NewEncoder(w).Encode(map[string]any{
			"status":  true,
			"message": "Authorization URL created",
			"data": map[string]any{
				"authorization_url": "https://checkout.paystack.com/abc123",
				"access_code":       "abc123",
				"reference":         body["reference"],
			},
		})
	}))
	defer server.Close()

	c := NewPaystackClient(server.URL, "sk_test")
	resp, err := c.InitializeTransaction(context.Background(), InitializeRequest{
		Email:     "tenant@example.com",
		Amount:    50000,
		Reference: "HSTL-ref",
		Currency:  "NGN",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://checkout.paystack.com/abc123", resp.AuthorizationURL)
	assert.Equal(t, "HSTL-ref", resp.Reference)
}

func TestVerifyTransaction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/verify/HSTL-ref", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]any{
			"status":  true,
			"message": "Verification successful",
			"data": map[string]any{
				"reference": "HSTL-ref",
				"status":    "success",
				"amount":    5000000,
				"paid_at":   "2025-06-01T10:00:00.000Z",
			},
		})
	}))
	defer server.Close()

	c := NewPaystackClient(server.URL, "sk_test")
	tx, err := c.VerifyTransaction(context.Background(), "HSTL-ref")
	require.NoError(t, err)

	assert.Equal(t, "success", tx.Status)
	assert.Equal(t, int64(50000), tx.Amount)
}

func TestVerifyTransaction_GatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{
			"status":  false,
			"message": "Transaction reference not found",
		})
	}))
	defer server.Close()

	c := NewPaystackClient(server.URL, "sk_test")
	_, err := c.VerifyTransaction(context.Background(), "HSTL-missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Transaction reference not found")
}

func TestVerifySignature(t *testing.T) {
	secret := "sk_test_secret"
	payload := []byte(`{"event":"charge.success","data":{"reference":"HSTL-ref"}}`)

	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(payload)
	valid := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, VerifySignature(payload, valid, secret))
	assert.False(t, VerifySignature(payload, valid, "other_secret"))
	assert.False(t, VerifySignature(payload, "deadbeef", secret))
	assert.False(t, VerifySignature([]byte("tampered"), valid, secret))
}
