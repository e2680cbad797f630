package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Client is the outbound payment gateway interface. It is injected into the
// payment service so the gateway handle has an explicit lifecycle rather
// than living in process-global state.
type Client interface {
	// GenerateReference returns a globally unique reference for one payment
	// attempt.
	GenerateReference() string
	InitializeTransaction(ctx context.Context, req InitializeRequest) (*InitializeResponse, error)
	VerifyTransaction(ctx context.Context, reference string) (*Transaction, error)
}

// InitializeRequest starts a hosted checkout for one payment attempt.
// Amount is in whole Naira; the client converts to kobo on the wire.
type InitializeRequest struct {
	Email     string
	Amount    int64
	Reference string
	Currency  string
}

// InitializeResponse carries the hosted checkout handle.
type InitializeResponse struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// Transaction is the gateway's view of a payment attempt.
type Transaction struct {
	Reference string
	Status    string
	Amount    int64
	PaidAt    string
}

// PaystackClient talks to the Paystack REST API.
type PaystackClient struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

// NewPaystackClient creates a Paystack gateway client.
func NewPaystackClient(baseURL, secretKey string) *PaystackClient {
	return &PaystackClient{
		baseURL:   baseURL,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// GenerateReference returns a fresh payment reference.
func (c *PaystackClient) GenerateReference() string {
	return "HSTL-" + uuid.NewString()
}

type apiEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// InitializeTransaction opens a hosted checkout session.
func (c *PaystackClient) InitializeTransaction(ctx context.Context, req InitializeRequest) (*InitializeResponse, error) {
	payload := map[string]any{
		"email":     req.Email,
		"amount":    req.Amount * 100, // kobo
		"reference": req.Reference,
		"currency":  req.Currency,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	env, err := c.do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("initialize transaction: %w", err)
	}

	var data struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("decode initialize response: %w", err)
	}

	return &InitializeResponse{
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
		Reference:        data.Reference,
	}, nil
}

// VerifyTransaction fetches the gateway-side state of a payment attempt.
func (c *PaystackClient) VerifyTransaction(ctx context.Context, reference string) (*Transaction, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/transaction/verify/"+reference, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)

	env, err := c.do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("verify transaction %s: %w", reference, err)
	}

	var data struct {
		Reference string `json:"reference"`
		Status    string `json:"status"`
		Amount    int64  `json:"amount"`
		PaidAt    string `json:"paid_at"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("decode verify response: %w", err)
	}

	return &Transaction{
		Reference: data.Reference,
		Status:    data.Status,
		Amount:    data.Amount / 100, // back to Naira
		PaidAt:    data.PaidAt,
	}, nil
}

func (c *PaystackClient) do(req *http.Request) (*apiEnvelope, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode >= 400 || !env.Status {
		return nil, fmt.Errorf("gateway error (%d): %s", resp.StatusCode, env.Message)
	}
	return &env, nil
}

// VerifySignature checks a webhook body against the x-paystack-signature
// header (HMAC-SHA512 of the raw body keyed with the secret).
func VerifySignature(payload []byte, signature, secret string) bool {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
