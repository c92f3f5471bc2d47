package payments

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrGatewayUnavailable is returned on network failures, timeouts and 5xx
	// responses from the payment provider.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	// ErrInvalidReference is returned when the provider does not recognize the
	// transaction reference.
	ErrInvalidReference = errors.New("invalid payment reference")
	// ErrInvalidAmount is returned for zero or negative charge amounts.
	ErrInvalidAmount = errors.New("amount must be greater than zero")
)

// InitResult is the outcome of opening a transaction with the provider
type InitResult struct {
	AuthorizationURL string `json:"authorizationUrl"`
	AccessCode       string `json:"accessCode"`
	Reference        string `json:"reference"`
}

// VerifyResult is the outcome of a verify-by-reference call. Success is true
// only when the provider reports the transaction status as "success".
type VerifyResult struct {
	Success       bool   `json:"success"`
	Status        string `json:"status"`
	AmountKobo    int64  `json:"amountKobo"`
	Currency      string `json:"currency"`
	CustomerEmail string `json:"customerEmail"`
	Raw           string `json:"-"`
}

// Verifier is the part of the gateway the reconciliation flow depends on.
// Only a verify call can establish that a payment succeeded; a redirect
// carrying a reference is a hint, never proof.
type Verifier interface {
	Verify(reference string) (*VerifyResult, error)
}

// Client talks to the Paystack REST API
type Client struct {
	http *resty.Client
}

// NewClient builds a gateway client. Every call is bounded by timeout.
func NewClient(baseURL, secretKey string, timeout time.Duration) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetAuthToken(secretKey).
		SetHeader("Content-Type", "application/json")
	return &Client{http: http}
}

type initializeRequest struct {
	Email       string            `json:"email"`
	Amount      int64             `json:"amount"` // kobo
	CallbackURL string            `json:"callback_url,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type initializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status   string `json:"status"` // success, failed, abandoned
		Amount   int64  `json:"amount"` // kobo
		Currency string `json:"currency"`
		Customer struct {
			Email string `json:"email"`
		} `json:"customer"`
	} `json:"data"`
}

// Initialize asks the provider to open a transaction. amountKobo must already
// be converted to the minor currency unit (naira x 100).
func (c *Client) Initialize(email string, amountKobo int64, callbackURL string, metadata map[string]string) (*InitResult, error) {
	if amountKobo <= 0 {
		return nil, ErrInvalidAmount
	}

	resp, err := c.http.R().
		SetBody(initializeRequest{
			Email:       email,
			Amount:      amountKobo,
			CallbackURL: callbackURL,
			Metadata:    metadata,
		}).
		Post("/transaction/initialize")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	if resp.StatusCode() >= 500 {
		return nil, fmt.Errorf("%w: provider returned %d", ErrGatewayUnavailable, resp.StatusCode())
	}

	var body initializeResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("%w: unreadable response", ErrGatewayUnavailable)
	}
	if resp.StatusCode() != 200 || !body.Status {
		return nil, fmt.Errorf("initialize rejected: %s", body.Message)
	}

	return &InitResult{
		AuthorizationURL: body.Data.AuthorizationURL,
		AccessCode:       body.Data.AccessCode,
		Reference:        body.Data.Reference,
	}, nil
}

// Verify fetches the provider-side status of a transaction by reference.
func (c *Client) Verify(reference string) (*VerifyResult, error) {
	if reference == "" {
		return nil, ErrInvalidReference
	}

	resp, err := c.http.R().Get("/transaction/verify/" + reference)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	if resp.StatusCode() >= 500 {
		return nil, fmt.Errorf("%w: provider returned %d", ErrGatewayUnavailable, resp.StatusCode())
	}
	if resp.StatusCode() == 404 {
		return nil, ErrInvalidReference
	}

	var body verifyResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("%w: unreadable response", ErrGatewayUnavailable)
	}
	if !body.Status {
		// Paystack reports unknown references with status=false
		return nil, ErrInvalidReference
	}

	return &VerifyResult{
		Success:       body.Data.Status == "success",
		Status:        body.Data.Status,
		AmountKobo:    body.Data.Amount,
		Currency:      body.Data.Currency,
		CustomerEmail: body.Data.Customer.Email,
		Raw:           string(resp.Body()),
	}, nil
}

// ToKobo converts a major-unit naira amount to kobo
func ToKobo(naira uint) int64 {
	return int64(naira) * 100
}
