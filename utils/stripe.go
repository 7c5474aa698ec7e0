package utils

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// CheckoutSession mirrors the fields of a hosted checkout session that
// the payment workflow consumes.
type CheckoutSession struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	PaymentStatus string            `json:"payment_status"`
	AmountTotal   int64             `json:"amount_total"` // in cents
	Metadata      map[string]string `json:"metadata"`
}

// CreateCheckoutParams carries everything needed to open a checkout session
type CreateCheckoutParams struct {
	ProductName string
	Description string
	UnitAmount  int64 // in cents
	Currency    string
	SuccessURL  string
	CancelURL   string
	Reference   string
	Metadata    map[string]string
}

// CheckoutClient is the payment provider boundary. The payment
// controller only talks to this interface so tests can stub it.
type CheckoutClient interface {
	CreateSession(params CreateCheckoutParams) (*CheckoutSession, error)
	RetrieveSession(sessionID string) (*CheckoutSession, error)
}

// StripeClient talks to the Stripe REST API
type StripeClient struct {
	client *resty.Client
}

// NewStripeClient builds a client authenticated with the secret key
func NewStripeClient(secretKey string, timeout time.Duration) *StripeClient {
	client := resty.New().
		SetBaseURL("https://api.stripe.com/v1").
		SetTimeout(timeout).
		SetBasicAuth(secretKey, "")

	return &StripeClient{client: client}
}

// CreateSession opens a hosted checkout session for a single line item
func (s *StripeClient) CreateSession(params CreateCheckoutParams) (*CheckoutSession, error) {
	form := map[string]string{
		"mode":                    "payment",
		"payment_method_types[0]": "card",
		"line_items[0][price_data][currency]":                  params.Currency,
		"line_items[0][price_data][product_data][name]":        params.ProductName,
		"line_items[0][price_data][product_data][description]": params.Description,
		"line_items[0][price_data][unit_amount]":               strconv.FormatInt(params.UnitAmount, 10),
		"line_items[0][quantity]":                              "1",
		"success_url":                                          params.SuccessURL,
		"cancel_url":                                           params.CancelURL,
		"client_reference_id":                                  params.Reference,
	}
	for key, value := range params.Metadata {
		form["metadata["+key+"]"] = value
	}

	var session CheckoutSession
	resp, err := s.client.R().
		SetFormData(form).
		SetResult(&session).
		Post("/checkout/sessions")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("payment provider returned %d: %s", resp.StatusCode(), resp.String())
	}
	return &session, nil
}

// RetrieveSession fetches a checkout session by id
func (s *StripeClient) RetrieveSession(sessionID string) (*CheckoutSession, error) {
	var session CheckoutSession
	resp, err := s.client.R().
		SetResult(&session).
		Get("/checkout/sessions/" + sessionID)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("payment provider returned %d: %s", resp.StatusCode(), resp.String())
	}
	return &session, nil
}
