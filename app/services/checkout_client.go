package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// CheckoutSessionInput describes a deposit payment to collect.
type CheckoutSessionInput struct {
	BookingUUID string
	ServiceName string
	ClientEmail string
	AmountUSD   int
}

// CheckoutSession is a created hosted-payment session.
type CheckoutSession struct {
	SessionID string
	URL       string
}

// CheckoutStatus is the provider-side state of a session.
type CheckoutStatus struct {
	SessionID     string
	Paid          bool
	BookingUUID   string
	PaymentIntent string
}

// CheckoutClient creates hosted checkout sessions for booking deposits.
type CheckoutClient interface {
	CreateDepositSession(ctx context.Context, in CheckoutSessionInput) (*CheckoutSession, error)
	GetSession(ctx context.Context, sessionID string) (*CheckoutStatus, error)
}

// StripeCheckoutClient talks to the Stripe Checkout Sessions API with
// form-encoded requests.
type StripeCheckoutClient struct {
	BaseURL    string
	SecretKey  string
	SuccessURL string
	CancelURL  string
	HTTPClient *http.Client
}

// NewStripeCheckoutClient creates a checkout client. successURL and
// cancelURL are where the provider redirects the client afterwards.
func NewStripeCheckoutClient(baseURL, secretKey, successURL, cancelURL string, timeout time.Duration) *StripeCheckoutClient {
	if baseURL == "" {
		baseURL = "https://api.stripe.com"
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &StripeCheckoutClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		SecretKey:  secretKey,
		SuccessURL: successURL,
		CancelURL:  cancelURL,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

func (c *StripeCheckoutClient) Name() string { return "stripe" }

type stripeSessionResp struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	PaymentStatus string `json:"payment_status"`
	PaymentIntent string `json:"payment_intent"`
	Metadata      struct {
		BookingUUID string `json:"booking_uuid"`
	} `json:"metadata"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// CreateDepositSession creates a single-item payment session for the
// booking deposit and returns its redirect URL.
func (c *StripeCheckoutClient) CreateDepositSession(ctx context.Context, in CheckoutSessionInput) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", c.SuccessURL)
	form.Set("cancel_url", c.CancelURL)
	form.Set("customer_email", in.ClientEmail)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", "usd")
	form.Set("line_items[0][price_data][product_data][name]", fmt.Sprintf("Booking Deposit: %s", in.ServiceName))
	form.Set("line_items[0][price_data][unit_amount]", strconv.Itoa(in.AmountUSD*100))
	form.Set("metadata[booking_uuid]", in.BookingUUID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out stripeSessionResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		msg := "checkout session creation failed"
		if out.Error != nil {
			msg = out.Error.Message
		}
		return nil, fmt.Errorf("%s (status %d)", msg, resp.StatusCode)
	}
	if out.ID == "" || out.URL == "" {
		return nil, fmt.Errorf("checkout session response missing id or url")
	}

	return &CheckoutSession{SessionID: out.ID, URL: out.URL}, nil
}

// GetSession retrieves a session to verify its payment state.
func (c *StripeCheckoutClient) GetSession(ctx context.Context, sessionID string) (*CheckoutStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v1/checkout/sessions/"+url.PathEscape(sessionID), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out stripeSessionResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		msg := "checkout session retrieval failed"
		if out.Error != nil {
			msg = out.Error.Message
		}
		return nil, fmt.Errorf("%s (status %d)", msg, resp.StatusCode)
	}

	return &CheckoutStatus{
		SessionID:     out.ID,
		Paid:          out.PaymentStatus == "paid",
		BookingUUID:   out.Metadata.BookingUUID,
		PaymentIntent: out.PaymentIntent,
	}, nil
}

// MockCheckoutClient returns canned sessions, for development and tests.
type MockCheckoutClient struct{}

func NewMockCheckoutClient() CheckoutClient {
	return &MockCheckoutClient{}
}

func (m *MockCheckoutClient) CreateDepositSession(ctx context.Context, in CheckoutSessionInput) (*CheckoutSession, error) {
	return &CheckoutSession{
		SessionID: "mock_" + in.BookingUUID,
		URL:       "https://checkout.example.com/pay/mock_" + in.BookingUUID,
	}, nil
}

func (m *MockCheckoutClient) GetSession(ctx context.Context, sessionID string) (*CheckoutStatus, error) {
	return &CheckoutStatus{
		SessionID:   sessionID,
		Paid:        true,
		BookingUUID: strings.TrimPrefix(sessionID, "mock_"),
	}, nil
}
