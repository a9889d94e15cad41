package razorpay

import (
	"errors"
	"fmt"
	"net"

	razorpay "github.com/razorpay/razorpay-go"
)

var (
	// ErrUpstream: the gateway rejected or failed the call. Surfaced to
	// the caller as 502; this layer never retries.
	ErrUpstream = errors.New("payment gateway request failed")
	// ErrUpstreamTimeout: the gateway did not answer within the client
	// timeout. Surfaced as 504, distinct from ErrUpstream.
	ErrUpstreamTimeout = errors.New("payment gateway request timed out")
)

const requestTimeoutSeconds = 10

// Gateway is the slice of the Razorpay API this app uses. Handlers take
// the interface so tests can stub the gateway out.
type Gateway interface {
	CreateOrder(amountMinor int64, currency, receipt string, notes map[string]interface{}) (orderID string, err error)
	FetchPayment(paymentID string) (map[string]interface{}, error)
	CreateRefund(paymentID string, amountMinor int64) (refundID string, err error)
}

type Client struct {
	rz *razorpay.Client
}

func NewClient(keyID, keySecret string) *Client {
	c := razorpay.NewClient(keyID, keySecret)
	c.SetTimeout(requestTimeoutSeconds)
	return &Client{rz: c}
}

func (c *Client) CreateOrder(amountMinor int64, currency, receipt string, notes map[string]interface{}) (string, error) {
	data := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
		"notes":    notes,
	}
	body, err := c.rz.Order.Create(data, nil)
	if err != nil {
		return "", classify(err)
	}
	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		return "", fmt.Errorf("%w: order response missing id", ErrUpstream)
	}
	return orderID, nil
}

func (c *Client) FetchPayment(paymentID string) (map[string]interface{}, error) {
	body, err := c.rz.Payment.Fetch(paymentID, nil, nil)
	if err != nil {
		return nil, classify(err)
	}
	return body, nil
}

func (c *Client) CreateRefund(paymentID string, amountMinor int64) (string, error) {
	body, err := c.rz.Payment.Refund(paymentID, int(amountMinor), nil, nil)
	if err != nil {
		return "", classify(err)
	}
	refundID, ok := body["id"].(string)
	if !ok || refundID == "" {
		return "", fmt.Errorf("%w: refund response missing id", ErrUpstream)
	}
	return refundID, nil
}

func classify(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrUpstreamTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}
