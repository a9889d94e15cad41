package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignPayload returns the lowercase hex HMAC-SHA256 of payload under
// secret. The gateway signs checkout callbacks over
// "{order_id}|{payment_id}" and webhooks over the raw request body;
// both formats are fixed byte-for-byte.
func SignPayload(payload, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyPaymentSignature checks the signature a client reports after
// checkout. Comparison is constant-time and case-sensitive; there is no
// fallback on mismatch.
func VerifyPaymentSignature(orderID, paymentID, signature, secret string) bool {
	expected := SignPayload(orderID+"|"+paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyWebhookSignature checks the x-razorpay-signature header against
// the entire raw body using the webhook secret, which is distinct from
// the key secret used for checkout callbacks.
func VerifyWebhookSignature(body []byte, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
