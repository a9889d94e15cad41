package razorpay

import (
	"strings"
	"testing"
)

func TestVerifyPaymentSignature(t *testing.T) {
	const secret = "test_secret_key"
	const orderID = "order_ABC123"
	const paymentID = "pay_XYZ789"

	valid := SignPayload(orderID+"|"+paymentID, secret)

	t.Run("accepts the genuine signature", func(t *testing.T) {
		if !VerifyPaymentSignature(orderID, paymentID, valid, secret) {
			t.Error("expected genuine signature to verify")
		}
	})

	t.Run("rejects a signature under a different secret", func(t *testing.T) {
		other := SignPayload(orderID+"|"+paymentID, "some_other_secret")
		if VerifyPaymentSignature(orderID, paymentID, other, secret) {
			t.Error("signature under wrong secret must not verify")
		}
	})

	t.Run("rejects swapped identifiers", func(t *testing.T) {
		if VerifyPaymentSignature(paymentID, orderID, valid, secret) {
			t.Error("swapped order/payment ids must not verify")
		}
	})

	t.Run("comparison is case-sensitive", func(t *testing.T) {
		upper := strings.ToUpper(valid)
		if upper == valid {
			t.Fatal("test signature has no lowercase hex digits")
		}
		if VerifyPaymentSignature(orderID, paymentID, upper, secret) {
			t.Error("uppercased hex signature must not verify")
		}
	})

	t.Run("rejects an unrelated hex string", func(t *testing.T) {
		bogus := strings.Repeat("ab", 16) // 32 hex chars
		if VerifyPaymentSignature(orderID, paymentID, bogus, secret) {
			t.Error("unrelated hex string must not verify")
		}
	})
}

func TestSignPayload_KnownVector(t *testing.T) {
	// Same payload and secret always produce the same hex digest, and
	// it round-trips through webhook verification.
	sig := SignPayload("test_payload_string", "test_secret_key")
	if len(sig) != 64 {
		t.Fatalf("hex HMAC-SHA256 should be 64 chars, got %d", len(sig))
	}
	if sig != SignPayload("test_payload_string", "test_secret_key") {
		t.Error("signing is not deterministic")
	}
	if !VerifyWebhookSignature([]byte("test_payload_string"), sig, "test_secret_key") {
		t.Error("webhook verification should accept the matching digest")
	}
}

func TestVerifyWebhookSignature(t *testing.T) {
	secret := "webhook_secret"
	body := []byte(`{"event":"payment.captured","payload":{}}`)
	sig := SignPayload(string(body), secret)

	if !VerifyWebhookSignature(body, sig, secret) {
		t.Error("expected valid webhook signature to verify")
	}
	if VerifyWebhookSignature(body, sig, "other_secret") {
		t.Error("signature must not verify under a different secret")
	}
	if VerifyWebhookSignature(append(body, ' '), sig, secret) {
		t.Error("any body mutation must break verification")
	}
	if VerifyWebhookSignature(body, "", secret) {
		t.Error("empty signature must not verify")
	}
}
