package razorpaywebhooks

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"advisory-app/internal/domain/payments"
	rzp "advisory-app/internal/infra/razorpay"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	DB *gorm.DB
	// Webhook secret, distinct from the key secret used for checkout
	// callback signatures.
	Secret string
}

func NewHandler(db *gorm.DB, secret string) *Handler {
	return &Handler{DB: db, Secret: secret}
}

// event is the gateway's webhook envelope. Entities are decoded lazily
// per event type.
type event struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity paymentEntity `json:"entity"`
		} `json:"payment"`
		Refund struct {
			Entity refundEntity `json:"entity"`
		} `json:"refund"`
	} `json:"payload"`
}

type paymentEntity struct {
	ID               string `json:"id"`
	OrderID          string `json:"order_id"`
	Method           string `json:"method"`
	Amount           int64  `json:"amount"`
	ErrorCode        string `json:"error_code"`
	ErrorDescription string `json:"error_description"`
}

type refundEntity struct {
	ID        string `json:"id"`
	PaymentID string `json:"payment_id"`
	Amount    int64  `json:"amount"`
	CreatedAt int64  `json:"created_at"`
}

// POST /webhook/razorpay
// The body is authenticated before it is parsed: HMAC-SHA256 over the
// entire raw body with the webhook secret must match the
// x-razorpay-signature header exactly.
func (h *Handler) HandleWebhook(c *gin.Context) {
	if h.Secret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "RAZORPAY_WEBHOOK_SECRET not configured"})
		return
	}

	body, err := readRawBody(c, 65536)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	signature := c.GetHeader("x-razorpay-signature")
	if signature == "" || !rzp.VerifyWebhookSignature(body, signature, h.Secret) {
		fmt.Println("❌ Razorpay webhook signature verification failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		return
	}

	var ev event
	if err := json.Unmarshal(body, &ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse event"})
		return
	}

	// Audit trail of verified deliveries, kept even for ignored types.
	h.DB.Create(&payments.WebhookEvent{EventType: ev.Event, Payload: body})

	switch ev.Event {
	case "payment.captured":
		if err := h.handlePaymentCaptured(&ev.Payload.Payment.Entity); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

	case "payment.failed":
		if err := h.handlePaymentFailed(&ev.Payload.Payment.Entity); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

	case "refund.created":
		if err := h.handleRefundCreated(&ev.Payload.Refund.Entity); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

	default:
		// Acknowledge unknown events so the gateway does not retry-storm
		// when new types ship.
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func readRawBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
