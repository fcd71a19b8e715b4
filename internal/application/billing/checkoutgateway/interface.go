// Package checkoutgateway defines the port to the hosted checkout provider.
// The engine never talks to the provider API directly; usecases depend on
// this interface and infrastructure supplies the HTTP implementation.
package checkoutgateway

import "context"

// Event types delivered to the webhook endpoint.
const (
	EventCheckoutCompleted = "checkout.completed"
	EventCheckoutFailed    = "checkout.failed"
)

// CreateSessionInput describes one hosted checkout session to open.
// Metadata is echoed back on webhook events.
type CreateSessionInput struct {
	AmountInCents int64
	Currency      string
	ProductName   string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

// Session is an opened hosted checkout session. The ID doubles as the
// settlement idempotency key; URL is where the buyer completes payment.
type Session struct {
	ID  string
	URL string
}

// Event is a verified webhook notification from the provider.
type Event struct {
	Type            string
	SessionID       string
	PaymentIntentID string
	CustomerEmail   string
	Metadata        map[string]string
}

type CheckoutGateway interface {
	CreateSession(ctx context.Context, input CreateSessionInput) (*Session, error)
	// VerifyEvent authenticates a raw webhook delivery against its
	// signature header and decodes it. Tampered or unsigned payloads
	// must be rejected before any state changes.
	VerifyEvent(payload []byte, signature string) (*Event, error)
}
