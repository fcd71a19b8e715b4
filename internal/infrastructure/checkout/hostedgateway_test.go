package checkout

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quokkalist/internal/application/billing/checkoutgateway"
	sharedconfig "quokkalist/internal/shared/config"
	"quokkalist/internal/shared/logger"
)

func newTestGateway() *HostedGateway {
	return NewHostedGateway(&sharedconfig.CheckoutConfig{
		APIBaseURL:    "https://pay.example.test",
		APIKey:        "sk_test",
		WebhookSecret: "whsec_test",
	}, logger.NewLogger())
}

func sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyEvent_ValidSignature(t *testing.T) {
	g := newTestGateway()
	payload := []byte(`{"type":"checkout.completed","data":{"session_id":"cs_1","payment_intent_id":"pi_1","customer_email":"a@b.test"}}`)

	event, err := g.VerifyEvent(payload, sign("whsec_test", payload))
	require.NoError(t, err)

	assert.Equal(t, checkoutgateway.EventCheckoutCompleted, event.Type)
	assert.Equal(t, "cs_1", event.SessionID)
	assert.Equal(t, "pi_1", event.PaymentIntentID)
	assert.Equal(t, "a@b.test", event.CustomerEmail)
}

func TestVerifyEvent_RejectsTamperedPayload(t *testing.T) {
	g := newTestGateway()
	payload := []byte(`{"type":"checkout.completed","data":{"session_id":"cs_1"}}`)
	sig := sign("whsec_test", payload)

	tampered := []byte(`{"type":"checkout.completed","data":{"session_id":"cs_2"}}`)
	_, err := g.VerifyEvent(tampered, sig)
	assert.Error(t, err)
}

func TestVerifyEvent_RejectsWrongSecret(t *testing.T) {
	g := newTestGateway()
	payload := []byte(`{"type":"checkout.completed","data":{"session_id":"cs_1"}}`)

	_, err := g.VerifyEvent(payload, sign("whsec_other", payload))
	assert.Error(t, err)
}

func TestVerifyEvent_RejectsMissingSignature(t *testing.T) {
	g := newTestGateway()
	_, err := g.VerifyEvent([]byte(`{}`), "")
	assert.Error(t, err)
}

func TestVerifyEvent_RejectsMalformedPayload(t *testing.T) {
	g := newTestGateway()
	payload := []byte(`not json`)
	_, err := g.VerifyEvent(payload, sign("whsec_test", payload))
	assert.Error(t, err)
}
