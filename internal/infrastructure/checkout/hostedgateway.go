// Package checkout implements the hosted checkout gateway client over the
// provider's REST API, plus webhook signature verification.
package checkout

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"quokkalist/internal/application/billing/checkoutgateway"
	sharedconfig "quokkalist/internal/shared/config"
	"quokkalist/internal/shared/logger"
)

const requestTimeout = 15 * time.Second

type HostedGateway struct {
	baseURL       string
	apiKey        string
	webhookSecret []byte
	httpClient    *http.Client
	logger        logger.Interface
}

func NewHostedGateway(cfg *sharedconfig.CheckoutConfig, log logger.Interface) *HostedGateway {
	return &HostedGateway{
		baseURL:       cfg.APIBaseURL,
		apiKey:        cfg.APIKey,
		webhookSecret: []byte(cfg.WebhookSecret),
		httpClient:    &http.Client{Timeout: requestTimeout},
		logger:        log.Named("checkout"),
	}
}

type createSessionRequest struct {
	AmountInCents int64             `json:"amount"`
	Currency      string            `json:"currency"`
	ProductName   string            `json:"product_name"`
	CustomerEmail string            `json:"customer_email,omitempty"`
	SuccessURL    string            `json:"success_url"`
	CancelURL     string            `json:"cancel_url"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

type sessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (g *HostedGateway) CreateSession(ctx context.Context, input checkoutgateway.CreateSessionInput) (*checkoutgateway.Session, error) {
	body, err := json.Marshal(createSessionRequest{
		AmountInCents: input.AmountInCents,
		Currency:      input.Currency,
		ProductName:   input.ProductName,
		CustomerEmail: input.CustomerEmail,
		SuccessURL:    input.SuccessURL,
		CancelURL:     input.CancelURL,
		Metadata:      input.Metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/checkout/sessions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build session request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("checkout request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read checkout response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp errorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error.Message != "" {
			return nil, fmt.Errorf("checkout provider returned %d: %s", resp.StatusCode, errResp.Error.Message)
		}
		return nil, fmt.Errorf("checkout provider returned %d", resp.StatusCode)
	}

	var session sessionResponse
	if err := json.Unmarshal(respBody, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session response: %w", err)
	}
	if session.ID == "" || session.URL == "" {
		return nil, fmt.Errorf("checkout provider returned incomplete session")
	}

	g.logger.Debugw("checkout session created", "session_id", session.ID)
	return &checkoutgateway.Session{ID: session.ID, URL: session.URL}, nil
}

type webhookEvent struct {
	Type string `json:"type"`
	Data struct {
		SessionID       string            `json:"session_id"`
		PaymentIntentID string            `json:"payment_intent_id"`
		CustomerEmail   string            `json:"customer_email"`
		Metadata        map[string]string `json:"metadata"`
	} `json:"data"`
}

// VerifyEvent authenticates the payload with HMAC-SHA256 over the raw
// body, compared in constant time against the hex signature header.
func (g *HostedGateway) VerifyEvent(payload []byte, signature string) (*checkoutgateway.Event, error) {
	if signature == "" {
		return nil, fmt.Errorf("missing webhook signature")
	}

	mac := hmac.New(sha256.New, g.webhookSecret)
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return nil, fmt.Errorf("webhook signature mismatch")
	}

	var event webhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to decode webhook payload: %w", err)
	}
	if event.Type == "" {
		return nil, fmt.Errorf("webhook payload missing event type")
	}

	return &checkoutgateway.Event{
		Type:            event.Type,
		SessionID:       event.Data.SessionID,
		PaymentIntentID: event.Data.PaymentIntentID,
		CustomerEmail:   event.Data.CustomerEmail,
		Metadata:        event.Data.Metadata,
	}, nil
}
