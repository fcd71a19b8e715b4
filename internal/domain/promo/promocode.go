// Package promo holds promo codes and their validation rules. Validation
// never consumes a use: uses_count is only advanced at settlement, once the
// order is actually paid (or gifted).
package promo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	vo "quokkalist/internal/domain/promo/valueobjects"
)

// Validation failures. Each maps to a distinct user-visible reason because
// the same validation backs both checkout and preview.
var (
	ErrInvalid      = errors.New("promo code is invalid or inactive")
	ErrExpired      = errors.New("promo code has expired")
	ErrExhausted    = errors.New("promo code has no uses left")
	ErrNotForUser   = errors.New("promo code is reserved for another account")
	ErrNotForServer = errors.New("promo code does not apply to this server")
)

// NormalizeCode canonicalizes user input before lookup.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

type PromoCode struct {
	id        string
	code      string
	isActive  bool
	discount  vo.Discount
	userID    *string
	serverID  *string
	maxUses   *int
	usesCount int
	expiresAt *time.Time
	createdAt time.Time
}

// NewPromoCode creates a promo code. Scope targets (userID, serverID) and
// maxUses/expiresAt are optional; nil means unrestricted.
func NewPromoCode(code string, discount vo.Discount, userID, serverID *string, maxUses *int, expiresAt *time.Time) (*PromoCode, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, fmt.Errorf("code is required")
	}
	if !discount.Type.IsValid() {
		return nil, fmt.Errorf("invalid discount type: %s", discount.Type)
	}
	if discount.Value < 0 {
		return nil, fmt.Errorf("discount value cannot be negative")
	}
	if maxUses != nil && *maxUses < 1 {
		return nil, fmt.Errorf("max uses must be at least 1")
	}

	return &PromoCode{
		code:      code,
		isActive:  true,
		discount:  discount,
		userID:    userID,
		serverID:  serverID,
		maxUses:   maxUses,
		expiresAt: expiresAt,
		createdAt: time.Now().UTC(),
	}, nil
}

// ValidateFor checks the code against a requesting user/server pair.
// It does not mutate the code; usage accounting happens at settlement.
func (p *PromoCode) ValidateFor(userID, serverID string, now time.Time) error {
	if !p.isActive {
		return ErrInvalid
	}
	if p.expiresAt != nil && !p.expiresAt.After(now) {
		return ErrExpired
	}
	if p.maxUses != nil && p.usesCount >= *p.maxUses {
		return ErrExhausted
	}
	if p.userID != nil && *p.userID != userID {
		return ErrNotForUser
	}
	if p.serverID != nil && *p.serverID != serverID {
		return ErrNotForServer
	}
	return nil
}

func (p *PromoCode) ID() string {
	return p.id
}

func (p *PromoCode) Code() string {
	return p.code
}

func (p *PromoCode) IsActive() bool {
	return p.isActive
}

func (p *PromoCode) Discount() vo.Discount {
	return p.discount
}

func (p *PromoCode) UserID() *string {
	return p.userID
}

func (p *PromoCode) ServerID() *string {
	return p.serverID
}

func (p *PromoCode) MaxUses() *int {
	return p.maxUses
}

func (p *PromoCode) UsesCount() int {
	return p.usesCount
}

func (p *PromoCode) ExpiresAt() *time.Time {
	return p.expiresAt
}

func (p *PromoCode) CreatedAt() time.Time {
	return p.createdAt
}

// SetID sets the id after persistence.
func (p *PromoCode) SetID(id string) {
	p.id = id
}

func ReconstructPromoCode(
	id, code string,
	isActive bool,
	discount vo.Discount,
	userID, serverID *string,
	maxUses *int,
	usesCount int,
	expiresAt *time.Time,
	createdAt time.Time,
) *PromoCode {
	return &PromoCode{
		id:        id,
		code:      code,
		isActive:  isActive,
		discount:  discount,
		userID:    userID,
		serverID:  serverID,
		maxUses:   maxUses,
		usesCount: usesCount,
		expiresAt: expiresAt,
		createdAt: createdAt,
	}
}
