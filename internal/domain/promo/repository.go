package promo

import "context"

type PromoCodeRepository interface {
	Create(ctx context.Context, code *PromoCode) error
	// GetByCode looks up a code already normalized with NormalizeCode.
	// Returns (nil, nil) when no such code exists.
	GetByCode(ctx context.Context, code string) (*PromoCode, error)
	GetByID(ctx context.Context, id string) (*PromoCode, error)
	List(ctx context.Context) ([]*PromoCode, error)
	SetActive(ctx context.Context, id string, active bool) error
	// IncrementUses advances uses_count by one. Called exactly once per
	// settled order that carried the code.
	IncrementUses(ctx context.Context, id string) error
}
