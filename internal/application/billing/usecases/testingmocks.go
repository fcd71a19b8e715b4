package usecases

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"quokkalist/internal/application/billing/checkoutgateway"
	"quokkalist/internal/domain/billing"
	"quokkalist/internal/domain/listing"
	"quokkalist/internal/domain/promo"
	"quokkalist/internal/domain/promotion"
)

// Shared test mocks for this package.

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreatePending(ctx context.Context, order *billing.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) CreateGifted(ctx context.Context, order *billing.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) ClaimCompleted(ctx context.Context, checkoutSessionID, gatewayIntentID string) (*billing.Order, bool, error) {
	args := m.Called(ctx, checkoutSessionID, gatewayIntentID)
	var order *billing.Order
	if args.Get(0) != nil {
		order = args.Get(0).(*billing.Order)
	}
	return order, args.Bool(1), args.Error(2)
}

func (m *MockOrderRepository) MarkFailed(ctx context.Context, checkoutSessionID string) error {
	args := m.Called(ctx, checkoutSessionID)
	return args.Error(0)
}

func (m *MockOrderRepository) SetPromotionWindow(ctx context.Context, checkoutSessionID string, start, end time.Time) error {
	args := m.Called(ctx, checkoutSessionID, start, end)
	return args.Error(0)
}

func (m *MockOrderRepository) UpsertPromoMeta(ctx context.Context, checkoutSessionID string, meta billing.PromoMeta) error {
	args := m.Called(ctx, checkoutSessionID, meta)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByCheckoutSession(ctx context.Context, checkoutSessionID, userID string) (*billing.Order, error) {
	args := m.Called(ctx, checkoutSessionID, userID)
	var order *billing.Order
	if args.Get(0) != nil {
		order = args.Get(0).(*billing.Order)
	}
	return order, args.Error(1)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id, userID string) (*billing.Order, error) {
	args := m.Called(ctx, id, userID)
	var order *billing.Order
	if args.Get(0) != nil {
		order = args.Get(0).(*billing.Order)
	}
	return order, args.Error(1)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID string) ([]*billing.Order, error) {
	args := m.Called(ctx, userID)
	var orders []*billing.Order
	if args.Get(0) != nil {
		orders = args.Get(0).([]*billing.Order)
	}
	return orders, args.Error(1)
}

func (m *MockOrderRepository) ListAll(ctx context.Context) ([]*billing.Order, error) {
	args := m.Called(ctx)
	var orders []*billing.Order
	if args.Get(0) != nil {
		orders = args.Get(0).([]*billing.Order)
	}
	return orders, args.Error(1)
}

type MockPromoCodeRepository struct {
	mock.Mock
}

func (m *MockPromoCodeRepository) Create(ctx context.Context, code *promo.PromoCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockPromoCodeRepository) GetByCode(ctx context.Context, code string) (*promo.PromoCode, error) {
	args := m.Called(ctx, code)
	var p *promo.PromoCode
	if args.Get(0) != nil {
		p = args.Get(0).(*promo.PromoCode)
	}
	return p, args.Error(1)
}

func (m *MockPromoCodeRepository) GetByID(ctx context.Context, id string) (*promo.PromoCode, error) {
	args := m.Called(ctx, id)
	var p *promo.PromoCode
	if args.Get(0) != nil {
		p = args.Get(0).(*promo.PromoCode)
	}
	return p, args.Error(1)
}

func (m *MockPromoCodeRepository) List(ctx context.Context) ([]*promo.PromoCode, error) {
	args := m.Called(ctx)
	var codes []*promo.PromoCode
	if args.Get(0) != nil {
		codes = args.Get(0).([]*promo.PromoCode)
	}
	return codes, args.Error(1)
}

func (m *MockPromoCodeRepository) SetActive(ctx context.Context, id string, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockPromoCodeRepository) IncrementUses(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockWindowRepository struct {
	mock.Mock
}

func (m *MockWindowRepository) Create(ctx context.Context, window *promotion.Window) error {
	args := m.Called(ctx, window)
	return args.Error(0)
}

func (m *MockWindowRepository) ActiveForServer(ctx context.Context, serverID string, now time.Time) (*promotion.Window, error) {
	args := m.Called(ctx, serverID, now)
	var w *promotion.Window
	if args.Get(0) != nil {
		w = args.Get(0).(*promotion.Window)
	}
	return w, args.Error(1)
}

func (m *MockWindowRepository) ListForServer(ctx context.Context, serverID string) ([]*promotion.Window, error) {
	args := m.Called(ctx, serverID)
	var windows []*promotion.Window
	if args.Get(0) != nil {
		windows = args.Get(0).([]*promotion.Window)
	}
	return windows, args.Error(1)
}

func (m *MockWindowRepository) ListForOwner(ctx context.Context, userID string) ([]*promotion.Window, error) {
	args := m.Called(ctx, userID)
	var windows []*promotion.Window
	if args.Get(0) != nil {
		windows = args.Get(0).([]*promotion.Window)
	}
	return windows, args.Error(1)
}

func (m *MockWindowRepository) ListAll(ctx context.Context) ([]*promotion.Window, error) {
	args := m.Called(ctx)
	var windows []*promotion.Window
	if args.Get(0) != nil {
		windows = args.Get(0).([]*promotion.Window)
	}
	return windows, args.Error(1)
}

type MockServerRepository struct {
	mock.Mock
}

func (m *MockServerRepository) GetByID(ctx context.Context, id string) (*listing.Server, error) {
	args := m.Called(ctx, id)
	var s *listing.Server
	if args.Get(0) != nil {
		s = args.Get(0).(*listing.Server)
	}
	return s, args.Error(1)
}

func (m *MockServerRepository) GetOwnerID(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockServerRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockCheckoutGateway struct {
	mock.Mock
}

func (m *MockCheckoutGateway) CreateSession(ctx context.Context, input checkoutgateway.CreateSessionInput) (*checkoutgateway.Session, error) {
	args := m.Called(ctx, input)
	var s *checkoutgateway.Session
	if args.Get(0) != nil {
		s = args.Get(0).(*checkoutgateway.Session)
	}
	return s, args.Error(1)
}

func (m *MockCheckoutGateway) VerifyEvent(payload []byte, signature string) (*checkoutgateway.Event, error) {
	args := m.Called(payload, signature)
	var e *checkoutgateway.Event
	if args.Get(0) != nil {
		e = args.Get(0).(*checkoutgateway.Event)
	}
	return e, args.Error(1)
}

type MockReceiptSender struct {
	mock.Mock
}

func (m *MockReceiptSender) SendReceipt(ctx context.Context, to string, order *billing.Order) error {
	args := m.Called(ctx, to, order)
	return args.Error(0)
}
