package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"quokkalist/internal/application/billing/checkoutgateway"
	"quokkalist/internal/domain/promo"
	vo "quokkalist/internal/domain/promo/valueobjects"
	apperrors "quokkalist/internal/shared/errors"
)

type createCheckoutFixture struct {
	orderRepo  *MockOrderRepository
	promoRepo  *MockPromoCodeRepository
	windowRepo *MockWindowRepository
	serverRepo *MockServerRepository
	gateway    *MockCheckoutGateway
	receipts   *MockReceiptSender
	uc         *CreateCheckoutUseCase
}

func newCreateCheckoutFixture(t *testing.T) *createCheckoutFixture {
	f := &createCheckoutFixture{
		orderRepo:  new(MockOrderRepository),
		promoRepo:  new(MockPromoCodeRepository),
		windowRepo: new(MockWindowRepository),
		serverRepo: new(MockServerRepository),
		gateway:    new(MockCheckoutGateway),
		receipts:   new(MockReceiptSender),
	}
	f.uc = NewCreateCheckoutUseCase(
		f.orderRepo, f.promoRepo, f.windowRepo, f.serverRepo, f.gateway,
		newTestTxManager(t), f.receipts,
		"EUR", "https://example.test/success", "https://example.test/cancel",
		newTestLogger(),
	)
	return f
}

func TestCreateCheckout_PaidPath(t *testing.T) {
	f := newCreateCheckoutFixture(t)
	f.serverRepo.On("GetOwnerID", mock.Anything, "srv-1").Return("user-1", nil)
	f.gateway.On("CreateSession", mock.Anything, mock.MatchedBy(func(in checkoutgateway.CreateSessionInput) bool {
		return in.Metadata["server_id"] == "srv-1" &&
			in.Metadata["user_id"] == "user-1" &&
			in.Metadata["plan"] == "basic" &&
			in.Metadata["quantity"] == "7"
	})).Return(&checkoutgateway.Session{ID: "cs_abc", URL: "https://pay.example.test/cs_abc"}, nil)
	f.orderRepo.On("CreatePending", mock.Anything, mock.Anything).Return(nil)

	result, err := f.uc.Execute(context.Background(), CreateCheckoutCommand{
		UserID:   "user-1",
		ServerID: "srv-1",
		Plan:     "basic",
		Quantity: 7,
	})
	require.NoError(t, err)

	assert.Equal(t, "https://pay.example.test/cs_abc", result.CheckoutURL)
	assert.False(t, result.Gifted)
	assert.Equal(t, "cs_abc", result.Order.CheckoutSessionID)
	assert.Equal(t, int64(3500), result.Order.AmountInCents)
	assert.Equal(t, "pending", result.Order.Status)
	f.orderRepo.AssertExpectations(t)
}

func TestCreateCheckout_GatewayFailureLeavesNoOrder(t *testing.T) {
	f := newCreateCheckoutFixture(t)
	f.serverRepo.On("GetOwnerID", mock.Anything, "srv-1").Return("user-1", nil)
	f.gateway.On("CreateSession", mock.Anything, mock.Anything).
		Return(nil, errors.New("provider timeout"))

	_, err := f.uc.Execute(context.Background(), CreateCheckoutCommand{
		UserID:   "user-1",
		ServerID: "srv-1",
		Plan:     "premium",
		Quantity: 6,
	})
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypePaymentProvider, appErr.Type)
	f.orderRepo.AssertNotCalled(t, "CreatePending", mock.Anything, mock.Anything)
}

func TestCreateCheckout_NonOwnerForbidden(t *testing.T) {
	f := newCreateCheckoutFixture(t)
	f.serverRepo.On("GetOwnerID", mock.Anything, "srv-1").Return("someone-else", nil)

	_, err := f.uc.Execute(context.Background(), CreateCheckoutCommand{
		UserID:   "user-1",
		ServerID: "srv-1",
		Plan:     "basic",
		Quantity: 1,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsForbiddenError(err))
	f.gateway.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
}

func TestCreateCheckout_ServerNotFound(t *testing.T) {
	f := newCreateCheckoutFixture(t)
	f.serverRepo.On("GetOwnerID", mock.Anything, "missing").Return("", nil)

	_, err := f.uc.Execute(context.Background(), CreateCheckoutCommand{
		UserID:   "user-1",
		ServerID: "missing",
		Plan:     "basic",
		Quantity: 1,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestCreateCheckout_InputValidation(t *testing.T) {
	tests := []struct {
		name string
		cmd  CreateCheckoutCommand
	}{
		{name: "unknown plan", cmd: CreateCheckoutCommand{UserID: "u", ServerID: "s", Plan: "gold", Quantity: 1}},
		{name: "zero quantity", cmd: CreateCheckoutCommand{UserID: "u", ServerID: "s", Plan: "basic", Quantity: 0}},
		{name: "premium over 24 hours", cmd: CreateCheckoutCommand{UserID: "u", ServerID: "s", Plan: "premium", Quantity: 25}},
		{name: "basic over 30 days", cmd: CreateCheckoutCommand{UserID: "u", ServerID: "s", Plan: "basic", Quantity: 31}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newCreateCheckoutFixture(t)
			_, err := f.uc.Execute(context.Background(), tc.cmd)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidationError(err))
		})
	}
}

func TestCreateCheckout_FreePromoSettlesImmediately(t *testing.T) {
	f := newCreateCheckoutFixture(t)
	code := promo.ReconstructPromoCode(
		"pc-1", "GIFTME", true,
		vo.Discount{Type: vo.DiscountFree},
		nil, nil, nil, 0, nil, timeNowUTC(),
	)

	f.serverRepo.On("GetOwnerID", mock.Anything, "srv-1").Return("user-1", nil)
	f.promoRepo.On("GetByCode", mock.Anything, "GIFTME").Return(code, nil)
	f.orderRepo.On("CreateGifted", mock.Anything, mock.Anything).Return(nil)
	f.windowRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.promoRepo.On("IncrementUses", mock.Anything, "pc-1").Return(nil)
	f.receipts.On("SendReceipt", mock.Anything, "owner@example.test", mock.Anything).Return(nil)

	result, err := f.uc.Execute(context.Background(), CreateCheckoutCommand{
		UserID:    "user-1",
		UserEmail: "owner@example.test",
		ServerID:  "srv-1",
		Plan:      "basic",
		Quantity:  3,
		PromoCode: "giftme",
	})
	require.NoError(t, err)

	assert.True(t, result.Gifted)
	assert.Empty(t, result.CheckoutURL)
	assert.True(t, result.Order.Gifted)
	assert.Equal(t, int64(0), result.Order.AmountInCents)
	assert.Equal(t, "completed", result.Order.Status)
	require.NotNil(t, result.Order.WindowEndAt)
	f.gateway.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
	f.orderRepo.AssertExpectations(t)
	f.windowRepo.AssertExpectations(t)
	f.promoRepo.AssertExpectations(t)
}

func TestCreateCheckout_InvalidPromoRejected(t *testing.T) {
	f := newCreateCheckoutFixture(t)
	f.serverRepo.On("GetOwnerID", mock.Anything, "srv-1").Return("user-1", nil)
	f.promoRepo.On("GetByCode", mock.Anything, "NOPE").Return(nil, nil)

	_, err := f.uc.Execute(context.Background(), CreateCheckoutCommand{
		UserID:    "user-1",
		ServerID:  "srv-1",
		Plan:      "basic",
		Quantity:  1,
		PromoCode: "nope",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
	f.gateway.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
}

func TestCreateCheckout_PercentPromoDiscountsAmount(t *testing.T) {
	f := newCreateCheckoutFixture(t)
	code := promo.ReconstructPromoCode(
		"pc-2", "HALF", true,
		vo.Discount{Type: vo.DiscountPercent, Value: 50},
		nil, nil, nil, 0, nil, timeNowUTC(),
	)

	f.serverRepo.On("GetOwnerID", mock.Anything, "srv-1").Return("user-1", nil)
	f.promoRepo.On("GetByCode", mock.Anything, "HALF").Return(code, nil)
	f.gateway.On("CreateSession", mock.Anything, mock.MatchedBy(func(in checkoutgateway.CreateSessionInput) bool {
		return in.AmountInCents == 750 && in.Metadata["promo_code_id"] == "pc-2"
	})).Return(&checkoutgateway.Session{ID: "cs_half", URL: "https://pay.example.test/cs_half"}, nil)
	f.orderRepo.On("CreatePending", mock.Anything, mock.Anything).Return(nil)

	result, err := f.uc.Execute(context.Background(), CreateCheckoutCommand{
		UserID:    "user-1",
		ServerID:  "srv-1",
		Plan:      "basic",
		Quantity:  3,
		PromoCode: "half",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(750), result.Order.AmountInCents)
	require.NotNil(t, result.Order.BaseAmountCents)
	assert.Equal(t, int64(1500), *result.Order.BaseAmountCents)
	require.NotNil(t, result.Order.PromoCode)
	assert.Equal(t, "HALF", *result.Order.PromoCode)
	f.gateway.AssertExpectations(t)
}
