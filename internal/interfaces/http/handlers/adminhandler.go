package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	billingusecases "quokkalist/internal/application/billing/usecases"
	promotionusecases "quokkalist/internal/application/promotion/usecases"
	"quokkalist/internal/shared/utils"
)

// AdminHandler serves the back-office endpoints: promo code management,
// gifted windows, and global projections.
type AdminHandler struct {
	createPromoCode *billingusecases.CreatePromoCodeUseCase
	setPromoActive  *billingusecases.SetPromoCodeActiveUseCase
	listPromoCodes  *billingusecases.ListPromoCodesUseCase
	giftWindow      *billingusecases.GiftWindowUseCase
	listAllOrders   *billingusecases.ListAllOrdersUseCase
	listWindows     *promotionusecases.ListWindowsUseCase
}

func NewAdminHandler(
	createPromoCode *billingusecases.CreatePromoCodeUseCase,
	setPromoActive *billingusecases.SetPromoCodeActiveUseCase,
	listPromoCodes *billingusecases.ListPromoCodesUseCase,
	giftWindow *billingusecases.GiftWindowUseCase,
	listAllOrders *billingusecases.ListAllOrdersUseCase,
	listWindows *promotionusecases.ListWindowsUseCase,
) *AdminHandler {
	return &AdminHandler{
		createPromoCode: createPromoCode,
		setPromoActive:  setPromoActive,
		listPromoCodes:  listPromoCodes,
		giftWindow:      giftWindow,
		listAllOrders:   listAllOrders,
		listWindows:     listWindows,
	}
}

type createPromoCodeRequest struct {
	Code          string     `json:"code" binding:"required"`
	DiscountType  string     `json:"discount_type" binding:"required"`
	DiscountValue int64      `json:"discount_value"`
	UserID        *string    `json:"user_id"`
	ServerID      *string    `json:"server_id"`
	MaxUses       *int       `json:"max_uses"`
	ExpiresAt     *time.Time `json:"expires_at"`
}

// CreatePromoCode registers a new promo code.
// POST /api/v1/admin/promo-codes
func (h *AdminHandler) CreatePromoCode(c *gin.Context) {
	var req createPromoCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.createPromoCode.Execute(c.Request.Context(), billingusecases.CreatePromoCodeCommand{
		Code:          req.Code,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		UserID:        req.UserID,
		ServerID:      req.ServerID,
		MaxUses:       req.MaxUses,
		ExpiresAt:     req.ExpiresAt,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "promo code created")
}

type setPromoActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetPromoCodeActive enables or disables a promo code.
// PATCH /api/v1/admin/promo-codes/:id
func (h *AdminHandler) SetPromoCodeActive(c *gin.Context) {
	var req setPromoActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.setPromoActive.Execute(c.Request.Context(), billingusecases.SetPromoCodeActiveCommand{
		PromoCodeID: c.Param("id"),
		Active:      *req.Active,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "promo code updated", result)
}

// ListPromoCodes returns all promo codes.
// GET /api/v1/admin/promo-codes
func (h *AdminHandler) ListPromoCodes(c *gin.Context) {
	result, err := h.listPromoCodes.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

type giftWindowRequest struct {
	ServerID string     `json:"server_id" binding:"required"`
	Plan     string     `json:"plan" binding:"required"`
	Quantity int        `json:"quantity" binding:"required"`
	StartAt  *time.Time `json:"start_at"`
}

// GiftWindow grants a promotion window without payment.
// POST /api/v1/admin/promotions/gift
func (h *AdminHandler) GiftWindow(c *gin.Context) {
	var req giftWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.giftWindow.Execute(c.Request.Context(), billingusecases.GiftWindowCommand{
		ServerID: req.ServerID,
		Plan:     req.Plan,
		Quantity: req.Quantity,
		StartAt:  req.StartAt,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "promotion window gifted")
}

// ListAllOrders returns every order across all users.
// GET /api/v1/admin/orders
func (h *AdminHandler) ListAllOrders(c *gin.Context) {
	result, err := h.listAllOrders.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListAllWindows returns every promotion window.
// GET /api/v1/admin/promotions
func (h *AdminHandler) ListAllWindows(c *gin.Context) {
	result, err := h.listWindows.Execute(c.Request.Context(), promotionusecases.ListWindowsCommand{})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}
