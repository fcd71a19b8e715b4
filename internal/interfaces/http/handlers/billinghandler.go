// Package handlers contains the gin HTTP handlers.
package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	billingusecases "quokkalist/internal/application/billing/usecases"
	"quokkalist/internal/interfaces/http/middleware"
	"quokkalist/internal/shared/utils"
)

// BillingHandler serves checkout, promo preview, order history, and the
// payment provider webhook.
type BillingHandler struct {
	createCheckout  *billingusecases.CreateCheckoutUseCase
	previewPromo    *billingusecases.PreviewPromoCodeUseCase
	settleCheckout  *billingusecases.SettleCheckoutUseCase
	listOrders      *billingusecases.ListOrdersUseCase
	getOrderSummary *billingusecases.GetOrderSummaryUseCase
}

func NewBillingHandler(
	createCheckout *billingusecases.CreateCheckoutUseCase,
	previewPromo *billingusecases.PreviewPromoCodeUseCase,
	settleCheckout *billingusecases.SettleCheckoutUseCase,
	listOrders *billingusecases.ListOrdersUseCase,
	getOrderSummary *billingusecases.GetOrderSummaryUseCase,
) *BillingHandler {
	return &BillingHandler{
		createCheckout:  createCheckout,
		previewPromo:    previewPromo,
		settleCheckout:  settleCheckout,
		listOrders:      listOrders,
		getOrderSummary: getOrderSummary,
	}
}

type createCheckoutRequest struct {
	ServerID       string     `json:"server_id" binding:"required"`
	Plan           string     `json:"plan" binding:"required"`
	Quantity       int        `json:"quantity" binding:"required"`
	PlannedStartAt *time.Time `json:"planned_start_at"`
	PromoCode      string     `json:"promo_code"`
}

// CreateCheckout opens a checkout session for a promotion purchase.
// POST /api/v1/billing/checkout
func (h *BillingHandler) CreateCheckout(c *gin.Context) {
	var req createCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.createCheckout.Execute(c.Request.Context(), billingusecases.CreateCheckoutCommand{
		UserID:         middleware.UserID(c),
		UserEmail:      middleware.UserEmail(c),
		ServerID:       req.ServerID,
		Plan:           req.Plan,
		Quantity:       req.Quantity,
		PlannedStartAt: req.PlannedStartAt,
		PromoCode:      req.PromoCode,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "checkout created")
}

type previewPromoRequest struct {
	ServerID string `json:"server_id" binding:"required"`
	Plan     string `json:"plan" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
	Code     string `json:"code" binding:"required"`
}

// PreviewPromoCode prices a checkout with a promo code, without side effects.
// POST /api/v1/billing/promo/preview
func (h *BillingHandler) PreviewPromoCode(c *gin.Context) {
	var req previewPromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.previewPromo.Execute(c.Request.Context(), billingusecases.PreviewPromoCodeCommand{
		UserID:   middleware.UserID(c),
		ServerID: req.ServerID,
		Plan:     req.Plan,
		Quantity: req.Quantity,
		Code:     req.Code,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Webhook receives payment provider events. Unauthenticated; trust comes
// from the signature over the raw body.
// POST /api/v1/billing/webhook
func (h *BillingHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "failed to read payload")
		return
	}

	result, err := h.settleCheckout.Execute(c.Request.Context(), billingusecases.SettleCheckoutCommand{
		Payload:   payload,
		Signature: c.GetHeader("X-Webhook-Signature"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListOrders returns the caller's order history.
// GET /api/v1/billing/orders
func (h *BillingHandler) ListOrders(c *gin.Context) {
	result, err := h.listOrders.Execute(c.Request.Context(), billingusecases.ListOrdersCommand{
		UserID: middleware.UserID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetOrderSummary returns one order by checkout session id, for the
// post-checkout receipt page.
// GET /api/v1/billing/orders/session/:sessionID
func (h *BillingHandler) GetOrderSummary(c *gin.Context) {
	result, err := h.getOrderSummary.Execute(c.Request.Context(), billingusecases.GetOrderSummaryCommand{
		UserID:            middleware.UserID(c),
		CheckoutSessionID: c.Param("sessionID"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}
