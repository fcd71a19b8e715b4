package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	listingusecases "quokkalist/internal/application/listing/usecases"
	promotionusecases "quokkalist/internal/application/promotion/usecases"
	"quokkalist/internal/interfaces/http/middleware"
	"quokkalist/internal/shared/utils"
)

// ListingHandler serves per-server stats, traffic counters, and the
// promotion status badge.
type ListingHandler struct {
	trackStat       *listingusecases.TrackStatUseCase
	getStats        *listingusecases.GetServerStatsUseCase
	getActiveWindow *promotionusecases.GetActiveWindowUseCase
	listWindows     *promotionusecases.ListWindowsUseCase
}

func NewListingHandler(
	trackStat *listingusecases.TrackStatUseCase,
	getStats *listingusecases.GetServerStatsUseCase,
	getActiveWindow *promotionusecases.GetActiveWindowUseCase,
	listWindows *promotionusecases.ListWindowsUseCase,
) *ListingHandler {
	return &ListingHandler{
		trackStat:       trackStat,
		getStats:        getStats,
		getActiveWindow: getActiveWindow,
		listWindows:     listWindows,
	}
}

type trackStatRequest struct {
	Kind string `json:"kind" binding:"required"`
}

// TrackStat bumps a traffic counter (view, visit, or click).
// POST /api/v1/servers/:serverID/stats
func (h *ListingHandler) TrackStat(c *gin.Context) {
	var req trackStatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.trackStat.Execute(c.Request.Context(), listingusecases.TrackStatCommand{
		ServerID: c.Param("serverID"),
		Kind:     listingusecases.StatKind(req.Kind),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

// GetStats returns the counter row for a server.
// GET /api/v1/servers/:serverID/stats
func (h *ListingHandler) GetStats(c *gin.Context) {
	result, err := h.getStats.Execute(c.Request.Context(), listingusecases.GetServerStatsCommand{
		ServerID: c.Param("serverID"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetPromotion reports whether the server is currently promoted.
// GET /api/v1/servers/:serverID/promotion
func (h *ListingHandler) GetPromotion(c *gin.Context) {
	result, err := h.getActiveWindow.Execute(c.Request.Context(), promotionusecases.GetActiveWindowCommand{
		ServerID: c.Param("serverID"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListMyWindows returns the promotion windows bought for the caller's servers.
// GET /api/v1/promotions
func (h *ListingHandler) ListMyWindows(c *gin.Context) {
	result, err := h.listWindows.Execute(c.Request.Context(), promotionusecases.ListWindowsCommand{
		OwnerID: middleware.UserID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}
