package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	voteusecases "quokkalist/internal/application/vote/usecases"
	"quokkalist/internal/interfaces/http/middleware"
	"quokkalist/internal/shared/utils"
)

// VoteHandler serves the vote endpoint.
type VoteHandler struct {
	voteForServer *voteusecases.VoteForServerUseCase
}

func NewVoteHandler(voteForServer *voteusecases.VoteForServerUseCase) *VoteHandler {
	return &VoteHandler{voteForServer: voteForServer}
}

// Vote records one vote for a server by the authenticated user.
// POST /api/v1/servers/:serverID/vote
func (h *VoteHandler) Vote(c *gin.Context) {
	result, err := h.voteForServer.Execute(c.Request.Context(), voteusecases.VoteForServerCommand{
		ServerID: c.Param("serverID"),
		UserID:   middleware.UserID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "vote recorded", result)
}
