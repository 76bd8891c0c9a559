package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/perkmart/perkmart/internal/server/http/dto"
)

// BalanceHandler manages ledger read endpoints.
type BalanceHandler struct {
	facade BalanceFacade
}

// NewBalanceHandler constructs BalanceHandler.
func NewBalanceHandler(facade BalanceFacade) *BalanceHandler {
	return &BalanceHandler{facade: facade}
}

// Summary handles GET /api/user/balance.
func (h *BalanceHandler) Summary(c *gin.Context) {
	userID := CurrentUserID(c)
	summary, err := h.facade.Balance(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{Points: summary.Points, Withdrawn: summary.Withdrawn})
}

// History handles GET /api/user/history.
func (h *BalanceHandler) History(c *gin.Context) {
	userID := CurrentUserID(c)
	events, err := h.facade.PointHistory(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(events) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.PointEventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, dto.PointEventResponse{
			Points:    e.Points,
			Reason:    string(e.Reason),
			Reference: e.Reference,
			CreatedAt: e.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, resp)
}
