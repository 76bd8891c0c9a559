package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/perkmart/perkmart/internal/domain/errors"
	"github.com/perkmart/perkmart/internal/domain/model"
	"github.com/perkmart/perkmart/internal/server/http/dto"
	"github.com/perkmart/perkmart/internal/usecase"
)

// AdminHandler manages operator endpoints.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// ResolveBatch handles POST /api/admin/withdrawals/resolve.
func (h *AdminHandler) ResolveBatch(c *gin.Context) {
	var req dto.ResolveBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if len(req.Items) == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	items := make([]usecase.Resolution, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.Resolution{
			RequestID: it.RequestID,
			Status:    model.WithdrawalStatus(it.Status),
			Code:      it.Code,
		})
	}

	results := h.facade.ResolveWithdrawals(c.Request.Context(), items)
	resp := make([]dto.ResolutionResultResponse, 0, len(results))
	for _, r := range results {
		resp = append(resp, dto.ResolutionResultResponse{
			RequestID: r.RequestID,
			Outcome:   string(r.Outcome),
			Reason:    r.Reason,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// Pending handles GET /api/admin/withdrawals/pending.
func (h *AdminHandler) Pending(c *gin.Context) {
	pending, err := h.facade.PendingWithdrawals(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(pending) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.PendingWithdrawalResponse, 0, len(pending))
	for i := range pending {
		resp = append(resp, dto.PendingWithdrawalResponse{
			WithdrawalResponse: withdrawalResponse(&pending[i].WithdrawRequest),
			UserID:             pending[i].UserID,
			OwnerStanding:      string(pending[i].OwnerStanding),
		})
	}
	c.JSON(http.StatusOK, resp)
}

// AddCodes handles POST /api/admin/codes.
func (h *AdminHandler) AddCodes(c *gin.Context) {
	var req dto.AddCodesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	codes := make([]model.NewCode, 0, len(req.Codes))
	for _, nc := range req.Codes {
		codes = append(codes, model.NewCode{
			Code:        nc.Code,
			Points:      nc.Points,
			VoucherType: model.VoucherType(nc.VoucherType),
		})
	}

	added, err := h.facade.AddCodes(c.Request.Context(), codes)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidAmount),
			errors.Is(err, domainErrors.ErrInvalidVoucherType):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, dto.AddCodesResponse{Added: added})
}

// SetStanding handles PUT /api/admin/users/:id/standing.
func (h *AdminHandler) SetStanding(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	var req dto.StandingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.SetStanding(c.Request.Context(), userID, model.Standing(req.Standing)); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrConflict):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unknown standing"})
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.Status(http.StatusOK)
}

// SetRedemptionPaused handles PUT /api/admin/redemption.
func (h *AdminHandler) SetRedemptionPaused(c *gin.Context) {
	var req dto.RedemptionPauseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if err := h.facade.SetRedemptionPaused(c.Request.Context(), req.Paused); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}

// CreateTask handles POST /api/admin/tasks.
func (h *AdminHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	task, err := h.facade.CreateTask(c.Request.Context(), req.Title, req.Reward)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidAmount) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusCreated, dto.TaskResponse{ID: task.ID, Title: task.Title, Reward: task.Reward})
}
