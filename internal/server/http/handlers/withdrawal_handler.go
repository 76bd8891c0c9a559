package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/perkmart/perkmart/internal/domain/errors"
	"github.com/perkmart/perkmart/internal/domain/model"
	"github.com/perkmart/perkmart/internal/server/http/dto"
)

// WithdrawalHandler manages redemption endpoints.
type WithdrawalHandler struct {
	facade WithdrawalFacade
}

// NewWithdrawalHandler constructs WithdrawalHandler.
func NewWithdrawalHandler(facade WithdrawalFacade) *WithdrawalHandler {
	return &WithdrawalHandler{facade: facade}
}

// Submit handles POST /api/user/withdrawals.
func (h *WithdrawalHandler) Submit(c *gin.Context) {
	userID := CurrentUserID(c)
	var req dto.WithdrawSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	created, err := h.facade.SubmitWithdrawal(c.Request.Context(), userID, req.Points, model.VoucherType(req.VoucherType))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrNotVerified),
			errors.Is(err, domainErrors.ErrBanned),
			errors.Is(err, domainErrors.ErrUnderReview):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, domainErrors.ErrCountryNotSet),
			errors.Is(err, domainErrors.ErrInvalidDenomination),
			errors.Is(err, domainErrors.ErrInvalidVoucherType),
			errors.Is(err, domainErrors.ErrInvalidAmount):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, domainErrors.ErrInsufficientBalance):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
		case errors.Is(err, domainErrors.ErrRedemptionPaused):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, withdrawalResponse(created))
}

// List handles GET /api/user/withdrawals.
func (h *WithdrawalHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	withdrawals, err := h.facade.Withdrawals(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(withdrawals) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.WithdrawalResponse, 0, len(withdrawals))
	for i := range withdrawals {
		resp = append(resp, withdrawalResponse(&withdrawals[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func withdrawalResponse(w *model.WithdrawRequest) dto.WithdrawalResponse {
	return dto.WithdrawalResponse{
		ID:          w.ID,
		Points:      w.Points,
		Payout:      w.Payout,
		VoucherType: string(w.VoucherType),
		Code:        w.Code,
		Status:      string(w.Status),
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}
