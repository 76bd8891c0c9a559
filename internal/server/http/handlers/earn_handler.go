package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/perkmart/perkmart/internal/domain/errors"
	"github.com/perkmart/perkmart/internal/server/http/dto"
)

// EarnHandler manages point earning endpoints.
type EarnHandler struct {
	facade EarnFacade
}

// NewEarnHandler constructs EarnHandler.
func NewEarnHandler(facade EarnFacade) *EarnHandler {
	return &EarnHandler{facade: facade}
}

// Tasks handles GET /api/user/tasks.
func (h *EarnHandler) Tasks(c *gin.Context) {
	tasks, err := h.facade.Tasks(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(tasks) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, dto.TaskResponse{ID: t.ID, Title: t.Title, Reward: t.Reward})
	}
	c.JSON(http.StatusOK, resp)
}

// CompleteTask handles POST /api/user/tasks/:id/complete.
func (h *EarnHandler) CompleteTask(c *gin.Context) {
	userID := CurrentUserID(c)
	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	earned, err := h.facade.CompleteTask(c.Request.Context(), userID, taskID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, dto.RewardResponse{Earned: earned})
}

// Scratch handles POST /api/user/scratch.
func (h *EarnHandler) Scratch(c *gin.Context) {
	userID := CurrentUserID(c)
	earned, err := h.facade.Scratch(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.RewardResponse{Earned: earned})
}
