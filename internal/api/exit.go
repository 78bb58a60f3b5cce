package api

import (
	"net/http"
	"strconv"

	"school-admin-db/internal/model"
	"school-admin-db/pkg/errors"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateExitRequest(c *gin.Context) {
	var req model.ExitRequestCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	id, err := h.repo.InsertExitRequest(c.Request.Context(), model.ExitRequest{
		StudentID:   req.StudentID,
		Reason:      req.Reason,
		Date:        req.Date,
		RequestedBy: callerUsername(c),
	})
	if err != nil {
		h.log.Error().Err(err).Msg("exit request create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id, "status": model.ExitStatusPending})
}

// ConfirmExitRequest is the guard's side of the workflow: flips a pending
// request to confirmed, once.
func (h *Handler) ConfirmExitRequest(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	if err := h.repo.ConfirmExitRequest(c.Request.Context(), id, callerUsername(c)); err != nil {
		if err == errors.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "No pending request with this ID"})
			return
		}
		h.log.Error().Err(err).Int64("id", id).Msg("exit confirm failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Exit confirmed"})
}

func (h *Handler) ListExitRequests(c *gin.Context) {
	reqs, err := h.repo.ListExitRequests(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.log.Error().Err(err).Msg("exit list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, reqs)
}
