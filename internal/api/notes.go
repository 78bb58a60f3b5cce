package api

import (
	"net/http"
	"strconv"

	"school-admin-db/internal/model"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateNote(c *gin.Context) {
	var req model.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	note := model.Note{
		StudentID: req.StudentID,
		Type:      req.Type,
		Body:      req.Body,
		CreatedBy: callerUsername(c),
	}
	id, err := h.repo.InsertNote(c.Request.Context(), note)
	if err != nil {
		h.log.Error().Err(err).Msg("note create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) ListNotes(c *gin.Context) {
	var studentID int64
	if raw := c.Query("studentId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid studentId parameter"})
			return
		}
		studentID = parsed
	}

	notes, err := h.repo.ListNotes(c.Request.Context(), studentID)
	if err != nil {
		h.log.Error().Err(err).Msg("note list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, notes)
}
