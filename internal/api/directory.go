package api

import (
	"net/http"
	"strconv"

	"school-admin-db/internal/model"
	"school-admin-db/pkg/errors"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListStudents(c *gin.Context) {
	h.listDirectory(c, model.KindStudent)
}

func (h *Handler) ListTeachers(c *gin.Context) {
	h.listDirectory(c, model.KindTeacher)
}

func (h *Handler) listDirectory(c *gin.Context, kind model.RecordKind) {
	recs, err := h.repo.ListDirectory(c.Request.Context(), kind)
	if err != nil {
		h.log.Error().Err(err).Str("kind", string(kind)).Msg("directory list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (h *Handler) CreateStudent(c *gin.Context) {
	h.createDirectory(c, model.KindStudent)
}

func (h *Handler) CreateTeacher(c *gin.Context) {
	h.createDirectory(c, model.KindTeacher)
}

func (h *Handler) createDirectory(c *gin.Context, kind model.RecordKind) {
	var req model.DirectoryRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	rec := model.DirectoryRecord{
		Kind:       kind,
		NationalID: req.NationalID,
		Name:       req.Name,
		Grade:      req.Grade,
		ClassName:  req.ClassName,
		Mobile:     req.Mobile,
		Subject:    req.Subject,
	}
	id, err := h.repo.EnsureDirectoryRecord(c.Request.Context(), rec)
	if err != nil {
		h.log.Error().Err(err).Msg("directory create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) UpdateDirectoryRecord(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record ID"})
		return
	}

	var req model.DirectoryRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	rec := model.DirectoryRecord{
		ID:         id,
		NationalID: req.NationalID,
		Name:       req.Name,
		Grade:      req.Grade,
		ClassName:  req.ClassName,
		Mobile:     req.Mobile,
		Subject:    req.Subject,
	}
	if err := h.repo.UpdateDirectoryRecord(c.Request.Context(), rec); err != nil {
		if err == errors.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
			return
		}
		h.log.Error().Err(err).Int64("id", id).Msg("directory update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Record updated"})
}

func (h *Handler) DeleteDirectoryRecord(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record ID"})
		return
	}

	if err := h.repo.DeleteDirectoryRecord(c.Request.Context(), id); err != nil {
		if err == errors.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
			return
		}
		h.log.Error().Err(err).Int64("id", id).Msg("directory delete failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Record deleted"})
}
