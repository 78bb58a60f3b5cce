package api

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"school-admin-db/internal/attendance"
	"school-admin-db/internal/config"
	"school-admin-db/internal/db"
	"school-admin-db/internal/importer"
	"school-admin-db/internal/logger"
	"school-admin-db/internal/model"
	"school-admin-db/internal/otp"
	"school-admin-db/internal/settings"
	"school-admin-db/internal/sms"
	"school-admin-db/internal/storage"
	"school-admin-db/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Handler struct {
	repo       db.Repository
	importer   *importer.Service
	attendance *attendance.Service
	settings   *settings.Service
	otpStore   otp.Store
	smsClient  *sms.Client
	archive    storage.Storage
	cfg        *config.Config
	log        zerolog.Logger
}

func NewHandler(
	repo db.Repository,
	otpStore otp.Store,
	archive storage.Storage,
	cfg *config.Config,
) *Handler {
	st := settings.NewService(repo, cfg)
	return &Handler{
		repo:       repo,
		importer:   importer.NewService(repo, cfg),
		attendance: attendance.NewService(repo, st, cfg),
		settings:   st,
		otpStore:   otpStore,
		smsClient:  sms.NewClient(cfg),
		archive:    archive,
		cfg:        cfg,
		log:        logger.Get(),
	}
}

// readUpload stages the multipart payload in a temp file and returns its
// bytes. The temp file is removed by the returned cleanup on every exit
// path, success or failure.
func (h *Handler) readUpload(c *gin.Context) ([]byte, func(), error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, func() {}, errors.ErrNoFileProvided
	}

	tmpPath := filepath.Join(os.TempDir(), uuid.NewString()+filepath.Ext(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		return nil, func() {}, err
	}
	cleanup := func() {
		if err := os.Remove(tmpPath); err != nil {
			h.log.Warn().Err(err).Str("path", tmpPath).Msg("temp upload not removed")
		}
	}

	data, err := os.ReadFile(tmpPath)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	return data, cleanup, nil
}

// archiveUpload stores the imported workbook when archiving is enabled.
// Best-effort: a storage failure is logged, never surfaced.
func (h *Handler) archiveUpload(c *gin.Context, prefix string, data []byte) {
	if h.archive == nil || !h.cfg.Storage.S3.Enabled {
		return
	}
	key := fmt.Sprintf("%s/%s.xlsx", prefix, uuid.NewString())
	if err := h.archive.Upload(c.Request.Context(), key, bytes.NewReader(data)); err != nil {
		h.log.Warn().Err(err).Str("key", key).Msg("workbook archive failed")
	}
}

func (h *Handler) UploadStudents(c *gin.Context) {
	h.uploadRoster(c, model.KindStudent, false)
}

func (h *Handler) UploadTeachers(c *gin.Context) {
	h.uploadRoster(c, model.KindTeacher, false)
}

// ExitImportStudents runs the same pipeline as UploadStudents; the exit
// system's UI expects its column failure wrapped in a message field.
func (h *Handler) ExitImportStudents(c *gin.Context) {
	h.uploadRoster(c, model.KindStudent, true)
}

func (h *Handler) uploadRoster(c *gin.Context, kind model.RecordKind, exitVariant bool) {
	data, cleanup, err := h.readUpload(c)
	defer cleanup()
	if err == errors.ErrNoFileProvided {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("failed to stage upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	result, err := h.importer.Import(c.Request.Context(), kind, data)
	if err != nil {
		h.log.Error().Err(err).Str("kind", string(kind)).Msg("roster import failed")
		if exitVariant && err == errors.ErrMissingRequiredColumns {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error: " + err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.archiveUpload(c, "imports/"+string(kind), data)

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Imported %d records successfully", result.Written),
		"success": result.Written,
	})
}

func (h *Handler) UploadAttendance(c *gin.Context) {
	data, cleanup, err := h.readUpload(c)
	defer cleanup()
	if err == errors.ErrNoFileProvided {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("failed to stage upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	overrideDate := c.PostForm("date")

	result, err := h.attendance.Upload(c.Request.Context(), data, overrideDate)
	if err != nil {
		h.log.Error().Err(err).Msg("attendance upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.archiveUpload(c, "imports/attendance", data)

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"datesProcessed": result.DatesProcessed,
	})
}

func (h *Handler) AttendanceReport(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing date parameter"})
		return
	}

	report, err := h.repo.AttendanceReport(c.Request.Context(), date)
	if err != nil {
		h.log.Error().Err(err).Str("date", date).Msg("attendance report failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": date, "rows": report})
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.cfg.App.Name,
		"version": h.cfg.App.Version,
	})
}
