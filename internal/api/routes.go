package api

import (
	"time"

	"school-admin-db/internal/config"
	"school-admin-db/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding rules used by request DTOs.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("dateymd", func(fl validator.FieldLevel) bool {
			_, err := time.Parse("2006-01-02", fl.Field().String())
			return err == nil
		})
	}
}

func SetupRoutes(router *gin.Engine, handler *Handler, cfg *config.Config) {
	// Health check
	router.GET("/health", handler.HealthCheck)

	api := router.Group("/api")

	// Public surface: login and the visitor kiosk.
	api.POST("/auth/login", handler.Login)
	visitors := api.Group("/visitors")
	{
		visitors.POST("/send-otp", handler.SendOTP)
		visitors.POST("/verify-otp", handler.VerifyOTP)
		visitors.POST("/checkin", handler.Checkin)
	}

	// Everything else needs a bearer token.
	authed := api.Group("")
	authed.Use(AuthMiddleware(cfg))
	{
		adminOnly := RequireRole(model.RoleAdmin)

		// Bulk imports
		authed.POST("/upload-students", adminOnly, handler.UploadStudents)
		authed.POST("/upload-teachers", adminOnly, handler.UploadTeachers)
		authed.POST("/attendance/upload", handler.UploadAttendance)
		authed.GET("/attendance/report", handler.AttendanceReport)

		// Directory
		authed.GET("/students", handler.ListStudents)
		authed.POST("/students", adminOnly, handler.CreateStudent)
		authed.GET("/teachers", handler.ListTeachers)
		authed.POST("/teachers", adminOnly, handler.CreateTeacher)
		authed.PUT("/directory/:id", adminOnly, handler.UpdateDirectoryRecord)
		authed.DELETE("/directory/:id", adminOnly, handler.DeleteDirectoryRecord)

		// Notes and commendations
		authed.POST("/notes", handler.CreateNote)
		authed.GET("/notes", handler.ListNotes)

		// Exit permissions
		exit := authed.Group("/exit")
		{
			exit.POST("/import-students", adminOnly, handler.ExitImportStudents)
			exit.POST("/requests", adminOnly, handler.CreateExitRequest)
			exit.POST("/requests/:id/confirm", RequireRole(model.RoleAdmin, model.RoleGuard), handler.ConfirmExitRequest)
			exit.GET("/requests", handler.ListExitRequests)
		}

		// Visitor administration
		authed.GET("/visitors", handler.ListVisitors)
		authed.POST("/visitors/:id/checkout", RequireRole(model.RoleAdmin, model.RoleGuard), handler.Checkout)

		// Settings
		authed.GET("/settings/:key", handler.GetSetting)
		authed.PUT("/settings/:key", adminOnly, handler.PutSetting)
	}
}
