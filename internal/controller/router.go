package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const apiPrefix = "/api/v1"

// NewRouter wires the gin engine with the API routes and middlewares.
func NewRouter(h *Handlers, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group(apiPrefix)

	students := api.Group("/students")
	students.GET("", h.ListStudents)
	students.GET("/:id", h.GetStudent)
	students.POST("", h.CreateStudent)
	students.PATCH("/:id", h.UpdateStudent)
	students.DELETE("/:id", h.DeleteStudent)

	teachers := api.Group("/teachers")
	teachers.GET("", h.ListTeachers)
	teachers.GET("/:id", h.GetTeacher)
	teachers.POST("", h.CreateTeacher)
	teachers.PATCH("/:id", h.UpdateTeacher)
	teachers.DELETE("/:id", h.DeleteTeacher)

	classes := api.Group("/classes")
	classes.GET("", h.ListClasses)
	classes.GET("/:id", h.GetClass)
	classes.POST("", h.CreateClass)
	classes.PATCH("/:id", h.UpdateClass)
	classes.DELETE("/:id", h.DeleteClass)

	attendance := api.Group("/attendance")
	attendance.GET("", h.ListAttendance)
	attendance.GET("/:id", h.GetAttendance)
	attendance.POST("", h.CreateAttendance)
	attendance.POST("/mark", h.MarkAttendance)
	attendance.PATCH("/:id", h.UpdateAttendance)
	attendance.DELETE("/:id", h.DeleteAttendance)

	events := api.Group("/events")
	events.GET("", h.ListEvents)
	events.GET("/:id", h.GetEvent)
	events.POST("", h.CreateEvent)
	events.PATCH("/:id", h.UpdateEvent)
	events.DELETE("/:id", h.DeleteEvent)

	bills := api.Group("/bills")
	bills.GET("", h.ListBills)
	bills.GET("/overdue", h.OverdueBills)
	bills.GET("/:id", h.GetBill)
	bills.POST("", h.CreateBill)
	bills.POST("/:id/pay", h.PayBill)
	bills.PATCH("/:id", h.UpdateBill)
	bills.DELETE("/:id", h.DeleteBill)

	replacements := api.Group("/replacements")
	replacements.GET("", h.ListReplacements)
	replacements.GET("/:id", h.GetReplacement)
	replacements.POST("", h.CreateReplacement)
	replacements.POST("/:id/approve", h.ApproveReplacement)
	replacements.POST("/:id/reject", h.RejectReplacement)
	replacements.PATCH("/:id", h.UpdateReplacement)
	replacements.DELETE("/:id", h.DeleteReplacement)

	api.GET("/dashboard", h.Dashboard)
	api.GET("/reports/export", h.ExportReport)
	api.GET("/reports/:kind", h.Report)

	logger.Info("router initialized")

	return r
}
