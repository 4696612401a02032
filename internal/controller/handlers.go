package controller

import (
	"net/http"
	"strconv"

	"github.com/Freeeeeet/music_school/internal/model"
	"github.com/Freeeeeet/music_school/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers adapts the services to gin.
type Handlers struct {
	roster     *service.RosterService
	attendance *service.AttendanceService
	billing    *service.BillingService
	schedule   *service.ScheduleService
	reports    *service.ReportService
	logger     *zap.Logger
}

func NewHandlers(
	roster *service.RosterService,
	attendance *service.AttendanceService,
	billing *service.BillingService,
	schedule *service.ScheduleService,
	reports *service.ReportService,
	logger *zap.Logger,
) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		roster:     roster,
		attendance: attendance,
		billing:    billing,
		schedule:   schedule,
		reports:    reports,
		logger:     logger,
	}
}

// pathID разбирает :id; нечисловой id отвечает 404 как отсутствующая запись
func pathID(c *gin.Context, entity string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:       "not found",
			Description: model.NewNotFound(entity, 0).Error(),
		})
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func queryInt64(c *gin.Context, key string) (int64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		badRequest(c, key+" must be an integer")
		return 0, false
	}
	return v, true
}

func queryDate(c *gin.Context, key string) (model.Date, bool) {
	raw := c.Query(key)
	if raw == "" {
		return model.Date{}, true
	}
	d, err := model.ParseDate(raw)
	if err != nil {
		badRequest(c, key+" must be a date in "+model.DateLayout+" format")
		return model.Date{}, false
	}
	return d, true
}

// queryDays читает окно отчёта; пусто - значение по умолчанию
func queryDays(c *gin.Context) (int, bool) {
	raw := c.Query("days")
	if raw == "" {
		return service.DefaultReportDays, true
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		badRequest(c, "days must be a positive integer")
		return 0, false
	}
	return days, true
}
