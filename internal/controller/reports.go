package controller

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handlers) Dashboard(c *gin.Context) {
	dashboard, err := h.reports.Dashboard(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (h *Handlers) Report(c *gin.Context) {
	days, ok := queryDays(c)
	if !ok {
		return
	}
	report, err := h.reports.Report(c.Request.Context(), c.Param("kind"), days)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ExportReport отдаёт книгу xlsx; книга целиком собирается в буфер до записи ответа
func (h *Handlers) ExportReport(c *gin.Context) {
	days, ok := queryDays(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.reports.ExportXLSX(c.Request.Context(), days, &buf); err != nil {
		h.respondError(c, err)
		return
	}

	filename := fmt.Sprintf("report-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
