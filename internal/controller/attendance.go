package controller

import (
	"net/http"

	"github.com/Freeeeeet/music_school/internal/model"
	"github.com/Freeeeeet/music_school/internal/service"
	"github.com/gin-gonic/gin"
)

func (h *Handlers) ListAttendance(c *gin.Context) {
	studentID, ok := queryInt64(c, "student_id")
	if !ok {
		return
	}
	classID, ok := queryInt64(c, "class_id")
	if !ok {
		return
	}
	from, ok := queryDate(c, "from")
	if !ok {
		return
	}
	to, ok := queryDate(c, "to")
	if !ok {
		return
	}

	records, err := h.attendance.List(c.Request.Context(), service.AttendanceFilter{
		StudentID: studentID,
		ClassID:   classID,
		From:      from,
		To:        to,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *Handlers) GetAttendance(c *gin.Context) {
	id, ok := pathID(c, model.EntityAttendance)
	if !ok {
		return
	}
	record, err := h.attendance.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Handlers) CreateAttendance(c *gin.Context) {
	var fields model.Attendance
	if !bindJSON(c, &fields) {
		return
	}
	record, err := h.attendance.Create(c.Request.Context(), fields)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *Handlers) MarkAttendance(c *gin.Context) {
	var req service.MarkRequest
	if !bindJSON(c, &req) {
		return
	}
	record, err := h.attendance.Mark(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *Handlers) UpdateAttendance(c *gin.Context) {
	id, ok := pathID(c, model.EntityAttendance)
	if !ok {
		return
	}
	var patch model.AttendancePatch
	if !bindJSON(c, &patch) {
		return
	}
	record, err := h.attendance.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Handlers) DeleteAttendance(c *gin.Context) {
	id, ok := pathID(c, model.EntityAttendance)
	if !ok {
		return
	}
	record, err := h.attendance.Delete(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}
