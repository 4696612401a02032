package controller

import (
	"context"
	"net/http"

	"github.com/Freeeeeet/music_school/internal/model"
	"github.com/Freeeeeet/music_school/internal/service"
	"github.com/gin-gonic/gin"
)

func (h *Handlers) ListEvents(c *gin.Context) {
	date, ok := queryDate(c, "date")
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

	events, err := h.schedule.ListEvents(c.Request.Context(), service.EventFilter{
		Date: date,
		Type: c.Query("type"),
		From: from,
		To:   to,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *Handlers) GetEvent(c *gin.Context) {
	id, ok := pathID(c, model.EntityEvent)
	if !ok {
		return
	}
	event, err := h.schedule.GetEvent(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *Handlers) CreateEvent(c *gin.Context) {
	var fields model.Event
	if !bindJSON(c, &fields) {
		return
	}
	event, err := h.schedule.CreateEvent(c.Request.Context(), fields)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *Handlers) UpdateEvent(c *gin.Context) {
	id, ok := pathID(c, model.EntityEvent)
	if !ok {
		return
	}
	var patch model.EventPatch
	if !bindJSON(c, &patch) {
		return
	}
	event, err := h.schedule.UpdateEvent(c.Request.Context(), id, patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *Handlers) DeleteEvent(c *gin.Context) {
	id, ok := pathID(c, model.EntityEvent)
	if !ok {
		return
	}
	event, err := h.schedule.DeleteEvent(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *Handlers) ListReplacements(c *gin.Context) {
	studentID, ok := queryInt64(c, "student_id")
	if !ok {
		return
	}
	requests, err := h.schedule.ListReplacements(c.Request.Context(), service.ReplacementFilter{
		Status:    c.Query("status"),
		StudentID: studentID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *Handlers) GetReplacement(c *gin.Context) {
	id, ok := pathID(c, model.EntityReplacement)
	if !ok {
		return
	}
	request, err := h.schedule.GetReplacement(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

func (h *Handlers) CreateReplacement(c *gin.Context) {
	var fields model.Replacement
	if !bindJSON(c, &fields) {
		return
	}
	request, err := h.schedule.CreateReplacement(c.Request.Context(), fields)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, request)
}

func (h *Handlers) UpdateReplacement(c *gin.Context) {
	id, ok := pathID(c, model.EntityReplacement)
	if !ok {
		return
	}
	var patch model.ReplacementPatch
	if !bindJSON(c, &patch) {
		return
	}
	request, err := h.schedule.UpdateReplacement(c.Request.Context(), id, patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

func (h *Handlers) DeleteReplacement(c *gin.Context) {
	id, ok := pathID(c, model.EntityReplacement)
	if !ok {
		return
	}
	request, err := h.schedule.DeleteReplacement(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

func (h *Handlers) ApproveReplacement(c *gin.Context) {
	h.decideReplacement(c, h.schedule.ApproveReplacement)
}

func (h *Handlers) RejectReplacement(c *gin.Context) {
	h.decideReplacement(c, h.schedule.RejectReplacement)
}

type decideFunc func(ctx context.Context, id int64, d service.Decision) (*model.Replacement, error)

func (h *Handlers) decideReplacement(c *gin.Context, decide decideFunc) {
	id, ok := pathID(c, model.EntityReplacement)
	if !ok {
		return
	}
	var d service.Decision
	if !bindJSON(c, &d) {
		return
	}
	request, err := decide(c.Request.Context(), id, d)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}
