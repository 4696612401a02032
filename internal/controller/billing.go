package controller

import (
	"net/http"

	"github.com/Freeeeeet/music_school/internal/model"
	"github.com/Freeeeeet/music_school/internal/service"
	"github.com/gin-gonic/gin"
)

// PayRequest is the body of POST /bills/:id/pay.
type PayRequest struct {
	PaymentMethod string `json:"payment_method"`
}

func (h *Handlers) ListBills(c *gin.Context) {
	studentID, ok := queryInt64(c, "student_id")
	if !ok {
		return
	}
	bills, err := h.billing.List(c.Request.Context(), service.BillFilter{
		StudentID: studentID,
		Status:    c.Query("status"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bills)
}

func (h *Handlers) OverdueBills(c *gin.Context) {
	bills, err := h.billing.Overdue(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bills)
}

func (h *Handlers) GetBill(c *gin.Context) {
	id, ok := pathID(c, model.EntityBill)
	if !ok {
		return
	}
	bill, err := h.billing.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bill)
}

func (h *Handlers) CreateBill(c *gin.Context) {
	var fields model.Bill
	if !bindJSON(c, &fields) {
		return
	}
	bill, err := h.billing.Create(c.Request.Context(), fields)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bill)
}

// PayBill: тело необязательно, пустой способ оплаты допустим
func (h *Handlers) PayBill(c *gin.Context) {
	id, ok := pathID(c, model.EntityBill)
	if !ok {
		return
	}
	var req PayRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}
	bill, err := h.billing.MarkPaid(c.Request.Context(), id, req.PaymentMethod)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bill)
}

func (h *Handlers) UpdateBill(c *gin.Context) {
	id, ok := pathID(c, model.EntityBill)
	if !ok {
		return
	}
	var patch model.BillPatch
	if !bindJSON(c, &patch) {
		return
	}
	bill, err := h.billing.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bill)
}

func (h *Handlers) DeleteBill(c *gin.Context) {
	id, ok := pathID(c, model.EntityBill)
	if !ok {
		return
	}
	bill, err := h.billing.Delete(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bill)
}
