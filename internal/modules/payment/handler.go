package payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Nv-Lunar/ukk-pet-clinic/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type payRequest struct {
	PaymentMethodID int64 `json:"payment_method_id"`
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings/:id/done", h.MarkDone)
	rg.POST("/bookings/:id/pay", h.Pay)
}

func (h *Handler) MarkDone(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}
	b, err := h.service.MarkDone(c.Request.Context(), id)
	if err != nil {
		h.writePaymentError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"booking": gin.H{"id": b.ID, "name": b.Name, "state": b.State, "payment_amount": b.PaymentAmount()},
	})
}

func (h *Handler) Pay(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}
	var req payRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	b, err := h.service.Pay(c.Request.Context(), id, req.PaymentMethodID)
	if err != nil {
		h.writePaymentError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"booking": gin.H{"id": b.ID, "name": b.Name, "state": b.State, "payment_amount": b.PaymentAmount()},
	})
}

func (h *Handler) writePaymentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrAlreadyRecorded):
		response.Error(c, http.StatusConflict, "ALREADY_RECORDED", ErrAlreadyRecorded.Error())
	case errors.Is(err, ErrAlreadyPaid):
		response.Error(c, http.StatusConflict, "ALREADY_PAID", ErrAlreadyPaid.Error())
	case errors.Is(err, ErrInvalidAmount):
		response.Error(c, http.StatusBadRequest, "INVALID_AMOUNT", ErrInvalidAmount.Error())
	case errors.Is(err, ErrMissingPaymentMethod):
		response.Error(c, http.StatusBadRequest, "MISSING_PAYMENT_METHOD", ErrMissingPaymentMethod.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process payment")
	}
}
