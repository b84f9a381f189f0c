package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Nv-Lunar/ukk-pet-clinic/internal/domain"
	"github.com/Nv-Lunar/ukk-pet-clinic/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings", h.ListBookings)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.PUT("/bookings/:id", h.UpdateBooking)
	rg.DELETE("/bookings/:id", h.DeleteBooking)
	rg.POST("/bookings/:id/cancel", h.CancelBooking)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"booking": toBookingResponse(b)})
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}
	b, customer, doctor, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}
	detail := BookingDetailResponse{BookingResponse: toBookingResponse(b)}
	if customer != nil {
		detail.CustomerName = customer.Name
		detail.CustomerPhone = customer.Phone
		detail.CustomerAddress = customer.Address
		detail.CustomerEmail = customer.Email
	}
	if doctor != nil {
		detail.DoctorName = doctor.Name
	}
	response.Success(c, http.StatusOK, gin.H{"booking": detail})
}

func (h *Handler) ListBookings(c *gin.Context) {
	var (
		bookings []domain.Booking
		err      error
	)
	if date := c.Query("date"); date != "" {
		bookings, err = h.service.ListByDate(c.Request.Context(), date)
	} else {
		customerID, perr := strconv.ParseInt(c.Query("customer_id"), 10, 64)
		if perr != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "customer_id or date query parameter is required")
			return
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		bookings, err = h.service.ListByCustomer(c.Request.Context(), customerID, limit, offset)
	}
	if err != nil {
		h.writeBookingError(c, err)
		return
	}
	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": out})
}

func (h *Handler) UpdateBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}
	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	b, err := h.service.UpdateBooking(c.Request.Context(), id, req)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": toBookingResponse(b)})
}

func (h *Handler) DeleteBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}
	if err := h.service.DeleteBooking(c.Request.Context(), id); err != nil {
		h.writeBookingError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) CancelBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}
	b, err := h.service.CancelBooking(c.Request.Context(), id)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": toBookingResponse(b)})
}

func (h *Handler) writeBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking data")
	case errors.Is(err, ErrEmptyBooking):
		response.Error(c, http.StatusBadRequest, "EMPTY_BOOKING", ErrEmptyBooking.Error())
	case errors.Is(err, ErrOwnershipMismatch):
		response.Error(c, http.StatusBadRequest, "OWNERSHIP_MISMATCH", ErrOwnershipMismatch.Error())
	case errors.Is(err, ErrNegativeQuantity):
		response.Error(c, http.StatusBadRequest, "NEGATIVE_QUANTITY", ErrNegativeQuantity.Error())
	case errors.Is(err, ErrInsufficientStock):
		response.Error(c, http.StatusBadRequest, "INSUFFICIENT_STOCK", ErrInsufficientStock.Error())
	case errors.Is(err, ErrSchedulingConflict):
		response.Error(c, http.StatusConflict, "SCHEDULING_CONFLICT", err.Error())
	case errors.Is(err, ErrImmutableBooking):
		response.Error(c, http.StatusConflict, "IMMUTABLE_BOOKING", ErrImmutableBooking.Error())
	case errors.Is(err, ErrIdentifierExhaustion):
		response.Error(c, http.StatusConflict, "IDENTIFIER_EXHAUSTION", ErrIdentifierExhaustion.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process booking")
	}
}
