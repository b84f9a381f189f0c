package booking

import (
	"time"

	"github.com/Nv-Lunar/ukk-pet-clinic/internal/domain"
)

const dateLayout = "2006-01-02"

type ServiceLineRequest struct {
	PetID     int64 `json:"pet_id" binding:"required" validate:"required"`
	ServiceID int64 `json:"service_id" binding:"required" validate:"required"`
}

type ProductLineRequest struct {
	PetID     int64 `json:"pet_id"`
	ProductID int64 `json:"product_id" binding:"required" validate:"required"`
	Quantity  int   `json:"quantity"`
}

type CreateBookingRequest struct {
	CustomerID   int64                `json:"customer_id" binding:"required" validate:"required"`
	DoctorID     int64                `json:"doctor_id" binding:"required" validate:"required"`
	BookingDate  string               `json:"booking_date" binding:"required" validate:"required"`
	StartTime    time.Time            `json:"start_time" binding:"required" validate:"required"`
	Description  string               `json:"description"`
	ServiceLines []ServiceLineRequest `json:"service_lines"`
	ProductLines []ProductLineRequest `json:"product_lines"`
}

type UpdateBookingRequest struct {
	DoctorID     int64                `json:"doctor_id"`
	BookingDate  string               `json:"booking_date"`
	StartTime    *time.Time           `json:"start_time"`
	Description  *string              `json:"description"`
	ServiceLines []ServiceLineRequest `json:"service_lines"`
	ProductLines []ProductLineRequest `json:"product_lines"`
}

type ServiceLineResponse struct {
	PetID     int64   `json:"pet_id"`
	ServiceID int64   `json:"service_id"`
	Price     int64   `json:"price_service"`
	AvgTime   int     `json:"avg_time"`
	Rate      float64 `json:"rate"`
	RealPrice int64   `json:"real_price"`
	RealTime  int     `json:"real_time"`
}

type ProductLineResponse struct {
	PetID      int64   `json:"pet_id"`
	ProductID  int64   `json:"product_id"`
	Quantity   int     `json:"quantity_selected"`
	SalesPrice float64 `json:"sales_price"`
	TotalPrice int64   `json:"total_price"`
}

type BookingResponse struct {
	ID           int64                 `json:"id"`
	Name         string                `json:"name"`
	CustomerID   int64                 `json:"customer_id"`
	DoctorID     int64                 `json:"doctor_id"`
	DoctorName   string                `json:"doctor_name,omitempty"`
	BookingDate  string                `json:"booking_date"`
	StartTime    time.Time             `json:"start_time"`
	EndTime      time.Time             `json:"end_time"`
	TotalTime    int                   `json:"total_time"`
	TotalPrice   int64                 `json:"total_price"`
	State        string                `json:"state"`
	Description  string                `json:"description,omitempty"`
	ServiceLines []ServiceLineResponse `json:"service_lines"`
	ProductLines []ProductLineResponse `json:"product_lines"`
}

type BookingDetailResponse struct {
	BookingResponse
	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone,omitempty"`
	CustomerAddress string `json:"customer_address,omitempty"`
	CustomerEmail   string `json:"customer_email,omitempty"`
}

func toBookingResponse(b *domain.Booking) BookingResponse {
	resp := BookingResponse{
		ID:          b.ID,
		Name:        b.Name,
		CustomerID:  b.CustomerID,
		DoctorID:    b.DoctorID,
		BookingDate: b.BookingDate.Format(dateLayout),
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		TotalTime:   b.TotalTime,
		TotalPrice:  b.TotalPrice,
		State:       string(b.State),
		Description: b.Description,
	}
	for _, l := range b.ServiceLines {
		resp.ServiceLines = append(resp.ServiceLines, ServiceLineResponse{
			PetID:     l.PetID,
			ServiceID: l.ServiceID,
			Price:     l.PriceService,
			AvgTime:   l.AvgTime,
			Rate:      l.Rate,
			RealPrice: l.RealPrice,
			RealTime:  l.RealTime,
		})
	}
	for _, l := range b.ProductLines {
		resp.ProductLines = append(resp.ProductLines, ProductLineResponse{
			PetID:      l.PetID,
			ProductID:  l.ProductID,
			Quantity:   l.QuantitySelected,
			SalesPrice: l.SalesPrice,
			TotalPrice: l.TotalPrice,
		})
	}
	return resp
}
