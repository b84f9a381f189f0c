package booking

import (
	"context"
	"time"

	"github.com/Nv-Lunar/ukk-pet-clinic/internal/domain"
)

// BookingRepository is the persistence contract for bookings and their lines.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
	UpdateState(ctx context.Context, id int64, state domain.BookingState) error
	Delete(ctx context.Context, id int64) error
	FindOverlapping(ctx context.Context, doctorID int64, date time.Time, start, end time.Time, excludeID int64) ([]domain.Booking, error)
	ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Booking, error)
	ListByDate(ctx context.Context, date time.Time) ([]domain.Booking, error)
}

// PetReader resolves pets referenced by service and product lines.
type PetReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Pet, error)
}

// CatalogReader resolves the reference data a booking depends on.
type CatalogReader interface {
	CategoryByID(ctx context.Context, id int64) (*domain.PetCategory, error)
	DoctorByID(ctx context.Context, id int64) (*domain.Doctor, error)
	ServiceByID(ctx context.Context, id int64) (*domain.Service, error)
	ProductByID(ctx context.Context, id int64) (*domain.Product, error)
	CustomerByID(ctx context.Context, id int64) (*domain.Customer, error)
}

// SequenceAllocator hands out the next value of a named counter.
type SequenceAllocator interface {
	Next(ctx context.Context, name string) (int64, error)
}

// CalendarService mirrors booking windows into the host calendar.
type CalendarService interface {
	Create(ctx context.Context, e *domain.CalendarEvent) error
	DeleteMatching(ctx context.Context, subject string, start, stop time.Time) error
}

// InventoryConsumer requests stock transfers for sold product lines.
type InventoryConsumer interface {
	Consume(ctx context.Context, partnerID, productID int64, qty int) (*domain.StockTransfer, error)
}
