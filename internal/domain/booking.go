package domain

import "time"

type BookingState string

const (
	BookingStateCancel  BookingState = "cancel"
	BookingStateBooking BookingState = "booking"
	BookingStateNotPaid BookingState = "not_paid"
	BookingStatePaid    BookingState = "paid"
)

// Booking is one clinic appointment for a customer with a single doctor.
// Name carries the business identifier (CL_000001, CL_000002, ...).
type Booking struct {
	ID          int64
	Name        string
	CustomerID  int64
	DoctorID    int64
	BookingDate time.Time
	StartTime   time.Time
	EndTime     time.Time
	Description string

	ServiceLines []ServiceLine
	ProductLines []ProductLine

	// Derived: TotalTime is minutes, TotalPrice includes product lines.
	TotalTime  int
	TotalPrice int64

	State           BookingState
	PaymentDate     *time.Time
	PaymentMethodID int64
	InvoiceID       int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PaymentAmount is always the derived booking total, never set directly.
func (b *Booking) PaymentAmount() int64 { return b.TotalPrice }

// Editable reports whether the booking still accepts field updates.
// Paid and cancelled bookings are frozen except for the cancel transition.
func (b *Booking) Editable() bool {
	return b.State != BookingStatePaid && b.State != BookingStateCancel
}

// ServiceLine is one service rendered to one pet within a booking.
// Real price and time scale the service base values by the pet category rate.
type ServiceLine struct {
	ID        int64
	BookingID int64
	PetID     int64
	ServiceID int64

	PriceService int64
	AvgTime      int
	Rate         float64

	RealPrice int64
	RealTime  int
}

// ProductLine is one retail product sold within a booking, consuming stock.
type ProductLine struct {
	ID        int64
	BookingID int64
	PetID     int64
	ProductID int64

	ProductName       string
	QuantityAvailable int
	QuantitySelected  int
	SalesPrice        float64
	TotalPrice        int64
}
