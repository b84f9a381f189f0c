package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Nv-Lunar/ukk-pet-clinic/internal/domain"
	validatorpkg "github.com/Nv-Lunar/ukk-pet-clinic/internal/pkg/validator"
)

const maxIdentifier = 999999

type Service struct {
	bookings  BookingRepository
	pets      PetReader
	catalog   CatalogReader
	sequences SequenceAllocator
	calendar  CalendarService
	inventory InventoryConsumer
	log       *zap.Logger
}

func NewService(
	bookings BookingRepository,
	pets PetReader,
	catalog CatalogReader,
	sequences SequenceAllocator,
	calendar CalendarService,
	inventory InventoryConsumer,
	log *zap.Logger,
) *Service {
	return &Service{
		bookings:  bookings,
		pets:      pets,
		catalog:   catalog,
		sequences: sequences,
		calendar:  calendar,
		inventory: inventory,
		log:       log.With(zap.String("service", "booking")),
	}
}

// Recompute re-derives every computed booking field from its lines:
// total time, end time and total price. Pure and idempotent.
func Recompute(b *domain.Booking) {
	total := 0
	var price int64
	for _, l := range b.ServiceLines {
		total += l.RealTime
		price += l.RealPrice
	}
	for _, l := range b.ProductLines {
		price += l.TotalPrice
	}
	b.TotalTime = total
	b.EndTime = b.StartTime.Add(time.Duration(total) * time.Minute)
	b.TotalPrice = price
}

func calendarSubject(doctorName, bookingName string) string {
	return fmt.Sprintf("%s | %s", doctorName, bookingName)
}

func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if errs := validatorpkg.Validate(req); errs != nil {
		s.log.Warn("create booking validation failed", zap.Any("errors", errs))
		return nil, ErrValidation
	}
	date, err := time.Parse(dateLayout, req.BookingDate)
	if err != nil {
		return nil, ErrValidation
	}

	doctor, err := s.catalog.DoctorByID(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrValidation
		}
		return nil, err
	}

	b := &domain.Booking{
		CustomerID:  req.CustomerID,
		DoctorID:    req.DoctorID,
		BookingDate: date,
		StartTime:   req.StartTime,
		Description: req.Description,
		State:       domain.BookingStateBooking,
	}
	if err := s.buildServiceLines(ctx, b, req.ServiceLines); err != nil {
		return nil, err
	}
	if err := s.buildProductLines(ctx, b, req.ProductLines); err != nil {
		return nil, err
	}
	Recompute(b)
	s.log.Debug("computed booking totals",
		zap.Int("total_time_minutes", b.TotalTime),
		zap.Int64("total_price", b.TotalPrice),
	)

	if err := s.checkOverlap(ctx, b, doctor); err != nil {
		return nil, err
	}

	n, err := s.sequences.Next(ctx, "booking")
	if err != nil {
		return nil, fmt.Errorf("allocate booking id: %w", err)
	}
	if n > maxIdentifier {
		return nil, ErrIdentifierExhaustion
	}
	b.Name = fmt.Sprintf("CL_%06d", n)

	if err := s.bookings.Create(ctx, b); err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok {
			if pgErr.Code == "23P01" || pgErr.Code == "23505" {
				return nil, ErrSchedulingConflict
			}
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	for _, l := range b.ProductLines {
		if l.QuantitySelected <= 0 {
			continue
		}
		if _, err := s.inventory.Consume(ctx, b.CustomerID, l.ProductID, l.QuantitySelected); err != nil {
			// The booking must not survive a failed stock movement.
			if derr := s.bookings.Delete(ctx, b.ID); derr != nil {
				s.log.Error("rollback of booking after failed stock transfer failed",
					zap.Int64("booking_id", b.ID), zap.Error(derr))
			}
			return nil, fmt.Errorf("consume stock for product %d: %w", l.ProductID, err)
		}
	}

	if err := s.calendar.Create(ctx, &domain.CalendarEvent{
		Subject: calendarSubject(doctor.Name, b.Name),
		Start:   b.StartTime,
		Stop:    b.EndTime,
	}); err != nil {
		s.log.Error("calendar sync failed", zap.String("booking", b.Name), zap.Error(err))
	}

	s.log.Info("booking created",
		zap.String("name", b.Name),
		zap.Int64("customer_id", b.CustomerID),
		zap.Int64("doctor_id", b.DoctorID),
		zap.Int64("total_price", b.TotalPrice),
	)
	return b, nil
}

// buildServiceLines resolves pets and services, checks ownership and derives
// the rate-scaled price and duration for every line.
func (s *Service) buildServiceLines(ctx context.Context, b *domain.Booking, lines []ServiceLineRequest) error {
	if len(lines) == 0 {
		return ErrEmptyBooking
	}
	for _, req := range lines {
		pet, err := s.pets.GetByID(ctx, req.PetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrValidation
			}
			return err
		}
		if pet.OwnerID != b.CustomerID {
			return ErrOwnershipMismatch
		}
		category, err := s.catalog.CategoryByID(ctx, pet.TypeID)
		if err != nil {
			return err
		}
		svc, err := s.catalog.ServiceByID(ctx, req.ServiceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrValidation
			}
			return err
		}
		line := domain.ServiceLine{
			PetID:        pet.ID,
			ServiceID:    svc.ID,
			PriceService: svc.Price,
			AvgTime:      svc.AvgTime,
			Rate:         category.Rate,
			RealPrice:    int64(float64(svc.Price) * category.Rate),
			RealTime:     int(float64(svc.AvgTime) * category.Rate),
		}
		s.log.Debug("computed service line",
			zap.Int64("pet_id", pet.ID),
			zap.Float64("rate", category.Rate),
			zap.Int64("real_price", line.RealPrice),
			zap.Int("real_time", line.RealTime),
		)
		b.ServiceLines = append(b.ServiceLines, line)
	}
	return nil
}

// buildProductLines prices product lines and validates the selected quantity
// against live stock before any transfer is requested.
func (s *Service) buildProductLines(ctx context.Context, b *domain.Booking, lines []ProductLineRequest) error {
	b.ProductLines = nil
	for _, req := range lines {
		if req.Quantity < 0 {
			return ErrNegativeQuantity
		}
		product, err := s.catalog.ProductByID(ctx, req.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrValidation
			}
			return err
		}
		s.log.Debug("stock available", zap.String("product", product.Name), zap.Int("qty", product.QtyAvailable))
		if req.Quantity > product.QtyAvailable {
			return ErrInsufficientStock
		}
		b.ProductLines = append(b.ProductLines, domain.ProductLine{
			PetID:             req.PetID,
			ProductID:         product.ID,
			ProductName:       product.Name,
			QuantityAvailable: product.QtyAvailable,
			QuantitySelected:  req.Quantity,
			SalesPrice:        product.ListPrice,
			TotalPrice:        int64(float64(req.Quantity) * product.ListPrice),
		})
	}
	return nil
}

// checkOverlap rejects the booking when another active booking for the same
// doctor and date intersects its half-open [start, end) window. Touching
// windows do not conflict.
func (s *Service) checkOverlap(ctx context.Context, b *domain.Booking, doctor *domain.Doctor) error {
	overlapping, err := s.bookings.FindOverlapping(ctx, b.DoctorID, b.BookingDate, b.StartTime, b.EndTime, b.ID)
	if err != nil {
		return err
	}
	if len(overlapping) > 0 {
		s.log.Warn("scheduling conflict",
			zap.String("doctor", doctor.Name),
			zap.Time("start", b.StartTime),
			zap.Time("end", b.EndTime),
		)
		return fmt.Errorf("%w: %s", ErrSchedulingConflict, doctor.Name)
	}
	return nil
}

func (s *Service) UpdateBooking(ctx context.Context, id int64, req UpdateBookingRequest) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !b.Editable() {
		return nil, ErrImmutableBooking
	}

	// Snapshot for restore if a stock transfer fails after the row update.
	prev := *b
	prev.ServiceLines = append([]domain.ServiceLine(nil), b.ServiceLines...)
	prev.ProductLines = append([]domain.ProductLine(nil), b.ProductLines...)

	oldDoctorID := b.DoctorID
	oldStart, oldEnd := b.StartTime, b.EndTime

	if req.DoctorID != 0 {
		b.DoctorID = req.DoctorID
	}
	if req.BookingDate != "" {
		date, err := time.Parse(dateLayout, req.BookingDate)
		if err != nil {
			return nil, ErrValidation
		}
		b.BookingDate = date
	}
	if req.StartTime != nil {
		b.StartTime = *req.StartTime
	}
	if req.Description != nil {
		b.Description = *req.Description
	}
	if req.ServiceLines != nil {
		b.ServiceLines = nil
		if err := s.buildServiceLines(ctx, b, req.ServiceLines); err != nil {
			return nil, err
		}
	}
	if req.ProductLines != nil {
		if err := s.buildProductLines(ctx, b, req.ProductLines); err != nil {
			return nil, err
		}
	}
	if len(b.ServiceLines) == 0 {
		return nil, ErrEmptyBooking
	}
	for _, l := range b.ServiceLines {
		pet, err := s.pets.GetByID(ctx, l.PetID)
		if err != nil {
			return nil, err
		}
		if pet.OwnerID != b.CustomerID {
			return nil, ErrOwnershipMismatch
		}
	}
	Recompute(b)

	doctor, err := s.catalog.DoctorByID(ctx, b.DoctorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrValidation
		}
		return nil, err
	}
	if err := s.checkOverlap(ctx, b, doctor); err != nil {
		return nil, err
	}

	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}

	if req.ProductLines != nil {
		for _, l := range b.ProductLines {
			if l.QuantitySelected <= 0 {
				continue
			}
			if _, err := s.inventory.Consume(ctx, b.CustomerID, l.ProductID, l.QuantitySelected); err != nil {
				// The update must not survive a failed stock movement.
				if rerr := s.bookings.Update(ctx, &prev); rerr != nil {
					s.log.Error("restore of booking after failed stock transfer failed",
						zap.Int64("booking_id", b.ID), zap.Error(rerr))
				}
				return nil, fmt.Errorf("consume stock for product %d: %w", l.ProductID, err)
			}
		}
	}

	timingChanged := !b.StartTime.Equal(oldStart) || !b.EndTime.Equal(oldEnd) || b.DoctorID != oldDoctorID
	if timingChanged {
		oldDoctor, derr := s.catalog.DoctorByID(ctx, oldDoctorID)
		if derr == nil {
			if err := s.calendar.DeleteMatching(ctx, calendarSubject(oldDoctor.Name, b.Name), oldStart, oldEnd); err != nil {
				s.log.Error("removing stale calendar event failed", zap.String("booking", b.Name), zap.Error(err))
			}
		}
		if err := s.calendar.Create(ctx, &domain.CalendarEvent{
			Subject: calendarSubject(doctor.Name, b.Name),
			Start:   b.StartTime,
			Stop:    b.EndTime,
		}); err != nil {
			s.log.Error("calendar resync failed", zap.String("booking", b.Name), zap.Error(err))
		}
	}

	return b, nil
}

// CancelBooking transitions the booking to cancel from any state. The
// original workflow never guarded this transition, so a paid booking can be
// cancelled without reversing its ledger payment; the warning below keeps
// that reconcilable.
func (s *Service) CancelBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.State == domain.BookingStatePaid {
		s.log.Warn("cancelling a paid booking leaves its ledger payment posted",
			zap.String("booking", b.Name),
			zap.String("payment_tag", "Payment-"+b.Name),
		)
	}
	if err := s.bookings.UpdateState(ctx, id, domain.BookingStateCancel); err != nil {
		return nil, err
	}
	b.State = domain.BookingStateCancel
	s.log.Info("booking cancelled", zap.String("name", b.Name))
	return b, nil
}

// DeleteBooking removes the mirrored calendar event, then the booking and
// its lines.
func (s *Service) DeleteBooking(ctx context.Context, id int64) error {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	doctor, err := s.catalog.DoctorByID(ctx, b.DoctorID)
	if err == nil {
		if cerr := s.calendar.DeleteMatching(ctx, calendarSubject(doctor.Name, b.Name), b.StartTime, b.EndTime); cerr != nil {
			s.log.Error("removing calendar event failed", zap.String("booking", b.Name), zap.Error(cerr))
		}
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	s.log.Info("booking deleted", zap.String("name", b.Name))
	return nil
}

func (s *Service) GetBooking(ctx context.Context, id int64) (*domain.Booking, *domain.Customer, *domain.Doctor, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, ErrNotFound
		}
		return nil, nil, nil, err
	}
	customer, err := s.catalog.CustomerByID(ctx, b.CustomerID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil, err
	}
	doctor, err := s.catalog.DoctorByID(ctx, b.DoctorID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil, err
	}
	return b, customer, doctor, nil
}

func (s *Service) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.ListByCustomer(ctx, customerID, limit, offset)
}

// ListByDate backs the day schedule view.
func (s *Service) ListByDate(ctx context.Context, dateStr string) ([]domain.Booking, error) {
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, ErrValidation
	}
	return s.bookings.ListByDate(ctx, date)
}
