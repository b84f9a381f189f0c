package payment

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Nv-Lunar/ukk-pet-clinic/internal/domain"
)

type Service struct {
	bookings BookingStore
	ledger   Ledger
	log      *zap.Logger
	now      func() time.Time
}

func NewService(bookings BookingStore, ledger Ledger, log *zap.Logger) *Service {
	return &Service{
		bookings: bookings,
		ledger:   ledger,
		log:      log.With(zap.String("service", "payment")),
		now:      time.Now,
	}
}

func paymentTag(b *domain.Booking) string { return "Payment-" + b.Name }

// MarkDone closes the treatment: the booking moves to not_paid and a draft
// inbound ledger payment is opened for the derived amount.
func (s *Service) MarkDone(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.State == domain.BookingStateNotPaid {
		return nil, ErrAlreadyRecorded
	}
	if b.PaymentAmount() <= 0 {
		return nil, ErrInvalidAmount
	}

	today := s.now()
	if err := s.bookings.UpdatePaymentFields(ctx, b.ID, domain.BookingStateNotPaid, today, 0); err != nil {
		return nil, err
	}
	b.State = domain.BookingStateNotPaid
	b.PaymentDate = &today

	if err := s.ledger.Create(ctx, &domain.LedgerPayment{
		PartnerID:   b.CustomerID,
		Amount:      b.PaymentAmount(),
		PaymentType: "inbound",
		Date:        today,
		NameTag:     paymentTag(b),
		State:       domain.LedgerPaymentDraft,
	}); err != nil {
		return nil, err
	}

	s.log.Info("booking marked done",
		zap.String("booking", b.Name),
		zap.Int64("amount", b.PaymentAmount()),
	)
	return b, nil
}

// Pay settles the booking: the pending ledger payment tagged with the
// booking is rebound to the chosen method and posted, or a fresh posted
// payment is created when none exists. The amount is always the booking
// total.
func (s *Service) Pay(ctx context.Context, bookingID, methodID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.State == domain.BookingStatePaid {
		return nil, ErrAlreadyPaid
	}
	if b.PaymentAmount() <= 0 {
		return nil, ErrInvalidAmount
	}
	if methodID == 0 {
		return nil, ErrMissingPaymentMethod
	}

	if b.InvoiceID != 0 {
		if err := s.ledger.Post(ctx, b.InvoiceID); err != nil {
			return nil, err
		}
	}

	today := s.now()
	pending, err := s.ledger.FindInbound(ctx, b.CustomerID, b.PaymentAmount(), paymentTag(b))
	if err != nil {
		return nil, err
	}
	if pending != nil {
		if pending.State == domain.LedgerPaymentDraft {
			if err := s.ledger.RebindJournal(ctx, pending.ID, methodID); err != nil {
				return nil, err
			}
			if err := s.ledger.Post(ctx, pending.ID); err != nil {
				return nil, err
			}
		}
	} else {
		p := &domain.LedgerPayment{
			PartnerID:   b.CustomerID,
			Amount:      b.PaymentAmount(),
			PaymentType: "inbound",
			Date:        today,
			NameTag:     paymentTag(b),
			JournalID:   methodID,
			State:       domain.LedgerPaymentDraft,
		}
		if err := s.ledger.Create(ctx, p); err != nil {
			return nil, err
		}
		if err := s.ledger.Post(ctx, p.ID); err != nil {
			return nil, err
		}
	}

	if err := s.bookings.UpdatePaymentFields(ctx, b.ID, domain.BookingStatePaid, today, methodID); err != nil {
		return nil, err
	}
	b.State = domain.BookingStatePaid
	b.PaymentDate = &today
	b.PaymentMethodID = methodID

	s.log.Info("booking paid",
		zap.String("booking", b.Name),
		zap.Int64("amount", b.PaymentAmount()),
		zap.Int64("method_id", methodID),
	)
	return b, nil
}
