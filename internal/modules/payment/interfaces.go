package payment

import (
	"context"
	"time"

	"github.com/Nv-Lunar/ukk-pet-clinic/internal/domain"
)

// BookingStore is the slice of booking persistence the payment workflow
// needs: reads plus the payment-field transition.
type BookingStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdatePaymentFields(ctx context.Context, id int64, state domain.BookingState, paymentDate time.Time, methodID int64) error
}

// Ledger is the host accounting collaborator.
type Ledger interface {
	Create(ctx context.Context, p *domain.LedgerPayment) error
	FindInbound(ctx context.Context, partnerID, amount int64, nameTag string) (*domain.LedgerPayment, error)
	RebindJournal(ctx context.Context, id, journalID int64) error
	Post(ctx context.Context, id int64) error
}
