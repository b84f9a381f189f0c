package repository

import (
	"context"
	"time"

	"github.com/Nv-Lunar/ukk-pet-clinic/internal/domain"

	"gorm.io/gorm"
)

// LedgerRepository fronts the host accounting ledger. Payments are matched
// by (partner, amount, inbound type, name tag) the same way the clinic
// reconciles them at the counter.
type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

type ledgerPaymentModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	PartnerID   int64     `gorm:"column:partner_id;index"`
	Amount      int64     `gorm:"column:amount"`
	PaymentType string    `gorm:"column:payment_type"`
	Date        time.Time `gorm:"column:date"`
	NameTag     string    `gorm:"column:name_tag;index"`
	JournalID   int64     `gorm:"column:journal_id"`
	State       string    `gorm:"column:state"`
}

func (ledgerPaymentModel) TableName() string { return "ledger_payments" }

func toDomainLedgerPayment(m ledgerPaymentModel) *domain.LedgerPayment {
	return &domain.LedgerPayment{
		ID:          m.ID,
		PartnerID:   m.PartnerID,
		Amount:      m.Amount,
		PaymentType: m.PaymentType,
		Date:        m.Date,
		NameTag:     m.NameTag,
		JournalID:   m.JournalID,
		State:       domain.LedgerPaymentState(m.State),
	}
}

func (r *LedgerRepository) Create(ctx context.Context, p *domain.LedgerPayment) error {
	m := ledgerPaymentModel{
		PartnerID:   p.PartnerID,
		Amount:      p.Amount,
		PaymentType: p.PaymentType,
		Date:        p.Date,
		NameTag:     p.NameTag,
		JournalID:   p.JournalID,
		State:       string(p.State),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	p.ID = m.ID
	return nil
}

// FindInbound locates the newest non-cancelled inbound payment matching the
// partner, amount and name tag. Returns nil when nothing matches.
func (r *LedgerRepository) FindInbound(ctx context.Context, partnerID, amount int64, nameTag string) (*domain.LedgerPayment, error) {
	var rows []ledgerPaymentModel
	err := r.db.WithContext(ctx).
		Where("partner_id = ?", partnerID).
		Where("amount = ?", amount).
		Where("payment_type = ?", "inbound").
		Where("state <> ?", string(domain.LedgerPaymentCancelled)).
		Where("name_tag = ?", nameTag).
		Order("id desc").Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return toDomainLedgerPayment(rows[0]), nil
}

func (r *LedgerRepository) GetByID(ctx context.Context, id int64) (*domain.LedgerPayment, error) {
	var m ledgerPaymentModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return toDomainLedgerPayment(m), nil
}

// RebindJournal points a draft payment at a different journal before posting.
func (r *LedgerRepository) RebindJournal(ctx context.Context, id, journalID int64) error {
	return r.db.WithContext(ctx).Model(&ledgerPaymentModel{}).Where("id = ?", id).
		Update("journal_id", journalID).Error
}

func (r *LedgerRepository) Post(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&ledgerPaymentModel{}).Where("id = ?", id).
		Update("state", string(domain.LedgerPaymentPosted)).Error
}
