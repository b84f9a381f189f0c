package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Nv-Lunar/ukk-pet-clinic/internal/domain"

	"gorm.io/gorm"
)

// StockRepository fronts the warehouse service: live availability queries
// and the transfer chain that actually decrements stock.
type StockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) *StockRepository {
	return &StockRepository{db: db}
}

type stockTransferModel struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	ProductID   int64      `gorm:"column:product_id;index"`
	PartnerID   int64      `gorm:"column:partner_id"`
	Quantity    int        `gorm:"column:quantity"`
	SourceLoc   string     `gorm:"column:source_loc"`
	DestLoc     string     `gorm:"column:dest_loc"`
	State       string     `gorm:"column:state"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
}

func (stockTransferModel) TableName() string { return "stock_transfers" }

func (r *StockRepository) AvailableQty(ctx context.Context, productID int64) (int, error) {
	var m productModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", productID).Error; err != nil {
		return 0, err
	}
	return m.QtyAvailable, nil
}

// ExecuteTransfer drives the transfer through draft, confirmed, reserved and
// done inside one transaction. The reserve step re-checks and decrements the
// on-hand quantity; any failure rolls the whole chain back so no partial
// stock movement is observable.
func (r *StockRepository) ExecuteTransfer(ctx context.Context, t *domain.StockTransfer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := stockTransferModel{
			ProductID: t.ProductID,
			PartnerID: t.PartnerID,
			Quantity:  t.Quantity,
			SourceLoc: t.SourceLoc,
			DestLoc:   t.DestLoc,
			State:     string(domain.StockTransferDraft),
			CreatedAt: time.Now(),
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}

		if err := tx.Model(&stockTransferModel{}).Where("id = ?", m.ID).
			Update("state", string(domain.StockTransferConfirmed)).Error; err != nil {
			return err
		}

		// Reserve: conditional decrement, fails when stock ran out since the
		// caller's availability check.
		res := tx.Model(&productModel{}).
			Where("id = ? AND qty_available >= ?", t.ProductID, t.Quantity).
			Update("qty_available", gorm.Expr("qty_available - ?", t.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("reserve failed: product %d has less than %d on hand", t.ProductID, t.Quantity)
		}
		if err := tx.Model(&stockTransferModel{}).Where("id = ?", m.ID).
			Update("state", string(domain.StockTransferReserved)).Error; err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Model(&stockTransferModel{}).Where("id = ?", m.ID).
			Updates(map[string]interface{}{
				"state":        string(domain.StockTransferDone),
				"completed_at": now,
			}).Error; err != nil {
			return err
		}

		t.ID = m.ID
		t.State = domain.StockTransferDone
		t.CreatedAt = m.CreatedAt
		t.CompletedAt = &now
		return nil
	})
}

func (r *StockRepository) TransfersByProduct(ctx context.Context, productID int64) ([]domain.StockTransfer, error) {
	var rows []stockTransferModel
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.StockTransfer, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.StockTransfer{
			ID:          m.ID,
			ProductID:   m.ProductID,
			PartnerID:   m.PartnerID,
			Quantity:    m.Quantity,
			SourceLoc:   m.SourceLoc,
			DestLoc:     m.DestLoc,
			State:       domain.StockTransferState(m.State),
			CreatedAt:   m.CreatedAt,
			CompletedAt: m.CompletedAt,
		})
	}
	return out, nil
}
