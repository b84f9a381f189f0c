package inventory

import (
	"context"

	"github.com/Nv-Lunar/ukk-pet-clinic/internal/domain"
)

// StockStore is the warehouse collaborator: live availability plus the
// transfer chain that decrements stock atomically.
type StockStore interface {
	AvailableQty(ctx context.Context, productID int64) (int, error)
	ExecuteTransfer(ctx context.Context, t *domain.StockTransfer) error
}
