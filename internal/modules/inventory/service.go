package inventory

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Nv-Lunar/ukk-pet-clinic/internal/domain"
)

type Service struct {
	stock StockStore
	log   *zap.Logger
}

func NewService(stock StockStore, log *zap.Logger) *Service {
	return &Service{
		stock: stock,
		log:   log.With(zap.String("service", "inventory")),
	}
}

// Consume moves qty of the product from the main stock location to the
// customer location. The availability check runs against live stock before
// any transfer exists; the confirm/reserve/finalize chain then executes as
// one unit, so a failing step leaves no partial decrement behind.
func (s *Service) Consume(ctx context.Context, partnerID, productID int64, qty int) (*domain.StockTransfer, error) {
	if qty < 0 {
		return nil, ErrNegativeQuantity
	}
	if qty == 0 {
		return nil, nil
	}

	available, err := s.stock.AvailableQty(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("query available stock for product %d: %w", productID, err)
	}
	s.log.Debug("stock level before transfer",
		zap.Int64("product_id", productID),
		zap.Int("available", available),
		zap.Int("requested", qty),
	)
	if qty > available {
		return nil, ErrInsufficientStock
	}

	t := &domain.StockTransfer{
		ProductID: productID,
		PartnerID: partnerID,
		Quantity:  qty,
		SourceLoc: domain.StockLocationMain,
		DestLoc:   domain.StockLocationCustomer,
	}
	if err := s.stock.ExecuteTransfer(ctx, t); err != nil {
		return nil, fmt.Errorf("stock transfer for product %d: %w", productID, err)
	}

	s.log.Info("stock consumed",
		zap.Int64("product_id", productID),
		zap.Int("quantity", qty),
		zap.Int64("transfer_id", t.ID),
	)
	return t, nil
}
