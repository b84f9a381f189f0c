package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Nv-Lunar/ukk-pet-clinic/internal/domain"
)

type MockStockStore struct {
	mock.Mock
}

func (m *MockStockStore) AvailableQty(ctx context.Context, productID int64) (int, error) {
	args := m.Called(ctx, productID)
	return args.Int(0), args.Error(1)
}

func (m *MockStockStore) ExecuteTransfer(ctx context.Context, t *domain.StockTransfer) error {
	args := m.Called(ctx, t)
	if args.Error(0) == nil {
		t.ID = 1 // simulate DB insert
		t.State = domain.StockTransferDone
	}
	return args.Error(0)
}

func TestConsume_MovesStockToCustomerLocation(t *testing.T) {
	store := new(MockStockStore)
	store.On("AvailableQty", mock.Anything, int64(1)).Return(10, nil)
	store.On("ExecuteTransfer", mock.Anything, mock.AnythingOfType("*domain.StockTransfer")).Return(nil)
	svc := NewService(store, zap.NewNop())

	tr, err := svc.Consume(context.Background(), 3, 1, 4)
	require.NoError(t, err)
	require.NotNil(t, tr)

	assert.Equal(t, domain.StockLocationMain, tr.SourceLoc)
	assert.Equal(t, domain.StockLocationCustomer, tr.DestLoc)
	assert.Equal(t, domain.StockTransferDone, tr.State)
	assert.Equal(t, int64(3), tr.PartnerID)
	assert.Equal(t, 4, tr.Quantity)
	store.AssertExpectations(t)
}

func TestConsume_NegativeQuantity(t *testing.T) {
	store := new(MockStockStore)
	svc := NewService(store, zap.NewNop())

	_, err := svc.Consume(context.Background(), 3, 1, -1)
	assert.ErrorIs(t, err, ErrNegativeQuantity)
	store.AssertNotCalled(t, "AvailableQty")
	store.AssertNotCalled(t, "ExecuteTransfer")
}

func TestConsume_ZeroQuantityIsNoOp(t *testing.T) {
	store := new(MockStockStore)
	svc := NewService(store, zap.NewNop())

	tr, err := svc.Consume(context.Background(), 3, 1, 0)
	require.NoError(t, err)
	assert.Nil(t, tr)
	store.AssertNotCalled(t, "ExecuteTransfer")
}

func TestConsume_InsufficientStock(t *testing.T) {
	store := new(MockStockStore)
	store.On("AvailableQty", mock.Anything, int64(1)).Return(3, nil)
	svc := NewService(store, zap.NewNop())

	_, err := svc.Consume(context.Background(), 3, 1, 4)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	// Rejected before any transfer existed.
	store.AssertNotCalled(t, "ExecuteTransfer")
}

func TestConsume_WrapsTransferFailure(t *testing.T) {
	store := new(MockStockStore)
	store.On("AvailableQty", mock.Anything, int64(1)).Return(10, nil)
	store.On("ExecuteTransfer", mock.Anything, mock.AnythingOfType("*domain.StockTransfer")).Return(assert.AnError)
	svc := NewService(store, zap.NewNop())

	_, err := svc.Consume(context.Background(), 3, 1, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}
