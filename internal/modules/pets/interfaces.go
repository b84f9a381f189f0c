package pets

import (
	"context"

	"github.com/Nv-Lunar/ukk-pet-clinic/internal/domain"
)

type PetRepository interface {
	Create(ctx context.Context, p *domain.Pet) error
	GetByID(ctx context.Context, id int64) (*domain.Pet, error)
	Update(ctx context.Context, p *domain.Pet) error
	ExistsPetID(ctx context.Context, petID string) (bool, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Pet, error)
	List(ctx context.Context, limit, offset int) ([]domain.Pet, error)
}

type SequenceAllocator interface {
	Next(ctx context.Context, name string) (int64, error)
}

// CatalogReader resolves the category and owner a pet references.
type CatalogReader interface {
	CategoryByID(ctx context.Context, id int64) (*domain.PetCategory, error)
	CustomerByID(ctx context.Context, id int64) (*domain.Customer, error)
}
