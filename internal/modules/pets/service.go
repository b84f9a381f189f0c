package pets

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Nv-Lunar/ukk-pet-clinic/internal/domain"
	validatorpkg "github.com/Nv-Lunar/ukk-pet-clinic/internal/pkg/validator"
)

type Service struct {
	pets      PetRepository
	sequences SequenceAllocator
	catalog   CatalogReader
	log       *zap.Logger
}

func NewService(pets PetRepository, sequences SequenceAllocator, catalog CatalogReader, log *zap.Logger) *Service {
	return &Service{
		pets:      pets,
		sequences: sequences,
		catalog:   catalog,
		log:       log.With(zap.String("service", "pets")),
	}
}

// CreatePet registers the animal under the next sequential PET_NNNNNN
// identifier. The duplicate check is defensive; the sequence should never
// hand out a taken value.
func (s *Service) CreatePet(ctx context.Context, req CreatePetRequest) (*domain.Pet, error) {
	if errs := validatorpkg.Validate(req); errs != nil {
		s.log.Warn("create pet validation failed", zap.Any("errors", errs))
		return nil, ErrValidation
	}
	if _, err := s.catalog.CategoryByID(ctx, req.TypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrValidation
		}
		return nil, err
	}

	n, err := s.sequences.Next(ctx, "pet")
	if err != nil {
		return nil, fmt.Errorf("allocate pet id: %w", err)
	}
	petID := fmt.Sprintf("PET_%06d", n)

	exists, err := s.pets.ExistsPetID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateIdentifier
	}

	p := &domain.Pet{
		PetID:   petID,
		Name:    req.Name,
		TypeID:  req.TypeID,
		Age:     req.Age,
		OwnerID: req.OwnerID,
	}
	if err := s.pets.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create pet: %w", err)
	}

	s.log.Info("pet registered", zap.String("pet_id", p.PetID), zap.Int64("owner_id", p.OwnerID))
	return p, nil
}

// UpdatePet applies field changes but rejects any attempt to rewrite the
// assigned identifier.
func (s *Service) UpdatePet(ctx context.Context, id int64, req UpdatePetRequest) (*domain.Pet, error) {
	if req.PetID != "" {
		return nil, ErrIdentifierImmutable
	}
	p, err := s.pets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if req.Name != "" {
		p.Name = req.Name
	}
	if req.TypeID != 0 {
		if _, err := s.catalog.CategoryByID(ctx, req.TypeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrValidation
			}
			return nil, err
		}
		p.TypeID = req.TypeID
	}
	if req.Age != nil {
		p.Age = *req.Age
	}
	if req.OwnerID != 0 {
		p.OwnerID = req.OwnerID
	}
	if err := s.pets.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update pet: %w", err)
	}
	return p, nil
}

func (s *Service) GetPet(ctx context.Context, id int64) (*domain.Pet, string, error) {
	p, err := s.pets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}
	ownerName := ""
	if owner, err := s.catalog.CustomerByID(ctx, p.OwnerID); err == nil {
		ownerName = owner.Name
	}
	return p, ownerName, nil
}

// ListByOwner backs the booking form: it offers exactly the customer's own
// pets for new service lines.
func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Pet, error) {
	return s.pets.ListByOwner(ctx, ownerID)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]domain.Pet, error) {
	return s.pets.List(ctx, limit, offset)
}
