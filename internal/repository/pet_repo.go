package repository

import (
	"context"

	"github.com/Nv-Lunar/ukk-pet-clinic/internal/domain"

	"gorm.io/gorm"
)

type PetRepository struct {
	db *gorm.DB
}

func NewPetRepository(db *gorm.DB) *PetRepository {
	return &PetRepository{db: db}
}

type petModel struct {
	ID      int64  `gorm:"column:id;primaryKey"`
	PetID   string `gorm:"column:pet_id;uniqueIndex"`
	Name    string `gorm:"column:name"`
	TypeID  int64  `gorm:"column:type_id"`
	Age     int    `gorm:"column:age"`
	OwnerID int64  `gorm:"column:owner_id;index"`
}

func (petModel) TableName() string { return "pets" }

func toDomainPet(m petModel) *domain.Pet {
	return &domain.Pet{
		ID:      m.ID,
		PetID:   m.PetID,
		Name:    m.Name,
		TypeID:  m.TypeID,
		Age:     m.Age,
		OwnerID: m.OwnerID,
	}
}

func (r *PetRepository) Create(ctx context.Context, p *domain.Pet) error {
	m := petModel{
		PetID:   p.PetID,
		Name:    p.Name,
		TypeID:  p.TypeID,
		Age:     p.Age,
		OwnerID: p.OwnerID,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	p.ID = m.ID
	return nil
}

func (r *PetRepository) GetByID(ctx context.Context, id int64) (*domain.Pet, error) {
	var m petModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return toDomainPet(m), nil
}

// Update never touches pet_id; the identifier is immutable after creation.
func (r *PetRepository) Update(ctx context.Context, p *domain.Pet) error {
	return r.db.WithContext(ctx).Model(&petModel{}).Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"name":     p.Name,
			"type_id":  p.TypeID,
			"age":      p.Age,
			"owner_id": p.OwnerID,
		}).Error
}

func (r *PetRepository) ExistsPetID(ctx context.Context, petID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&petModel{}).Where("pet_id = ?", petID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PetRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Pet, error) {
	var rows []petModel
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Pet, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainPet(m))
	}
	return out, nil
}

func (r *PetRepository) List(ctx context.Context, limit, offset int) ([]domain.Pet, error) {
	var rows []petModel
	q := r.db.WithContext(ctx).Order("id")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Pet, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainPet(m))
	}
	return out, nil
}

// MaxPetIDSuffix reads the newest pet's numeric suffix, seeding the pet
// sequence when migrating legacy data.
func (r *PetRepository) MaxPetIDSuffix(ctx context.Context) (int64, error) {
	var ids []string
	if err := r.db.WithContext(ctx).Model(&petModel{}).Order("id desc").Limit(1).Pluck("pet_id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	return parseSuffix(ids[0])
}
