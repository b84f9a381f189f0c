package pets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Nv-Lunar/ukk-pet-clinic/internal/domain"
)

type fakePetRepo struct {
	pets   map[int64]*domain.Pet
	nextID int64
}

func newFakePetRepo() *fakePetRepo {
	return &fakePetRepo{pets: map[int64]*domain.Pet{}}
}

func (f *fakePetRepo) Create(ctx context.Context, p *domain.Pet) error {
	f.nextID++
	p.ID = f.nextID
	cp := *p
	f.pets[p.ID] = &cp
	return nil
}

func (f *fakePetRepo) GetByID(ctx context.Context, id int64) (*domain.Pet, error) {
	p, ok := f.pets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePetRepo) Update(ctx context.Context, p *domain.Pet) error {
	stored := f.pets[p.ID]
	identifier := stored.PetID
	cp := *p
	cp.PetID = identifier
	f.pets[p.ID] = &cp
	return nil
}

func (f *fakePetRepo) ExistsPetID(ctx context.Context, petID string) (bool, error) {
	for _, p := range f.pets {
		if p.PetID == petID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePetRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Pet, error) {
	var out []domain.Pet
	for _, p := range f.pets {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePetRepo) List(ctx context.Context, limit, offset int) ([]domain.Pet, error) {
	var out []domain.Pet
	for _, p := range f.pets {
		out = append(out, *p)
	}
	return out, nil
}

type fakeSequence struct {
	value int64
}

func (f *fakeSequence) Next(ctx context.Context, name string) (int64, error) {
	f.value++
	return f.value, nil
}

type fakeCatalog struct {
	categories map[int64]*domain.PetCategory
	customers  map[int64]*domain.Customer
}

func (f *fakeCatalog) CategoryByID(ctx context.Context, id int64) (*domain.PetCategory, error) {
	if c, ok := f.categories[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCatalog) CustomerByID(ctx context.Context, id int64) (*domain.Customer, error) {
	if c, ok := f.customers[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newPetFixture() (*Service, *fakePetRepo) {
	repo := newFakePetRepo()
	catalog := &fakeCatalog{
		categories: map[int64]*domain.PetCategory{
			1: {ID: 1, Name: "Kucing", Rate: 1.0},
			2: {ID: 2, Name: "Kelinci", Rate: 0.8},
		},
		customers: map[int64]*domain.Customer{
			1: {ID: 1, Name: "Andi Pratama"},
		},
	}
	return NewService(repo, &fakeSequence{}, catalog, zap.NewNop()), repo
}

func TestCreatePet_AssignsSequentialIdentifiers(t *testing.T) {
	svc, _ := newPetFixture()
	ctx := context.Background()

	names := []string{"Milo", "Bruno", "Cici"}
	for i, name := range names {
		p, err := svc.CreatePet(ctx, CreatePetRequest{Name: name, TypeID: 1, Age: 2, OwnerID: 1})
		require.NoError(t, err)
		assert.Equal(t, []string{"PET_000001", "PET_000002", "PET_000003"}[i], p.PetID)
	}
}

func TestCreatePet_UnknownCategory(t *testing.T) {
	svc, repo := newPetFixture()

	_, err := svc.CreatePet(context.Background(), CreatePetRequest{Name: "Milo", TypeID: 42, OwnerID: 1})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, repo.pets)
}

func TestCreatePet_MissingRequiredFields(t *testing.T) {
	svc, _ := newPetFixture()

	_, err := svc.CreatePet(context.Background(), CreatePetRequest{Name: "", TypeID: 1, OwnerID: 1})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreatePet_DuplicateIdentifierDefense(t *testing.T) {
	svc, repo := newPetFixture()
	ctx := context.Background()

	// A pre-existing row already holds the identifier the sequence is about
	// to hand out.
	require.NoError(t, repo.Create(ctx, &domain.Pet{PetID: "PET_000001", Name: "Ghost", TypeID: 1, OwnerID: 1}))

	_, err := svc.CreatePet(ctx, CreatePetRequest{Name: "Milo", TypeID: 1, OwnerID: 1})
	assert.ErrorIs(t, err, ErrDuplicateIdentifier)
}

func TestUpdatePet_IdentifierImmutable(t *testing.T) {
	svc, _ := newPetFixture()
	ctx := context.Background()

	p, err := svc.CreatePet(ctx, CreatePetRequest{Name: "Milo", TypeID: 1, Age: 2, OwnerID: 1})
	require.NoError(t, err)

	_, err = svc.UpdatePet(ctx, p.ID, UpdatePetRequest{PetID: "PET_999999"})
	assert.ErrorIs(t, err, ErrIdentifierImmutable)
}

func TestUpdatePet_AppliesFieldChanges(t *testing.T) {
	svc, _ := newPetFixture()
	ctx := context.Background()

	p, err := svc.CreatePet(ctx, CreatePetRequest{Name: "Milo", TypeID: 1, Age: 2, OwnerID: 1})
	require.NoError(t, err)

	age := 3
	updated, err := svc.UpdatePet(ctx, p.ID, UpdatePetRequest{Name: "Milo Jr", TypeID: 2, Age: &age})
	require.NoError(t, err)

	assert.Equal(t, "Milo Jr", updated.Name)
	assert.Equal(t, int64(2), updated.TypeID)
	assert.Equal(t, 3, updated.Age)
	assert.Equal(t, "PET_000001", updated.PetID)
}

func TestGetPet_ResolvesOwnerDisplayName(t *testing.T) {
	svc, _ := newPetFixture()
	ctx := context.Background()

	p, err := svc.CreatePet(ctx, CreatePetRequest{Name: "Milo", TypeID: 1, Age: 2, OwnerID: 1})
	require.NoError(t, err)

	got, ownerName, err := svc.GetPet(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Andi Pratama", ownerName)
	assert.Equal(t, "Milo (Andi Pratama)", got.DisplayName(ownerName))
}

func TestGetPet_NotFound(t *testing.T) {
	svc, _ := newPetFixture()

	_, _, err := svc.GetPet(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListByOwner_FiltersOtherOwners(t *testing.T) {
	svc, repo := newPetFixture()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Pet{PetID: "PET_000001", Name: "Milo", TypeID: 1, OwnerID: 1}))
	require.NoError(t, repo.Create(ctx, &domain.Pet{PetID: "PET_000002", Name: "Cici", TypeID: 2, OwnerID: 2}))

	list, err := svc.ListByOwner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Milo", list[0].Name)
}
